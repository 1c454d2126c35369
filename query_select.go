package entity

import (
	"strings"
)

type (
	// SelectSQL is a SELECT statement builder. Create instances using
	// QueryBuilder.Select.
	SelectSQL struct {
		columns []string
		table   string
		where   Expression
	}

	// SelectQuery is a built SELECT statement.
	SelectQuery struct {
		Table   string
		Columns []string
		Where   Expression
	}
)

// Columns sets the columns to select. No columns means "*".
func (s *SelectSQL) Columns(columns ...string) *SelectSQL {
	s.columns = append([]string{}, columns...)
	return s
}

// From sets the table.
func (s *SelectSQL) From(table string) *SelectSQL {
	s.table = strings.TrimSpace(table)
	return s
}

// Where sets the condition. Nil selects every row.
func (s *SelectSQL) Where(e Expression) *SelectSQL {
	s.where = e
	return s
}

// Tap applies transformation functions to this SelectSQL, enabling custom
// method chaining.
func (s *SelectSQL) Tap(funcs ...func(*SelectSQL) *SelectSQL) *SelectSQL {
	for i := range funcs {
		s = funcs[i](s)
	}
	return s
}

// Build returns the statement, or ErrNoTable.
func (s *SelectSQL) Build() (*SelectQuery, error) {
	if s.table == "" {
		return nil, ErrNoTable
	}
	return &SelectQuery{
		Table:   s.table,
		Columns: append([]string{}, s.columns...),
		Where:   s.where,
	}, nil
}

func (q SelectQuery) String() string {
	sql, _ := q.StringValues()
	return sql
}

// StringValues returns the statement with "?" placeholders and its values.
func (q SelectQuery) StringValues() (string, []interface{}) {
	columns := "*"
	if len(q.Columns) > 0 {
		columns = strings.Join(q.Columns, ", ")
	}
	where, args := whereClause(q.Where)
	return "SELECT " + columns + " FROM " + q.Table + where, args
}
