package entity

import (
	"strings"
)

type (
	// UpdateSQL is an UPDATE statement builder. Create instances using
	// QueryBuilder.Update.
	UpdateSQL struct {
		table  string
		values []Property
		where  Expression
	}

	// UpdateQuery is a built UPDATE statement.
	UpdateQuery struct {
		Table  string
		Values []Property
		Where  Expression
	}
)

// Set adds column values. A column given twice keeps its last value.
func (s *UpdateSQL) Set(props ...Property) *UpdateSQL {
	s.values = append(s.values, props...)
	return s
}

// From sets the table.
func (s *UpdateSQL) From(table string) *UpdateSQL {
	s.table = strings.TrimSpace(table)
	return s
}

// Where sets the condition. It is required.
func (s *UpdateSQL) Where(e Expression) *UpdateSQL {
	s.where = e
	return s
}

// Tap applies transformation functions to this UpdateSQL, enabling custom
// method chaining.
func (s *UpdateSQL) Tap(funcs ...func(*UpdateSQL) *UpdateSQL) *UpdateSQL {
	for i := range funcs {
		s = funcs[i](s)
	}
	return s
}

// Build returns the statement. ErrNoTable, ErrNoValues or ErrMissingWhere is
// returned if table, values or condition is missing.
func (s *UpdateSQL) Build() (*UpdateQuery, error) {
	if s.table == "" {
		return nil, ErrNoTable
	}
	if len(s.values) == 0 {
		return nil, ErrNoValues
	}
	if s.where == nil {
		return nil, ErrMissingWhere
	}
	return &UpdateQuery{
		Table:  s.table,
		Values: dedupe(s.values),
		Where:  s.where,
	}, nil
}

func (q UpdateQuery) String() string {
	sql, _ := q.StringValues()
	return sql
}

// StringValues returns the statement with "?" placeholders and its values,
// SET values first.
func (q UpdateQuery) StringValues() (string, []interface{}) {
	sets := []string{}
	args := []interface{}{}
	for _, p := range q.Values {
		sets = append(sets, p.Column+" = ?")
		args = append(args, p.Value)
	}
	where, whereArgs := whereClause(q.Where)
	return "UPDATE " + q.Table + " SET " + strings.Join(sets, ", ") + where, append(args, whereArgs...)
}
