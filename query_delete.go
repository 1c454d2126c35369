package entity

import (
	"strings"
)

type (
	// DeleteSQL is a DELETE statement builder. Create instances using
	// QueryBuilder.Delete.
	DeleteSQL struct {
		table string
		where Expression
	}

	// DeleteQuery is a built DELETE statement.
	DeleteQuery struct {
		Table string
		Where Expression
	}
)

// RowsFrom sets the table.
func (s *DeleteSQL) RowsFrom(table string) *DeleteSQL {
	s.table = strings.TrimSpace(table)
	return s
}

// Where sets the condition. It is required.
func (s *DeleteSQL) Where(e Expression) *DeleteSQL {
	s.where = e
	return s
}

// Tap applies transformation functions to this DeleteSQL, enabling custom
// method chaining.
func (s *DeleteSQL) Tap(funcs ...func(*DeleteSQL) *DeleteSQL) *DeleteSQL {
	for i := range funcs {
		s = funcs[i](s)
	}
	return s
}

// Build returns the statement, or ErrNoTable or ErrMissingWhere.
func (s *DeleteSQL) Build() (*DeleteQuery, error) {
	if s.table == "" {
		return nil, ErrNoTable
	}
	if s.where == nil {
		return nil, ErrMissingWhere
	}
	return &DeleteQuery{
		Table: s.table,
		Where: s.where,
	}, nil
}

func (q DeleteQuery) String() string {
	sql, _ := q.StringValues()
	return sql
}

// StringValues returns the statement with "?" placeholders and its values.
func (q DeleteQuery) StringValues() (string, []interface{}) {
	where, args := whereClause(q.Where)
	return "DELETE FROM " + q.Table + where, args
}
