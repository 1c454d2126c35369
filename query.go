package entity

import (
	"errors"
	"strings"
)

var (
	ErrNoTable      = errors.New("no table")
	ErrNoValues     = errors.New("no values to set")
	ErrMissingWhere = errors.New("refusing to build statement without WHERE")
)

// QueryBuilder creates statement builders. Statements use "?" placeholders;
// executors rewrite them for their driver. Builders never talk to a
// database.
type QueryBuilder struct{}

// NewQueryBuilder returns a QueryBuilder.
func NewQueryBuilder() *QueryBuilder {
	return &QueryBuilder{}
}

// Select creates a SELECT statement builder.
func (QueryBuilder) Select() *SelectSQL {
	return &SelectSQL{}
}

// Insert creates an INSERT statement builder.
func (QueryBuilder) Insert() *InsertSQL {
	return &InsertSQL{}
}

// Update creates an UPDATE statement builder.
func (QueryBuilder) Update() *UpdateSQL {
	return &UpdateSQL{}
}

// Delete creates a DELETE statement builder.
func (QueryBuilder) Delete() *DeleteSQL {
	return &DeleteSQL{}
}

func whereClause(e Expression) (string, []interface{}) {
	cond, args := Render(e, true)
	if cond == "" {
		return "", nil
	}
	return " WHERE " + cond, args
}

func columnsOf(props []Property) (columns []string) {
	for _, p := range props {
		columns = append(columns, p.Column)
	}
	return
}

// later values of the same column win
func dedupe(props []Property) []Property {
	out := []Property{}
	index := map[string]int{}
	for _, p := range props {
		if i, ok := index[p.Column]; ok {
			out[i] = p
			continue
		}
		index[p.Column] = len(out)
		out = append(out, p)
	}
	return out
}

func placeholders(n int) string {
	if n == 0 {
		return ""
	}
	return strings.Repeat("?, ", n-1) + "?"
}
