package entity

import (
	"strings"
)

type (
	// InsertSQL is an INSERT statement builder. Create instances using
	// QueryBuilder.Insert.
	InsertSQL struct {
		table     string
		values    []Property
		returning []string
	}

	// InsertQuery is a built INSERT statement.
	InsertQuery struct {
		Table     string
		Values    []Property
		Returning []string
	}
)

// Into sets the table.
func (s *InsertSQL) Into(table string) *InsertSQL {
	s.table = strings.TrimSpace(table)
	return s
}

// Values adds column values. A column given twice keeps its last value.
func (s *InsertSQL) Values(props ...Property) *InsertSQL {
	s.values = append(s.values, props...)
	return s
}

// Returning adds a RETURNING clause to retrieve values from inserted rows.
func (s *InsertSQL) Returning(columns ...string) *InsertSQL {
	s.returning = append([]string{}, columns...)
	return s
}

// Tap applies transformation functions to this InsertSQL, enabling custom
// method chaining.
func (s *InsertSQL) Tap(funcs ...func(*InsertSQL) *InsertSQL) *InsertSQL {
	for i := range funcs {
		s = funcs[i](s)
	}
	return s
}

// Build returns the statement, or ErrNoTable.
func (s *InsertSQL) Build() (*InsertQuery, error) {
	if s.table == "" {
		return nil, ErrNoTable
	}
	return &InsertQuery{
		Table:     s.table,
		Values:    dedupe(s.values),
		Returning: append([]string{}, s.returning...),
	}, nil
}

func (q InsertQuery) String() string {
	sql, _ := q.StringValues()
	return sql
}

// StringValues returns the statement with "?" placeholders and its values.
// Without values, DEFAULT VALUES is inserted.
func (q InsertQuery) StringValues() (string, []interface{}) {
	var sql string
	var args []interface{}
	if len(q.Values) == 0 {
		sql = "INSERT INTO " + q.Table + " DEFAULT VALUES"
	} else {
		for _, p := range q.Values {
			args = append(args, p.Value)
		}
		sql = "INSERT INTO " + q.Table + " (" + strings.Join(columnsOf(q.Values), ", ") +
			") VALUES (" + placeholders(len(q.Values)) + ")"
	}
	if len(q.Returning) > 0 {
		sql += " RETURNING " + strings.Join(q.Returning, ", ")
	}
	return sql, args
}
