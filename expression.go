package entity

import (
	"fmt"
	"strings"
	"time"
)

// Operator compares the column of a Property with its value.
type Operator string

const (
	OperatorEqual              Operator = "="
	OperatorNotEqual           Operator = "<>"
	OperatorGreaterThan        Operator = ">"
	OperatorGreaterThanOrEqual Operator = ">="
	OperatorLessThan           Operator = "<"
	OperatorLessThanOrEqual    Operator = "<="
	OperatorLike               Operator = "LIKE"
)

type (
	// Expression is a boolean condition over columns. It is one of
	// Comparison, And or Or. Expressions are immutable; whether the
	// outermost composite gets parentheses is decided when it is rendered.
	Expression interface {
		isExpression()
	}

	// Comparison compares one column with a value: "age >= 18".
	Comparison struct {
		Property Property
		Operator Operator
	}

	// And is satisfied when both sides are.
	And struct {
		Left, Right Expression
	}

	// Or is satisfied when either side is.
	Or struct {
		Left, Right Expression
	}
)

func (Comparison) isExpression() {}
func (And) isExpression()        {}
func (Or) isExpression()         {}

// NewExpression creates a Comparison of the property's column and value.
func NewExpression(p Property, op Operator) Comparison {
	return Comparison{Property: p, Operator: op}
}

// Equal is short for NewExpression(NewProperty(column, value), OperatorEqual).
func Equal(column string, value interface{}) Comparison {
	return NewExpression(NewProperty(column, value), OperatorEqual)
}

// NewAnd joins two expressions with AND. A nil side is dropped.
func NewAnd(left, right Expression) Expression {
	if left == nil {
		return right
	}
	if right == nil {
		return left
	}
	return And{Left: left, Right: right}
}

// NewOr joins two expressions with OR. A nil side is dropped.
func NewOr(left, right Expression) Expression {
	if left == nil {
		return right
	}
	if right == nil {
		return left
	}
	return Or{Left: left, Right: right}
}

// AndAll folds equality comparisons of props with AND from left to right:
// ((a AND b) AND c). Nil is returned for no props, which means no
// condition at all.
func AndAll(props ...Property) (out Expression) {
	for _, p := range props {
		out = NewAnd(out, NewExpression(p, OperatorEqual))
	}
	return
}

// OrAll is like AndAll, but with OR.
func OrAll(props ...Property) (out Expression) {
	for _, p := range props {
		out = NewOr(out, NewExpression(p, OperatorEqual))
	}
	return
}

// Interpret renders an expression as SQL with values written inline, for
// logs and debugging. Composites are always parenthesized:
//
//	Interpret(NewAnd(Equal("id", 1), Equal("name", "x")))
//	// (id = 1 AND name = 'x')
func Interpret(e Expression) string {
	sql, _ := render(e, false, true)
	return sql
}

// Render renders an expression with "?" placeholders and returns the values
// in the order of the placeholders. If skipOuter is true, the outermost
// composite is not parenthesized, as in a WHERE clause. Empty string is
// returned for nil expression.
func Render(e Expression, skipOuter bool) (string, []interface{}) {
	return render(e, skipOuter, false)
}

func render(e Expression, skipOuter, inline bool) (sql string, args []interface{}) {
	var connective string
	var left, right Expression
	switch x := e.(type) {
	case nil:
		return
	case Comparison:
		return renderComparison(x, inline)
	case *Comparison:
		return renderComparison(*x, inline)
	case And:
		connective, left, right = " AND ", x.Left, x.Right
	case *And:
		connective, left, right = " AND ", x.Left, x.Right
	case Or:
		connective, left, right = " OR ", x.Left, x.Right
	case *Or:
		connective, left, right = " OR ", x.Left, x.Right
	default:
		panic(fmt.Sprintf("unknown expression %T", e))
	}
	l, largs := render(left, false, inline)
	r, rargs := render(right, false, inline)
	switch {
	case l == "":
		sql = r
	case r == "":
		sql = l
	default:
		sql = l + connective + r
		if !skipOuter {
			sql = "(" + sql + ")"
		}
	}
	args = append(largs, rargs...)
	return
}

func renderComparison(c Comparison, inline bool) (string, []interface{}) {
	column := c.Property.Column
	op := c.Operator
	if op == "" {
		op = OperatorEqual
	}
	if c.Property.Value == nil {
		switch op {
		case OperatorEqual:
			return column + " IS NULL", nil
		case OperatorNotEqual:
			return column + " IS NOT NULL", nil
		}
	}
	if inline {
		return column + " " + string(op) + " " + literal(c.Property.Value), nil
	}
	return column + " " + string(op) + " ?", []interface{}{c.Property.Value}
}

// SQL literal of a value
func literal(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return "NULL"
	case bool:
		if v {
			return "TRUE"
		}
		return "FALSE"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return fmt.Sprint(v)
	case time.Time:
		return quote(v.Format(DefaultDateTimeLayout))
	case []byte:
		return quote(string(v))
	}
	return quote(fmt.Sprint(value))
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
