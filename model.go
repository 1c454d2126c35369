package entity

import (
	"errors"
	"reflect"
	"strconv"
	"sync"
	"unsafe"

	"github.com/gopsql/logger"
)

type (
	// Model maps one entity type to its table. It is created from a struct
	// (see SchemaOf for the tags) and carries the logger and the default
	// value policy used by Property, Insert, Update, Delete and Read.
	Model struct {
		*Schema
		logger         logger.Logger
		strictDefaults bool
	}
)

var (
	ErrMustBePointer = errors.New("must be pointer")
	ErrInvalidTarget = errors.New("target must be pointer to slice of the entity")
)

var (
	// DefaultLogger is used by models created by the package-level
	// functions (Insert, Update, Delete, Read). Default is nil, which
	// prints nothing.
	DefaultLogger logger.Logger = nil
)

// Initialize a Model from a struct. Object can be a struct, a pointer to
// struct or its reflect.Type. For available options, see SetOptions().
func NewModel(object interface{}, options ...interface{}) (*Model, error) {
	s, err := SchemaOf(object)
	if err != nil {
		return nil, err
	}
	m := &Model{
		Schema: s,
	}
	m.SetOptions(options...)
	return m, nil
}

// MustNewModel is like NewModel but panics if the struct is not a valid
// entity.
func MustNewModel(object interface{}, options ...interface{}) *Model {
	m, err := NewModel(object, options...)
	if err != nil {
		panic(err)
	}
	return m
}

var models sync.Map // reflect.Type => *Model

// default model of the package-level functions, built once per type and
// handed out with the current DefaultLogger
func modelOf(object interface{}) (*Model, error) {
	rt := reflect.TypeOf(object)
	for rt != nil && (rt.Kind() == reflect.Ptr || rt.Kind() == reflect.Slice) {
		rt = rt.Elem()
	}
	if rt == nil {
		return nil, ErrNotStruct
	}
	cached, ok := models.Load(rt)
	if !ok {
		m, err := NewModel(rt)
		if err != nil {
			return nil, err
		}
		cached, _ = models.LoadOrStore(rt, m)
	}
	m := *cached.(*Model)
	m.logger = DefaultLogger
	return &m, nil
}

func (m Model) String() string {
	return `model (table: "` + m.TableName() + `") has ` +
		strconv.Itoa(len(m.fields)) + " fields"
}

// Clone returns a copy of the model.
func (m *Model) Clone() *Model {
	return &Model{
		Schema:         m.Schema,
		logger:         m.logger,
		strictDefaults: m.strictDefaults,
	}
}

// Quiet returns a copy of the model without logger.
func (m *Model) Quiet() *Model {
	return m.Clone().SetLogger(nil)
}

// SetOptions sets logger (see SetLogger()).
func (m *Model) SetOptions(options ...interface{}) *Model {
	for _, option := range options {
		switch o := option.(type) {
		case logger.Logger:
			m.SetLogger(o)
		}
	}
	return m
}

// Set the logger for the Model. Use logger.StandardLogger if you want to use
// Go's built-in standard logging package. By default, no logger is used, so
// the SQL statements are not printed to the console.
func (m *Model) SetLogger(logger logger.Logger) *Model {
	m.logger = logger
	return m
}

// SetStrictDefaults decides what happens when a default literal can not be
// converted to the type of its field. By default the problem is logged and
// the property gets a nil value. In strict mode a *CoercionError is
// returned instead.
func (m *Model) SetStrictDefaults(strict bool) *Model {
	m.strictDefaults = strict
	return m
}

func (m Model) log(sql string, args []interface{}) {
	if m.logger == nil {
		return
	}
	if len(args) == 0 {
		m.logger.Debug(sql)
		return
	}
	m.logger.Debug(sql, args)
}

// checks that target is a pointer to struct of the model
func (m Model) pointerValue(target interface{}) (reflect.Value, error) {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return rv, ErrMustBePointer
	}
	rv = rv.Elem()
	if rv.Type() != m.structType {
		return rv, ErrNotStruct
	}
	return rv, nil
}

// addressable struct value of object, copying object if needed
func (m Model) structValue(object interface{}) (reflect.Value, error) {
	rv := reflect.ValueOf(object)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return rv, ErrMustBePointer
		}
		rv = rv.Elem()
	}
	if rv.Type() != m.structType {
		return rv, ErrNotStruct
	}
	if !rv.CanAddr() {
		v := reflect.New(rv.Type()).Elem()
		v.Set(rv)
		rv = v
	}
	return rv, nil
}

// settable value of the field inside structValue, which must be
// addressable
func (f Field) valueOf(structValue reflect.Value) reflect.Value {
	value := structValue.FieldByIndex(f.index)
	if value.CanSet() {
		return value
	}
	return reflect.NewAt(value.Type(), unsafe.Pointer(value.UnsafeAddr())).Elem()
}

func (f Field) addrOf(structValue reflect.Value) interface{} {
	return f.valueOf(structValue).Addr().Interface()
}
