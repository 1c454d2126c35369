package entity

import (
	"context"
	"errors"
	"reflect"
	"strings"
)

var (
	ErrNoPrimaryKey = errors.New("entity has no primary key")
)

// Insert inserts object, which must be a pointer to the entity, as a new
// row. Primary keys are never inserted. If fieldNames are given, only
// those fields are inserted. The key generated for an auto increment
// entity is written back into its primary key field.
//
//	p := Passenger{Name: &name, Age: &age}
//	ok, err := model.Insert(ctx, exe, &p)
//	// INSERT INTO passengers (age, name, sex) VALUES (?, ?, ?) RETURNING id
func (m Model) Insert(ctx context.Context, exe Executor, object interface{}, fieldNames ...string) (bool, error) {
	rv, err := m.pointerValue(object)
	if err != nil {
		return false, err
	}
	props, err := m.propertiesOf(rv, exe, true, fieldNames)
	if err != nil {
		return false, err
	}
	builder := exe.QueryBuilder().Insert().Into(m.TableName()).Values(props...)
	autoField := m.autoIncrementField()
	auto := m.IsAutoIncrement() && autoField != nil
	if auto {
		builder.Returning(autoField.ColumnName)
	}
	q, err := builder.Build()
	if err != nil {
		return false, err
	}
	m.log(q.StringValues())
	result, err := exe.ExecuteInsert(ctx, auto, q)
	if err != nil {
		return false, err
	}
	if auto && result.HasGeneratedKey {
		if !assign(autoField.valueOf(rv), result.GeneratedKey) {
			return false, &AssignError{Field: autoField.Name, Value: result.GeneratedKey, Type: autoField.Type}
		}
	}
	return result.OK(), nil
}

// MustInsert is like Insert but panics if insert operation fails.
func (m Model) MustInsert(ctx context.Context, exe Executor, object interface{}, fieldNames ...string) bool {
	ok, err := m.Insert(ctx, exe, object, fieldNames...)
	if err != nil {
		panic(err)
	}
	return ok
}

// Update writes the fields of object (all mapped fields or only
// fieldNames) to the row with the same primary key. Primary keys are never
// updated. Success means exactly one row was changed.
func (m Model) Update(ctx context.Context, exe Executor, object interface{}, fieldNames ...string) (bool, error) {
	rv, err := m.structValue(object)
	if err != nil {
		return false, err
	}
	where, err := m.primaryKeyCondition(rv, exe)
	if err != nil {
		return false, err
	}
	props, err := m.propertiesOf(rv, exe, true, fieldNames)
	if err != nil {
		return false, err
	}
	q, err := exe.QueryBuilder().Update().Set(props...).From(m.TableName()).Where(where).Build()
	if err != nil {
		return false, err
	}
	m.log(q.StringValues())
	n, err := exe.ExecuteUpdate(ctx, q)
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// MustUpdate is like Update but panics if update operation fails.
func (m Model) MustUpdate(ctx context.Context, exe Executor, object interface{}, fieldNames ...string) bool {
	ok, err := m.Update(ctx, exe, object, fieldNames...)
	if err != nil {
		panic(err)
	}
	return ok
}

// Delete deletes the row with the primary key of object. Success means
// exactly one row was deleted.
func (m Model) Delete(ctx context.Context, exe Executor, object interface{}) (bool, error) {
	rv, err := m.structValue(object)
	if err != nil {
		return false, err
	}
	where, err := m.primaryKeyCondition(rv, exe)
	if err != nil {
		return false, err
	}
	q, err := exe.QueryBuilder().Delete().RowsFrom(m.TableName()).Where(where).Build()
	if err != nil {
		return false, err
	}
	m.log(q.StringValues())
	n, err := exe.ExecuteDelete(ctx, q)
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// MustDelete is like Delete but panics if delete operation fails.
func (m Model) MustDelete(ctx context.Context, exe Executor, object interface{}) bool {
	ok, err := m.Delete(ctx, exe, object)
	if err != nil {
		panic(err)
	}
	return ok
}

// Read puts the rows whose columns equal every given property into target,
// a pointer to a slice of the entity or of pointers to it. Without
// properties, every row is read.
//
//	var passengers []Passenger
//	model.Read(ctx, exe, &passengers, entity.NewProperty("name", "Tanvir"))
func (m Model) Read(ctx context.Context, exe Executor, target interface{}, match ...Property) error {
	return m.ReadWhere(ctx, exe, target, AndAll(match...))
}

// MustRead is like Read but panics if read operation fails.
func (m Model) MustRead(ctx context.Context, exe Executor, target interface{}, match ...Property) {
	if err := m.Read(ctx, exe, target, match...); err != nil {
		panic(err)
	}
}

// ReadWhere is like Read but takes any expression. Nil expression reads
// every row.
func (m Model) ReadWhere(ctx context.Context, exe Executor, target interface{}, e Expression) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() || rv.Elem().Kind() != reflect.Slice {
		return ErrInvalidTarget
	}
	rv = rv.Elem()
	elemType := rv.Type().Elem()
	isPtr := elemType.Kind() == reflect.Ptr
	if isPtr {
		elemType = elemType.Elem()
	}
	if elemType != m.structType {
		return ErrInvalidTarget
	}
	q, err := exe.QueryBuilder().Select().Columns(m.Columns()...).From(m.TableName()).Where(e).Build()
	if err != nil {
		return err
	}
	m.log(q.StringValues())
	sink := newEntitySink(m.Schema)
	if err := exe.ExecuteSelect(ctx, q, sink); err != nil {
		return err
	}
	out := reflect.MakeSlice(rv.Type(), 0, len(sink.rows))
	for _, row := range sink.rows {
		if isPtr {
			out = reflect.Append(out, row)
		} else {
			out = reflect.Append(out, row.Elem())
		}
	}
	rv.Set(out)
	return nil
}

// WHERE of update and delete
func (m Model) primaryKeyCondition(rv reflect.Value, blobs BlobCreator) (Expression, error) {
	if len(m.primaryKeys) == 0 {
		return nil, ErrNoPrimaryKey
	}
	props, err := m.PrimaryProperties(rv.Addr().Interface(), blobs)
	if err != nil {
		return nil, err
	}
	return AndAll(props...), nil
}

type entitySink struct {
	schema  *Schema
	columns map[string]Field
	rows    []reflect.Value
}

func newEntitySink(s *Schema) *entitySink {
	columns := map[string]Field{}
	for column, name := range s.ColumnFieldMap() {
		f, _ := s.FieldByName(name)
		columns[column] = *f
		if lower := strings.ToLower(column); lower != column {
			if _, ok := columns[lower]; !ok {
				columns[lower] = *f
			}
		}
	}
	return &entitySink{schema: s, columns: columns}
}

// Dests allocates a new entity for the row and returns addresses of its
// fields. Unknown columns are discarded.
func (s *entitySink) Dests(columns []string) ([]interface{}, error) {
	nv := reflect.New(s.schema.structType)
	dests := make([]interface{}, len(columns))
	for i, column := range columns {
		f, ok := s.columns[column]
		if !ok {
			f, ok = s.columns[strings.ToLower(column)]
		}
		if !ok {
			var discard interface{}
			dests[i] = &discard
			continue
		}
		dests[i] = f.addrOf(nv.Elem())
	}
	s.rows = append(s.rows, nv)
	return dests, nil
}

// Insert is Model.Insert with the default model of object's type.
func Insert(ctx context.Context, exe Executor, object interface{}, fieldNames ...string) (bool, error) {
	m, err := modelOf(object)
	if err != nil {
		return false, err
	}
	return m.Insert(ctx, exe, object, fieldNames...)
}

// Update is Model.Update with the default model of object's type.
func Update(ctx context.Context, exe Executor, object interface{}, fieldNames ...string) (bool, error) {
	m, err := modelOf(object)
	if err != nil {
		return false, err
	}
	return m.Update(ctx, exe, object, fieldNames...)
}

// Delete is Model.Delete with the default model of object's type.
func Delete(ctx context.Context, exe Executor, object interface{}) (bool, error) {
	m, err := modelOf(object)
	if err != nil {
		return false, err
	}
	return m.Delete(ctx, exe, object)
}

// Read is Model.Read with the default model of target's element type.
func Read(ctx context.Context, exe Executor, target interface{}, match ...Property) error {
	m, err := modelOf(target)
	if err != nil {
		return err
	}
	return m.Read(ctx, exe, target, match...)
}

// ReadWhere is Model.ReadWhere with the default model of target's element
// type.
func ReadWhere(ctx context.Context, exe Executor, target interface{}, e Expression) error {
	m, err := modelOf(target)
	if err != nil {
		return err
	}
	return m.ReadWhere(ctx, exe, target, e)
}
