package entity

import (
	"fmt"
	"reflect"
)

// AssignError is returned by UnmarshalFromMap when a value can not be
// stored in its field.
type AssignError struct {
	Field string
	Value interface{}
	Type  reflect.Type
}

func (e *AssignError) Error() string {
	return fmt.Sprintf("cannot assign %T to field %s of type %s", e.Value, e.Field, e.Type)
}

// MarshalToMap returns a map of column name to field value for every field
// of object except those tagged `map:"-"`, whether or not the field is
// mapped to the table. Pointers are dereferenced and
// nil values are kept as nil. If inherit is false, fields of embedded
// structs are left out.
func (m Model) MarshalToMap(object interface{}, inherit bool) (map[string]interface{}, error) {
	rv, err := m.structValue(object)
	if err != nil {
		return nil, err
	}
	out := map[string]interface{}{}
	for _, f := range m.DeclaredFields(inherit) {
		if f.Ignored {
			continue
		}
		if _, ok := out[f.ColumnName]; ok {
			continue // shadowed
		}
		out[f.ColumnName], _ = valueOf(f.valueOf(rv))
	}
	return out, nil
}

// UnmarshalFromMap sets fields of object (which must be a pointer) from a
// map keyed by field name. Missing keys and nil values leave fields
// untouched, as do fields tagged `map:"-"`.
func (m Model) UnmarshalFromMap(object interface{}, data map[string]interface{}, inherit bool) error {
	rv, err := m.pointerValue(object)
	if err != nil {
		return err
	}
	done := map[string]bool{}
	for _, f := range m.DeclaredFields(inherit) {
		if f.Ignored || done[f.Name] {
			continue
		}
		done[f.Name] = true
		value, ok := data[f.Name]
		if !ok || value == nil {
			continue
		}
		if !assign(f.valueOf(rv), value) {
			return &AssignError{Field: f.Name, Value: value, Type: f.Type}
		}
	}
	return nil
}

// assign stores value in dst, allocating pointers and converting between
// numeric kinds as needed.
func assign(dst reflect.Value, value interface{}) bool {
	src := reflect.ValueOf(value)
	if !src.IsValid() {
		dst.Set(reflect.Zero(dst.Type()))
		return true
	}
	if src.Type().AssignableTo(dst.Type()) {
		dst.Set(src)
		return true
	}
	if src.Kind() == reflect.Ptr {
		if src.IsNil() {
			dst.Set(reflect.Zero(dst.Type()))
			return true
		}
		return assign(dst, src.Elem().Interface())
	}
	if dst.Kind() == reflect.Ptr {
		v := reflect.New(dst.Type().Elem())
		if !assign(v.Elem(), value) {
			return false
		}
		dst.Set(v)
		return true
	}
	switch {
	case dst.Kind() == reflect.Bool && isInteger(src.Kind()):
		dst.SetBool(src.Convert(reflect.TypeOf(int64(0))).Int() != 0)
		return true
	case dst.Kind() == reflect.String && (isInteger(src.Kind()) || isFloat(src.Kind())):
		return false // not a rune conversion
	case isNumber(dst.Kind()) && !isNumber(src.Kind()):
		return false
	}
	if src.Type().ConvertibleTo(dst.Type()) {
		dst.Set(src.Convert(dst.Type()))
		return true
	}
	return false
}

func isInteger(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

func isNumber(k reflect.Kind) bool {
	return isInteger(k) || isFloat(k)
}
