package entity

import (
	"reflect"
	"strings"
)

// Property is a column name paired with the value of a field of one entity
// instance. Properties are created on every call and never cached.
type Property struct {
	Column string
	Value  interface{}
}

// NewProperty creates a Property.
func NewProperty(column string, value interface{}) Property {
	return Property{Column: column, Value: value}
}

// Property returns the property of the named field of object. A nil
// property and nil error are returned for primary keys if skipPrimary is
// true. A nil field value is replaced by the field's default (see the
// "default" tag); blobs, usually the Executor, creates values of BLOB
// fields and can be nil.
func (m Model) Property(object interface{}, fieldName string, blobs BlobCreator, skipPrimary bool) (*Property, error) {
	rv, err := m.structValue(object)
	if err != nil {
		return nil, err
	}
	f, err := m.FieldByName(strings.TrimSpace(fieldName))
	if err != nil {
		return nil, err
	}
	return m.property(rv, *f, blobs, skipPrimary)
}

func (m Model) property(rv reflect.Value, f Field, blobs BlobCreator, skipPrimary bool) (*Property, error) {
	if f.IsPrimaryKey && skipPrimary {
		return nil, nil
	}
	value, isNil := valueOf(f.valueOf(rv))
	if isNil {
		value = nil
		if f.IsColumn && f.HasDefault && !f.IsPrimaryKey {
			v, err := coerceDefault(f, blobs)
			if err != nil {
				if m.strictDefaults {
					return nil, err
				}
				if m.logger != nil {
					m.logger.Error(err)
				}
			} else {
				value = v
			}
		}
	}
	return &Property{Column: f.ColumnName, Value: value}, nil
}

// Properties returns properties of all mapped fields of object, own fields
// first. Primary keys are left out if skipPrimary is true.
func (m Model) Properties(object interface{}, blobs BlobCreator, skipPrimary bool) ([]Property, error) {
	return m.PropertiesOf(object, blobs, skipPrimary)
}

// PrimaryProperties returns properties of the primary key fields of object.
func (m Model) PrimaryProperties(object interface{}, blobs BlobCreator) ([]Property, error) {
	rv, err := m.structValue(object)
	if err != nil {
		return nil, err
	}
	out := []Property{}
	for _, f := range m.PrimaryKeyFields() {
		p, err := m.property(rv, f, blobs, false)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, nil
}

// PropertiesOf returns properties of the named fields of object. Names are
// trimmed. If no names are given, properties of all mapped fields are
// returned, like Properties.
func (m Model) PropertiesOf(object interface{}, blobs BlobCreator, skipPrimary bool, fieldNames ...string) ([]Property, error) {
	rv, err := m.structValue(object)
	if err != nil {
		return nil, err
	}
	return m.propertiesOf(rv, blobs, skipPrimary, fieldNames)
}

func (m Model) propertiesOf(rv reflect.Value, blobs BlobCreator, skipPrimary bool, fieldNames []string) ([]Property, error) {
	var fields []Field
	if len(fieldNames) > 0 {
		for _, name := range fieldNames {
			f, err := m.FieldByName(strings.TrimSpace(name))
			if err != nil {
				return nil, err
			}
			fields = append(fields, *f)
		}
	} else {
		for _, f := range m.fields {
			if m.IsMapped(f) {
				fields = append(fields, f)
			}
		}
	}
	out := []Property{}
	for _, f := range fields {
		p, err := m.property(rv, f, blobs, skipPrimary)
		if err != nil {
			return nil, err
		}
		if p == nil {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

// valueOf returns the value of a field, dereferencing pointers. Nil
// pointers, slices, maps and interfaces are null.
func valueOf(v reflect.Value) (value interface{}, isNil bool) {
	switch v.Kind() {
	case reflect.Ptr:
		if v.IsNil() {
			return nil, true
		}
		return valueOf(v.Elem())
	case reflect.Interface, reflect.Slice, reflect.Map:
		if v.IsNil() {
			return nil, true
		}
	}
	return v.Interface(), false
}

func isNullable(rt reflect.Type) bool {
	switch rt.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map:
		return true
	}
	return false
}
