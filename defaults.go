package entity

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultDateTimeLayout is used to parse DATE and TIMESTAMP default values
// of fields without "format" tag.
const DefaultDateTimeLayout = "2006-01-02 15:04:05"

// DataType is the logical type of a field. It decides how the literal of a
// "default" tag is converted.
type DataType string

const (
	TypeString    DataType = "STRING"
	TypeInt       DataType = "INT"
	TypeFloat     DataType = "FLOAT"
	TypeDouble    DataType = "DOUBLE"
	TypeBool      DataType = "BOOL"
	TypeDate      DataType = "DATE"
	TypeTimestamp DataType = "TIMESTAMP"
	TypeBlob      DataType = "BLOB"
	TypeBytes     DataType = "BYTES"
	TypeDecimal   DataType = "DECIMAL"
	TypeUUID      DataType = "UUID"
)

var dataTypeAliases = map[string]DataType{
	"INTEGER":      TypeInt,
	"BOOLEAN":      TypeBool,
	"SQLDATE":      TypeDate,
	"SQLTIMESTAMP": TypeTimestamp,
	"BYTEARRAY":    TypeBytes,
	"TEXT":         TypeString,
}

var (
	timeType    = reflect.TypeOf(time.Time{})
	decimalType = reflect.TypeOf(decimal.Decimal{})
	uuidType    = reflect.TypeOf(uuid.UUID{})
	bytesType   = reflect.TypeOf([]byte(nil))
)

// BlobCreator makes driver specific binary values. Executors implement it.
type BlobCreator interface {
	CreateBlob(literal string) (interface{}, error)
}

// CoercionError is returned (strict mode) or logged (default) when the
// default literal of a field can not be converted to its logical type.
type CoercionError struct {
	Field   string
	Type    DataType
	Literal string
	Err     error
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("cannot use default %q of field %s as %s: %v", e.Literal, e.Field, e.Type, e.Err)
}

func (e *CoercionError) Unwrap() error {
	return e.Err
}

// ParseDataType parses the value of a "type" tag. Names are case
// insensitive.
func ParseDataType(s string) (DataType, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	switch t := DataType(name); t {
	case TypeString, TypeInt, TypeFloat, TypeDouble, TypeBool, TypeDate,
		TypeTimestamp, TypeBlob, TypeBytes, TypeDecimal, TypeUUID:
		return t, nil
	}
	if t, ok := dataTypeAliases[name]; ok {
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDataType, s)
}

func dataTypeOf(rt reflect.Type) DataType {
	for rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}
	switch rt {
	case timeType:
		return TypeTimestamp
	case decimalType:
		return TypeDecimal
	case uuidType:
		return TypeUUID
	case bytesType:
		return TypeBytes
	}
	switch rt.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return TypeInt
	case reflect.Float32:
		return TypeFloat
	case reflect.Float64:
		return TypeDouble
	case reflect.Bool:
		return TypeBool
	}
	return TypeString
}

// coerceDefault converts the default literal of a field to a value of its
// logical type.
func coerceDefault(f Field, blobs BlobCreator) (value interface{}, err error) {
	literal := f.Default
	switch f.DataType {
	case TypeInt:
		value, err = strconv.Atoi(strings.TrimSpace(literal))
	case TypeFloat:
		var v float64
		v, err = strconv.ParseFloat(strings.TrimSpace(literal), 32)
		value = float32(v)
	case TypeDouble:
		value, err = strconv.ParseFloat(strings.TrimSpace(literal), 64)
	case TypeBool:
		value, err = strconv.ParseBool(strings.TrimSpace(literal))
	case TypeDate, TypeTimestamp:
		layout := f.Format
		if layout == "" {
			layout = DefaultDateTimeLayout
		}
		var t time.Time
		t, err = time.Parse(layout, literal)
		if f.DataType == TypeDate {
			t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		}
		value = t
	case TypeBlob:
		if blobs == nil {
			value = literal
		} else {
			value, err = blobs.CreateBlob(literal)
		}
	case TypeBytes:
		value = []byte(literal)
	case TypeDecimal:
		value, err = decimal.NewFromString(strings.TrimSpace(literal))
	case TypeUUID:
		value, err = uuid.Parse(strings.TrimSpace(literal))
	default:
		value = literal
	}
	if err != nil {
		return nil, &CoercionError{
			Field:   f.Name,
			Type:    f.DataType,
			Literal: literal,
			Err:     err,
		}
	}
	return
}
