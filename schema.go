package entity

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// MaxInheritanceDepth is the number of embedded struct levels walked when
// collecting the fields of an entity. Deeper hierarchies are rejected when
// the schema is built.
const MaxInheritanceDepth = 8

const (
	tableNameField = "__TABLE_NAME__"
)

var (
	ErrNotStruct          = errors.New("entity must be a struct")
	ErrNoSuchField        = errors.New("no such field")
	ErrInheritanceTooDeep = errors.New("embedded struct chain is too deep")
	ErrDuplicateColumn    = errors.New("duplicate column name")
	ErrUnknownDataType    = errors.New("unknown data type")
)

type (
	// Schema is the static description of how an entity type maps to a
	// single table. It is derived once per type from struct tags and never
	// changes afterwards.
	//
	//	type Passenger struct {
	//		__TABLE_NAME__ struct{} `table:"passengers,all"`
	//
	//		Id   *int    `pk:"id,auto"`
	//		Age  *int    `column:"age" default:"18"`
	//		Name *string `column:"name"`
	//	}
	Schema struct {
		structType    reflect.Type
		tableName     string
		acceptAll     bool
		fields        []Field
		ownFields     int
		primaryKeys   []int
		autoIncrement bool
	}

	// Field is a struct field of an entity together with its mapping
	// metadata.
	Field struct {
		Name          string   // struct field name
		ColumnName    string   // column name in database
		DataType      DataType // logical type used for default values
		Default       string   // default literal, see HasDefault
		HasDefault    bool     // true if the field has a "default" tag
		Format        string   // time layout for DATE and TIMESTAMP defaults
		IsColumn      bool     // field has a "column" tag
		IsPrimaryKey  bool     // field has a "pk" tag
		AutoIncrement bool     // primary key is generated by the database
		Ignored       bool     // excluded from MarshalToMap and UnmarshalFromMap
		Depth         int      // 0 for own fields, 1 for fields of embedded structs, ...
		Type          reflect.Type
		index         []int
	}

	// ModelWithTableName is implemented by entities that name their own
	// table.
	ModelWithTableName interface {
		TableName() string
	}
)

var schemas sync.Map // reflect.Type => *Schema

// SchemaOf returns the schema of an entity. Object can be a struct, a
// pointer to struct or a reflect.Type of them. Schemas are built once per
// type and shared.
func SchemaOf(object interface{}) (*Schema, error) {
	var rt reflect.Type
	if t, ok := object.(reflect.Type); ok {
		rt = t
	} else {
		rt = reflect.TypeOf(object)
	}
	if rt == nil {
		return nil, ErrNotStruct
	}
	for rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}
	if rt.Kind() != reflect.Struct {
		return nil, ErrNotStruct
	}
	if s, ok := schemas.Load(rt); ok {
		return s.(*Schema), nil
	}
	s, err := buildSchema(rt)
	if err != nil {
		return nil, err
	}
	actual, _ := schemas.LoadOrStore(rt, s)
	return actual.(*Schema), nil
}

// MustSchemaOf is like SchemaOf but panics if the schema can not be built.
func MustSchemaOf(object interface{}) *Schema {
	s, err := SchemaOf(object)
	if err != nil {
		panic(err)
	}
	return s
}

func buildSchema(rt reflect.Type) (*Schema, error) {
	s := &Schema{
		structType: rt,
	}
	type level struct {
		rt    reflect.Type
		index []int
	}
	current := []level{{rt: rt}}
	for depth := 0; len(current) > 0; depth++ {
		if depth > MaxInheritanceDepth {
			return nil, fmt.Errorf("%w: %s embeds more than %d levels", ErrInheritanceTooDeep, rt.Name(), MaxInheritanceDepth)
		}
		var next []level
		for _, l := range current {
			for i := 0; i < l.rt.NumField(); i++ {
				f := l.rt.Field(i)
				index := append(append([]int{}, l.index...), i)
				if f.Name == tableNameField {
					if depth == 0 {
						s.parseTableTag(f.Tag)
					}
					continue
				}
				if isEmbeddedEntity(f) {
					next = append(next, level{rt: f.Type, index: index})
					continue
				}
				field, ok, err := parseField(f, index, depth)
				if err != nil {
					return nil, fmt.Errorf("%s.%s: %w", rt.Name(), f.Name, err)
				}
				if !ok {
					continue
				}
				s.fields = append(s.fields, field)
				if depth == 0 {
					s.ownFields++
				}
			}
		}
		current = next
	}
	for i, f := range s.fields {
		if f.IsPrimaryKey {
			s.primaryKeys = append(s.primaryKeys, i)
		}
	}
	if len(s.primaryKeys) > 0 {
		s.autoIncrement = s.fields[s.primaryKeys[0]].AutoIncrement
	}
	if s.tableName == "" {
		s.tableName = standardTableName(rt)
	}
	return s, nil
}

// explicit table tag: `table:"name,all"`
func (s *Schema) parseTableTag(tag reflect.StructTag) {
	value, ok := tag.Lookup("table")
	if !ok {
		// raw tag: __TABLE_NAME__ string `users`
		if raw := strings.TrimSpace(string(tag)); raw != "" && !strings.Contains(raw, ":") {
			s.tableName = raw
		}
		return
	}
	name, opts := splitTag(value)
	s.tableName = name
	for _, opt := range opts {
		if opt == "all" {
			s.acceptAll = true
		}
	}
}

func standardTableName(rt reflect.Type) (name string) {
	if o, ok := reflect.New(rt).Interface().(ModelWithTableName); ok {
		name = strings.TrimSpace(o.TableName())
		if name != "" {
			return
		}
	}
	name = rt.Name()
	if name != "" && DefaultTableNamer != nil {
		name = DefaultTableNamer(name)
	}
	return
}

// anonymous struct fields without mapping tags are walked as ancestors
func isEmbeddedEntity(f reflect.StructField) bool {
	if !f.Anonymous || f.Type.Kind() != reflect.Struct {
		return false
	}
	if _, ok := f.Tag.Lookup("column"); ok {
		return false
	}
	if _, ok := f.Tag.Lookup("pk"); ok {
		return false
	}
	return true
}

func parseField(f reflect.StructField, index []int, depth int) (field Field, ok bool, err error) {
	column, isColumn := f.Tag.Lookup("column")
	pk, isPrimaryKey := f.Tag.Lookup("pk")
	if column == "-" {
		return
	}
	if f.PkgPath != "" && !isColumn && !isPrimaryKey {
		return // ignore unexported field if no column specified
	}
	field = Field{
		Name:         f.Name,
		IsColumn:     isColumn,
		IsPrimaryKey: isPrimaryKey,
		Depth:        depth,
		Type:         f.Type,
		index:        index,
	}
	columnName, _ := splitTag(column)
	pkName, pkOpts := splitTag(pk)
	for _, opt := range pkOpts {
		if opt == "auto" {
			field.AutoIncrement = true
		}
	}
	switch {
	case columnName != "":
		field.ColumnName = columnName
	case pkName != "":
		field.ColumnName = pkName
	case DefaultColumnNamer != nil:
		field.ColumnName = DefaultColumnNamer(f.Name)
	default:
		field.ColumnName = f.Name
	}
	if t, has := f.Tag.Lookup("type"); has {
		field.DataType, err = ParseDataType(t)
		if err != nil {
			return
		}
	} else {
		field.DataType = dataTypeOf(f.Type)
	}
	field.Default, field.HasDefault = f.Tag.Lookup("default")
	field.Format = strings.TrimSpace(f.Tag.Get("format"))
	field.Ignored = f.Tag.Get("map") == "-"
	ok = true
	return
}

func splitTag(tag string) (name string, opts []string) {
	parts := strings.Split(tag, ",")
	name = strings.TrimSpace(parts[0])
	for _, p := range parts[1:] {
		opts = append(opts, strings.TrimSpace(p))
	}
	return
}

func (s Schema) String() string {
	return fmt.Sprintf("schema (table: %q) has %d fields", s.tableName, len(s.fields))
}

// Type returns the struct type the schema was derived from.
func (s *Schema) Type() reflect.Type {
	return s.structType
}

// TableName returns the table of the entity. The "table" tag of the
// __TABLE_NAME__ field wins, then the TableName() method, then the name of
// the struct (passed through DefaultTableNamer if set).
func (s *Schema) TableName() string {
	return s.tableName
}

// AcceptAllFields reports whether every field is mapped, even those without
// "column" or "pk" tags. Only the "all" option of the table tag enables it.
func (s *Schema) AcceptAllFields() bool {
	return s.acceptAll
}

// DeclaredFields returns own fields first, then fields of embedded structs
// level by level. If inherit is false, only own fields are returned.
func (s *Schema) DeclaredFields(inherit bool) []Field {
	if inherit {
		return append([]Field{}, s.fields...)
	}
	return append([]Field{}, s.fields[:s.ownFields]...)
}

// FieldByName finds a field by its struct field name. Own fields shadow
// fields of embedded structs.
func (s *Schema) FieldByName(name string) (*Field, error) {
	for i := range s.fields {
		if s.fields[i].Name == name {
			f := s.fields[i]
			return &f, nil
		}
	}
	return nil, fmt.Errorf("%w: %s.%s", ErrNoSuchField, s.structType.Name(), name)
}

// PrimaryKeyFields returns fields tagged with "pk" in declaration order.
func (s *Schema) PrimaryKeyFields() (out []Field) {
	for _, i := range s.primaryKeys {
		out = append(out, s.fields[i])
	}
	return
}

// IsAutoIncrement reports whether the first primary key is generated by the
// database. Entities without primary key are never auto increment.
func (s *Schema) IsAutoIncrement() bool {
	return s.autoIncrement
}

func (s *Schema) autoIncrementField() *Field {
	for _, i := range s.primaryKeys {
		if s.fields[i].AutoIncrement {
			f := s.fields[i]
			return &f
		}
	}
	return nil
}

// IsMapped reports whether a field takes part in SQL statements.
func (s *Schema) IsMapped(f Field) bool {
	return s.acceptAll || f.IsColumn || f.IsPrimaryKey
}

// Columns returns the column names of all mapped fields.
func (s *Schema) Columns() (out []string) {
	seen := map[string]bool{}
	for _, f := range s.fields {
		if !s.IsMapped(f) || seen[f.ColumnName] {
			continue
		}
		seen[f.ColumnName] = true
		out = append(out, f.ColumnName)
	}
	return
}

// ColumnFieldMap maps column names of mapped fields to struct field names.
// It is used to put rows of a SELECT back into entities.
func (s *Schema) ColumnFieldMap() map[string]string {
	out := map[string]string{}
	for _, f := range s.fields {
		if !s.IsMapped(f) {
			continue
		}
		if _, ok := out[f.ColumnName]; ok {
			continue
		}
		out[f.ColumnName] = f.Name
	}
	return out
}

// Validate reports mapping smells that SchemaOf accepts: two mapped fields
// using the same column name.
func (s *Schema) Validate() error {
	seen := map[string]string{}
	for _, f := range s.fields {
		if !s.IsMapped(f) {
			continue
		}
		if other, ok := seen[f.ColumnName]; ok {
			return fmt.Errorf("%w: %q used by %s and %s", ErrDuplicateColumn, f.ColumnName, other, f.Name)
		}
		seen[f.ColumnName] = f.Name
	}
	return nil
}
