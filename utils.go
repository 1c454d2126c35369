package entity

import (
	"strings"
	"unicode"
)

var (
	// DefaultColumnNamer converts field names to column names for fields
	// whose tags do not name a column. Default is nil, which uses the field
	// name as column name.
	DefaultColumnNamer func(string) string = nil

	// DefaultTableNamer converts struct names to table names for entities
	// without "table" tag or TableName() method. Default is nil, which uses
	// the struct name. Set it to ToPluralUnderscore to get "post_comments"
	// for PostComment.
	DefaultTableNamer func(string) string = nil
)

// Convert a word to its plural form. Add "es" for "s" or "o" ending,
// "y" ending will be replaced with "ies", for other endings, add "s".
// For example, "product" will be converted to "products".
func ToPlural(in string) string {
	if in == "" {
		return ""
	}
	if strings.HasSuffix(in, "y") {
		return in[:len(in)-1] + "ies"
	}
	if strings.HasSuffix(in, "s") || strings.HasSuffix(in, "o") {
		return in + "es"
	}
	return in + "s"
}

// Convert a "CamelCase" word to its plural "snake_case" (underscore) form.
// For example, "PostComment" will be converted to "post_comments".
func ToPluralUnderscore(in string) string {
	return ToPlural(ToUnderscore(in))
}

// Convert "CamelCase" word to its "snake_case" (underscore) form. For example,
// "FullName" will be converted to "full_name".
func ToUnderscore(str string) string {
	var output []rune
	var segment []rune
	for _, r := range str {
		// not treat number as separate segment
		if !unicode.IsLower(r) && r != '_' && !unicode.IsNumber(r) {
			output = addSegment(output, segment)
			segment = nil
		}
		segment = append(segment, unicode.ToLower(r))
	}
	output = addSegment(output, segment)
	return string(output)
}

func addSegment(inrune, segment []rune) []rune {
	if len(segment) == 0 {
		return inrune
	}
	if len(inrune) != 0 {
		inrune = append(inrune, '_')
	}
	inrune = append(inrune, segment...)
	return inrune
}

// isSQLite reports whether a driver name belongs to the SQLite family.
func isSQLite(driverName string) bool {
	return strings.HasPrefix(strings.ToLower(driverName), "sqlite")
}

// FieldDataType returns the column definition of a field for CREATE TABLE,
// for PostgreSQL or, if driverName starts with "sqlite", for SQLite. A
// single auto increment primary key becomes SERIAL PRIMARY KEY (INTEGER
// PRIMARY KEY AUTOINCREMENT on SQLite). Fields that can not hold nil are
// NOT NULL.
func FieldDataType(f Field, driverName string) (dataType string) {
	sqlite := isSQLite(driverName)
	if f.AutoIncrement {
		if sqlite {
			return "INTEGER PRIMARY KEY AUTOINCREMENT"
		}
		return "SERIAL PRIMARY KEY"
	}
	switch f.DataType {
	case TypeInt:
		dataType = "integer"
	case TypeFloat:
		dataType = "real"
	case TypeDouble:
		dataType = "double precision"
	case TypeBool:
		dataType = "boolean"
	case TypeDate:
		dataType = "date"
	case TypeTimestamp:
		dataType = "timestamptz"
		if sqlite {
			dataType = "timestamp"
		}
	case TypeBlob, TypeBytes:
		dataType = "bytea"
		if sqlite {
			dataType = "blob"
		}
	case TypeDecimal:
		dataType = "numeric(10, 2)"
	case TypeUUID:
		dataType = "uuid"
		if sqlite {
			dataType = "text"
		}
	default:
		dataType = "text"
	}
	if f.HasDefault {
		dataType += " DEFAULT " + defaultLiteralSQL(f)
	}
	if !isNullable(f.Type) {
		dataType += " NOT NULL"
	}
	return
}
