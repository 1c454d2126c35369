package entity

import (
	"reflect"
	"strings"
)

// CreateTableSQL generates the CREATE TABLE statement of the entity for
// PostgreSQL, or for SQLite if driverName starts with "sqlite". Column
// types come from FieldDataType. "NOT NULL" is added if the struct field is
// not a pointer. You can also set SQL statements before or after this
// statement by defining "BeforeCreateSchema() string" (for example the
// CREATE EXTENSION statement) or "AfterCreateSchema() string" (for example
// the CREATE INDEX statement) function for the struct.
//
//	CREATE TABLE passengers (
//		id SERIAL PRIMARY KEY,
//		age integer,
//		name text,
//		sex text
//	);
func (s *Schema) CreateTableSQL(driverName string) string {
	sql := []string{}
	seen := map[string]bool{}
	var keys []string
	for _, f := range s.fields {
		if !s.IsMapped(f) || seen[f.ColumnName] {
			continue
		}
		seen[f.ColumnName] = true
		sql = append(sql, "\t"+f.ColumnName+" "+FieldDataType(f, driverName))
		if f.IsPrimaryKey && !f.AutoIncrement {
			keys = append(keys, f.ColumnName)
		}
	}
	if len(keys) > 0 {
		sql = append(sql, "\tPRIMARY KEY ("+strings.Join(keys, ", ")+")")
	}
	out := "CREATE TABLE " + s.tableName + " (\n" + strings.Join(sql, ",\n") + "\n);\n"
	n := reflect.New(s.structType).Interface()
	if a, ok := n.(interface{ BeforeCreateSchema() string }); ok {
		out = a.BeforeCreateSchema() + "\n\n" + out
	}
	if a, ok := n.(interface{ AfterCreateSchema() string }); ok {
		out += "\n" + a.AfterCreateSchema() + "\n"
	}
	return out
}

// DropTableSQL generates "DROP TABLE IF EXISTS <table_name>;".
func (s *Schema) DropTableSQL() string {
	return "DROP TABLE IF EXISTS " + s.tableName + ";\n"
}

func defaultLiteralSQL(f Field) string {
	switch f.DataType {
	case TypeInt, TypeFloat, TypeDouble, TypeDecimal:
		return strings.TrimSpace(f.Default)
	case TypeBool:
		if strings.EqualFold(strings.TrimSpace(f.Default), "true") {
			return "true"
		}
		return "false"
	}
	return quote(f.Default)
}
