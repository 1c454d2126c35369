// Package entity maps Go structs to database tables and turns entity
// instances into INSERT, UPDATE, DELETE and SELECT statements.
//
// # Overview
//
// Mapping is declared with struct tags and resolved once per type into a
// Schema. Entities are written and read through an Executor, which runs
// the statements built by the package. DBExecutor is the Executor for
// github.com/gopsql/db connections, so the pq, pgx and go-pg drivers as
// well as any database/sql driver (SQLite, for example) can be used.
//
// Key features include:
//   - Table and column names from tags, a TableName() method or field names
//   - Composite and auto increment primary keys
//   - Typed default values for nil fields
//   - Boolean conditions (AND, OR, comparisons) rendered with placeholders
//   - Transactions with Begin, End and Abort
//   - CREATE TABLE generation from struct definitions
//
// # Basic Usage
//
//	type Passenger struct {
//		__TABLE_NAME__ struct{} `table:"passengers"`
//
//		Id   *int    `pk:"id,auto"`
//		Age  *int    `column:"age"`
//		Name *string `column:"name"`
//		Sex  *string `column:"sex"`
//	}
//
//	exe := entity.NewDBExecutor(conn, "postgres")
//
//	// Insert, Id is set to the generated key
//	p := Passenger{Name: &name, Age: &age}
//	entity.Insert(ctx, exe, &p)
//
//	// Update only the age
//	entity.Update(ctx, exe, &p, "Age")
//
//	// Find by column values
//	var list []Passenger
//	entity.Read(ctx, exe, &list, entity.NewProperty("name", "Tanvir"))
//
//	// Delete by primary key
//	entity.Delete(ctx, exe, &p)
//
// # Tags
//
// The __TABLE_NAME__ field names the table with the "table" tag. Its "all"
// option maps every field, not only tagged ones:
//
//	__TABLE_NAME__ struct{} `table:"passengers,all"`
//
// Field tags:
//   - column:"name" maps the field to a column; "-" drops the field
//   - pk:"name,auto" marks a primary key, "auto" if it is generated
//   - type:"INT" sets the logical type of the default value
//   - default:"18" is used when the field is nil
//   - format:"2006-01-02" is the layout of DATE and TIMESTAMP defaults
//   - map:"-" leaves the field out of MarshalToMap and UnmarshalFromMap
//
// Embedded structs are walked as parent types, up to MaxInheritanceDepth
// levels.
//
// # Conditions
//
// Read accepts column values that must all match. ReadWhere takes any
// Expression:
//
//	e := entity.NewOr(
//		entity.NewExpression(entity.NewProperty("age", 60), entity.OperatorGreaterThanOrEqual),
//		entity.Equal("sex", "F"),
//	)
//	entity.ReadWhere(ctx, exe, &list, e)
//	// SELECT id, age, name, sex FROM passengers WHERE age >= $1 OR sex = $2
//
// # Transactions
//
//	exe.Begin(ctx)
//	entity.Insert(ctx, exe, &p)
//	exe.End(ctx) // or exe.Abort(ctx)
//
// Transaction does the same for a function, rolling back if it returns an
// error or panics.
package entity
