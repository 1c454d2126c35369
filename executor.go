package entity

import (
	"context"
)

type (
	// Executor runs built statements against a database. DBExecutor is the
	// implementation for github.com/gopsql/db connections; tests can
	// provide their own.
	Executor interface {
		BlobCreator

		// QueryBuilder returns the builder for statements this executor
		// understands.
		QueryBuilder() *QueryBuilder

		// ExecuteInsert runs an INSERT. For auto increment entities the
		// query has a RETURNING clause naming the key column and the
		// generated key should be reported in the result.
		ExecuteInsert(ctx context.Context, autoIncrement bool, q *InsertQuery) (InsertResult, error)

		// ExecuteUpdate runs an UPDATE and returns the number of rows
		// affected.
		ExecuteUpdate(ctx context.Context, q *UpdateQuery) (int64, error)

		// ExecuteDelete runs a DELETE and returns the number of rows
		// affected.
		ExecuteDelete(ctx context.Context, q *DeleteQuery) (int64, error)

		// ExecuteSelect runs a SELECT and scans every row into the
		// destinations given by sink.
		ExecuteSelect(ctx context.Context, q *SelectQuery, sink RowSink) error
	}

	// Session is an executor's unit of work. Begin starts a transaction,
	// End commits it and Abort rolls it back. Close releases the
	// connection.
	Session interface {
		Begin(ctx context.Context) error
		End(ctx context.Context) error
		Abort(ctx context.Context) error
		Close() error
	}

	// RowSink receives the rows of a SELECT. Dests is called once per row
	// with the result columns and returns one scan destination per column.
	RowSink interface {
		Dests(columns []string) ([]interface{}, error)
	}

	// InsertResult is the outcome of an INSERT.
	InsertResult struct {
		RowsAffected    int64
		GeneratedKey    int64
		HasGeneratedKey bool
	}
)

// OK reports whether at least one row was inserted.
func (r InsertResult) OK() bool {
	return r.RowsAffected >= 1 || r.HasGeneratedKey
}

// Code encodes the result as a single integer: 0 for failure, the generated
// key if it is greater than 1, otherwise 1. A generated key of 1 reads as
// plain success unless the decoder knows the entity is auto increment.
func (r InsertResult) Code() int64 {
	if r.HasGeneratedKey && r.GeneratedKey > 1 {
		return r.GeneratedKey
	}
	if r.OK() {
		return 1
	}
	return 0
}

// InsertResultFromCode decodes the integer returned by executors that
// report inserts as 0 (failure), 1 (success) or the generated key. For auto
// increment entities, autoIncrement should be true and every positive code,
// 1 included, is the generated key.
func InsertResultFromCode(code int64, autoIncrement bool) InsertResult {
	switch {
	case code <= 0:
		return InsertResult{}
	case code == 1 && !autoIncrement:
		return InsertResult{RowsAffected: 1}
	}
	return InsertResult{RowsAffected: 1, GeneratedKey: code, HasGeneratedKey: true}
}
