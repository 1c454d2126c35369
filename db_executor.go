package entity

import (
	"context"
	"errors"
	"sync"

	"github.com/gopsql/db"
	"github.com/gopsql/logger"
	"github.com/jmoiron/sqlx"
)

var (
	ErrNoConnection = errors.New("no connection")
)

// DBExecutor is the Executor and Session for a github.com/gopsql/db
// connection (pq, pgx, gopg or any database/sql driver through
// github.com/gopsql/standard). One DBExecutor is one session: at most one
// transaction is open at a time, and statements run inside it while it is.
type DBExecutor struct {
	conn     db.DB
	bindType int
	logger   logger.Logger

	mu sync.Mutex
	tx db.Tx
}

// NewDBExecutor creates an executor for conn. DriverName decides how "?"
// placeholders are rewritten: "postgres", "pgx" and friends get $1, $2,
// ...; "sqlite" keeps "?". For available options, see SetOptions().
func NewDBExecutor(conn db.DB, driverName string, options ...interface{}) *DBExecutor {
	e := &DBExecutor{
		conn:     conn,
		bindType: sqlx.BindType(driverName),
	}
	e.SetOptions(options...)
	return e
}

// SetOptions sets logger (see SetLogger()).
func (e *DBExecutor) SetOptions(options ...interface{}) *DBExecutor {
	for _, option := range options {
		switch o := option.(type) {
		case logger.Logger:
			e.SetLogger(o)
		}
	}
	return e
}

// Set the logger for the executor. Statements are printed at debug level
// after placeholders have been rewritten.
func (e *DBExecutor) SetLogger(logger logger.Logger) *DBExecutor {
	e.logger = logger
	return e
}

// Return database connection of the executor.
func (e *DBExecutor) Connection() db.DB {
	return e.conn
}

// QueryBuilder returns a new QueryBuilder.
func (e *DBExecutor) QueryBuilder() *QueryBuilder {
	return NewQueryBuilder()
}

// CreateBlob returns the literal as bytes, which PostgreSQL (bytea) and
// SQLite (blob) drivers accept.
func (e *DBExecutor) CreateBlob(literal string) (interface{}, error) {
	return []byte(literal), nil
}

// ExecuteInsert runs q. If q has a RETURNING clause the first returned
// column is read as the generated key.
func (e *DBExecutor) ExecuteInsert(ctx context.Context, autoIncrement bool, q *InsertQuery) (InsertResult, error) {
	if e.conn == nil {
		return InsertResult{}, ErrNoConnection
	}
	sql, args := q.StringValues()
	if len(q.Returning) > 0 {
		var key int64
		err := e.queryRow(ctx, sql, args).Scan(&key)
		if err == e.conn.ErrNoRows() {
			return InsertResult{}, nil
		}
		if err != nil {
			return InsertResult{}, err
		}
		return InsertResult{RowsAffected: 1, GeneratedKey: key, HasGeneratedKey: autoIncrement}, nil
	}
	n, err := e.execute(ctx, sql, args)
	if err != nil {
		return InsertResult{}, err
	}
	return InsertResult{RowsAffected: n}, nil
}

// ExecuteUpdate runs q and returns the number of rows affected.
func (e *DBExecutor) ExecuteUpdate(ctx context.Context, q *UpdateQuery) (int64, error) {
	sql, args := q.StringValues()
	return e.execute(ctx, sql, args)
}

// ExecuteDelete runs q and returns the number of rows affected.
func (e *DBExecutor) ExecuteDelete(ctx context.Context, q *DeleteQuery) (int64, error) {
	sql, args := q.StringValues()
	return e.execute(ctx, sql, args)
}

// ExecuteSelect runs q and scans each row into the destinations returned by
// sink.
func (e *DBExecutor) ExecuteSelect(ctx context.Context, q *SelectQuery, sink RowSink) error {
	sql, args := q.StringValues()
	rows, err := e.query(ctx, sql, args)
	if err != nil {
		return err
	}
	defer rows.Close()
	columns, err := rows.Columns()
	if err != nil {
		return err
	}
	for rows.Next() {
		dests, err := sink.Dests(columns)
		if err != nil {
			return err
		}
		if err := rows.Scan(dests...); err != nil {
			return err
		}
	}
	return rows.Err()
}

// rewrite "?" placeholders for the driver
func (e *DBExecutor) prepare(sql string, args []interface{}) (string, []interface{}) {
	sql = sqlx.Rebind(e.bindType, sql)
	if c, ok := e.conn.(db.ConvertParameters); ok {
		sql, args = c.ConvertParameters(sql, args)
	}
	return sql, args
}

func (e *DBExecutor) currentTx() db.Tx {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tx
}

func (e *DBExecutor) execute(ctx context.Context, sql string, args []interface{}) (int64, error) {
	if e.conn == nil {
		return 0, ErrNoConnection
	}
	sql, args = e.prepare(sql, args)
	e.log(sql, args)
	var result db.Result
	var err error
	if tx := e.currentTx(); tx != nil {
		result, err = tx.ExecContext(ctx, sql, args...)
	} else {
		result, err = e.conn.ExecContext(ctx, sql, args...)
	}
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (e *DBExecutor) query(ctx context.Context, sql string, args []interface{}) (db.Rows, error) {
	if e.conn == nil {
		return nil, ErrNoConnection
	}
	sql, args = e.prepare(sql, args)
	e.log(sql, args)
	if tx := e.currentTx(); tx != nil {
		return tx.QueryContext(ctx, sql, args...)
	}
	return e.conn.QueryContext(ctx, sql, args...)
}

func (e *DBExecutor) queryRow(ctx context.Context, sql string, args []interface{}) db.Scannable {
	sql, args = e.prepare(sql, args)
	e.log(sql, args)
	if tx := e.currentTx(); tx != nil {
		return tx.QueryRowContext(ctx, sql, args...)
	}
	return e.conn.QueryRowContext(ctx, sql, args...)
}

func (e *DBExecutor) log(sql string, args []interface{}) {
	if e.logger == nil {
		return
	}
	if len(args) == 0 {
		e.logger.Debug(sql)
		return
	}
	e.logger.Debug(sql, args)
}
