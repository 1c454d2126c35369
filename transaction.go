package entity

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrNoTransaction     = errors.New("no transaction in progress")
	ErrTransactionActive = errors.New("transaction already in progress")
)

type (
	// TransactionBlock runs inside a transaction. Exe executes statements
	// in that transaction.
	TransactionBlock func(ctx context.Context, exe Executor) error
)

// Begin starts a transaction. Statements run by this executor are part of
// it until End or Abort.
func (e *DBExecutor) Begin(ctx context.Context) error {
	if e.conn == nil {
		return ErrNoConnection
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.tx != nil {
		return ErrTransactionActive
	}
	e.log("BEGIN", nil)
	tx, err := e.conn.BeginTx(ctx, "", false)
	if err != nil {
		return err
	}
	e.tx = tx
	return nil
}

// End commits the transaction started by Begin.
func (e *DBExecutor) End(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.tx == nil {
		return ErrNoTransaction
	}
	e.log("COMMIT", nil)
	err := e.tx.Commit(ctx)
	e.tx = nil
	return err
}

// Abort rolls back the transaction started by Begin.
func (e *DBExecutor) Abort(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.tx == nil {
		return ErrNoTransaction
	}
	e.log("ROLLBACK", nil)
	err := e.tx.Rollback(ctx)
	e.tx = nil
	return err
}

// Close rolls back an unfinished transaction and closes the connection.
// A failed rollback is returned together with the error of closing.
func (e *DBExecutor) Close() (err error) {
	if e.currentTx() != nil {
		err = e.abortWith(context.Background(), nil)
	}
	if e.conn == nil {
		return
	}
	if cerr := e.conn.Close(); cerr != nil {
		if err == nil {
			return cerr
		}
		return errors.Join(err, cerr)
	}
	return
}

// rolls back and returns cause, joined with the rollback error if any
func (e *DBExecutor) abortWith(ctx context.Context, cause error) error {
	aerr := e.Abort(ctx)
	if aerr == nil {
		return cause
	}
	if e.logger != nil {
		e.logger.Error("ROLLBACK failed:", aerr)
	}
	if cause == nil {
		return aerr
	}
	return errors.Join(cause, aerr)
}

// MustTransaction is like Transaction but panics if transaction fails.
func (e *DBExecutor) MustTransaction(ctx context.Context, block TransactionBlock) {
	if err := e.Transaction(ctx, block); err != nil {
		panic(err)
	}
}

// Transaction runs block in a transaction. It is committed if block returns
// nil and rolled back if block returns an error or panics.
func (e *DBExecutor) Transaction(ctx context.Context, block TransactionBlock) (err error) {
	if err = e.Begin(ctx); err != nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			if rerr, ok := r.(error); ok {
				err = rerr
			} else {
				err = errors.New(fmt.Sprint(r))
			}
			err = e.abortWith(ctx, err)
		} else if err != nil {
			err = e.abortWith(ctx, err)
		} else {
			err = e.End(ctx)
		}
	}()
	err = block(ctx, e)
	return
}
