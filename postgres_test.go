package entity_test

import (
	"context"
	"os"
	"testing"

	"github.com/gopsql/db"
	"github.com/gopsql/entity"
	"github.com/gopsql/gopg"
	"github.com/gopsql/logger"
	"github.com/gopsql/pgx"
	"github.com/gopsql/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Set DBCONNSTR to run, for example:
//
//	DBCONNSTR="postgres://localhost:5432/gopsqltests?sslmode=disable" go test
func TestPostgres(t *testing.T) {
	connStr := os.Getenv("DBCONNSTR")
	if connStr == "" {
		t.Skip("DBCONNSTR is not set")
	}
	drivers := []struct {
		name string
		open func(string) (db.DB, error)
	}{
		{"pq", func(s string) (db.DB, error) { return pq.Open(s) }},
		{"pgx", func(s string) (db.DB, error) { return pgx.Open(s) }},
		{"gopg", func(s string) (db.DB, error) { return gopg.Open(s) }},
	}
	schema := entity.MustSchemaOf(Passenger{})
	for _, d := range drivers {
		t.Run(d.name, func(t *testing.T) {
			conn, err := d.open(connStr)
			require.NoError(t, err)
			exe := entity.NewDBExecutor(conn, "postgres", logger.StandardLogger)
			defer exe.Close()

			ctx := context.Background()
			_, err = conn.Exec(schema.DropTableSQL())
			require.NoError(t, err)
			_, err = conn.Exec(schema.CreateTableSQL("postgres"))
			require.NoError(t, err)
			defer conn.Exec(schema.DropTableSQL())

			p := newPassenger(28, "Tanvir", "M")
			ok, err := entity.Insert(ctx, exe, p)
			require.NoError(t, err)
			require.True(t, ok)
			require.NotNil(t, p.Id)

			age := 30
			p.Age = &age
			ok, err = entity.Update(ctx, exe, p)
			require.NoError(t, err)
			assert.True(t, ok)

			list := readByID(t, exe, *p.Id)
			require.Len(t, list, 1)
			assert.Equal(t, 30, *list[0].Age)

			require.NoError(t, exe.Begin(ctx))
			ok, err = entity.Delete(ctx, exe, p)
			require.NoError(t, err)
			assert.True(t, ok)
			require.NoError(t, exe.Abort(ctx))
			assert.Len(t, readByID(t, exe, *p.Id), 1)

			ok, err = entity.Delete(ctx, exe, p)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Empty(t, readByID(t, exe, *p.Id))
		})
	}
}
