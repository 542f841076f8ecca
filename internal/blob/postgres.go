package blob

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS blobs (
    name        TEXT PRIMARY KEY,
    value       BYTEA NOT NULL,
    update_time TIMESTAMPTZ NOT NULL
);`

// PostgresKV stores named blobs in a single Postgres table, for deployments
// where the demo data should outlive one machine.
type PostgresKV struct {
	db *sql.DB
}

// OpenPostgres connects using the pgx stdlib driver, verifies connectivity
// and applies the schema.
func OpenPostgres(dsn string) (*PostgresKV, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec(postgresSchema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &PostgresKV{db: db}, nil
}

func (p *PostgresKV) Get(ctx context.Context, name string) ([]byte, bool, error) {
	var value []byte
	row := p.db.QueryRowContext(ctx, `SELECT value FROM blobs WHERE name=$1`, name)
	if err := row.Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, err
	}
	return value, true, nil
}

func (p *PostgresKV) Put(ctx context.Context, name string, value []byte) error {
	_, err := p.db.ExecContext(ctx, `
        INSERT INTO blobs (name, value, update_time) VALUES ($1,$2,$3)
        ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value, update_time = EXCLUDED.update_time
    `, name, value, time.Now().UTC())
	return err
}

func (p *PostgresKV) Delete(ctx context.Context, name string) error {
	_, err := p.db.ExecContext(ctx, `DELETE FROM blobs WHERE name=$1`, name)
	return err
}

func (p *PostgresKV) Close() error { return p.db.Close() }

// HealthPing verifies the underlying database is reachable.
func (p *PostgresKV) HealthPing(ctx context.Context) error { return p.db.PingContext(ctx) }
