package blob

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS Blobs (
    Name       TEXT PRIMARY KEY,
    Value      BLOB NOT NULL,
    UpdateTime TIMESTAMP NOT NULL
);`

// SqliteKV stores each named blob as a row in a single-table SQLite file.
type SqliteKV struct {
	db *sql.DB
}

// OpenSqlite opens (or creates) the store file and applies the schema.
func OpenSqlite(path string) (*SqliteKV, error) {
	// ensure parent directory exists to avoid SQLITE_CANTOPEN errors
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SqliteKV{db: db}, nil
}

// OpenSqliteInMemory opens a private in-memory database, used by tests.
func OpenSqliteInMemory() (*SqliteKV, error) {
	db, err := sql.Open("sqlite", "file::memory:?cache=shared")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SqliteKV{db: db}, nil
}

func (s *SqliteKV) Get(ctx context.Context, name string) ([]byte, bool, error) {
	var value []byte
	row := s.db.QueryRowContext(ctx, `SELECT Value FROM Blobs WHERE Name = ?`, name)
	if err := row.Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, err
	}
	return value, true, nil
}

func (s *SqliteKV) Put(ctx context.Context, name string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO Blobs (Name, Value, UpdateTime) VALUES (?,?,?)
        ON CONFLICT(Name) DO UPDATE SET Value = excluded.Value, UpdateTime = excluded.UpdateTime
    `, name, value, time.Now().UTC())
	return err
}

func (s *SqliteKV) Delete(ctx context.Context, name string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM Blobs WHERE Name = ?`, name)
	return err
}

func (s *SqliteKV) Close() error { return s.db.Close() }

// HealthPing verifies the underlying database is reachable.
func (s *SqliteKV) HealthPing(ctx context.Context) error { return s.db.PingContext(ctx) }
