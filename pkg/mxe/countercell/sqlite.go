package countercell

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the counter in a single-row table. Several stores, in one
// process or many, may share a database file: Update takes the database write
// lock before reading.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens or creates a SQLite database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(10000)&_pragma=journal_mode(wal)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS counter (
		id          INTEGER PRIMARY KEY CHECK (id = 1),
		ciphertext  BLOB NOT NULL,
		updated_at  TEXT NOT NULL
	);`)
	return err
}

// execer is the subset of *sql.DB and *sql.Conn the queries need.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *SQLiteStore) Load(ctx context.Context) ([]byte, bool, error) {
	return load(ctx, s.db)
}

func (s *SQLiteStore) Save(ctx context.Context, data []byte) error {
	return save(ctx, s.db, data)
}

// Update runs fn inside BEGIN IMMEDIATE on a dedicated connection, so the
// read and the write happen under the database's single write lock. A
// concurrent writer waits out the busy timeout.
func (s *SQLiteStore) Update(ctx context.Context, fn UpdateFunc) (err error) {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("update counter: %w", err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, `BEGIN IMMEDIATE`); err != nil {
		return fmt.Errorf("update counter: begin: %w", err)
	}
	committed := false
	defer func() {
		if committed {
			return
		}
		if _, rbErr := conn.ExecContext(context.Background(), `ROLLBACK`); rbErr != nil {
			// Never hand a connection with an open transaction back to the pool.
			_ = conn.Raw(func(any) error { return driver.ErrBadConn })
			err = errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
	}()

	old, ok, err := load(ctx, conn)
	if err != nil {
		return err
	}
	next, err := fn(old, ok)
	if err != nil {
		return err
	}
	if err := save(ctx, conn, next); err != nil {
		return err
	}
	if _, err := conn.ExecContext(ctx, `COMMIT`); err != nil {
		return fmt.Errorf("update counter: commit: %w", err)
	}
	committed = true
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func load(ctx context.Context, q execer) ([]byte, bool, error) {
	var data []byte
	err := q.QueryRowContext(ctx, `SELECT ciphertext FROM counter WHERE id = 1`).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load counter: %w", err)
	}
	return data, true, nil
}

func save(ctx context.Context, q execer, data []byte) error {
	_, err := q.ExecContext(ctx, `
	INSERT INTO counter (id, ciphertext, updated_at) VALUES (1, ?, ?)
	ON CONFLICT(id) DO UPDATE SET ciphertext = excluded.ciphertext, updated_at = excluded.updated_at`,
		data, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save counter: %w", err)
	}
	return nil
}
