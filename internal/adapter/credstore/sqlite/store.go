// Package sqlite implements the credential store on an embedded SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/heartmarshall/ecowallet-client/internal/domain"
)

const table = "credentials"

const schema = `CREATE TABLE IF NOT EXISTS credentials (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TEXT NOT NULL
)`

// Store persists credentials in a SQLite database.
type Store struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

// Open opens (creating if needed) the database at path and ensures the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("credstore/sqlite: create dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("credstore/sqlite: open: %w", err)
	}
	// A single connection serialises writers and keeps :memory: databases shared.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("credstore/sqlite: create schema: %w", err)
	}

	return &Store{db: db, sb: sq.StatementBuilder.PlaceholderFormat(sq.Question)}, nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	query, args, err := s.sb.Select("value").From(table).Where(sq.Eq{"key": key}).ToSql()
	if err != nil {
		return "", fmt.Errorf("credstore/sqlite: build select: %w", err)
	}

	var value string
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("credential %s: %w", key, domain.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("credstore/sqlite: get %s: %w", key, err)
	}
	return value, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	query, args, err := s.sb.Insert(table).
		Columns("key", "value", "updated_at").
		Values(key, value, time.Now().UTC().Format(time.RFC3339Nano)).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("credstore/sqlite: build upsert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("credstore/sqlite: set %s: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	query, args, err := s.sb.Delete(table).Where(sq.Eq{"key": keys}).ToSql()
	if err != nil {
		return fmt.Errorf("credstore/sqlite: build delete: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("credstore/sqlite: delete: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
