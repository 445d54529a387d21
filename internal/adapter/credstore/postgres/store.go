// Package postgres implements the credential store on PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/ecowallet-client/internal/domain"
)

const table = "client_credentials"

// querier is the subset of *pgxpool.Pool used by Store.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store persists credentials in the client_credentials table.
type Store struct {
	q     querier
	sb    sq.StatementBuilderType
	close func()
}

// New wraps an existing querier. Close is a no-op; the caller owns q.
func New(q querier) *Store {
	return &Store{
		q:     q,
		sb:    sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		close: func() {},
	}
}

// Open migrates the schema, connects a pool and pings it.
func Open(ctx context.Context, dsn string) (*Store, error) {
	if err := Migrate(ctx, dsn); err != nil {
		return nil, err
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("credstore/postgres: create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("credstore/postgres: ping: %w", err)
	}

	s := New(pool)
	s.close = pool.Close
	return s, nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	query, args, err := s.sb.Select("value").From(table).Where(sq.Eq{"key": key}).ToSql()
	if err != nil {
		return "", fmt.Errorf("credstore/postgres: build select: %w", err)
	}

	var value string
	if err := s.q.QueryRow(ctx, query, args...).Scan(&value); err != nil {
		return "", mapError(err, key)
	}
	return value, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	query, args, err := s.sb.Insert(table).
		Columns("key", "value").
		Values(key, value).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()").
		ToSql()
	if err != nil {
		return fmt.Errorf("credstore/postgres: build upsert: %w", err)
	}

	if _, err := s.q.Exec(ctx, query, args...); err != nil {
		return mapError(err, key)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	query, args, err := s.sb.Delete(table).Where(sq.Eq{"key": keys}).ToSql()
	if err != nil {
		return fmt.Errorf("credstore/postgres: build delete: %w", err)
	}

	if _, err := s.q.Exec(ctx, query, args...); err != nil {
		return mapError(err, "*")
	}
	return nil
}

func (s *Store) Close() error {
	s.close()
	return nil
}

// mapError converts pgx errors into domain errors.
// context.DeadlineExceeded and context.Canceled pass through.
func mapError(err error, key string) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("credential %s: %w", key, err)
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("credential %s: %w", key, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "42P01" { // undefined_table
		return fmt.Errorf("credential %s: schema missing, run migrations: %w", key, err)
	}

	return fmt.Errorf("credential %s: %w", key, err)
}
