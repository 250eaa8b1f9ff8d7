package datastore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/docqa/internal/common"
	"github.com/dmitrijs2005/docqa/internal/datastore/migrations"
	"github.com/dmitrijs2005/docqa/internal/dbx"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresBackend keeps each dataset in one row of the datasets table.
// A write is a single upsert inside a transaction that first takes a
// transaction-scoped advisory lock on the dataset name, so writers in other
// processes sharing the database queue behind it.
type PostgresBackend struct {
	db *sql.DB
}

// NewPostgresBackend opens dsn with the pgx driver and applies migrations.
func NewPostgresBackend(ctx context.Context, dsn string) (*PostgresBackend, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	b := newPostgresBackend(db)
	if err := b.RunMigrations(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return b, nil
}

func newPostgresBackend(db *sql.DB) *PostgresBackend {
	return &PostgresBackend{db: db}
}

// RunMigrations brings the schema up to date.
func (b *PostgresBackend) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	return goose.UpContext(ctx, b.db, ".")
}

func (b *PostgresBackend) Read(ctx context.Context, dataset string) ([]byte, error) {
	query := `SELECT payload FROM datasets WHERE name = $1`

	var payload []byte
	err := b.db.QueryRowContext(ctx, query, dataset).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return payload, nil
}

func (b *PostgresBackend) Write(ctx context.Context, dataset string, data []byte) error {
	return dbx.WithTx(ctx, b.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, dataset); err != nil {
			return fmt.Errorf("db error: %w", err)
		}

		query :=
			`INSERT INTO datasets (name, payload, revision, updated_at)
			 VALUES ($1, $2, 1, now())
			 ON CONFLICT (name) DO UPDATE
			 SET payload = EXCLUDED.payload,
			     revision = datasets.revision + 1,
			     updated_at = now()
			 `

		if _, err := tx.ExecContext(ctx, query, dataset, data); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		return nil
	})
}

func (b *PostgresBackend) Close() error {
	return b.db.Close()
}
