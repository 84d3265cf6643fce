package db

import (
	"context"
	"database/sql"

	"github.com/suka712/anvago-travel-planning/migrations"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Migrate applies all embedded migrations. goose needs a database/sql
// handle, so this opens its own short-lived connection via the pgx
// stdlib driver rather than reusing the pool.
func Migrate(ctx context.Context, postgresURL string) error {
	sqlDB, err := sql.Open("pgx", postgresURL)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, sqlDB, migrations.FS)
	if err != nil {
		return err
	}
	_, err = provider.Up(ctx)
	return err
}
