package postgres

import (
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/heartmarshall/myenglish-study/migrations"
)

// NewMigrator returns a goose provider over the embedded migrations. db must
// be opened with the "pgx" driver from github.com/jackc/pgx/v5/stdlib.
func NewMigrator(db *sql.DB) (*goose.Provider, error) {
	p, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return nil, fmt.Errorf("goose provider: %w", err)
	}
	return p, nil
}
