// Package migrations embeds the goose SQL migrations so the binary can bring
// the schema up to date without shipping loose files.
package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

// Dir is the directory inside FS that holds the migration files.
const Dir = "goose_sql"

//go:embed goose_sql/*.sql
var FS embed.FS

// Up applies every pending migration to db.
func Up(db *sql.DB) error {
	goose.SetBaseFS(FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.Up(db, Dir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}
