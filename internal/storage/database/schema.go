package database

import (
	"context"
	"embed"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/GoSim-25-26J-441/project-tracker/config"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// SchemaFor returns the DDL for a driver.
func SchemaFor(driver string) (string, error) {
	var name string
	switch driver {
	case config.DriverSQLite:
		name = "schema/schema.sqlite.sql"
	case config.DriverPostgres, config.DriverPgx:
		name = "schema/schema.postgres.sql"
	default:
		return "", fmt.Errorf("unsupported database driver for schema initialization: %s", driver)
	}

	b, err := schemaFS.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	return string(b), nil
}

// InitSchema creates the projects table and its indexes if they are absent.
// Safe to run on every start.
func InitSchema(ctx context.Context, db *sqlx.DB) error {
	ddl, err := SchemaFor(db.DriverName())
	if err != nil {
		return err
	}

	// Statements run one by one; not every driver accepts a multi-statement Exec.
	for _, stmt := range splitStatements(ddl) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}
	return nil
}

func splitStatements(ddl string) []string {
	parts := strings.Split(ddl, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
