package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/GoSim-25-26J-441/project-tracker/config"
	"github.com/GoSim-25-26J-441/project-tracker/internal/storage/database"
)

type DBOptions struct {
	Config    *config.DatabaseConfig
	ConnectTO time.Duration
	SchemaTO  time.Duration
}

// OpenDB connects to the configured database and makes sure the schema exists.
func OpenDB(ctx context.Context, opt DBOptions) (*sqlx.DB, error) {
	if opt.Config == nil {
		return nil, fmt.Errorf("database config is not set")
	}
	if opt.ConnectTO == 0 {
		opt.ConnectTO = 5 * time.Second
	}
	if opt.SchemaTO == 0 {
		opt.SchemaTO = 10 * time.Second
	}

	cctx, cancel := context.WithTimeout(ctx, opt.ConnectTO)
	defer cancel()

	db, err := database.NewConnection(cctx, opt.Config)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}

	sctx, scancel := context.WithTimeout(ctx, opt.SchemaTO)
	defer scancel()

	if err := database.InitSchema(sctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("db schema: %w", err)
	}

	return db, nil
}
