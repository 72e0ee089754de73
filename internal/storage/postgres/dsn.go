package postgres

import (
	"fmt"
	"strings"

	"github.com/GoSim-25-26J-441/project-tracker/config"
)

var dsnEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// quote single-quotes a key/value DSN value so spaces and quotes survive.
func quote(v string) string {
	return "'" + dsnEscaper.Replace(v) + "'"
}

// DSN builds the key/value connection string understood by both lib/pq and pgx.
func DSN(cfg *config.DatabaseConfig) string {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		quote(cfg.Host), cfg.Port, quote(cfg.User), quote(cfg.Password), quote(cfg.Name), quote(sslMode),
	)
}
