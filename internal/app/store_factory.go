package app

import (
	"fmt"
	"strings"

	"github.com/shrimpsizemoose/examdesk/internal/store"
	"github.com/shrimpsizemoose/examdesk/internal/store/postgres"
	"github.com/shrimpsizemoose/examdesk/internal/store/sqlite"
)

func NewStore(cfg store.DBConfig) (store.JournalStore, error) {
	dbType := cfg.Type
	if dbType == "" {
		dbType = store.DBTypeSQLite
		if strings.HasPrefix(cfg.DSN, "postgres") {
			dbType = store.DBTypePostgres
		}
	}

	switch dbType {
	case store.DBTypePostgres:
		return postgres.NewPostgresStore(cfg.DSN, cfg.MigrationsDir)
	case store.DBTypeSQLite:
		return sqlite.NewSQLiteStore(cfg.DSN, cfg.MigrationsDir)
	default:
		return nil, fmt.Errorf("unable to determine database type from DSN: %s", cfg.DSN)
	}
}
