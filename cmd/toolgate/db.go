package main

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/nextlevelbuilder/toolgate/internal/config"
	"github.com/nextlevelbuilder/toolgate/internal/sessionoverride"
)

// openDB opens the Postgres connection for managed mode, matching the
// teacher's sql.Open("pgx", dsn) convention (cmd/migrate.go, cmd/doctor.go).
func openDB(cfg *config.Config) (*sql.DB, error) {
	if cfg.Database.PostgresDSN == "" {
		return nil, fmt.Errorf("managed mode requires TOOLGATE_POSTGRES_DSN")
	}
	db, err := sql.Open("pgx", cfg.Database.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

func openPGSessionStore(cfg *config.Config) (sessionoverride.Store, error) {
	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}
	return sessionoverride.NewPGStore(db), nil
}
