package sqlconfig

import (
	"database/sql"
	"fmt"
	"net/url"
	"time"

	_ "github.com/lib/pq"

	"github.com/carson-networks/expense-tracker/internal/config"
)

// ConnectionString builds the lib/pq DSN for the configured database.
func ConnectionString(env *config.Config) string {
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(env.PostgresUsername, env.PostgresPassword),
		Host:     env.PostgresAddress + ":" + env.PostgresPort,
		Path:     "/" + env.PostgresDB,
		RawQuery: "sslmode=" + env.PostgresSSLMode,
	}
	return dsn.String()
}

// Open connects to postgres and verifies the connection.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db.Ping: %w", err)
	}
	return db, nil
}
