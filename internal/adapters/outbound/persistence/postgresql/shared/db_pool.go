package shared

import (
	"database/sql"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	poolMaxOpenConns    = 20
	poolMaxIdleConns    = 10
	poolConnMaxIdleTime = 5 * time.Minute
	poolConnMaxLifetime = 30 * time.Minute
)

// NewDatabasePool opens the shared connection pool used by the HTTP
// controllers and the payout workers. sql.Open only validates the DSN
// format, so a bad URL surfaces here rather than on first query.
func NewDatabasePool(databaseURL string, logger *log.Logger) *sql.DB {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		panic(err)
	}

	db.SetMaxOpenConns(poolMaxOpenConns)
	db.SetMaxIdleConns(poolMaxIdleConns)
	db.SetConnMaxIdleTime(poolConnMaxIdleTime)
	db.SetConnMaxLifetime(poolConnMaxLifetime)

	if logger != nil {
		logger.Printf("database pool ready max_open=%d max_idle=%d", poolMaxOpenConns, poolMaxIdleConns)
	}

	return db
}
