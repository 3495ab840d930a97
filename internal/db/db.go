// internal/db/db.go
package db

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"sync"

	_ "github.com/lib/pq"
)

// Handle owns the database connection lifecycle. Components receive it (or the
// *sql.DB it yields) explicitly at construction instead of reading a package
// global, and Connect is idempotent.
type Handle struct {
	mu   sync.Mutex
	conn *sql.DB
}

func NewHandle() *Handle {
	return &Handle{}
}

// Connect opens and pings the connection on first call; later calls return the
// existing connection. The DSN comes from DATABASE_URL, or is assembled from
// the DB_* variables when unset.
func (h *Handle) Connect() (*sql.DB, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.conn != nil {
		return h.conn, nil
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = fmt.Sprintf(
			"postgres://%s:%s@%s:%s/%s?sslmode=disable",
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_HOST"),
			os.Getenv("DB_PORT"),
			os.Getenv("DB_NAME"),
		)
	}

	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	h.conn = conn
	log.Println("✅ Connected to database")
	return h.conn, nil
}

// Close releases the connection. A closed handle can be reconnected.
func (h *Handle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.conn == nil {
		return nil
	}
	err := h.conn.Close()
	h.conn = nil
	return err
}
