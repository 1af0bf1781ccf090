package app

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // SQLite driver for database/sql

	"github.com/Lawrencium-103/finstrat/config"
)

// sqlOpener is an indirection for unit testing; defaults to sql.Open.
var sqlOpener = sql.Open

// InitSQLite opens the local store file and runs migrations.
//
// The DSN enables WAL mode (concurrent readers during the refresh write), a
// busy timeout so the single writer waits instead of failing fast, and
// foreign keys. The connection pool is capped at one writer connection,
// which matches SQLite's single-writer model.
func InitSQLite(cfg config.Config) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Store.Path), 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL&_fk=1", cfg.Store.Path)
	db, err := sqlOpener("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite: %w", err)
	}

	if err := applyMigrations(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate sqlite: %w", err)
	}

	return db, nil
}

// applyMigrations creates the schema when it does not exist yet. The store
// file may arrive pre-populated from a snapshot restore, so everything is
// IF NOT EXISTS.
func applyMigrations(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS candles (
			ticker  TEXT      NOT NULL,
			ts      TIMESTAMP NOT NULL,
			open    REAL      NOT NULL,
			high    REAL      NOT NULL,
			low     REAL      NOT NULL,
			close   REAL      NOT NULL,
			volume  INTEGER   NOT NULL,
			PRIMARY KEY (ticker, ts)
		);`,
		`CREATE TABLE IF NOT EXISTS picks (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			pick_date    TEXT    NOT NULL,
			ticker       TEXT    NOT NULL,
			strategy     TEXT    NOT NULL,
			timeframe    TEXT    NOT NULL,
			entry_price  REAL    NOT NULL,
			target_price REAL    NOT NULL,
			score        INTEGER NOT NULL,
			signals      TEXT    NOT NULL DEFAULT '',
			UNIQUE (pick_date, ticker, strategy, timeframe)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_candles_ticker_ts ON candles (ticker, ts DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_picks_timeframe ON picks (timeframe, pick_date DESC);`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// sqliteOpener is an indirection used by InitializeApp; overridden in tests
// to avoid touching the filesystem.
var sqliteOpener = InitSQLite
