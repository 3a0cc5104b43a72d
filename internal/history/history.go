// Package history records each run's counts and the first time every did:web
// account was seen, in a SQLite database.
package history

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stahnma/pds-didweb/internal/pds"
)

const schema = `
CREATE TABLE IF NOT EXISTS totals (
	date    TEXT NOT NULL,
	host    TEXT NOT NULL,
	total   INTEGER NOT NULL,
	matched INTEGER NOT NULL,
	PRIMARY KEY (date, host)
);
CREATE TABLE IF NOT EXISTS repositories (
	did        TEXT PRIMARY KEY,
	host       TEXT NOT NULL,
	first_seen TEXT NOT NULL
);`

// Run is one recorded listing.
type Run struct {
	Date    string
	Host    string
	Total   int
	Matched int
}

// Recorder writes run history to SQLite.
type Recorder struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Recorder, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history tables: %w", err)
	}
	return &Recorder{db: db}, nil
}

// Close closes the database.
func (r *Recorder) Close() error {
	return r.db.Close()
}

// Record stores the run's counts, replacing an earlier run on the same date
// and host, and remembers any did:web accounts not seen before.
func (r *Recorder) Record(ctx context.Context, run Run, matches []pds.Repo) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO totals (date, host, total, matched) VALUES (?, ?, ?, ?)`,
		run.Date, run.Host, run.Total, run.Matched); err != nil {
		return fmt.Errorf("inserting totals: %w", err)
	}
	for _, repo := range matches {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO repositories (did, host, first_seen) VALUES (?, ?, ?)`,
			repo.DID, run.Host, run.Date); err != nil {
			return fmt.Errorf("inserting repository %s: %w", repo.DID, err)
		}
	}
	return tx.Commit()
}

// Runs returns every recorded run, oldest first.
func (r *Recorder) Runs(ctx context.Context) ([]Run, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT date, host, total, matched FROM totals ORDER BY date, host`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.Date, &run.Host, &run.Total, &run.Matched); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// FirstSeen returns the date a DID was first recorded.
func (r *Recorder) FirstSeen(ctx context.Context, did string) (string, bool, error) {
	var date string
	err := r.db.QueryRowContext(ctx, `SELECT first_seen FROM repositories WHERE did = ?`, did).Scan(&date)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return date, true, nil
}
