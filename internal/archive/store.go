// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive persists the records retained by each build run in a
// SQLite database, keyed by dedup identity. The output document is a
// rolling snapshot; the archive keeps cross-run history, including the
// citation fields needed for later BibTeX export.
package archive

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/physics-feeds/internal/dedup"
	"github.com/pdiddy/physics-feeds/pkg/types"
)

// Store manages the archive database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the archive at path, creating the schema if it
// does not exist.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating archive directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating archive schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS records (
			dedup_key TEXT PRIMARY KEY,
			journal_key TEXT,
			journal TEXT,
			type TEXT,
			title TEXT,
			authors TEXT,
			date TEXT,
			link TEXT,
			doi TEXT,
			arxiv TEXT,
			summary TEXT,
			volume TEXT,
			pages TEXT,
			citation TEXT,
			publisher TEXT,
			first_seen TEXT NOT NULL,
			last_seen TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_date ON records(date)`,
		`CREATE TABLE IF NOT EXISTS runs (
			generated_at TEXT PRIMARY KEY,
			window_days INTEGER,
			items INTEGER
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// RecordRun upserts every item of the document and books the run. A
// record seen in an earlier run keeps its first_seen timestamp and its
// original fields are refreshed from the new snapshot.
func (s *Store) RecordRun(doc *types.Document) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stamp := doc.GeneratedAt.Format("2006-01-02T15:04:05Z07:00")

	stmt, err := tx.Prepare(`INSERT INTO records
		(dedup_key, journal_key, journal, type, title, authors, date, link,
		 doi, arxiv, summary, volume, pages, citation, publisher,
		 first_seen, last_seen)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(dedup_key) DO UPDATE SET
			journal_key = excluded.journal_key,
			journal = excluded.journal,
			type = excluded.type,
			title = excluded.title,
			authors = excluded.authors,
			date = excluded.date,
			link = excluded.link,
			doi = excluded.doi,
			arxiv = excluded.arxiv,
			summary = excluded.summary,
			volume = excluded.volume,
			pages = excluded.pages,
			citation = excluded.citation,
			publisher = excluded.publisher,
			last_seen = excluded.last_seen`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, rec := range doc.Items {
		key := dedup.Compute(rec.DOI, rec.Link)
		authors, err := json.Marshal(rec.Authors)
		if err != nil {
			return fmt.Errorf("encoding authors for %q: %w", rec.Title, err)
		}
		_, err = stmt.Exec(
			fmt.Sprintf("%s:%s", key.Kind, key.Value),
			rec.JournalKey, rec.Journal, string(rec.Type), rec.Title,
			string(authors), rec.Date.Format("2006-01-02T15:04:05Z07:00"),
			rec.Link, rec.DOI, rec.Arxiv, rec.Summary,
			rec.Volume, rec.Pages, rec.Citation, rec.Publisher,
			stamp, stamp,
		)
		if err != nil {
			return fmt.Errorf("upserting %q: %w", rec.Title, err)
		}
	}

	if _, err := tx.Exec(
		`INSERT OR REPLACE INTO runs (generated_at, window_days, items) VALUES (?, ?, ?)`,
		stamp, doc.WindowDays, len(doc.Items),
	); err != nil {
		return err
	}
	return tx.Commit()
}

// RecordCount returns the number of distinct publications archived.
func (s *Store) RecordCount() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM records`).Scan(&n)
	return n, err
}

// RunCount returns the number of archived runs.
func (s *Store) RunCount() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&n)
	return n, err
}

// RecentRecords returns up to limit archived records, newest first.
func (s *Store) RecentRecords(limit int) ([]types.PublicationRecord, error) {
	rows, err := s.db.Query(`SELECT journal_key, journal, type, title,
		authors, date, link, doi, arxiv, summary, volume, pages, citation,
		publisher FROM records ORDER BY date DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []types.PublicationRecord
	for rows.Next() {
		var rec types.PublicationRecord
		var typ, authorsJSON, date string
		if err := rows.Scan(&rec.JournalKey, &rec.Journal, &typ, &rec.Title,
			&authorsJSON, &date, &rec.Link, &rec.DOI, &rec.Arxiv, &rec.Summary,
			&rec.Volume, &rec.Pages, &rec.Citation, &rec.Publisher); err != nil {
			return nil, err
		}
		rec.Type = types.RecordType(typ)
		if err := json.Unmarshal([]byte(authorsJSON), &rec.Authors); err != nil {
			return nil, fmt.Errorf("decoding authors for %q: %w", rec.Title, err)
		}
		if t, err := parseStamp(date); err == nil {
			rec.Date = t
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func parseStamp(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}
