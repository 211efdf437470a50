/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package storage keeps a local SQLite journal of drag sessions and the snap
// events they produced. It is diagnostic data only; canvas documents are never
// written here.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	applog "resumecanvas/internal/log"
	"resumecanvas/internal/version"
	"log/slog"

	// Pure-Go SQLite driver (CGO-free)
	_ "modernc.org/sqlite"
)

const (
	// JournalDirName stores all local diagnostic data under the given root.
	JournalDirName  = ".rcv"
	JournalFileName = "journal.sqlite"

	// schemaVersion tracks the local SQLite schema for the journal.
	// Bump this when you perform breaking schema changes and add migrations.
	schemaVersion = 2
)

// JournalPath returns the full path to the journal database file under root.
func JournalPath(root string) string {
	return filepath.Join(root, JournalDirName, JournalFileName)
}

// Journal wraps the journal database handle.
type Journal struct {
	db *sql.DB
}

// Open ensures the journal database exists at <root>/.rcv/journal.sqlite,
// opens it, enables WAL mode, and ensures the meta/version and journal tables
// exist. Callers must Close the returned journal.
func Open(root string) (*Journal, error) {
	l := applog.WithOperation(applog.WithComponent("storage"), "journal_open").With(
		slog.String("root", root),
	)
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("journal root is required")
	}
	if err := os.MkdirAll(filepath.Join(root, JournalDirName), 0o755); err != nil {
		l.Error("create journal dir failed", slog.Any("err", err))
		return nil, fmt.Errorf("create journal dir: %w", err)
	}

	path := JournalPath(root)
	// URI with shared cache and busy timeout; forward slashes for the SQLite URI.
	dsn := fmt.Sprintf("file:%s?cache=shared&_pragma=busy_timeout(5000)", filepath.ToSlash(path))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		l.Error("sqlite open failed", slog.Any("err", err))
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Embedded usage: a single connection avoids writer contention.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		_ = db.Close()
		l.Error("enable WAL failed", slog.Any("err", err))
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON;"); err != nil {
		l.Warn("enable foreign_keys failed", slog.Any("err", err))
	}

	if err := ensureMetaAndVersion(ctx, db); err != nil {
		_ = db.Close()
		l.Error("ensure meta/version failed", slog.Any("err", err))
		return nil, err
	}
	if err := ensureJournalSchema(ctx, db); err != nil {
		_ = db.Close()
		l.Error("ensure journal schema failed", slog.Any("err", err))
		return nil, err
	}
	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		l.Error("run migrations failed", slog.Any("err", err))
		return nil, err
	}

	l.Info("journal ready", slog.String("path", path))
	return &Journal{db: db}, nil
}

// Close releases the database handle.
func (j *Journal) Close() error {
	if j == nil || j.db == nil {
		return nil
	}
	return j.db.Close()
}

func ensureMetaAndVersion(ctx context.Context, db *sql.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS version (
			id          INTEGER PRIMARY KEY CHECK(id=1),
			schema      INTEGER NOT NULL,
			app         TEXT,
			created_at  TEXT NOT NULL,
			updated_at  TEXT NOT NULL
		);`,
	}
	for _, q := range ddl {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	now := time.Now().UTC().Format(time.RFC3339)
	appv := version.String()
	var curSchema int
	err := db.QueryRowContext(ctx, `SELECT schema FROM version WHERE id=1`).Scan(&curSchema)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := db.ExecContext(ctx, `INSERT INTO version (id, schema, app, created_at, updated_at) VALUES(1, ?, ?, ?, ?)`, schemaVersion, appv, now, now); err != nil {
			return fmt.Errorf("insert version: %w", err)
		}
	case err != nil:
		return fmt.Errorf("read version: %w", err)
	default:
		// Update app and timestamp only; keep existing schema for migrations.
		if _, err := db.ExecContext(ctx, `UPDATE version SET app=?, updated_at=? WHERE id=1`, appv, now); err != nil {
			return fmt.Errorf("update version: %w", err)
		}
	}
	return nil
}

func ensureJournalSchema(ctx context.Context, db *sql.DB) error {
	ddl := []string{
		// One row per drag session of a canvas element.
		`CREATE TABLE IF NOT EXISTS sessions (
			id         INTEGER PRIMARY KEY,
			element_id TEXT    NOT NULL,
			zoom       REAL    NOT NULL,
			started_at TEXT    NOT NULL,
			ended_at   TEXT,
			frames     INTEGER NOT NULL DEFAULT 0
		);`,
		// One row per pointer frame resolved during a session.
		`CREATE TABLE IF NOT EXISTS events (
			id          INTEGER PRIMARY KEY,
			session_id  INTEGER NOT NULL,
			seq         INTEGER NOT NULL,
			raw_x       REAL    NOT NULL,
			raw_y       REAL    NOT NULL,
			corrected_x REAL    NOT NULL,
			corrected_y REAL    NOT NULL,
			snap_x_key  TEXT,
			snap_y_key  TEXT,
			guide_count INTEGER NOT NULL DEFAULT 0,
			ts          TEXT    NOT NULL,
			FOREIGN KEY(session_id) REFERENCES sessions(id) ON DELETE CASCADE
		);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS ux_events_session_seq ON events(session_id, seq);`,
	}
	for _, q := range ddl {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("ensure journal schema: %w", err)
		}
	}
	return nil
}

// runMigrations applies incremental schema migrations up to schemaVersion.
func runMigrations(ctx context.Context, db *sql.DB) error {
	var cur int
	if err := db.QueryRowContext(ctx, `SELECT schema FROM version WHERE id=1`).Scan(&cur); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if cur > schemaVersion {
		// Do not downgrade; newer app versions own the schema.
		return nil
	}
	for cur < schemaVersion {
		next := cur + 1
		switch next {
		case 2:
			// Indexes for per-element and snap-key queries.
			tx, err := db.BeginTx(ctx, nil)
			if err != nil {
				return fmt.Errorf("begin migration %d: %w", next, err)
			}
			stmts := []string{
				`CREATE INDEX IF NOT EXISTS idx_sessions_element ON sessions(element_id);`,
				`CREATE INDEX IF NOT EXISTS idx_events_snap_x ON events(snap_x_key);`,
				`CREATE INDEX IF NOT EXISTS idx_events_snap_y ON events(snap_y_key);`,
			}
			for _, q := range stmts {
				if _, err := tx.ExecContext(ctx, q); err != nil {
					_ = tx.Rollback()
					return fmt.Errorf("migration %d stmt failed: %w", next, err)
				}
			}
			if _, err := tx.ExecContext(ctx, `UPDATE version SET schema=?, updated_at=? WHERE id=1`, next, time.Now().UTC().Format(time.RFC3339)); err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("migration %d update version: %w", next, err)
			}
			if err := tx.Commit(); err != nil {
				return fmt.Errorf("migration %d commit: %w", next, err)
			}
		default:
			// Unknown future step; break
		}
		cur = next
	}
	return nil
}

// BeginSession inserts a new session row and returns its id.
func (j *Journal) BeginSession(ctx context.Context, elementID string, zoom float64) (int64, error) {
	if strings.TrimSpace(elementID) == "" {
		return 0, errors.New("element id is required")
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := j.db.ExecContext(ctx, `INSERT INTO sessions (element_id, zoom, started_at) VALUES(?, ?, ?)`, elementID, zoom, now)
	if err != nil {
		return 0, fmt.Errorf("insert session: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("session id: %w", err)
	}
	return id, nil
}

// FrameEvent is one journaled resolver frame.
type FrameEvent struct {
	Seq        int
	RawX       float64
	RawY       float64
	CorrectedX float64
	CorrectedY float64
	SnapXKey   string
	SnapYKey   string
	GuideCount int
}

// RecordFrame appends one frame event to a session.
func (j *Journal) RecordFrame(ctx context.Context, sessionID int64, ev FrameEvent) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO events (session_id, seq, raw_x, raw_y, corrected_x, corrected_y, snap_x_key, snap_y_key, guide_count, ts)
		 VALUES(?,?,?,?,?,?,?,?,?,?)`,
		sessionID, ev.Seq, ev.RawX, ev.RawY, ev.CorrectedX, ev.CorrectedY,
		nullable(ev.SnapXKey), nullable(ev.SnapYKey), ev.GuideCount, now)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// EndSession finalizes a session with its frame count.
func (j *Journal) EndSession(ctx context.Context, sessionID int64, frames int) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := j.db.ExecContext(ctx, `UPDATE sessions SET ended_at=?, frames=? WHERE id=?`, now, frames, sessionID)
	if err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("end session: unknown session %d", sessionID)
	}
	return nil
}

// SessionEvents returns the journaled frames of one session in order.
func (j *Journal) SessionEvents(ctx context.Context, sessionID int64) ([]FrameEvent, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT seq, raw_x, raw_y, corrected_x, corrected_y, snap_x_key, snap_y_key, guide_count
		 FROM events WHERE session_id=? ORDER BY seq`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()
	var out []FrameEvent
	for rows.Next() {
		var ev FrameEvent
		var sx, sy sql.NullString
		if err := rows.Scan(&ev.Seq, &ev.RawX, &ev.RawY, &ev.CorrectedX, &ev.CorrectedY, &sx, &sy, &ev.GuideCount); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		ev.SnapXKey = sx.String
		ev.SnapYKey = sy.String
		out = append(out, ev)
	}
	return out, rows.Err()
}

// Stats are aggregate counters over the whole journal.
type Stats struct {
	Sessions int64
	Frames   int64
	SnapsX   int64
	SnapsY   int64
}

// Stats reports aggregate counts across all sessions.
func (j *Journal) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	if err := j.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions`).Scan(&st.Sessions); err != nil {
		return st, fmt.Errorf("count sessions: %w", err)
	}
	row := j.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN snap_x_key IS NOT NULL THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN snap_y_key IS NOT NULL THEN 1 ELSE 0 END), 0)
		 FROM events`)
	if err := row.Scan(&st.Frames, &st.SnapsX, &st.SnapsY); err != nil {
		return st, fmt.Errorf("count events: %w", err)
	}
	return st, nil
}
