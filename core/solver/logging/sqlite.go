package logging

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists plan records to a SQLite database. Each row keeps the
// full record as JSON next to the columns the queries filter on.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database at path and applies the
// schema. WAL mode keeps queries from blocking appends.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open plan db: %w", err)
	}
	stmts := []string{
		"PRAGMA journal_mode=WAL",
		`CREATE TABLE IF NOT EXISTS plan_logs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			ts INTEGER NOT NULL,
			instance TEXT NOT NULL,
			record TEXT NOT NULL
		)`,
		"CREATE INDEX IF NOT EXISTS plan_logs_instance_ts ON plan_logs(instance, ts)",
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("prepare plan db: %w", err)
		}
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Append(ctx context.Context, rec Record) error {
	doc, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode plan record: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO plan_logs (ts, instance, record) VALUES (?, ?, ?)`,
		rec.Timestamp.Unix(), rec.Instance, string(doc))
	return err
}

// Query returns records matching q in append order. Time and instance filters
// run in SQL; the load filter runs on the decoded records.
func (s *SQLiteStore) Query(ctx context.Context, q Query) ([]Record, error) {
	var (
		conds []string
		args  []any
	)
	if !q.Start.IsZero() {
		conds = append(conds, "ts >= ?")
		args = append(args, q.Start.Unix())
	}
	if !q.End.IsZero() {
		conds = append(conds, "ts <= ?")
		args = append(args, q.End.Unix())
	}
	if q.Instance != "" {
		conds = append(conds, "instance = ?")
		args = append(args, q.Instance)
	}
	query := "SELECT record FROM plan_logs"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var res []Record
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var r Record
		if err := json.Unmarshal([]byte(doc), &r); err != nil {
			return nil, fmt.Errorf("decode plan record: %w", err)
		}
		if q.LoadID != 0 && !r.Serves(q.LoadID) {
			continue
		}
		res = append(res, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }
