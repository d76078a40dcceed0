package kpi

import (
	"database/sql"
	"fmt"
	"time"

	core "github.com/openfreight/loadplan/core/metrics/kpi"
	_ "modernc.org/sqlite"
)

// SQLiteStore persists daily routing KPI aggregates, one row per instance and
// UTC day.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database at path and applies the
// schema. WAL mode keeps KPI queries from blocking the solve path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open kpi db: %w", err)
	}
	stmts := []string{
		"PRAGMA journal_mode=WAL",
		`CREATE TABLE IF NOT EXISTS route_kpi (
			instance TEXT NOT NULL,
			day INTEGER NOT NULL,
			haul REAL NOT NULL,
			deadhead REAL NOT NULL,
			routes INTEGER NOT NULL,
			loads INTEGER NOT NULL,
			PRIMARY KEY(instance, day)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("prepare kpi db: %w", err)
		}
	}
	return &SQLiteStore{db: db}, nil
}

// Add folds the record into the row for its instance and day; minutes and
// counts accumulate.
func (s *SQLiteStore) Add(r core.Record) error {
	_, err := s.db.Exec(`INSERT INTO route_kpi (instance, day, haul, deadhead, routes, loads)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(instance, day) DO UPDATE SET
			haul = haul + excluded.haul,
			deadhead = deadhead + excluded.deadhead,
			routes = routes + excluded.routes,
			loads = loads + excluded.loads`,
		r.Instance, core.Day(r.Date).Unix(), r.HaulMinutes, r.DeadheadMinutes, r.Routes, r.Loads)
	return err
}

// Query returns the daily rows for instance inside [start, end], oldest
// first. Bounds are truncated to their UTC day so any time inside a day
// selects that day.
func (s *SQLiteStore) Query(instance string, start, end time.Time) ([]core.Record, error) {
	rows, err := s.db.Query(`SELECT day, haul, deadhead, routes, loads
		FROM route_kpi WHERE instance = ? AND day BETWEEN ? AND ? ORDER BY day`,
		instance, core.Day(start).Unix(), core.Day(end).Unix())
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var res []core.Record
	for rows.Next() {
		rec := core.Record{Instance: instance}
		var ts int64
		if err := rows.Scan(&ts, &rec.HaulMinutes, &rec.DeadheadMinutes, &rec.Routes, &rec.Loads); err != nil {
			return nil, err
		}
		rec.Date = time.Unix(ts, 0).UTC()
		res = append(res, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }
