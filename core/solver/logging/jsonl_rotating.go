package logging

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// RotatingJSONLStore appends plan records through lumberjack so the log file
// rotates by size and old archives age out.
type RotatingJSONLStore struct {
	out  *lumberjack.Logger
	path string
}

// NewRotatingJSONLStore creates a store at path. Rotation triggers above
// maxSizeMB; maxBackups and maxAgeDays cap how many archives survive.
func NewRotatingJSONLStore(path string, maxSizeMB, maxBackups, maxAgeDays int) (*RotatingJSONLStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return &RotatingJSONLStore{
		out: &lumberjack.Logger{
			Filename:   path,
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
			MaxAge:     maxAgeDays,
		},
		path: path,
	}, nil
}

func (s *RotatingJSONLStore) Append(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return json.NewEncoder(s.out).Encode(rec)
}

// Query scans the archives oldest first and the live file last, so results
// come back in append order.
func (s *RotatingJSONLStore) Query(ctx context.Context, q Query) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var res []Record
	for _, f := range s.logFiles() {
		var err error
		res, err = scanRecords(f, q, res)
		if err != nil && !os.IsNotExist(err) {
			return nil, err
		}
	}
	return res, nil
}

// logFiles lists rotated archives in timestamp order followed by the live
// file. Lumberjack names archives <base>-<timestamp><ext>, so the glob has to
// drop the extension first.
func (s *RotatingJSONLStore) logFiles() []string {
	ext := filepath.Ext(s.path)
	prefix := strings.TrimSuffix(s.path, ext)
	files, _ := filepath.Glob(prefix + "-*" + ext)
	sort.Strings(files)
	return append(files, s.path)
}

func (s *RotatingJSONLStore) Close() error {
	return s.out.Close()
}
