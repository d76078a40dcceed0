package logging

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// maxRecordBytes bounds one plan record line when scanning. Records for large
// instances run long but stay well under this.
const maxRecordBytes = 4 * 1024 * 1024

// JSONLStore appends plan records to a JSON Lines file. The write handle
// stays open for the lifetime of the store.
type JSONLStore struct {
	mu   sync.Mutex
	path string
	w    *os.File
}

func NewJSONLStore(path string) (*JSONLStore, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open plan log: %w", err)
	}
	return &JSONLStore{path: path, w: f}, nil
}

func (s *JSONLStore) Append(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.w == nil {
		return fmt.Errorf("plan log %s is closed", s.path)
	}
	return json.NewEncoder(s.w).Encode(rec)
}

func (s *JSONLStore) Query(ctx context.Context, q Query) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return scanRecords(s.path, q, nil)
}

func (s *JSONLStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.w == nil {
		return nil
	}
	err := s.w.Close()
	s.w = nil
	return err
}

// scanRecords appends the records in path that match q to dst. Lines that do
// not parse are skipped so a torn write cannot poison later reads.
func scanRecords(path string, q Query, dst []Record) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return dst, err
	}
	defer func() { _ = f.Close() }()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxRecordBytes)
	for sc.Scan() {
		var r Record
		if err := json.Unmarshal(sc.Bytes(), &r); err != nil {
			continue
		}
		if q.matches(r) {
			dst = append(dst, r)
		}
	}
	return dst, sc.Err()
}
