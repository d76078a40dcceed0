// Package probfile reads and writes the challenge problem format: a header
// line followed by one load per line, "loadNumber (x,y) (x,y)".
package probfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/openfreight/loadplan/core/model"
)

const header = "loadNumber pickup dropoff"

// Parse decodes the problem text. The first line is a header and is skipped;
// blank lines are ignored. Errors carry the 1-based line number.
func Parse(r io.Reader) ([]model.Load, error) {
	sc := bufio.NewScanner(r)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("probfile: missing header line")
	}
	var loads []model.Load
	n := 1
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, fmt.Errorf("probfile: line %d: expected 3 columns, got %d", n, len(fields))
		}
		id, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("probfile: line %d: load id %q: %w", n, fields[0], err)
		}
		pickup, err := parsePoint(fields[1])
		if err != nil {
			return nil, fmt.Errorf("probfile: line %d: pickup: %w", n, err)
		}
		dropoff, err := parsePoint(fields[2])
		if err != nil {
			return nil, fmt.Errorf("probfile: line %d: dropoff: %w", n, err)
		}
		loads = append(loads, model.Load{ID: id, Pickup: pickup, Dropoff: dropoff})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return loads, nil
}

// ParseFile reads a problem file from disk.
func ParseFile(path string) ([]model.Load, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Write emits the problem text, one load per line after the header. The
// output round-trips through Parse without losing precision.
func Write(w io.Writer, loads []model.Load) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, header); err != nil {
		return err
	}
	for _, l := range loads {
		if _, err := fmt.Fprintf(bw, "%d %s %s\n", l.ID, formatPoint(l.Pickup), formatPoint(l.Dropoff)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile writes a problem file to disk.
func WriteFile(path string, loads []model.Load) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, loads); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// parsePoint decodes a parenthesized coordinate pair such as
// "(-116.78442279683607,76.80147820713637)".
func parsePoint(s string) (model.Point, error) {
	trimmed := strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
	parts := strings.Split(trimmed, ",")
	if len(parts) != 2 {
		return model.Point{}, fmt.Errorf("malformed point %q", s)
	}
	x, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return model.Point{}, fmt.Errorf("malformed point %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return model.Point{}, fmt.Errorf("malformed point %q: %w", s, err)
	}
	return model.Point{X: x, Y: y}, nil
}

func formatPoint(p model.Point) string {
	return "(" + strconv.FormatFloat(p.X, 'f', -1, 64) + "," + strconv.FormatFloat(p.Y, 'f', -1, 64) + ")"
}
