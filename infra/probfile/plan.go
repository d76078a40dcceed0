package probfile

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// FormatRoute renders one route as a bracketed load id list, e.g. [1,2,3].
func FormatRoute(route []int) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, id := range route {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(id))
	}
	b.WriteByte(']')
	return b.String()
}

// WritePlan writes one bracketed route per line, the submission format
// consumed by the challenge evaluator.
func WritePlan(w io.Writer, routes [][]int) error {
	bw := bufio.NewWriter(w)
	for _, route := range routes {
		if _, err := fmt.Fprintln(bw, FormatRoute(route)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ParsePlan reads the bracketed-route format back into per-route load id
// lists. Blank lines are skipped.
func ParsePlan(r io.Reader) ([][]int, error) {
	var routes [][]int
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		if !strings.HasPrefix(text, "[") || !strings.HasSuffix(text, "]") {
			return nil, fmt.Errorf("probfile: line %d: route must be a bracketed id list, got %q", line, text)
		}
		body := text[1 : len(text)-1]
		if body == "" {
			return nil, fmt.Errorf("probfile: line %d: empty route", line)
		}
		var route []int
		for _, field := range strings.Split(body, ",") {
			id, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil {
				return nil, fmt.Errorf("probfile: line %d: invalid load id %q: %w", line, field, err)
			}
			route = append(route, id)
		}
		routes = append(routes, route)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("probfile: %w", err)
	}
	return routes, nil
}
