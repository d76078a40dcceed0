// Package plans exposes solved plan history and routing KPIs over HTTP.
package plans

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	planlog "github.com/openfreight/loadplan/core/solver/logging"
)

// NewLogHandler exposes solved plans via GET /api/plans/logs. When token is
// non-empty, requests must carry "Authorization: Bearer <token>".
func NewLogHandler(store planlog.Store, token string) http.Handler {
	return &logHandler{store: store, token: token}
}

type logHandler struct {
	store planlog.Store
	token string
}

func (h *logHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !authorized(r, h.token) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	q, err := parseLogQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	records, err := h.store.Query(r.Context(), q)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, records)
}

// parseLogQuery reads the filter parameters. Bad values are rejected so a
// typo cannot silently widen a query.
func parseLogQuery(r *http.Request) (planlog.Query, error) {
	var (
		q      planlog.Query
		params = r.URL.Query()
		err    error
	)
	if s := params.Get("start"); s != "" {
		if q.Start, err = time.Parse(time.RFC3339, s); err != nil {
			return q, fmt.Errorf("bad start: %w", err)
		}
	}
	if s := params.Get("end"); s != "" {
		if q.End, err = time.Parse(time.RFC3339, s); err != nil {
			return q, fmt.Errorf("bad end: %w", err)
		}
	}
	q.Instance = params.Get("instance")
	if s := params.Get("load_id"); s != "" {
		if q.LoadID, err = strconv.Atoi(s); err != nil {
			return q, fmt.Errorf("bad load_id: %w", err)
		}
	}
	return q, nil
}
