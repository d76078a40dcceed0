package plans

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openfreight/loadplan/core/metrics/kpi"
)

// kpiRow is the wire form of one daily KPI aggregate.
type kpiRow struct {
	Date            string  `json:"date"`
	HaulMinutes     float64 `json:"haul_minutes"`
	DeadheadMinutes float64 `json:"deadhead_minutes"`
	Routes          int     `json:"routes"`
	Loads           int     `json:"loads"`
	Utilization     float64 `json:"utilization"`
	MinutesPerLoad  float64 `json:"minutes_per_load"`
}

// NewKPIHandler exposes routing KPIs via GET /api/plans/{instance}/kpis.
// The range defaults to everything up to now.
func NewKPIHandler(store kpi.Store) http.Handler {
	return &kpiHandler{store: store}
}

type kpiHandler struct {
	store kpi.Store
}

func (h *kpiHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	instance, ok := instanceFromPath(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}
	start, end, err := parseRange(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	recs, err := h.store.Query(instance, start, end)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rows := make([]kpiRow, len(recs))
	for i, rec := range recs {
		rows[i] = kpiRow{
			Date:            rec.Date.Format("2006-01-02"),
			HaulMinutes:     rec.HaulMinutes,
			DeadheadMinutes: rec.DeadheadMinutes,
			Routes:          rec.Routes,
			Loads:           rec.Loads,
			Utilization:     rec.Utilization(),
			MinutesPerLoad:  rec.MinutesPerLoad(),
		}
	}
	writeJSON(w, rows)
}

// instanceFromPath extracts the instance from /api/plans/{instance}/kpis.
func instanceFromPath(path string) (string, bool) {
	parts := strings.Split(strings.TrimPrefix(path, "/api/plans/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] != "kpis" {
		return "", false
	}
	return parts[0], true
}

func parseRange(r *http.Request) (start, end time.Time, err error) {
	if s := r.URL.Query().Get("start"); s != "" {
		if start, err = time.Parse(time.RFC3339, s); err != nil {
			return start, end, fmt.Errorf("bad start: %w", err)
		}
	}
	if s := r.URL.Query().Get("end"); s != "" {
		if end, err = time.Parse(time.RFC3339, s); err != nil {
			return start, end, fmt.Errorf("bad end: %w", err)
		}
	}
	if end.IsZero() {
		end = time.Now()
	}
	return start, end, nil
}
