package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	applog "pizzacost/internal/log"
)

type healthResponse struct {
	Status   string    `json:"status"`
	Database string    `json:"database"`
	Time     time.Time `json:"time"`
}

// Health is a simple readiness handler suitable for infrastructure probes.
// A configured database that fails to answer a ping reports "degraded".
func Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:   "ok",
		Database: databaseStatus(r),
		Time:     time.Now().UTC(),
	}
	status := http.StatusOK
	if resp.Database == "unreachable" {
		resp.Status = "degraded"
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		applog.Error(r.Context(), "failed to encode health response", "error", err)
	}
}

func databaseStatus(r *http.Request) string {
	if database == nil {
		return "not configured"
	}
	sqlDB, err := database.DB()
	if err != nil {
		return "unreachable"
	}
	if err := sqlDB.PingContext(r.Context()); err != nil {
		applog.Warn(r.Context(), "database ping failed", "error", err)
		return "unreachable"
	}
	return "ok"
}
