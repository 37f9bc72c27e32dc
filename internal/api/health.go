package api

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gocql/gocql"
	"github.com/redis/go-redis/v9"

	"github.com/glowdesk/salon-backend/internal/db"
)

type HealthHandler struct {
	session *gocql.Session
	redis   *redis.Client
	env     string
	version string
	started time.Time
}

func NewHealthHandler(session *gocql.Session, redisClient *redis.Client, env, version string) *HealthHandler {
	return &HealthHandler{
		session: session,
		redis:   redisClient,
		env:     env,
		version: version,
		started: time.Now(),
	}
}

type LivenessResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Env     string `json:"env,omitempty"`
}

type ReadinessResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version,omitempty"`
	Env          string            `json:"env,omitempty"`
	Dependencies map[string]string `json:"dependencies"`
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version,omitempty"`
	Env          string            `json:"env,omitempty"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
	Runtime      RuntimeInfo       `json:"runtime"`
}

type RuntimeInfo struct {
	GoVersion  string `json:"go_version"`
	Goroutines int    `json:"goroutines"`
	AllocBytes uint64 `json:"alloc_bytes"`
	NumGC      uint32 `json:"num_gc"`
}

func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	resp := LivenessResponse{
		Status:  "ok",
		Version: h.version,
		Env:     h.env,
	}
	writeJSON(w, http.StatusOK, resp)
}

// checkDependencies pings Cassandra and Redis with individual timeouts.
// Cassandra down is fatal; Redis down only degrades booking contention
// protection, so it demotes to degraded rather than error.
func (h *HealthHandler) checkDependencies(ctx context.Context) (string, map[string]string) {
	deps := make(map[string]string)
	status := "ok"

	cassCtx, cassCancel := context.WithTimeout(ctx, 1*time.Second)
	err := db.Ping(cassCtx, h.session)
	cassCancel()
	if err != nil {
		deps["cassandra"] = "down"
		status = "error"
	} else {
		deps["cassandra"] = "ok"
	}

	redisCtx, redisCancel := context.WithTimeout(ctx, 1*time.Second)
	err = h.redis.Ping(redisCtx).Err()
	redisCancel()
	if err != nil {
		deps["redis"] = "down"
		if status == "ok" {
			status = "degraded"
		} else {
			status = "error"
		}
	} else {
		deps["redis"] = "ok"
	}

	return status, deps
}

func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status, deps := h.checkDependencies(ctx)

	resp := ReadinessResponse{
		Status:       status,
		Version:      h.version,
		Env:          h.env,
		Dependencies: deps,
	}

	httpStatus := http.StatusOK
	if status == "error" {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, resp)
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status, deps := h.checkDependencies(ctx)

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	resp := HealthResponse{
		Status:       status,
		Version:      h.version,
		Env:          h.env,
		Uptime:       time.Since(h.started).Round(time.Second).String(),
		Dependencies: deps,
		Runtime: RuntimeInfo{
			GoVersion:  runtime.Version(),
			Goroutines: runtime.NumGoroutine(),
			AllocBytes: mem.Alloc,
			NumGC:      mem.NumGC,
		},
	}

	httpStatus := http.StatusOK
	if status == "error" {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, resp)
}
