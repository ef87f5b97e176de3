package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/praditya/loan-ledger/pkg/response"
)

const checkTimeout = 5 * time.Second

type HealthHandler struct {
	db    *sqlx.DB
	redis *redis.Client
}

func NewHealthHandler(db *sqlx.DB, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{
		db:    db,
		redis: redisClient,
	}
}

type componentHealth struct {
	Component string `json:"component"`
	Healthy   bool   `json:"healthy"`
	Detail    string `json:"detail,omitempty"`
}

type healthReport struct {
	Status     string            `json:"status"`
	Components []componentHealth `json:"components,omitempty"`
	CheckedAt  time.Time         `json:"checked_at"`
}

// Health reports liveness only; no dependency is touched.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	response.Success(w, healthReport{Status: "ok", CheckedAt: time.Now()})
}

// Ready reports readiness. The ledger can serve traffic only when both the
// database and the lock store answer within the check timeout.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	report := healthReport{
		Status:    "ok",
		CheckedAt: time.Now(),
		Components: []componentHealth{
			checkComponent("database", h.db.PingContext(ctx)),
			checkComponent("redis", h.redis.Ping(ctx).Err()),
		},
	}

	for _, c := range report.Components {
		if !c.Healthy {
			report.Status = "degraded"
			break
		}
	}

	if report.Status != "ok" {
		response.Error(w, http.StatusServiceUnavailable, "NOT_READY", "service not ready")
		return
	}

	response.Success(w, report)
}

func checkComponent(name string, err error) componentHealth {
	if err != nil {
		return componentHealth{Component: name, Healthy: false, Detail: err.Error()}
	}
	return componentHealth{Component: name, Healthy: true}
}
