package controllers

import (
	"context"
	"net/http"

	"github.com/shahzada-shah/flow-studios/api/responses"
	"github.com/shahzada-shah/flow-studios/pkg/config"
	pkgerrors "github.com/shahzada-shah/flow-studios/pkg/errors"
	"github.com/shahzada-shah/flow-studios/pkg/logger"
)

const envHeader = "X-Flow-Env"

// Pinger is implemented by every backing service the readiness check pings.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings each configured dependency. Nil pingers are skipped so
// the embedded catalog with embedded redis state is always ready.
func HealthReady(cfg *config.Config, logg *logger.Logger, checks map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		status := map[string]string{}
		for name, p := range checks {
			if p == nil {
				continue
			}
			if err := p.Ping(r.Context()); err != nil {
				status[name] = "down"
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, name+" unavailable").WithDetails(status))
				return
			}
			status[name] = "ok"
		}

		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": status})
	}
}
