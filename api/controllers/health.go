package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/angelmondragon/pos-analytics/api/responses"
	"github.com/angelmondragon/pos-analytics/pkg/config"
	pkgerrors "github.com/angelmondragon/pos-analytics/pkg/errors"
	"github.com/angelmondragon/pos-analytics/pkg/logger"
)

const readyTimeout = 2 * time.Second

// Pinger is a dependency the readiness probe checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthLive never touches dependencies.
func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Analytics-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "ok"})
	}
}

// HealthReady pings each named dependency. Nil pingers (e.g. Redis with the
// cache disabled) are skipped.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Analytics-Env", cfg.App.Env)
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		checks := map[string]string{}
		failed := map[string]any{}
		for name, dep := range deps {
			if dep == nil {
				continue
			}
			if err := dep.Ping(ctx); err != nil {
				checks[name] = "unavailable"
				failed[name] = err.Error()
				continue
			}
			checks[name] = "ok"
		}

		if len(failed) > 0 {
			if logg != nil {
				logg.Warn(logg.WithFields(r.Context(), failed), "readiness.failed")
			}
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "dependency unavailable").
				WithDetails(map[string]any{"checks": checks}))
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}

// Root describes the service.
func Root(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{
			"name":    cfg.App.Name,
			"version": cfg.App.Version,
			"docs":    cfg.App.APIPrefix,
		})
	}
}
