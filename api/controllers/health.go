package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/bridge-yp/erp-backend/api/responses"
	"github.com/bridge-yp/erp-backend/pkg/config"
	"github.com/bridge-yp/erp-backend/pkg/db"
	pkgerrors "github.com/bridge-yp/erp-backend/pkg/errors"
	"github.com/bridge-yp/erp-backend/pkg/logger"
	pkgredis "github.com/bridge-yp/erp-backend/pkg/redis"
)

const readinessProbeTimeout = 2 * time.Second

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Bridge-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports whether the API can serve traffic. Both backing stores
// must answer within the probe timeout.
func HealthReady(cfg *config.Config, logg *logger.Logger, database db.Pinger, cache pkgredis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Bridge-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessProbeTimeout)
		defer cancel()

		if database != nil {
			if err := database.Ping(ctx); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unreachable"))
				return
			}
		}
		if cache != nil {
			if err := cache.Ping(ctx); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unreachable"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
