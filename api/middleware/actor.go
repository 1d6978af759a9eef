package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/bridge-yp/erp-backend/api/responses"
	"github.com/bridge-yp/erp-backend/pkg/config"
	"github.com/bridge-yp/erp-backend/pkg/enums"
	pkgerrors "github.com/bridge-yp/erp-backend/pkg/errors"
	"github.com/bridge-yp/erp-backend/pkg/logger"
)

// ActorContext resolves the caller identity from the trusted gateway headers.
// The gateway terminates authentication upstream; by the time a request lands
// here the user id and role headers are authoritative.
func ActorContext(cfg config.GatewayConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rawUserID := strings.TrimSpace(r.Header.Get(cfg.UserIDHeader))
			if rawUserID == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing identity header"))
				return
			}

			userID, err := uuid.Parse(rawUserID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "malformed identity header"))
				return
			}

			role, err := enums.ParseActorRole(r.Header.Get(cfg.RoleHeader))
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "unknown actor role"))
				return
			}

			ctx := WithUserID(r.Context(), userID.String())
			ctx = WithRole(ctx, role)
			if logg != nil {
				ctx = logg.WithUserID(ctx, userID.String())
				ctx = logg.WithActorRole(ctx, role.String())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
