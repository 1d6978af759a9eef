package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/bridge-yp/erp-backend/pkg/config"
	"github.com/bridge-yp/erp-backend/pkg/enums"
)

func gatewayConfig() config.GatewayConfig {
	return config.GatewayConfig{
		UserIDHeader: "X-Bridge-User-Id",
		RoleHeader:   "X-Bridge-Role",
	}
}

func TestActorContextInjectsIdentity(t *testing.T) {
	userID := uuid.New()
	var gotUserID string
	var gotRole enums.ActorRole
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = UserIDFromContext(r.Context())
		gotRole = RoleFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	req.Header.Set("X-Bridge-User-Id", userID.String())
	req.Header.Set("X-Bridge-Role", "ADMIN")
	resp := httptest.NewRecorder()
	ActorContext(gatewayConfig(), nil)(handler).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if gotUserID != userID.String() {
		t.Fatalf("expected user id %s got %s", userID, gotUserID)
	}
	if gotRole != enums.ActorRoleAdmin {
		t.Fatalf("expected ADMIN got %s", gotRole)
	}
}

func TestActorContextRejectsMissingIdentity(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	resp := httptest.NewRecorder()
	ActorContext(gatewayConfig(), nil)(handler).ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestActorContextRejectsMalformedUserID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	req.Header.Set("X-Bridge-User-Id", "not-a-uuid")
	req.Header.Set("X-Bridge-Role", "USER")
	resp := httptest.NewRecorder()
	ActorContext(gatewayConfig(), nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})).ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestActorContextRejectsUnknownRole(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	req.Header.Set("X-Bridge-User-Id", uuid.NewString())
	req.Header.Set("X-Bridge-Role", "WIZARD")
	resp := httptest.NewRecorder()
	ActorContext(gatewayConfig(), nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})).ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestRequireAdminBlocksUsers(t *testing.T) {
	handler := RequireAdmin(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/abc/assign", nil)
	req = req.WithContext(WithRole(req.Context(), enums.ActorRoleUser))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for USER got %d", resp.Code)
	}

	admin := httptest.NewRequest(http.MethodPost, "/api/v1/orders/abc/assign", nil)
	admin = admin.WithContext(WithRole(admin.Context(), enums.ActorRoleSuperAdmin))
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for SUPER_ADMIN got %d", resp.Code)
	}
}

func TestRequireRoleRejectsMissingRole(t *testing.T) {
	handler := RequireRole(nil, enums.ActorRoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without role got %d", resp.Code)
	}
}
