package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/ordermart/internal/domain/model"
	"github.com/polkiloo/ordermart/internal/metrics"
	pkgAuth "github.com/polkiloo/ordermart/internal/pkg/auth"
	"github.com/polkiloo/ordermart/internal/server/http/handlers"
	testhelpers "github.com/polkiloo/ordermart/internal/test"
)

func newEngine(t *testing.T, role model.Role) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	facade := testhelpers.FacadeStub{
		AuthFacadeStub: testhelpers.AuthFacadeStub{ParseFn: func(string) (pkgAuth.Claims, error) {
			return pkgAuth.Claims{UserID: 7, Role: role}, nil
		}},
		OrderFacadeStub: testhelpers.OrderFacadeStub{
			OrdersFn: func(_ context.Context, r model.Requester, _ string) ([]model.OrderHeader, error) {
				h := testhelpers.SampleHeader(1)
				h.UserID = r.UserID
				return []model.OrderHeader{h}, nil
			},
		},
	}
	return Setup(Params{Facade: facade, Logger: logger, Metrics: metrics.New()})
}

func serve(engine *gin.Engine, method, path string, body []byte, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	return resp
}

func TestSetupRoutes(t *testing.T) {
	engine := newEngine(t, model.RoleCustomer)

	body, _ := json.Marshal(map[string]string{"login": "user", "password": "pass"})
	if resp := serve(engine, http.MethodPost, "/api/user/register", body, ""); resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for register, got %d", resp.Code)
	}

	resp := serve(engine, http.MethodGet, "/api/orders", nil, "token")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for orders, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"user_id":7`) {
		t.Fatalf("expected requester id in response, got %s", resp.Body.String())
	}

	if resp := serve(engine, http.MethodGet, "/api/orders/3", nil, ""); resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.Code)
	}
}

func TestSetupRoleGuards(t *testing.T) {
	cases := []struct {
		name   string
		role   model.Role
		method string
		path   string
		body   []byte
		status int
	}{
		{"customer identity", model.RoleCustomer, http.MethodGet, "/api/user/me", nil, http.StatusOK},
		{"customer cannot ship", model.RoleCustomer, http.MethodPost, "/api/admin/orders/1/shipment", []byte(`{"carrier":"UPS","tracking_number":"1Z"}`), http.StatusForbidden},
		{"company cannot confirm payment", model.RoleCompany, http.MethodPost, "/api/orders/1/payment", []byte(`{"payment_intent_id":"pi_1"}`), http.StatusForbidden},
		{"employee ships", model.RoleEmployee, http.MethodPost, "/api/admin/orders/1/shipment", []byte(`{"carrier":"UPS","tracking_number":"1Z"}`), http.StatusOK},
		{"employee confirms payment", model.RoleEmployee, http.MethodPost, "/api/orders/1/payment", []byte(`{"payment_intent_id":"pi_1"}`), http.StatusOK},
		{"employee cannot delete", model.RoleEmployee, http.MethodDelete, "/api/admin/orders/1", nil, http.StatusForbidden},
		{"admin deletes", model.RoleAdmin, http.MethodDelete, "/api/admin/orders/1", nil, http.StatusNoContent},
		{"admin cancels", model.RoleAdmin, http.MethodPost, "/api/admin/orders/1/cancellation", nil, http.StatusOK},
		{"admin starts processing", model.RoleAdmin, http.MethodPost, "/api/admin/orders/1/processing", nil, http.StatusOK},
		{"admin updates details", model.RoleAdmin, http.MethodPut, "/api/admin/orders/1", []byte(`{"name":"Ada"}`), http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := serve(newEngine(t, tc.role), tc.method, tc.path, tc.body, "token")
			if resp.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, resp.Code)
			}
		})
	}
}

func TestSetupExposesMetrics(t *testing.T) {
	engine := newEngine(t, model.RoleCustomer)
	serve(engine, http.MethodGet, "/api/orders", nil, "token")

	resp := serve(engine, http.MethodGet, "/metrics", nil, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for metrics, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "ordermart_http_requests_total") {
		t.Fatalf("expected http counter in exposition, got %s", resp.Body.String())
	}
}

func TestSetupWithoutOptionalDependencies(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := Setup(Params{Facade: testhelpers.FacadeStub{}, Logger: slog.New(slog.NewJSONHandler(io.Discard, nil))})

	if resp := serve(engine, http.MethodGet, "/healthz", nil, ""); resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for health without checker, got %d", resp.Code)
	}
	if resp := serve(engine, http.MethodGet, "/metrics", nil, ""); resp.Code != http.StatusNotFound {
		t.Fatalf("expected metrics to be absent, got %d", resp.Code)
	}
}

var _ handlers.Facade = (*testhelpers.FacadeStub)(nil)
