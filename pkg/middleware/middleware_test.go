package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/budget-guard-api/internal/domain"
	"github.com/vfg2006/budget-guard-api/internal/usecases/authenticating"
	"github.com/vfg2006/budget-guard-api/pkg/apiErrors"
)

type stubAuthenticator struct {
	claims *domain.Claims
	err    error
}

func (s stubAuthenticator) GenerateToken(string, string) (string, error) { return "", nil }

func (s stubAuthenticator) ValidateToken(string) (*domain.Claims, error) {
	return s.claims, s.err
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

func serve(h http.Handler, method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware(t *testing.T) {
	analyst := &domain.Claims{SubjectName: "ana", Role: domain.RoleAnalyst}

	tests := []struct {
		name   string
		auth   stubAuthenticator
		path   string
		header string
		status int
	}{
		{name: "public path", path: "/healthcheck", status: http.StatusNoContent},
		{name: "missing header", path: "/v1/snapshots", status: http.StatusUnauthorized},
		{name: "not bearer", path: "/v1/snapshots", header: "Basic abc", status: http.StatusUnauthorized},
		{name: "invalid token", auth: stubAuthenticator{err: authenticating.ErrInvalidToken}, path: "/v1/snapshots", header: "Bearer x", status: http.StatusUnauthorized},
		{name: "valid token", auth: stubAuthenticator{claims: analyst}, path: "/v1/snapshots", header: "Bearer x", status: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := http.Header{}
			if tt.header != "" {
				header.Set("Authorization", tt.header)
			}

			rec := serve(AuthMiddleware(tt.auth)(okHandler), http.MethodGet, tt.path, header)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	auth := stubAuthenticator{err: authenticating.NewAuthError(authenticating.ErrExpiredToken, "", "")}
	header := http.Header{"Authorization": []string{"Bearer x"}}

	rec := serve(AuthMiddleware(auth)(okHandler), http.MethodGet, "/v1/snapshots", header)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "AUTH_007")
}

func TestRoleMiddleware(t *testing.T) {
	tests := []struct {
		name    string
		claims  *domain.Claims
		handler func(http.Handler) http.Handler
		status  int
	}{
		{name: "no claims", handler: AllRoles(), status: http.StatusUnauthorized},
		{name: "analyst allowed", claims: &domain.Claims{Role: domain.RoleAnalyst}, handler: AllRoles(), status: http.StatusNoContent},
		{name: "analyst denied", claims: &domain.Claims{Role: domain.RoleAnalyst}, handler: AdminOnly(), status: http.StatusForbidden},
		{name: "admin allowed", claims: &domain.Claims{Role: domain.RoleAdmin}, handler: AdminOnly(), status: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var h http.Handler = tt.handler(okHandler)
			if tt.claims != nil {
				h = AuthMiddleware(stubAuthenticator{claims: tt.claims})(h)
			}

			header := http.Header{"Authorization": []string{"Bearer x"}}
			rec := serve(h, http.MethodGet, "/v1/snapshots", header)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestCors(t *testing.T) {
	h := Cors("https://finance.example.com")(okHandler)

	allowed := serve(h, http.MethodOptions, "/v1/snapshots", http.Header{"Origin": []string{"https://finance.example.com"}})
	assert.Equal(t, http.StatusOK, allowed.Code)
	assert.Equal(t, "https://finance.example.com", allowed.Header().Get("Access-Control-Allow-Origin"))

	denied := serve(h, http.MethodGet, "/v1/snapshots", http.Header{"Origin": []string{"https://evil.example.com"}})
	assert.Equal(t, http.StatusNoContent, denied.Code)
	assert.Empty(t, denied.Header().Get("Access-Control-Allow-Origin"))
}

func TestLoggingMiddleware_SetsCorrelationID(t *testing.T) {
	rec := serve(LoggingMiddleware()(okHandler), http.MethodGet, "/healthcheck", nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(CorrelationIDHeader))
}

func TestLogPanicMiddleware(t *testing.T) {
	panicking := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(errors.New("boom"))
	})

	rec := serve(LogPanicMiddleware()(panicking), http.MethodGet, "/v1/pacing/analyse", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "SRV_001")
}

func TestAuthMiddleware_UnknownRoleClaim(t *testing.T) {
	auth := stubAuthenticator{err: authenticating.NewAuthError(authenticating.ErrInvalidRole, apiErrors.ErrInsufficientPrivilege, "root")}
	header := http.Header{"Authorization": []string{"Bearer x"}}

	rec := serve(AuthMiddleware(auth)(okHandler), http.MethodGet, "/v1/snapshots", header)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "AUTH_008")
}
