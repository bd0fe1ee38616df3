package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"hostel-management/internal/access"
	"hostel-management/internal/data/entity"
	"hostel-management/internal/usecase"
	"hostel-management/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubAuthenticator struct {
	users map[string]*entity.User
	err   error
}

func (s stubAuthenticator) Authenticate(_ context.Context, token string) (*entity.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	if u, ok := s.users[token]; ok {
		return u, nil
	}
	return nil, usecase.ErrUnauthorized
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) utils.Response {
	t.Helper()
	var resp utils.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

// echoActor writes the caller stored in the context.
var echoActor = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	id, _ := utils.GetUserIDFromContext(r.Context())
	token, _ := utils.GetTokenFromContext(r.Context())
	utils.ResponseSuccess(w, "ok", map[string]string{
		"id":    id.String(),
		"role":  string(utils.GetRoleFromContext(r.Context())),
		"token": token,
	})
})

func TestAuthSession(t *testing.T) {
	staff := &entity.User{Base: entity.Base{ID: uuid.New()}, Role: access.RoleStaff, IsActive: true}
	inactive := &entity.User{Base: entity.Base{ID: uuid.New()}, Role: access.RoleAdmin, IsActive: false}
	auth := stubAuthenticator{users: map[string]*entity.User{"good": staff, "inactive": inactive}}
	handler := AuthSession(auth, zap.NewNop())(echoActor)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantRole   string
	}{
		{"missing header", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic good", http.StatusUnauthorized, ""},
		{"empty token", "Bearer ", http.StatusUnauthorized, ""},
		{"unknown token", "Bearer nope", http.StatusUnauthorized, ""},
		{"valid token", "Bearer good", http.StatusOK, "STAFF"},
		{"scheme is case insensitive", "bearer good", http.StatusOK, "STAFF"},
		{"inactive user gets no role", "Bearer inactive", http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			resp := decodeEnvelope(t, rec)
			if tt.wantStatus != http.StatusOK {
				assert.False(t, resp.Success)
				assert.Equal(t, tt.wantStatus, resp.StatusCode)
				return
			}
			data := resp.Data.(map[string]any)
			assert.Equal(t, tt.wantRole, data["role"])
		})
	}
}

func TestAuthSession_BackendFailure(t *testing.T) {
	handler := AuthSession(stubAuthenticator{err: errors.New("db down")}, zap.NewNop())(echoActor)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer x")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func withCaller(r *http.Request, role access.Role) *http.Request {
	return r.WithContext(utils.SetUserContext(r.Context(), uuid.New(), role))
}

func TestRequirePermission(t *testing.T) {
	engine := access.NewDefaultEngine()
	handler := RequirePermission(engine, zap.NewNop(), access.PermBookingsApprove)(echoActor)

	tests := []struct {
		role access.Role
		want int
	}{
		{access.RoleHostelAdmin, http.StatusOK},
		{access.RoleAdmin, http.StatusOK},
		{access.RoleStudent, http.StatusForbidden},
		{access.RoleAccountant, http.StatusForbidden},
		{access.RoleNone, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.role.String(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, withCaller(httptest.NewRequest(http.MethodPost, "/", nil), tt.role))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestGuard_RequiresAuthentication(t *testing.T) {
	handler := Guard(access.NewDefaultEngine(), access.RequireAny(access.PermHostelsRead), zap.NewNop())(echoActor)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	handler := RequireRole(access.NewDefaultEngine(), zap.NewNop(), access.RoleSuperAdmin)(echoActor)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, withCaller(httptest.NewRequest(http.MethodGet, "/", nil), access.RoleAdmin))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, withCaller(httptest.NewRequest(http.MethodGet, "/", nil), access.RoleSuperAdmin))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRecover_WritesEnvelope(t *testing.T) {
	handler := Recover(zap.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestCORS_SplitsCommaSeparatedOrigins(t *testing.T) {
	handler := CORS(utils.CORSConfig{AllowedOrigins: []string{"https://a.example,https://b.example"}})(echoActor)

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://b.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, "https://b.example", rec.Header().Get("Access-Control-Allow-Origin"))
}
