package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware(t *testing.T) {
	jwtService := NewJWTService(testSecret)
	valid, err := jwtService.GenerateJWT(42, RoleDriver, time.Now().Add(time.Hour))
	require.NoError(t, err)

	var gotID int
	var gotRole string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = UserIDFromContext(r.Context())
		gotRole, _ = RoleFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := Middleware(jwtService)(next)

	tests := []struct {
		name         string
		header       string
		expectedCode int
	}{
		{name: "No header", header: "", expectedCode: http.StatusUnauthorized},
		{name: "Not bearer", header: "Basic abc", expectedCode: http.StatusUnauthorized},
		{name: "Bad token", header: "Bearer nope", expectedCode: http.StatusUnauthorized},
		{name: "Valid token", header: "Bearer " + valid, expectedCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/balance", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)
			assert.Equal(t, tt.expectedCode, rr.Code)
		})
	}
	assert.Equal(t, 42, gotID)
	assert.Equal(t, RoleDriver, gotRole)
}

func TestRequireRole(t *testing.T) {
	jwtService := NewJWTService(testSecret)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := Middleware(jwtService)(RequireRole(RoleAdmin)(next))

	tests := []struct {
		name         string
		role         string
		expectedCode int
	}{
		{name: "Admin passes", role: RoleAdmin, expectedCode: http.StatusOK},
		{name: "Passenger is forbidden", role: RolePassenger, expectedCode: http.StatusForbidden},
		{name: "Driver is forbidden", role: RoleDriver, expectedCode: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := jwtService.GenerateJWT(1, tt.role, time.Now().Add(time.Hour))
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodGet, "/api/admin/transactions", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)
			assert.Equal(t, tt.expectedCode, rr.Code)
		})
	}
}
