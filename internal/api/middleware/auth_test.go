package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickcourt/QC-BookingService/internal/domain"
)

func TestAuth(t *testing.T) {
	tests := []struct {
		name       string
		userID     string
		role       string
		wantStatus int
		wantUserID int64
		wantRole   domain.Role
	}{
		{name: "valid user", userID: "42", role: "user", wantStatus: http.StatusOK, wantUserID: 42, wantRole: domain.RoleUser},
		{name: "valid owner", userID: "7", role: "owner", wantStatus: http.StatusOK, wantUserID: 7, wantRole: domain.RoleOwner},
		{name: "valid admin", userID: "1", role: "admin", wantStatus: http.StatusOK, wantUserID: 1, wantRole: domain.RoleAdmin},
		{name: "empty role defaults to user", userID: "42", role: "", wantStatus: http.StatusOK, wantUserID: 42, wantRole: domain.RoleUser},
		{name: "missing user id", userID: "", role: "user", wantStatus: http.StatusUnauthorized},
		{name: "non-numeric user id", userID: "abc", role: "user", wantStatus: http.StatusUnauthorized},
		{name: "non-positive user id", userID: "0", role: "user", wantStatus: http.StatusUnauthorized},
		{name: "unknown role", userID: "42", role: "superuser", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUserID int64
			var gotRole domain.Role
			var called bool

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				gotUserID, _ = GetUserID(r.Context())
				gotRole = GetRole(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
			if tt.userID != "" {
				req.Header.Set(HeaderUserID, tt.userID)
			}
			if tt.role != "" {
				req.Header.Set(HeaderUserRole, tt.role)
			}

			rec := httptest.NewRecorder()
			Auth(next).ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.True(t, called)
				assert.Equal(t, tt.wantUserID, gotUserID)
				assert.Equal(t, tt.wantRole, gotRole)
			} else {
				assert.False(t, called, "handler must not be called on auth failure")
			}
		})
	}
}

func TestGetRole_DefaultWithoutAuth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, domain.RoleUser, GetRole(req.Context()))
}
