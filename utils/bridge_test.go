package utils_test

import (
	"geonews/utils"
	"net/http"
	"net/http/httptest"
	"testing"
)

func findCookie(t *testing.T, cookies []*http.Cookie, name string) *http.Cookie {
	t.Helper()
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("cookie %q not set", name)
	return nil
}

func TestEstablishSetsFlags(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		maxAge     int
		wantRole   string
		wantMaxAge int
	}{
		{
			name:       "admin with explicit max age",
			role:       "admin",
			maxAge:     3600,
			wantRole:   "admin",
			wantMaxAge: 3600,
		},
		{
			name:       "zero max age falls back to eight hours",
			role:       "user",
			maxAge:     0,
			wantRole:   "user",
			wantMaxAge: utils.DefaultFlagMaxAge,
		},
		{
			name:       "role is lowercased",
			role:       "Admin",
			maxAge:     60,
			wantRole:   "admin",
			wantMaxAge: 60,
		},
	}

	bridge := utils.SessionBridge{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			bridge.Establish(rec, tt.role, tt.maxAge)

			cookies := rec.Result().Cookies()
			role := findCookie(t, cookies, utils.RoleCookie)
			marker := findCookie(t, cookies, utils.AuthMarkerCookie)

			if role.Value != tt.wantRole {
				t.Errorf("role cookie = %q, want %q", role.Value, tt.wantRole)
			}
			if role.MaxAge != tt.wantMaxAge || marker.MaxAge != tt.wantMaxAge {
				t.Errorf("max ages = %d/%d, want %d", role.MaxAge, marker.MaxAge, tt.wantMaxAge)
			}
			if marker.Value != "1" {
				t.Errorf("auth marker = %q, want %q", marker.Value, "1")
			}
			if !role.HttpOnly || !marker.HttpOnly {
				t.Error("flags must not be readable by page scripts")
			}
			if role.Path != "/" || marker.Path != "/" {
				t.Error("flags must be site-wide")
			}
		})
	}
}

func TestEstablishIdempotent(t *testing.T) {
	bridge := utils.SessionBridge{}

	first := httptest.NewRecorder()
	bridge.Establish(first, "admin", 600)
	second := httptest.NewRecorder()
	bridge.Establish(second, "admin", 600)
	bridge.Establish(second, "admin", 600)

	// The guard's admission input is the final role cookie value, which is
	// the same no matter how many times establish ran.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range second.Result().Cookies() {
		if c.Name == utils.RoleCookie {
			req.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
		}
	}
	if got := utils.RoleFromRequest(req); got != "admin" {
		t.Errorf("RoleFromRequest() after double establish = %q, want %q", got, "admin")
	}
}

func TestRevokeExpiresFlags(t *testing.T) {
	bridge := utils.SessionBridge{}
	rec := httptest.NewRecorder()
	bridge.Establish(rec, "admin", 600)
	bridge.Revoke(rec)

	cookies := rec.Result().Cookies()
	var sawExpiredRole, sawExpiredMarker bool
	for _, c := range cookies {
		if c.Name == utils.RoleCookie && c.MaxAge < 0 && c.Value == "" {
			sawExpiredRole = true
		}
		if c.Name == utils.AuthMarkerCookie && c.MaxAge < 0 && c.Value == "" {
			sawExpiredMarker = true
		}
	}
	if !sawExpiredRole || !sawExpiredMarker {
		t.Error("Revoke() did not expire both flags")
	}
}

func TestRoleFromRequest(t *testing.T) {
	tests := []struct {
		name   string
		cookie *http.Cookie
		want   string
	}{
		{
			name:   "present role",
			cookie: &http.Cookie{Name: utils.RoleCookie, Value: "admin"},
			want:   "admin",
		},
		{
			name:   "mixed case role",
			cookie: &http.Cookie{Name: utils.RoleCookie, Value: "Admin"},
			want:   "admin",
		},
		{
			name:   "empty role",
			cookie: &http.Cookie{Name: utils.RoleCookie, Value: ""},
			want:   "",
		},
		{
			name: "no cookie",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			if got := utils.RoleFromRequest(req); got != tt.want {
				t.Errorf("RoleFromRequest() = %q, want %q", got, tt.want)
			}
		})
	}
}
