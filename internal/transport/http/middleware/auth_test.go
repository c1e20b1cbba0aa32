package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"leavedesk/internal/auth"
)

func identityProbe(t *testing.T, secret, header string) (auth.Identity, bool) {
	t.Helper()

	var got auth.Identity
	var ok bool
	handler := Auth(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = GetIdentity(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	handler.ServeHTTP(httptest.NewRecorder(), req)
	return got, ok
}

func TestAuthNoHeader(t *testing.T) {
	if _, ok := identityProbe(t, "secret", ""); ok {
		t.Fatal("expected no identity without a token")
	}
}

func TestAuthValidToken(t *testing.T) {
	token, err := auth.GenerateToken("secret", auth.Claims{
		UserID:  "u1",
		Section: "Engineering",
		IsAdmin: true,
	}, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	identity, ok := identityProbe(t, "secret", "Bearer "+token)
	if !ok {
		t.Fatal("expected identity for a valid token")
	}
	if identity.UserID != "u1" || identity.Section != "Engineering" || !identity.IsAdmin {
		t.Fatalf("identity mismatch: %+v", identity)
	}
}

func TestAuthBadToken(t *testing.T) {
	if _, ok := identityProbe(t, "secret", "Bearer not-a-token"); ok {
		t.Fatal("expected no identity for a garbage token")
	}
}

func TestAuthWrongScheme(t *testing.T) {
	if _, ok := identityProbe(t, "secret", "Basic dXNlcjpwYXNz"); ok {
		t.Fatal("expected no identity for a non-bearer header")
	}
}
