package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func authedHandler(t *testing.T, wantKey string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := GetAPIKey(r.Context()); got != wantKey {
			t.Errorf("GetAPIKey() = %q, want %q", got, wantKey)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAPIKeyAuth_ValidBearerToken(t *testing.T) {
	handler := APIKeyAuth("s3cret")(authedHandler(t, "s3cret"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/controls", nil)
	req.Header.Set("Authorization", "Bearer s3cret")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestAPIKeyAuth_CaseInsensitiveScheme(t *testing.T) {
	handler := APIKeyAuth("s3cret")(authedHandler(t, "s3cret"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer s3cret")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestAPIKeyAuth_RejectsWrongKey(t *testing.T) {
	handler := APIKeyAuth("s3cret")(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Error("handler reached with wrong key")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestAPIKeyAuth_RejectsMissingHeader(t *testing.T) {
	handler := APIKeyAuth("s3cret")(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Error("handler reached without authorization")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestAPIKeyAuth_RejectsMalformedHeader(t *testing.T) {
	handler := APIKeyAuth("s3cret")(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Error("handler reached with malformed header")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "s3cret")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestAPIKeyAuth_EmptySecretDisablesAuth(t *testing.T) {
	handler := APIKeyAuth("")(authedHandler(t, ""))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 with auth disabled", rec.Code)
	}
}

func TestAPIKeyAuth_SkipsPreflight(t *testing.T) {
	handler := APIKeyAuth("s3cret")(authedHandler(t, ""))

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 for CORS preflight", rec.Code)
	}
}
