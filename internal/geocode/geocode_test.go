package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestForwardPassesQueryAndKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/geocode/search" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("text"); got != "central station" {
			t.Errorf("unexpected query %q", got)
		}
		if got := r.Header.Get("Authorization"); got != "test-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		w.Write([]byte(`{"features":[]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key")
	raw, err := client.Forward(context.Background(), "central station")
	if err != nil {
		t.Fatalf("Forward: %v", err)
	}
	if string(raw) != `{"features":[]}` {
		t.Errorf("response not passed through opaquely: %s", raw)
	}
}

func TestProviderFailureSurfacesStatusCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	_, err := client.Reverse(context.Background(), 45.0, 10.0)

	var provErr *ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if provErr.Status != http.StatusForbidden {
		t.Errorf("expected status 403, got %d", provErr.Status)
	}
}
