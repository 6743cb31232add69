package enrichment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDescribeFlagJSONResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("country"); got != "Ukraine" {
			t.Errorf("country param = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"description":"Blue over yellow, adopted in 1992."}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	got := c.DescribeFlag(context.Background(), "Ukraine")
	if got != "Blue over yellow, adopted in 1992." {
		t.Fatalf("description = %q", got)
	}
}

func TestDescribeFlagPlainTextFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("  A white cross on red.  "))
	}))
	defer srv.Close()

	c := New(srv.URL)
	if got := c.DescribeFlag(context.Background(), "Switzerland"); got != "A white cross on red." {
		t.Fatalf("description = %q", got)
	}
}

func TestDescribeFlagSuppressesFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	cases := []struct {
		name    string
		client  *Client
		country string
	}{
		{"non-200 response", New(srv.URL), "France"},
		{"unreachable host", New("http://127.0.0.1:1"), "France"},
		{"disabled client", New(""), "France"},
		{"blank country", New(srv.URL), "   "},
		{"nil client", nil, "France"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.client.DescribeFlag(context.Background(), tc.country); got != "" {
				t.Fatalf("got %q, want empty", got)
			}
		})
	}
}
