package flagimg

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestProxyStreamsFlag(t *testing.T) {
	cdn := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/w320/ua.png" {
			t.Errorf("cdn path = %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("png-bytes"))
	}))
	defer cdn.Close()

	p := NewProxy(cdn.URL)
	req := httptest.NewRequest(http.MethodGet, "/flags/UA", nil)
	w := httptest.NewRecorder()
	p.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Fatalf("content type = %q", ct)
	}
	if w.Body.String() != "png-bytes" {
		t.Fatalf("body = %q", w.Body.String())
	}
}

func TestProxyPassesThroughCDNStatus(t *testing.T) {
	cdn := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such flag", http.StatusNotFound)
	}))
	defer cdn.Close()

	p := NewProxy(cdn.URL)
	req := httptest.NewRequest(http.MethodGet, "/flags/zz", nil)
	w := httptest.NewRecorder()
	p.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestProxyRejectsInvalidCode(t *testing.T) {
	p := NewProxy("http://cdn")
	for _, path := range []string{"/flags/", "/flags/u", "/flags/ukr", "/flags/u1", "/flags/../x"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		p.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: status = %d, want 400", path, w.Code)
		}
	}
}

func TestProxyUnreachableCDN(t *testing.T) {
	p := NewProxy("http://127.0.0.1:1")
	req := httptest.NewRequest(http.MethodGet, "/flags/ua", nil)
	w := httptest.NewRecorder()
	p.ServeHTTP(w, req)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", w.Code)
	}
}
