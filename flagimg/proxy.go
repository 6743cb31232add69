// Package flagimg proxies flag images from the public CDN so surrounding
// clients can fetch them without talking to the CDN directly.
package flagimg

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/m3rciful/flagbot/core/logger"
)

const fetchTimeout = 5 * time.Second

// Proxy streams flag PNGs by country code from the configured CDN base URL.
type Proxy struct {
	base string
	http *http.Client
}

// NewProxy constructs a passthrough proxy for the given CDN base URL.
func NewProxy(baseURL string) *Proxy {
	return &Proxy{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: fetchTimeout},
	}
}

// ServeHTTP handles GET /flags/{code} by streaming the CDN response through.
func (p *Proxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	code := strings.ToLower(strings.Trim(strings.TrimPrefix(r.URL.Path, "/flags/"), "/"))
	if !validCode(code) {
		http.Error(w, "invalid country code", http.StatusBadRequest)
		return
	}

	url := fmt.Sprintf("%s/w320/%s.png", p.base, code)
	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, url, nil)
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp, err := p.http.Do(req)
	if err != nil {
		logger.Warn(r.Context(), "http", "flag.fetch.fail",
			slog.String("country", code),
			slog.String("err", err.Error()),
		)
		http.Error(w, "failed to fetch flag", http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	} else {
		w.Header().Set("Content-Type", "image/png")
	}
	w.WriteHeader(resp.StatusCode)
	_, _ = io.Copy(w, resp.Body)
}

func validCode(code string) bool {
	if len(code) != 2 {
		return false
	}
	for _, r := range code {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
