package probe

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// Prober checks whether the remote API can be reached
type Prober interface {
	Reachable(ctx context.Context) bool
}

// HTTPProber issues a bounded GET against the API root
type HTTPProber struct {
	url     string
	timeout time.Duration
	client  *http.Client
}

// NewHTTP creates a prober for the API base URL
func NewHTTP(baseURL string, timeout time.Duration) *HTTPProber {
	return &HTTPProber{
		url:     strings.TrimRight(baseURL, "/") + "/",
		timeout: timeout,
		client:  &http.Client{},
	}
}

// Reachable reports whether GET <base>/ answers with a 2xx status
func (p *HTTPProber) Reachable(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return false
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// Static always reports the same reachability
type Static bool

func (s Static) Reachable(context.Context) bool { return bool(s) }
