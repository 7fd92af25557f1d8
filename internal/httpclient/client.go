package httpclient

import (
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// RequestIDHeader carries a per-request identifier the scoring service can log.
const RequestIDHeader = "X-Request-ID"

// Config holds settings for the HTTP client.
type Config struct {
	Timeout time.Duration
	Headers http.Header
	Retries int
	Backoff time.Duration // base delay, doubled per attempt
}

// headerRoundTripper wraps a base RoundTripper to inject headers and a
// request ID, and retries transport errors and 5xx answers.
type headerRoundTripper struct {
	base    http.RoundTripper
	headers http.Header
	retries int
	backoff time.Duration
}

func (h *headerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if h.base == nil {
		h.base = http.DefaultTransport
	}

	// One ID for every attempt of the same logical request.
	requestID := req.Header.Get(RequestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
	}

	var resp *http.Response
	var err error

	for attempt := 0; ; attempt++ {
		// Clone the request to avoid mutations across retries
		r := req.Clone(req.Context())
		if req.Body != nil && req.GetBody != nil {
			body, berr := req.GetBody()
			if berr != nil {
				return nil, berr
			}
			r.Body = body
		}

		for k, vs := range h.headers {
			r.Header.Del(k)
			for _, v := range vs {
				r.Header.Add(k, v)
			}
		}
		r.Header.Set(RequestIDHeader, requestID)

		resp, err = h.base.RoundTrip(r)
		if err == nil && resp.StatusCode < 500 {
			return resp, nil
		}

		// A body without GetBody cannot be replayed.
		if attempt >= h.retries || (req.Body != nil && req.GetBody == nil) {
			if err != nil {
				return nil, err
			}
			return resp, nil
		}

		if resp != nil {
			_ = resp.Body.Close()
		}

		select {
		case <-req.Context().Done():
			return nil, req.Context().Err()
		case <-time.After(h.backoff * time.Duration(1<<attempt)):
		}
	}
}

// New returns a configured HTTP client that refuses redirects.
func New(cfg Config) *http.Client {
	backoff := cfg.Backoff
	if backoff <= 0 {
		backoff = 100 * time.Millisecond
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.Timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}

	return &http.Client{
		Transport: &headerRoundTripper{
			base:    transport,
			headers: cfg.Headers,
			retries: cfg.Retries,
			backoff: backoff,
		},
		Timeout: cfg.Timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			// a scoring endpoint has no business redirecting a password
			return http.ErrUseLastResponse
		},
	}
}
