package analysis

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/selimozcann/StrengthLens/internal/httpclient"
	"github.com/selimozcann/StrengthLens/internal/model"
	"github.com/selimozcann/StrengthLens/internal/platform/errs"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewClient(ts.URL+"/analyze", httpclient.New(httpclient.Config{Timeout: time.Second}), logger)
}

func TestAnalyze_Success(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/analyze" {
			t.Errorf("got %s %s, want POST /analyze", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		if r.Header.Get(httpclient.RequestIDHeader) == "" {
			t.Error("missing request id")
		}
		var req model.AnalyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Password != "hunter2" {
			t.Errorf("body password = %q, err = %v", req.Password, err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"analysis":{"length":7,"strength_prediction":{"category":1,"category_name":"Weak"}},"suggestions":["longer"]}`)
	})

	resp, err := c.Analyze(context.Background(), "hunter2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Analysis.Length == nil || *resp.Analysis.Length != 7 {
		t.Fatalf("length = %v, want 7", resp.Analysis.Length)
	}
	if resp.Analysis.StrengthPrediction == nil || resp.Analysis.StrengthPrediction.CategoryName != "Weak" {
		t.Fatalf("prediction = %+v", resp.Analysis.StrengthPrediction)
	}
	if len(resp.Suggestions) != 1 {
		t.Fatalf("suggestions = %v", resp.Suggestions)
	}
}

func TestAnalyze_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   errs.Kind
	}{
		{name: "backendError", status: http.StatusOK, body: `{"error":"model not loaded"}`, want: errs.Backend},
		{name: "badRequestWithError", status: http.StatusBadRequest, body: `{"error":"No password provided"}`, want: errs.Backend},
		{name: "malformedJSON", status: http.StatusOK, body: `{invalid json`, want: errs.Parse},
		{name: "nullBody", status: http.StatusOK, body: `null`, want: errs.Parse},
		{name: "emptyBody", status: http.StatusOK, body: ``, want: errs.Parse},
		{name: "arrayBody", status: http.StatusOK, body: `[]`, want: errs.Parse},
		{name: "serverError", status: http.StatusInternalServerError, body: `oops`, want: errs.Transport},
		{name: "notFound", status: http.StatusNotFound, body: `{}`, want: errs.Transport},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			resp, err := c.Analyze(context.Background(), "x")
			if err == nil {
				t.Fatalf("expected error, got %+v", resp)
			}
			if got := errs.KindOf(err); got != tt.want {
				t.Fatalf("kind = %v, want %v (err: %v)", got, tt.want, err)
			}
		})
	}
}

func TestAnalyze_BackendMessageVerbatim(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"error":"No password provided"}`)
	})

	_, err := c.Analyze(context.Background(), "")
	if err == nil || err.Error() != "No password provided" {
		t.Fatalf("err = %v, want the backend message", err)
	}
}

func TestAnalyze_Unreachable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := ts.URL
	ts.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := NewClient(url+"/analyze", httpclient.New(httpclient.Config{Timeout: time.Second}), logger)
	_, err := c.Analyze(context.Background(), "x")
	if errs.KindOf(err) != errs.Transport {
		t.Fatalf("kind = %v, want transport (err: %v)", errs.KindOf(err), err)
	}
}

func TestAnalyze_CancelledContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"analysis":{}}`)
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.Analyze(ctx, "x"); errs.KindOf(err) != errs.Transport {
		t.Fatalf("kind = %v, want transport", errs.KindOf(err))
	}
}
