package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/selimozcann/StrengthLens/internal/input"
	"github.com/selimozcann/StrengthLens/internal/model"
	"github.com/selimozcann/StrengthLens/internal/scheduler"
	"github.com/selimozcann/StrengthLens/internal/view"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
		check   func(t *testing.T, o options)
	}{
		{
			name: "defaults",
			check: func(t *testing.T, o options) {
				if o.keyDelay != 120*time.Millisecond || o.noAnim || len(o.set) != 0 {
					t.Fatalf("unexpected defaults: %+v", o)
				}
			},
		},
		{
			name: "overrides",
			args: []string{"-endpoint", "http://x:1/analyze", "-no-anim", "-type", "abc", "-key-delay", "5ms"},
			check: func(t *testing.T, o options) {
				if !o.set["endpoint"] || o.endpoint != "http://x:1/analyze" {
					t.Fatalf("endpoint not recorded: %+v", o)
				}
				if !o.noAnim || o.typeText != "abc" || o.keyDelay != 5*time.Millisecond {
					t.Fatalf("unexpected options: %+v", o)
				}
			},
		},
		{name: "unknownFlag", args: []string{"-nope"}, wantErr: true},
		{name: "strayArgument", args: []string{"extra"}, wantErr: true},
		{name: "negativeDelay", args: []string{"-key-delay", "-1s"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := parseFlags(tt.args, io.Discard)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.check(t, o)
		})
	}
}

func TestLoadConfigFlagsWin(t *testing.T) {
	t.Setenv("STRENGTHLENS_ENDPOINT", "http://env:5000/analyze")
	t.Setenv("LOG_LEVEL", "WARN")

	opts, err := parseFlags([]string{"-endpoint", "http://flag:5000/analyze", "-no-anim"}, io.Discard)
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	cfg, err := loadConfig(opts)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Endpoint != "http://flag:5000/analyze" {
		t.Fatalf("endpoint = %q, want the flag value", cfg.Endpoint)
	}
	if cfg.LogLevel != "WARN" {
		t.Fatalf("log level = %q, want the environment value", cfg.LogLevel)
	}
	if cfg.Animate {
		t.Fatal("-no-anim should disable animation")
	}
}

func TestLoadConfigRejectsBadEndpoint(t *testing.T) {
	opts, err := parseFlags([]string{"-endpoint", "localhost:5000"}, io.Discard)
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if _, err := loadConfig(opts); err == nil {
		t.Fatal("expected a validation error")
	}
}

func TestRunScripted(t *testing.T) {
	color.NoColor = true
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"analysis":{"length":3,"strength_prediction":{"category":0,"category_name":"Weak"}},"suggestions":["longer"]}`)
	}))
	defer ts.Close()
	t.Setenv("STRENGTHLENS_DEBOUNCE", "10ms")

	opts, err := parseFlags([]string{
		"-endpoint", ts.URL + "/analyze",
		"-type", "abc",
		"-key-delay", "1ms",
		"-no-anim",
		"-no-banner",
	}, io.Discard)
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}

	var out strings.Builder
	done := make(chan error, 1)
	go func() { done <- run(opts, strings.NewReader(""), &out, io.Discard) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("run did not settle")
	}

	got := out.String()
	for _, sub := range []string{"Password: •••", "Weak", "• longer"} {
		if !strings.Contains(got, sub) {
			t.Fatalf("output missing %q:\n%s", sub, got)
		}
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubAnalyzer struct{}

func (stubAnalyzer) Analyze(context.Context, string) (*model.AnalysisResponse, error) {
	return &model.AnalysisResponse{}, nil
}

type nopPresenter struct{}

func (nopPresenter) Render(*model.AnalysisResponse) {}
func (nopPresenter) Clear() {}

func TestReadLines(t *testing.T) {
	sched := scheduler.NewManual()
	panel := view.New()
	ctrl := input.New(context.Background(), sched, stubAnalyzer{}, nopPresenter{}, panel,
		input.Config{Debounce: time.Second, Timeout: time.Second}, discardLogger())

	var finished, quit bool
	readLines(context.Background(), strings.NewReader("ab\n:mask\n"), sched, ctrl,
		func() { quit = true }, func() { finished = true }, discardLogger())
	sched.RunPending()

	if panel.Input != "ab" || panel.Masked {
		t.Fatalf("input = %q masked = %v, want %q unmasked", panel.Input, panel.Masked, "ab")
	}
	if !finished || quit {
		t.Fatalf("finished = %v quit = %v, want end of input without quit", finished, quit)
	}

	finished = false
	readLines(context.Background(), strings.NewReader(":quit\nignored\n"), sched, ctrl,
		func() { quit = true }, func() { finished = true }, discardLogger())
	sched.RunPending()
	if !quit || finished || panel.Input != "ab" {
		t.Fatalf("quit = %v finished = %v input = %q", quit, finished, panel.Input)
	}
}
