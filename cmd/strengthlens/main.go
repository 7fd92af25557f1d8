package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"

	"github.com/selimozcann/StrengthLens/internal/analysis"
	"github.com/selimozcann/StrengthLens/internal/banner"
	"github.com/selimozcann/StrengthLens/internal/httpclient"
	"github.com/selimozcann/StrengthLens/internal/input"
	"github.com/selimozcann/StrengthLens/internal/output"
	"github.com/selimozcann/StrengthLens/internal/platform/config"
	"github.com/selimozcann/StrengthLens/internal/platform/logger"
	"github.com/selimozcann/StrengthLens/internal/render"
	"github.com/selimozcann/StrengthLens/internal/scheduler"
	"github.com/selimozcann/StrengthLens/internal/view"
)

const (
	frameInterval = 40 * time.Millisecond
	userAgent     = "StrengthLens/1.0"
)

type options struct {
	configPath string
	endpoint   string
	typeText   string
	keyDelay   time.Duration
	noAnim     bool
	noBanner   bool
	logLevel   string
	logFile    string

	// set records which flags appeared on the command line.
	set map[string]bool
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "[-] Error: %v\n", err)
		os.Exit(2)
	}
	if err := run(opts, os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "[-] Error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, errOut io.Writer) (options, error) {
	opts := options{set: map[string]bool{}}
	fs := flag.NewFlagSet("strengthlens", flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.StringVar(&opts.configPath, "config", "", "YAML config file")
	fs.StringVar(&opts.endpoint, "endpoint", "", "Scoring service /analyze URL")
	fs.StringVar(&opts.typeText, "type", "", "Type this text one key at a time, then exit")
	fs.DurationVar(&opts.keyDelay, "key-delay", 120*time.Millisecond, "Delay between scripted keystrokes")
	fs.BoolVar(&opts.noAnim, "no-anim", false, "Disable animations")
	fs.BoolVar(&opts.noBanner, "no-banner", false, "Do not print the startup banner")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")
	fs.StringVar(&opts.logFile, "log-file", "", "Write logs to this file instead of stderr")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if opts.keyDelay < 0 {
		return opts, fmt.Errorf("-key-delay must be >= 0 (got %s)", opts.keyDelay)
	}
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })
	return opts, nil
}

// loadConfig layers command line flags over the file and environment.
func loadConfig(opts options) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return cfg, err
	}
	if opts.set["endpoint"] {
		cfg.Endpoint = opts.endpoint
	}
	if opts.set["log-level"] {
		cfg.LogLevel = opts.logLevel
	}
	if opts.noAnim {
		cfg.Animate = false
	}
	return cfg, cfg.Validate()
}

func run(opts options, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logOut := stderr
	if opts.logFile != "" {
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	log := logger.New(cfg.LogLevel, logOut)

	if !opts.noBanner {
		banner.PrintBanner(stdout, cfg.Endpoint)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loop := scheduler.NewLoop(256)
	panel := view.New()

	client := httpclient.New(httpclient.Config{
		Timeout: cfg.Timeout,
		Retries: cfg.Retries,
		Headers: http.Header{"User-Agent": []string{userAgent}},
	})
	analyzer := analysis.NewClient(cfg.Endpoint, client, log.With("component", "analysis"))
	renderer := render.New(loop, panel, cfg.RenderOptions(), log.With("component", "render"))
	ctrl := input.New(ctx, loop, analyzer, renderer, panel,
		input.Config{Debounce: cfg.Debounce, Timeout: cfg.Timeout},
		log.With("component", "input"))

	// Frames are redrawn in place only on a terminal.
	painter := output.NewPainter(stdout, !color.NoColor)
	scripted := opts.typeText != ""
	// inputDone is set once no more field changes will arrive.
	inputDone := false

	settled := func() bool {
		return ctrl.Idle() && !renderer.Animating() && panel.Transition == view.Idle
	}

	var painted uint64
	first := true
	var frame func()
	frame = func() {
		if rev := panel.Revision(); first || rev != painted {
			first = false
			painted = rev
			if err := painter.Paint(panel.Snapshot()); err != nil {
				log.Error("paint failed", "error", err)
			}
		}
		if inputDone && settled() {
			cancel()
			return
		}
		loop.AfterFunc(frameInterval, frame)
	}
	loop.Post(frame)

	log.Info("starting", "endpoint", cfg.Endpoint, "animate", cfg.Animate, "scripted", scripted)

	if scripted {
		go typeScript(ctx, loop, ctrl, opts.typeText, opts.keyDelay, func() { inputDone = true })
	} else {
		go readLines(ctx, stdin, loop, ctrl, cancel, func() { inputDone = true }, log)
	}

	if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("stopped")
	return nil
}

// typeScript feeds text into the controller one rune at a time, like a user
// typing. done runs on the loop after the last keystroke.
func typeScript(ctx context.Context, sched scheduler.Scheduler, ctrl *input.Controller, text string, delay time.Duration, done func()) {
	runes := []rune(text)
	for i := range runes {
		value := string(runes[:i+1])
		sched.Post(func() { ctrl.Change(value) })
		if i == len(runes)-1 {
			break
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
	}
	sched.Post(done)
}

// readLines treats every stdin line as the new field value. At end of input
// done runs on the loop so the last analysis can still be shown.
func readLines(ctx context.Context, r io.Reader, sched scheduler.Scheduler, ctrl *input.Controller, quit context.CancelFunc, done func(), log *slog.Logger) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		line := scanner.Text()
		switch line {
		case ":quit":
			quit()
			return
		case ":mask":
			sched.Post(func() { ctrl.ToggleMask() })
		default:
			sched.Post(func() { ctrl.Change(line) })
		}
	}
	if err := scanner.Err(); err != nil {
		log.Error("stdin read error", "error", err)
	}
	sched.Post(done)
}
