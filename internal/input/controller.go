// Package input debounces password field changes into analysis requests and
// routes their outcomes to the renderer.
package input

import (
	"context"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/selimozcann/StrengthLens/internal/model"
	"github.com/selimozcann/StrengthLens/internal/platform/errs"
	"github.com/selimozcann/StrengthLens/internal/scheduler"
	"github.com/selimozcann/StrengthLens/internal/view"
)

// Analyzer scores a password remotely.
type Analyzer interface {
	Analyze(ctx context.Context, password string) (*model.AnalysisResponse, error)
}

// Presenter displays analysis results.
type Presenter interface {
	Render(resp *model.AnalysisResponse)
	Clear()
}

// Config holds the controller's timings.
type Config struct {
	Debounce time.Duration
	Timeout  time.Duration
}

// Controller owns the debounce timer and the request sequence. All methods
// must be called on the scheduler loop.
type Controller struct {
	ctx       context.Context
	sched     scheduler.Scheduler
	analyzer  Analyzer
	presenter Presenter
	panel     *view.Panel
	cfg       Config
	logger    *slog.Logger

	timer    scheduler.Timer
	seq      uint64
	inflight int

	// spawn runs a request off the loop.
	spawn func(func())
}

// New returns a Controller. ctx bounds every request it dispatches.
func New(ctx context.Context, sched scheduler.Scheduler, analyzer Analyzer, presenter Presenter, panel *view.Panel, cfg Config, logger *slog.Logger) *Controller {
	return &Controller{
		ctx:       ctx,
		sched:     sched,
		analyzer:  analyzer,
		presenter: presenter,
		panel:     panel,
		cfg:       cfg,
		logger:    logger,
		spawn:     func(fn func()) { go fn() },
	}
}

// Change handles a new field value. An empty value hides the results at
// once; anything else restarts the debounce window.
func (c *Controller) Change(value string) {
	c.stopTimer()
	c.panel.Input = value
	c.panel.Touch()

	if value == "" {
		// Outstanding requests become stale.
		c.seq++
		c.setWorking(false)
		c.presenter.Clear()
		return
	}

	c.setWorking(true)
	c.timer = c.sched.AfterFunc(c.cfg.Debounce, func() {
		c.timer = nil
		c.dispatch(value)
	})
}

// ToggleMask flips between masked and plain display of the field.
func (c *Controller) ToggleMask() bool {
	c.panel.Masked = !c.panel.Masked
	c.panel.Touch()
	return c.panel.Masked
}

// Idle reports whether no debounce timer or request is outstanding.
func (c *Controller) Idle() bool {
	return c.timer == nil && c.inflight == 0
}

func (c *Controller) dispatch(password string) {
	c.seq++
	c.inflight++
	seq := c.seq
	c.logger.Debug("dispatching analysis", "seq", seq, "length", utf8.RuneCountInString(password))

	c.spawn(func() {
		ctx, cancel := context.WithTimeout(c.ctx, c.cfg.Timeout)
		defer cancel()
		resp, err := c.analyzer.Analyze(ctx, password)
		c.sched.Post(func() { c.complete(seq, resp, err) })
	})
}

func (c *Controller) complete(seq uint64, resp *model.AnalysisResponse, err error) {
	c.inflight--
	if seq != c.seq {
		c.logger.Debug("discarding stale analysis", "seq", seq, "latest", c.seq)
		return
	}
	// A newer burst of typing is still debouncing.
	if c.timer == nil {
		c.setWorking(false)
	}

	if err != nil {
		if errs.KindOf(err) == errs.Backend {
			c.logger.Warn("analysis rejected by backend", "seq", seq, "error", err)
			return
		}
		c.logger.Error("analysis failed", "seq", seq, "kind", errs.KindOf(err).String(), "error", err)
		return
	}

	c.presenter.Render(resp)
}

func (c *Controller) setWorking(on bool) {
	if c.panel.Working == on {
		return
	}
	c.panel.Working = on
	c.panel.Touch()
}

func (c *Controller) stopTimer() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
