// Package reveal types a text into a region one character per tick.
package reveal

import (
	"time"

	"github.com/selimozcann/StrengthLens/internal/scheduler"
)

// Revealer owns at most one running reveal. Starting a new one cancels the
// previous reveal outright.
type Revealer struct {
	sched scheduler.Scheduler
	tick  time.Duration
	sink  func(text string)

	timer scheduler.Timer
	runes []rune
	pos   int
}

// New returns a Revealer that writes the visible prefix to sink.
func New(sched scheduler.Scheduler, tick time.Duration, sink func(text string)) *Revealer {
	return &Revealer{sched: sched, tick: tick, sink: sink}
}

// Start clears the region and begins revealing text. The first character
// appears immediately.
func (r *Revealer) Start(text string) {
	r.Cancel()
	r.sink("")
	r.runes = []rune(text)
	r.pos = 0
	r.step()
}

// Cancel stops the running reveal, leaving the region as it is.
func (r *Revealer) Cancel() {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.runes = nil
	r.pos = 0
}

// Active reports whether characters are still pending.
func (r *Revealer) Active() bool {
	return r.timer != nil
}

func (r *Revealer) step() {
	if r.pos >= len(r.runes) {
		r.timer = nil
		r.runes = nil
		return
	}
	r.pos++
	r.sink(string(r.runes[:r.pos]))
	r.timer = r.sched.AfterFunc(r.tick, r.step)
}
