// Package visibility shows and hides the results panel with enter and exit
// transitions.
package visibility

import (
	"time"

	"github.com/selimozcann/StrengthLens/internal/scheduler"
	"github.com/selimozcann/StrengthLens/internal/view"
)

// Sequencer drives the panel's enter/exit transitions. The panel leaves the
// layout only once the exit transition has run its full duration.
type Sequencer struct {
	sched scheduler.Scheduler
	panel *view.Panel
	enter time.Duration
	exit  time.Duration

	pending scheduler.Timer
}

// New returns a Sequencer for panel. Zero durations apply transitions
// synchronously.
func New(sched scheduler.Scheduler, panel *view.Panel, enter, exit time.Duration) *Sequencer {
	return &Sequencer{sched: sched, panel: panel, enter: enter, exit: exit}
}

// Show puts the panel in the layout and starts the enter transition. A
// pending removal from an earlier Hide is canceled.
func (s *Sequencer) Show() {
	s.stop()
	s.panel.Displayed = true
	if s.enter <= 0 {
		s.panel.Transition = view.Idle
		s.panel.Touch()
		return
	}
	s.panel.Transition = view.Entering
	s.panel.Touch()
	s.pending = s.sched.AfterFunc(s.enter, func() {
		s.pending = nil
		s.panel.Transition = view.Idle
		s.panel.Touch()
	})
}

// Hide starts the exit transition and removes the panel from the layout
// after it completes. Hiding an already hidden panel does nothing.
func (s *Sequencer) Hide() {
	if !s.panel.Displayed {
		return
	}
	if s.panel.Transition == view.Exiting && s.pending != nil {
		return
	}
	s.stop()
	if s.exit <= 0 {
		s.remove()
		return
	}
	s.panel.Transition = view.Exiting
	s.panel.Touch()
	s.pending = s.sched.AfterFunc(s.exit, func() {
		s.pending = nil
		s.remove()
	})
}

// Visible reports whether the panel is in the layout.
func (s *Sequencer) Visible() bool {
	return s.panel.Displayed
}

func (s *Sequencer) remove() {
	s.panel.Displayed = false
	s.panel.Transition = view.Idle
	s.panel.Touch()
}

func (s *Sequencer) stop() {
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
}
