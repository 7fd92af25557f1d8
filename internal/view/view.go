// Package view holds the results panel state that the renderer and the
// visibility sequencer mutate and the terminal painter draws.
package view

import (
	"github.com/selimozcann/StrengthLens/internal/risk"
	"github.com/selimozcann/StrengthLens/internal/score"
)

// Transition is the animation state of the panel.
type Transition int

const (
	Idle Transition = iota
	Entering
	Exiting
)

// Section identifies one block of the results panel, in display order.
type Section int

const (
	SectionStrength Section = iota
	SectionNarrative
	SectionAttacks
	SectionDetails
	SectionSuggestions

	SectionCount
)

// Strength is the strength bar.
type Strength struct {
	Width   int // current fill, percent
	Target  int // fill the bar animates to
	Label   string
	Percent string
	Band    score.Band
	Rising  bool
}

// Narrative is the revealed reasoning text.
type Narrative struct {
	Hidden bool
	Text   string
}

// Attack is one entry of the attack-vector list.
type Attack struct {
	Tier        risk.Tier
	Name        string
	Description string
	Reasoning   string
	Entered     bool
}

// RowKind tells the painter how to decorate an attribute value.
type RowKind int

const (
	RowText RowKind = iota
	RowFlag
	RowWarning
)

// Row is one line of the attribute table.
type Row struct {
	Label string
	Value string
	Kind  RowKind
	Flag  bool
}

// SuggestionKind distinguishes suggestion entries.
type SuggestionKind int

const (
	SuggestionTip SuggestionKind = iota
	SuggestionPassword
	SuggestionLooksGood
)

// Suggestion is one entry of the suggestions list.
type Suggestion struct {
	Kind    SuggestionKind
	Text    string
	Entered bool
}

// Panel is the whole results surface plus the input field it belongs to.
// It is only touched from the scheduler loop.
type Panel struct {
	Input   string
	Masked  bool
	Working bool

	Displayed  bool
	Transition Transition

	Strength      Strength
	Narrative     Narrative
	AttacksHidden bool
	Attacks       []Attack
	Rows          []Row
	Suggestions   []Suggestion
	Entered       [SectionCount]bool

	rev      uint64
	onChange func()
}

// New returns a hidden panel with a masked input.
func New() *Panel {
	return &Panel{Masked: true}
}

// OnChange registers fn to run after every Touch.
func (p *Panel) OnChange(fn func()) {
	p.onChange = fn
}

// Touch records a mutation.
func (p *Panel) Touch() {
	p.rev++
	if p.onChange != nil {
		p.onChange()
	}
}

// Revision increases on every Touch.
func (p *Panel) Revision() uint64 {
	return p.rev
}

// Snapshot returns a deep copy safe to hand to another goroutine.
func (p *Panel) Snapshot() Panel {
	s := *p
	s.onChange = nil
	s.Attacks = append([]Attack(nil), p.Attacks...)
	s.Rows = append([]Row(nil), p.Rows...)
	s.Suggestions = append([]Suggestion(nil), p.Suggestions...)
	return s
}
