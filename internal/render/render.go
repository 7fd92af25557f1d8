// Package render turns an analysis response into panel state, staging the
// entrance of every block.
package render

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/selimozcann/StrengthLens/internal/model"
	"github.com/selimozcann/StrengthLens/internal/reveal"
	"github.com/selimozcann/StrengthLens/internal/risk"
	"github.com/selimozcann/StrengthLens/internal/scheduler"
	"github.com/selimozcann/StrengthLens/internal/score"
	"github.com/selimozcann/StrengthLens/internal/view"
	"github.com/selimozcann/StrengthLens/internal/visibility"
)

const (
	unknownAttack      = "Unknown Attack"
	noDescription      = "No description available"
	looksGood          = "Your password looks good!"
	improvedPrefix     = "Improved suggestion: "
	narrativeSeparator = "\n\n"
)

// Renderer owns the panel's content. Each Render fully replaces the previous
// one and cancels its pending animations.
type Renderer struct {
	sched    scheduler.Scheduler
	panel    *view.Panel
	opts     Options
	logger   *slog.Logger
	revealer *reveal.Revealer
	vis      *visibility.Sequencer

	pending []scheduler.Timer
	live    int
}

// New returns a Renderer drawing into panel.
func New(sched scheduler.Scheduler, panel *view.Panel, opts Options, logger *slog.Logger) *Renderer {
	r := &Renderer{
		sched:  sched,
		panel:  panel,
		opts:   opts,
		logger: logger,
	}
	r.revealer = reveal.New(sched, opts.RevealTick, func(text string) {
		panel.Narrative.Text = text
		panel.Touch()
	})
	enter, exit := opts.EnterDuration, opts.ExitDuration
	if !opts.Animate {
		enter, exit = 0, 0
	}
	r.vis = visibility.New(sched, panel, enter, exit)
	return r
}

// Render draws resp. An empty analysis mapping hides the panel instead.
func (r *Renderer) Render(resp *model.AnalysisResponse) {
	r.Reset()
	if resp == nil || resp.Analysis.Empty() {
		r.logger.Debug("no analysis to show, hiding results")
		r.vis.Hide()
		return
	}

	result := score.Normalize(resp.Analysis)
	r.renderStrength(result)
	r.renderNarrative(resp)
	r.renderAttacks(resp.AttackVectors)
	r.renderDetails(resp.Analysis)
	r.renderSuggestions(resp)

	r.vis.Show()
	r.enterSections()
	r.panel.Touch()

	r.logger.Debug("results rendered",
		"score", result.Score,
		"category", result.Category,
		"attack_vectors", len(resp.AttackVectors),
		"rows", len(r.panel.Rows),
		"suggestions", len(r.panel.Suggestions),
	)
}

// Clear hides the panel and stops every pending animation.
func (r *Renderer) Clear() {
	r.Reset()
	r.vis.Hide()
}

// Reset cancels the narrative reveal and every pending entrance.
func (r *Renderer) Reset() {
	r.revealer.Cancel()
	for _, t := range r.pending {
		t.Stop()
	}
	r.pending = r.pending[:0]
	r.live = 0
}

// Animating reports whether any entrance or reveal is still scheduled.
func (r *Renderer) Animating() bool {
	return r.live > 0 || r.revealer.Active()
}

// later applies fn after d, or right away when animation is off.
func (r *Renderer) later(d time.Duration, fn func()) {
	if !r.opts.Animate {
		fn()
		return
	}
	r.live++
	r.pending = append(r.pending, r.sched.AfterFunc(d, func() {
		r.live--
		fn()
		r.panel.Touch()
	}))
}

func (r *Renderer) renderStrength(result score.Result) {
	r.panel.Strength = view.Strength{
		Width:   0,
		Target:  result.Score,
		Label:   result.Category,
		Percent: strconv.Itoa(result.Score) + "%",
		Band:    score.BandFor(result.Score),
		Rising:  score.Rising(result.Score),
	}
	r.later(r.opts.BarDelay, func() {
		r.panel.Strength.Width = r.panel.Strength.Target
	})
}

// Narrative composes the reasoning text in its fixed order.
func Narrative(resp *model.AnalysisResponse) string {
	var b strings.Builder
	for _, part := range []string{
		resp.Summary,
		resp.PrimaryWeakness,
		resp.TimeAnalysis,
		resp.CharacterVariety,
		resp.PatternAnalysis,
	} {
		if part == "" {
			continue
		}
		b.WriteString(part)
		b.WriteString(narrativeSeparator)
	}
	if resp.ImprovedSuggestion != "" {
		b.WriteString(improvedPrefix)
		b.WriteString(resp.ImprovedSuggestion)
	}
	return b.String()
}

func (r *Renderer) renderNarrative(resp *model.AnalysisResponse) {
	text := Narrative(resp)
	if text == "" {
		r.panel.Narrative = view.Narrative{Hidden: true}
		return
	}
	r.panel.Narrative.Hidden = false
	if !r.opts.Animate {
		r.panel.Narrative.Text = text
		return
	}
	r.revealer.Start(text)
}

func (r *Renderer) renderAttacks(vectors []model.AttackVector) {
	if len(vectors) == 0 {
		r.panel.AttacksHidden = true
		r.panel.Attacks = nil
		return
	}

	r.panel.AttacksHidden = false
	r.panel.Attacks = make([]view.Attack, 0, len(vectors))
	for i, v := range vectors {
		a := view.Attack{
			Tier:        risk.Classify(v.Type),
			Name:        v.Name,
			Description: v.Description,
			Reasoning:   v.Reasoning,
		}
		if a.Name == "" {
			a.Name = unknownAttack
		}
		if a.Description == "" {
			a.Description = noDescription
		}
		r.panel.Attacks = append(r.panel.Attacks, a)

		idx := i
		r.later(time.Duration(i)*r.opts.StaggerStep, func() {
			r.panel.Attacks[idx].Entered = true
		})
	}
}

// Rows builds the attribute table for a, emitting only present keys.
func Rows(a model.Analysis) []view.Row {
	var rows []view.Row
	if a.Length != nil {
		rows = append(rows, view.Row{Label: "Password length", Value: fmt.Sprintf("%d characters", *a.Length)})
	}
	if a.Entropy != nil {
		rows = append(rows, view.Row{Label: "Entropy", Value: fmt.Sprintf("%.2f bits", *a.Entropy)})
	}
	if a.CrackTime != nil && a.CrackTime.Display != nil {
		rows = append(rows, view.Row{Label: "Time to crack", Value: *a.CrackTime.Display})
	}
	for _, f := range []struct {
		label string
		value *bool
	}{
		{"Contains uppercase letters", a.HasUppercase},
		{"Contains lowercase letters", a.HasLowercase},
		{"Contains digits", a.HasDigit},
		{"Contains special characters", a.HasSpecial},
	} {
		if f.value == nil {
			continue
		}
		rows = append(rows, view.Row{Label: f.label, Value: yesNo(*f.value), Kind: view.RowFlag, Flag: *f.value})
	}
	if len(a.CommonPatterns) > 0 {
		rows = append(rows, view.Row{
			Label: "Common patterns found",
			Value: strings.Join(a.CommonPatterns, ", "),
			Kind:  view.RowWarning,
		})
	}
	return rows
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func (r *Renderer) renderDetails(a model.Analysis) {
	r.panel.Rows = Rows(a)
}

func (r *Renderer) renderSuggestions(resp *model.AnalysisResponse) {
	r.panel.Suggestions = nil

	if resp.ImprovedSuggestion != "" {
		r.addSuggestion(view.SuggestionPassword, resp.ImprovedSuggestion, r.opts.EntryDelay)
	}
	for i, s := range resp.Suggestions {
		r.addSuggestion(view.SuggestionTip, s, r.opts.SuggestionOffset+time.Duration(i)*r.opts.StaggerStep)
	}
	if resp.ImprovedSuggestion == "" && len(resp.Suggestions) == 0 {
		r.addSuggestion(view.SuggestionLooksGood, looksGood, r.opts.EntryDelay)
	}
}

func (r *Renderer) addSuggestion(kind view.SuggestionKind, text string, delay time.Duration) {
	idx := len(r.panel.Suggestions)
	r.panel.Suggestions = append(r.panel.Suggestions, view.Suggestion{Kind: kind, Text: text})
	r.later(delay, func() {
		r.panel.Suggestions[idx].Entered = true
	})
}

func (r *Renderer) enterSections() {
	for i := range r.panel.Entered {
		r.panel.Entered[i] = false
	}
	for i := view.Section(0); i < view.SectionCount; i++ {
		sec := i
		r.later(r.opts.SectionDelay+time.Duration(i)*r.opts.SectionStep, func() {
			r.panel.Entered[sec] = true
		})
	}
}
