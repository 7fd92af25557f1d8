package output

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/selimozcann/StrengthLens/internal/risk"
	"github.com/selimozcann/StrengthLens/internal/score"
	"github.com/selimozcann/StrengthLens/internal/view"
)

const (
	barWidth    = 40
	clearScreen = "\033[H\033[2J"
	maskRune    = "•"
)

var (
	bandColors = map[score.Band]*color.Color{
		score.Danger:    color.New(color.FgRed, color.Bold),
		score.Warning:   color.New(color.FgHiRed),
		score.Caution:   color.New(color.FgYellow),
		score.Good:      color.New(color.FgGreen),
		score.Excellent: color.New(color.FgHiGreen, color.Bold),
	}
	tierColors = map[risk.Tier]*color.Color{
		risk.BruteForce: color.New(color.FgRed),
		risk.Dictionary: color.New(color.FgHiRed),
		risk.Generic:    color.New(color.FgYellow),
	}
	tierIcons = map[risk.Tier]string{
		risk.BruteForce: "[!!]",
		risk.Dictionary: "[! ]",
		risk.Generic:    "[i ]",
	}

	heading = color.New(color.FgCyan, color.Bold)
	dim     = color.New(color.FgHiBlack)
	yes     = color.New(color.FgGreen)
	no      = color.New(color.FgRed)
	tip     = color.New(color.FgBlue)
	good    = color.New(color.FgGreen, color.Bold)
)

// Painter draws panel snapshots to a terminal.
type Painter struct {
	w     io.Writer
	clear bool
}

// NewPainter returns a Painter writing to w. With clear set, every frame
// starts by wiping the screen.
func NewPainter(w io.Writer, clear bool) *Painter {
	return &Painter{w: w, clear: clear}
}

// Paint draws one frame.
func (p *Painter) Paint(s view.Panel) error {
	var b strings.Builder
	if p.clear {
		b.WriteString(clearScreen)
	}

	p.field(&b, s)
	if s.Displayed {
		if s.Transition == view.Exiting {
			dim.Fprintln(&b, "  (clearing results)")
		} else {
			p.results(&b, s)
		}
	}

	_, err := io.WriteString(p.w, b.String())
	return err
}

func (p *Painter) field(b *strings.Builder, s view.Panel) {
	value := s.Input
	if s.Masked {
		value = strings.Repeat(maskRune, utf8.RuneCountInString(s.Input))
	}
	mode := "show"
	if !s.Masked {
		mode = "hide"
	}
	fmt.Fprintf(b, "Password: %s  %s\n", value, dim.Sprintf("[:mask to %s]", mode))
	if s.Working {
		// pulse on every redraw
		dots := strings.Repeat(".", int(s.Revision()%4))
		dim.Fprintf(b, "  analyzing%s\n", dots)
	}
	b.WriteString("\n")
}

func (p *Painter) results(b *strings.Builder, s view.Panel) {
	if s.Entered[view.SectionStrength] {
		p.strength(b, s.Strength)
	}
	if s.Entered[view.SectionNarrative] && !s.Narrative.Hidden {
		heading.Fprintln(b, "AI reasoning")
		fmt.Fprintf(b, "%s\n\n", strings.TrimRight(s.Narrative.Text, "\n"))
	}
	if s.Entered[view.SectionAttacks] && !s.AttacksHidden {
		p.attacks(b, s.Attacks)
	}
	if s.Entered[view.SectionDetails] {
		p.details(b, s.Rows)
	}
	if s.Entered[view.SectionSuggestions] {
		p.suggestions(b, s.Suggestions)
	}
}

func (p *Painter) strength(b *strings.Builder, st view.Strength) {
	c := bandColors[st.Band]
	filled := min(max(st.Width*barWidth/100, 0), barWidth)
	trend := "↘"
	if st.Rising {
		trend = "↗"
	}
	heading.Fprintln(b, "Strength")
	fmt.Fprintf(b, "[%s%s] %s %s\n",
		c.Sprint(strings.Repeat("█", filled)),
		strings.Repeat(" ", barWidth-filled),
		st.Percent,
		trend,
	)
	c.Fprintf(b, "%s\n\n", st.Label)
}

func (p *Painter) attacks(b *strings.Builder, attacks []view.Attack) {
	heading.Fprintln(b, "Attack vectors")
	for _, a := range attacks {
		if !a.Entered {
			continue
		}
		c := tierColors[a.Tier]
		c.Fprintf(b, "  %s %s (%s risk)\n", tierIcons[a.Tier], a.Name, a.Tier.Severity())
		fmt.Fprintf(b, "       %s\n", a.Description)
		if a.Reasoning != "" {
			fmt.Fprintf(b, "       %s\n", a.Reasoning)
		}
	}
	b.WriteString("\n")
}

func (p *Painter) details(b *strings.Builder, rows []view.Row) {
	heading.Fprintln(b, "Details")
	width := len("Attribute")
	for _, r := range rows {
		if n := utf8.RuneCountInString(r.Label); n > width {
			width = n
		}
	}
	dim.Fprintf(b, "  %-*s  %s\n", width, "ATTRIBUTE", "VALUE")
	for _, r := range rows {
		value := r.Value
		switch r.Kind {
		case view.RowFlag:
			if r.Flag {
				value = yes.Sprint("✓ " + r.Value)
			} else {
				value = no.Sprint("✗ " + r.Value)
			}
		case view.RowWarning:
			value = no.Sprint("⚠ " + r.Value)
		}
		fmt.Fprintf(b, "  %-*s  %s\n", width, r.Label, value)
	}
	b.WriteString("\n")
}

func (p *Painter) suggestions(b *strings.Builder, list []view.Suggestion) {
	heading.Fprintln(b, "Suggestions")
	for _, s := range list {
		if !s.Entered {
			continue
		}
		switch s.Kind {
		case view.SuggestionPassword:
			good.Fprintln(b, "  Suggested stronger password:")
			fmt.Fprintf(b, "    %s\n", s.Text)
		case view.SuggestionLooksGood:
			good.Fprintf(b, "  ✓ %s\n", s.Text)
		default:
			tip.Fprintf(b, "  • %s\n", s.Text)
		}
	}
}
