package render

import "time"

// Options controls the renderer's timings. With Animate off every entrance
// is applied synchronously through the same code path.
type Options struct {
	Animate bool

	BarDelay         time.Duration // strength bar grows from 0 after this delay
	RevealTick       time.Duration // per character of the narrative
	StaggerStep      time.Duration // per list entry
	SuggestionOffset time.Duration // first tip after the suggested password
	EntryDelay       time.Duration // suggested password / affirmation entrance
	SectionDelay     time.Duration // first section entrance
	SectionStep      time.Duration // per section
	EnterDuration    time.Duration // panel enter transition
	ExitDuration     time.Duration // panel exit transition
}

// DefaultOptions returns the stock animation timings.
func DefaultOptions() Options {
	return Options{
		Animate:          true,
		BarDelay:         50 * time.Millisecond,
		RevealTick:       10 * time.Millisecond,
		StaggerStep:      100 * time.Millisecond,
		SuggestionOffset: 150 * time.Millisecond,
		EntryDelay:       100 * time.Millisecond,
		SectionDelay:     100 * time.Millisecond,
		SectionStep:      75 * time.Millisecond,
		EnterDuration:    500 * time.Millisecond,
		ExitDuration:     400 * time.Millisecond,
	}
}
