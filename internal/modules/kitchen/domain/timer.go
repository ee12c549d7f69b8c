package domain

import (
	"fmt"
	"time"

	apperrors "studychef/internal/platform/errors"
)

type Mode string

const (
	ModeIdle  Mode = "idle"
	ModeFocus Mode = "focus"
	ModeBreak Mode = "break"
)

func (m Mode) Validate() error {
	switch m {
	case ModeIdle, ModeFocus, ModeBreak:
		return nil
	default:
		return fmt.Errorf("unknown timer mode: %s", m)
	}
}

type Scheme string

const (
	// SchemeChained alternates focus and break segments automatically.
	SchemeChained Scheme = "chained"
	// SchemeFreeform returns to idle after every segment.
	SchemeFreeform Scheme = "freeform"
)

func (s Scheme) Validate() error {
	switch s {
	case SchemeChained, SchemeFreeform:
		return nil
	default:
		return fmt.Errorf("unknown scheme: %s", s)
	}
}

type Settings struct {
	FocusMinutes int
	BreakMinutes int
	Scheme       Scheme
}

func DefaultSettings() Settings {
	return Settings{FocusMinutes: 25, BreakMinutes: 5, Scheme: SchemeChained}
}

func (s Settings) Validate() error {
	if s.FocusMinutes <= 0 {
		return fmt.Errorf("%w: focus length must be positive, got %d", apperrors.ErrInvalidConfiguration, s.FocusMinutes)
	}
	if s.BreakMinutes <= 0 {
		return fmt.Errorf("%w: break length must be positive, got %d", apperrors.ErrInvalidConfiguration, s.BreakMinutes)
	}
	if err := s.Scheme.Validate(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidConfiguration, err)
	}
	return nil
}

func (s Settings) minutes(kind Mode) int {
	if kind == ModeBreak {
		return s.BreakMinutes
	}
	return s.FocusMinutes
}

// Timer is the focus/break state machine. Scheme and SegmentMinutes are
// captured when a segment starts; Settings only apply to the next start.
type Timer struct {
	Mode           Mode
	Remaining      int
	Paused         bool
	Scheme         Scheme
	SegmentMinutes int
	Settings       Settings
	Anchor         time.Time
}

func NewTimer(settings Settings) Timer {
	return Timer{Mode: ModeIdle, Scheme: settings.Scheme, Settings: settings}
}

func (t Timer) Active() bool {
	return t.Mode != ModeIdle
}

// Configure replaces the settings for future segments. The running segment
// keeps its length.
func (t *Timer) Configure(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	t.Settings = s
	return nil
}

// Start begins a focus or break segment at now, dropping whatever segment was
// running.
func (t *Timer) Start(kind Mode, now time.Time) error {
	if kind != ModeFocus && kind != ModeBreak {
		return fmt.Errorf("%w: cannot start a %q segment", apperrors.ErrInvalidInput, kind)
	}
	t.begin(kind, now)
	return nil
}

// begin starts a segment of kind, which must be focus or break.
func (t *Timer) begin(kind Mode, now time.Time) {
	t.Mode = kind
	t.SegmentMinutes = t.Settings.minutes(kind)
	t.Remaining = t.SegmentMinutes * 60
	t.Paused = false
	t.Scheme = t.Settings.Scheme
	t.Anchor = now
}

// TogglePause pauses or resumes the running segment. Resuming re-anchors at
// now so paused time is never charged. Idle timers cannot be paused.
func (t *Timer) TogglePause(now time.Time) bool {
	if !t.Active() {
		return false
	}
	t.Paused = !t.Paused
	if !t.Paused {
		t.Anchor = now
	}
	return t.Paused
}

func (t *Timer) idle() {
	t.Mode = ModeIdle
	t.Remaining = 0
	t.Paused = false
	t.SegmentMinutes = 0
}

// Tick is what one call to Advance did.
type Tick struct {
	Elapsed      int
	FocusSeconds int
	Completed    Mode
}

// Advance consumes the whole seconds elapsed since the anchor. The anchor moves
// by exactly the consumed seconds so sub-second remainders carry into the next
// call. Completed is set on the one call that drives Remaining to zero or below.
// FocusSeconds is capped at the seconds that were remaining, so a catch-up tick
// after a long absence credits at most the rest of the segment.
func (t *Timer) Advance(now time.Time) Tick {
	if !t.Active() || t.Paused {
		return Tick{}
	}
	if now.Before(t.Anchor) {
		t.Anchor = now
		return Tick{}
	}
	elapsed := int(now.Sub(t.Anchor) / time.Second)
	if elapsed <= 0 {
		return Tick{}
	}
	t.Anchor = t.Anchor.Add(time.Duration(elapsed) * time.Second)
	out := Tick{Elapsed: elapsed}
	if t.Remaining <= 0 {
		return out
	}
	if t.Mode == ModeFocus {
		out.FocusSeconds = min(elapsed, t.Remaining)
	}
	t.Remaining -= elapsed
	if t.Remaining <= 0 {
		out.Completed = t.Mode
	}
	return out
}
