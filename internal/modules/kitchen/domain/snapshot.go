package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	apperrors "studychef/internal/platform/errors"
)

// SnapshotVersion is the current wire version. Older versions are upgraded on
// decode; newer ones are rejected.
const SnapshotVersion = 1

type Snapshot struct {
	Version  int              `json:"version"`
	Progress ProgressSnapshot `json:"progress"`
	Timer    TimerSnapshot    `json:"timer"`
}

type ProgressSnapshot struct {
	XP             int                 `json:"xp"`
	Coins          int                 `json:"coins"`
	Streak         int                 `json:"streak"`
	BestStreak     int                 `json:"best_streak"`
	TotalMinutes   float64             `json:"total_minutes"`
	SessionsDone   int                 `json:"sessions_done"`
	RecipesCooked  int                 `json:"recipes_cooked"`
	Inventory      map[string]int      `json:"inventory"`
	OwnedUpgrades  []string            `json:"owned_upgrades"`
	Achievements   map[string]bool     `json:"achievements"`
	LastActiveDate string              `json:"last_active_date,omitempty"`
	LastOpenDate   string              `json:"last_open_date,omitempty"`
	Checklist      []ChecklistSnapshot `json:"checklist"`
}

type ChecklistSnapshot struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Tag       string    `json:"tag,omitempty"`
	Done      bool      `json:"done"`
	Rewarded  bool      `json:"rewarded"`
	CreatedAt time.Time `json:"created_at"`
}

type TimerSnapshot struct {
	Mode               Mode       `json:"mode"`
	RemainingSeconds   int        `json:"remaining_seconds"`
	Paused             bool       `json:"paused"`
	Scheme             Scheme     `json:"scheme"`
	FocusLengthMinutes int        `json:"focus_length_minutes"`
	BreakLengthMinutes int        `json:"break_length_minutes"`
	SegmentScheme      Scheme     `json:"segment_scheme,omitempty"`
	SegmentMinutes     int        `json:"segment_minutes,omitempty"`
	Anchor             *time.Time `json:"anchor,omitempty"`
}

// DefaultSnapshot is the snapshot of a fresh install using settings.
func DefaultSnapshot(settings Settings) Snapshot {
	return TakeSnapshot(NewState(), NewTimer(settings))
}

func TakeSnapshot(s State, t Timer) Snapshot {
	owned := make([]string, 0, len(s.OwnedUpgrades))
	for id, ok := range s.OwnedUpgrades {
		if ok {
			owned = append(owned, id)
		}
	}
	sort.Strings(owned)

	inventory := make(map[string]int, len(s.Inventory))
	for k, v := range s.Inventory {
		inventory[k] = v
	}
	achievements := make(map[string]bool, len(s.Achievements))
	for k, v := range s.Achievements {
		achievements[k] = v
	}
	checklist := make([]ChecklistSnapshot, 0, len(s.Checklist))
	for _, item := range s.Checklist {
		checklist = append(checklist, ChecklistSnapshot{
			ID:        item.ID,
			Title:     item.Title,
			Tag:       item.Tag,
			Done:      item.Done,
			Rewarded:  item.Rewarded,
			CreatedAt: item.CreatedAt,
		})
	}

	ts := TimerSnapshot{
		Mode:               t.Mode,
		RemainingSeconds:   t.Remaining,
		Paused:             t.Paused,
		Scheme:             t.Settings.Scheme,
		FocusLengthMinutes: t.Settings.FocusMinutes,
		BreakLengthMinutes: t.Settings.BreakMinutes,
	}
	if t.Active() {
		ts.SegmentScheme = t.Scheme
		ts.SegmentMinutes = t.SegmentMinutes
		if !t.Anchor.IsZero() {
			anchor := t.Anchor
			ts.Anchor = &anchor
		}
	}

	return Snapshot{
		Version: SnapshotVersion,
		Progress: ProgressSnapshot{
			XP:             s.XP,
			Coins:          s.Coins,
			Streak:         s.Streak,
			BestStreak:     s.BestStreak,
			TotalMinutes:   s.TotalMinutes,
			SessionsDone:   s.SessionsDone,
			RecipesCooked:  s.RecipesCooked,
			Inventory:      inventory,
			OwnedUpgrades:  owned,
			Achievements:   achievements,
			LastActiveDate: s.LastActiveDate.String(),
			LastOpenDate:   s.LastOpenDate.String(),
			Checklist:      checklist,
		},
		Timer: ts,
	}
}

// Restore validates the snapshot and builds state and timer from it. Every
// failure wraps apperrors.ErrCorruptSnapshot.
func (snap Snapshot) Restore() (State, Timer, error) {
	if snap.Version < 1 || snap.Version > SnapshotVersion {
		return State{}, Timer{}, corrupt("unsupported version %d", snap.Version)
	}
	p := snap.Progress

	lastActive, err := ParseDate(p.LastActiveDate)
	if err != nil {
		return State{}, Timer{}, corrupt("last active date: %v", err)
	}
	lastOpen, err := ParseDate(p.LastOpenDate)
	if err != nil {
		return State{}, Timer{}, corrupt("last open date: %v", err)
	}

	state := NewState()
	state.XP = p.XP
	state.Coins = p.Coins
	state.Streak = p.Streak
	state.BestStreak = p.BestStreak
	state.TotalMinutes = p.TotalMinutes
	state.SessionsDone = p.SessionsDone
	state.RecipesCooked = p.RecipesCooked
	state.LastActiveDate = lastActive
	state.LastOpenDate = lastOpen
	for k, v := range p.Inventory {
		state.Inventory[k] = v
	}
	for _, id := range p.OwnedUpgrades {
		state.OwnedUpgrades[id] = true
	}
	for k, v := range p.Achievements {
		state.Achievements[k] = v
	}
	for _, item := range p.Checklist {
		state.Checklist = append(state.Checklist, ChecklistItem{
			ID:        item.ID,
			Title:     item.Title,
			Tag:       item.Tag,
			Done:      item.Done,
			Rewarded:  item.Rewarded || item.Done,
			CreatedAt: item.CreatedAt,
		})
	}
	if err := state.Validate(); err != nil {
		return State{}, Timer{}, corrupt("%v", err)
	}

	ts := snap.Timer
	settings := Settings{FocusMinutes: ts.FocusLengthMinutes, BreakMinutes: ts.BreakLengthMinutes, Scheme: ts.Scheme}
	if err := settings.Validate(); err != nil {
		return State{}, Timer{}, corrupt("timer settings: %v", err)
	}
	if err := ts.Mode.Validate(); err != nil {
		return State{}, Timer{}, corrupt("%v", err)
	}
	timer := NewTimer(settings)
	if ts.Mode == ModeIdle {
		return state, timer, nil
	}

	if ts.RemainingSeconds <= 0 {
		return State{}, Timer{}, corrupt("active %s segment needs remaining seconds, got %d", ts.Mode, ts.RemainingSeconds)
	}
	timer.Mode = ts.Mode
	timer.Remaining = ts.RemainingSeconds
	timer.Paused = ts.Paused
	timer.Scheme = ts.SegmentScheme
	if timer.Scheme == "" {
		timer.Scheme = settings.Scheme
	}
	if err := timer.Scheme.Validate(); err != nil {
		return State{}, Timer{}, corrupt("segment %v", err)
	}
	timer.SegmentMinutes = ts.SegmentMinutes
	if timer.SegmentMinutes <= 0 {
		timer.SegmentMinutes = settings.minutes(ts.Mode)
	}
	if ts.Anchor != nil {
		timer.Anchor = *ts.Anchor
	}
	return state, timer, nil
}

// EncodeSnapshot renders the snapshot as indented JSON with a trailing newline.
func EncodeSnapshot(snap Snapshot) ([]byte, error) {
	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return append(raw, '\n'), nil
}

// DecodeSnapshot parses raw onto the defaults for settings, so absent fields
// keep their initial values and unknown fields are ignored. The result is
// validated by Restore before it is returned.
func DecodeSnapshot(raw []byte, settings Settings) (Snapshot, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return Snapshot{}, corrupt("empty snapshot")
	}
	snap := DefaultSnapshot(settings)
	if err := json.Unmarshal(trimmed, &snap); err != nil {
		return Snapshot{}, corrupt("decode: %v", err)
	}
	if snap.Progress.Inventory == nil {
		snap.Progress.Inventory = map[string]int{}
	}
	if snap.Progress.Achievements == nil {
		snap.Progress.Achievements = map[string]bool{}
	}
	if _, _, err := snap.Restore(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

func corrupt(format string, args ...any) error {
	return fmt.Errorf("%w: %s", apperrors.ErrCorruptSnapshot, fmt.Sprintf(format, args...))
}
