package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"

	"studychef/internal/modules/kitchen/domain"
	apperrors "studychef/internal/platform/errors"
)

func runningSnapshot() domain.Snapshot {
	st := domain.NewState()
	st.XP, st.Coins = 42, 17
	st.Streak, st.BestStreak = 2, 3
	st.TotalMinutes = 50.5
	st.SessionsDone, st.RecipesCooked = 2, 1
	st.Inventory = map[string]int{"Egg": 1, "Basil": 2}
	st.OwnedUpgrades["bg-pastel"] = true
	st.Achievements["first-session"] = true
	st.LastActiveDate = domain.DateOf(day1)
	st.LastOpenDate = domain.DateOf(day1)
	st.Checklist = []domain.ChecklistItem{{ID: "t1", Title: "Read chapter 3", Tag: "bio", Done: true, Rewarded: true, CreatedAt: day1}}

	timer := domain.NewTimer(domain.DefaultSettings())
	_ = timer.Start(domain.ModeFocus, day1)
	timer.Advance(day1.Add(90 * time.Second))
	return domain.TakeSnapshot(st, timer)
}

func TestEncodeSnapshotGolden(t *testing.T) {
	t.Parallel()
	raw, err := domain.EncodeSnapshot(runningSnapshot())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "snapshot_focus_running", raw)
}

func TestSnapshotSurvivesEncodeDecode(t *testing.T) {
	t.Parallel()
	raw, _ := domain.EncodeSnapshot(runningSnapshot())
	snap, err := domain.DecodeSnapshot(raw, domain.DefaultSettings())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	st, timer, err := snap.Restore()
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if st.XP != 42 || st.Quantity("Basil") != 2 || !st.Owns("bg-pastel") || st.LastActiveDate != domain.DateOf(day1) {
		t.Fatalf("unexpected state: %+v", st)
	}
	if timer.Mode != domain.ModeFocus || timer.Remaining != 1410 || timer.SegmentMinutes != 25 {
		t.Fatalf("unexpected timer: %+v", timer)
	}
	if !timer.Anchor.Equal(day1.Add(90 * time.Second)) {
		t.Fatalf("unexpected anchor: %s", timer.Anchor)
	}
}

func TestDecodeSnapshotFillsMissingFields(t *testing.T) {
	t.Parallel()
	settings := domain.Settings{FocusMinutes: 40, BreakMinutes: 8, Scheme: domain.SchemeFreeform}
	snap, err := domain.DecodeSnapshot([]byte(`{"progress":{"xp":3,"checklist":[{"id":"a","title":"old","done":true}]},"extra":true}`), settings)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	st, timer, err := snap.Restore()
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if snap.Version != domain.SnapshotVersion || st.XP != 3 || st.Coins != 0 {
		t.Fatalf("unexpected defaults: %+v", snap)
	}
	if !st.Checklist[0].Rewarded {
		t.Fatalf("completed legacy tasks must count as rewarded")
	}
	if timer.Mode != domain.ModeIdle || timer.Settings != settings {
		t.Fatalf("expected idle timer with configured settings, got %+v", timer)
	}
}

func TestDecodeSnapshotRejectsCorruptInput(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"empty":            "  ",
		"not json":         "{progress",
		"future version":   `{"version":2}`,
		"zero version":     `{"version":0}`,
		"negative coins":   `{"progress":{"coins":-1}}`,
		"streak over best": `{"progress":{"streak":4,"best_streak":2}}`,
		"bad date":         `{"progress":{"last_active_date":"yesterday"}}`,
		"unknown mode":     `{"timer":{"mode":"nap"}}`,
		"bad lengths":      `{"timer":{"focus_length_minutes":0}}`,
		"negative inv":     `{"progress":{"inventory":{"Egg":-2}}}`,
		"negative remain":  `{"timer":{"mode":"focus","remaining_seconds":-5}}`,
		"spent focus":      `{"timer":{"mode":"focus","remaining_seconds":0}}`,
		"spent break":      `{"timer":{"mode":"break"}}`,
	}
	for name, raw := range cases {
		raw := raw
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if _, err := domain.DecodeSnapshot([]byte(raw), domain.DefaultSettings()); !errors.Is(err, apperrors.ErrCorruptSnapshot) {
				t.Fatalf("expected corrupt snapshot, got %v", err)
			}
		})
	}
}
