package domain

import (
	"fmt"
	"time"

	apperrors "studychef/internal/platform/errors"
)

// Kitchen owns the progression state and the timer and exposes every
// operation that mutates them. It does no locking or I/O of its own.
type Kitchen struct {
	State State
	Timer Timer

	catalog  Catalog
	rnd      RandomSource
	location *time.Location
}

func NewKitchen(catalog Catalog, rnd RandomSource, location *time.Location, settings Settings) *Kitchen {
	if location == nil {
		location = time.UTC
	}
	return &Kitchen{
		State:    NewState(),
		Timer:    NewTimer(settings),
		catalog:  catalog,
		rnd:      rnd,
		location: location,
	}
}

func (k *Kitchen) Catalog() Catalog {
	return k.catalog
}

func (k *Kitchen) Today(now time.Time) Date {
	return DateOf(now.In(k.location))
}

func (k *Kitchen) Bonuses() Bonuses {
	return BonusesFor(k.State.OwnedUpgrades, k.catalog.Shop)
}

func (k *Kitchen) Configure(settings Settings) error {
	return k.Timer.Configure(settings)
}

func (k *Kitchen) Start(kind Mode, now time.Time) ([]Event, error) {
	if err := k.Timer.Start(kind, now); err != nil {
		return nil, err
	}
	return []Event{SegmentStarted{Mode: kind, Seconds: k.Timer.Remaining, OccurredAt: now}}, nil
}

func (k *Kitchen) TogglePause(now time.Time) bool {
	return k.Timer.TogglePause(now)
}

// Tick drives the timer to now and settles at most one segment completion.
func (k *Kitchen) Tick(now time.Time) (Tick, []Event) {
	tick := k.Timer.Advance(now)
	if tick.FocusSeconds > 0 {
		k.State.TotalMinutes += float64(tick.FocusSeconds) / 60
	}
	var events []Event
	switch tick.Completed {
	case ModeFocus:
		events = append(events, k.completeFocus(now)...)
	case ModeBreak:
		events = append(events, BreakCompleted{Minutes: k.Timer.SegmentMinutes, OccurredAt: now})
	default:
		return tick, k.evaluate(now)
	}
	if k.Timer.Scheme == SchemeChained {
		next := ModeBreak
		if tick.Completed == ModeBreak {
			next = ModeFocus
		}
		k.Timer.begin(next, now)
		events = append(events, SegmentStarted{Mode: next, Seconds: k.Timer.Remaining, Auto: true, OccurredAt: now})
	} else {
		k.Timer.idle()
	}
	return tick, append(events, k.evaluate(now)...)
}

func (k *Kitchen) completeFocus(now time.Time) []Event {
	grant := ComputeFocusReward(k.Timer.SegmentMinutes, k.Bonuses(), k.catalog.Ingredients, k.rnd)
	k.State.grant(grant.Reward)
	k.State.addIngredients(grant.Ingredients)
	k.State.SessionsDone++

	before := k.State.streak()
	after := UpdateStreak(before, k.Today(now))
	k.State.applyStreak(after)

	events := []Event{FocusCompleted{
		Minutes:           k.Timer.SegmentMinutes,
		XPGained:          grant.Reward.XP,
		CoinsGained:       grant.Reward.Coins,
		IngredientsGained: grant.Ingredients,
		OccurredAt:        now,
	}}
	if after.Current != before.Current || after.Best != before.Best {
		events = append(events, StreakChanged{Streak: after.Current, BestStreak: after.Best, OccurredAt: now})
	}
	return events
}

func (k *Kitchen) Cook(recipeID string, now time.Time) (Reward, []Event, error) {
	recipe, ok := k.catalog.Recipe(recipeID)
	if !ok {
		return Reward{}, nil, fmt.Errorf("%w: recipe %s", apperrors.ErrNotFound, recipeID)
	}
	granted, err := k.State.Craft(recipe, k.Bonuses())
	if err != nil {
		return Reward{}, nil, err
	}
	events := []Event{RecipeCooked{RecipeID: recipe.ID, Reward: granted, OccurredAt: now}}
	return granted, append(events, k.evaluate(now)...), nil
}

func (k *Kitchen) Purchase(itemID string, now time.Time) ([]Event, error) {
	item, ok := k.catalog.Item(itemID)
	if !ok {
		return nil, fmt.Errorf("%w: shop item %s", apperrors.ErrNotFound, itemID)
	}
	if err := k.State.Purchase(item); err != nil {
		return nil, err
	}
	events := []Event{UpgradePurchased{ItemID: item.ID, Cost: item.Cost, OccurredAt: now}}
	return append(events, k.evaluate(now)...), nil
}

func (k *Kitchen) AddTask(item ChecklistItem) error {
	return k.State.AddTask(item)
}

func (k *Kitchen) ToggleTask(id string, now time.Time) (ChecklistItem, Reward, []Event, error) {
	item, granted, err := k.State.ToggleTask(id, k.Bonuses())
	if err != nil {
		return ChecklistItem{}, Reward{}, nil, err
	}
	var events []Event
	if granted != (Reward{}) {
		events = append(events, ChecklistCompleted{TaskID: item.ID, Title: item.Title, Reward: granted, OccurredAt: now})
	}
	return item, granted, append(events, k.evaluate(now)...), nil
}

func (k *Kitchen) RemoveTask(id string) error {
	return k.State.RemoveTask(id)
}

// RollOver refreshes the last-open date without touching the streak.
func (k *Kitchen) RollOver(now time.Time) bool {
	return k.State.RollOver(k.Today(now))
}

// Achievements evaluates the catalog, writes earned flags back and returns
// the full map together with events for newly earned ids.
func (k *Kitchen) Achievements(now time.Time) (map[string]bool, []Event) {
	events := k.evaluate(now)
	out := make(map[string]bool, len(k.State.Achievements))
	for id, earned := range k.State.Achievements {
		out[id] = earned
	}
	for _, a := range k.catalog.Achievements {
		if _, ok := out[a.ID]; !ok {
			out[a.ID] = false
		}
	}
	return out, events
}

func (k *Kitchen) evaluate(now time.Time) []Event {
	var events []Event
	for _, id := range k.State.RecordAchievements(k.catalog.Achievements) {
		events = append(events, AchievementEarned{ID: id, OccurredAt: now})
	}
	return events
}

// Snapshot serializes the current state and timer.
func (k *Kitchen) Snapshot() Snapshot {
	return TakeSnapshot(k.State, k.Timer)
}

// Restore replaces state and timer with snap. On error nothing changes. An
// active segment without an anchor is re-anchored at now.
func (k *Kitchen) Restore(snap Snapshot, now time.Time) error {
	state, timer, err := snap.Restore()
	if err != nil {
		return err
	}
	if timer.Active() && timer.Anchor.IsZero() {
		timer.Anchor = now
	}
	k.State = state
	k.Timer = timer
	return nil
}

// Reset returns to a fresh state with settings for the timer.
func (k *Kitchen) Reset(settings Settings) {
	k.State = NewState()
	k.Timer = NewTimer(settings)
}
