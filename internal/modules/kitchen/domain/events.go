package domain

import "time"

type EventKind string

const (
	EventSegmentStarted     EventKind = "segment_started"
	EventFocusCompleted     EventKind = "focus_completed"
	EventBreakCompleted     EventKind = "break_completed"
	EventStreakChanged      EventKind = "streak_changed"
	EventRecipeCooked       EventKind = "recipe_cooked"
	EventUpgradePurchased   EventKind = "upgrade_purchased"
	EventChecklistCompleted EventKind = "checklist_completed"
	EventAchievementEarned  EventKind = "achievement_earned"
)

func EventKinds() []EventKind {
	return []EventKind{
		EventSegmentStarted,
		EventFocusCompleted,
		EventBreakCompleted,
		EventStreakChanged,
		EventRecipeCooked,
		EventUpgradePurchased,
		EventChecklistCompleted,
		EventAchievementEarned,
	}
}

// Event is a notification emitted by the kitchen for renderers, sound and
// toast layers, the history ledger and hook plugins.
type Event interface {
	Kind() EventKind
	At() time.Time
}

type SegmentStarted struct {
	Mode       Mode      `json:"mode"`
	Seconds    int       `json:"seconds"`
	Auto       bool      `json:"auto"`
	OccurredAt time.Time `json:"occurred_at"`
}

type FocusCompleted struct {
	Minutes           int       `json:"minutes"`
	XPGained          int       `json:"xp_gained"`
	CoinsGained       int       `json:"coins_gained"`
	IngredientsGained []string  `json:"ingredients_gained"`
	OccurredAt        time.Time `json:"occurred_at"`
}

type BreakCompleted struct {
	Minutes    int       `json:"minutes"`
	OccurredAt time.Time `json:"occurred_at"`
}

type StreakChanged struct {
	Streak     int       `json:"streak"`
	BestStreak int       `json:"best_streak"`
	OccurredAt time.Time `json:"occurred_at"`
}

type RecipeCooked struct {
	RecipeID   string    `json:"recipe_id"`
	Reward     Reward    `json:"reward"`
	OccurredAt time.Time `json:"occurred_at"`
}

type UpgradePurchased struct {
	ItemID     string    `json:"item_id"`
	Cost       int       `json:"cost"`
	OccurredAt time.Time `json:"occurred_at"`
}

type ChecklistCompleted struct {
	TaskID     string    `json:"task_id"`
	Title      string    `json:"title"`
	Reward     Reward    `json:"reward"`
	OccurredAt time.Time `json:"occurred_at"`
}

type AchievementEarned struct {
	ID         string    `json:"id"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (SegmentStarted) Kind() EventKind     { return EventSegmentStarted }
func (FocusCompleted) Kind() EventKind     { return EventFocusCompleted }
func (BreakCompleted) Kind() EventKind     { return EventBreakCompleted }
func (StreakChanged) Kind() EventKind      { return EventStreakChanged }
func (RecipeCooked) Kind() EventKind       { return EventRecipeCooked }
func (UpgradePurchased) Kind() EventKind   { return EventUpgradePurchased }
func (ChecklistCompleted) Kind() EventKind { return EventChecklistCompleted }
func (AchievementEarned) Kind() EventKind  { return EventAchievementEarned }

func (e SegmentStarted) At() time.Time     { return e.OccurredAt }
func (e FocusCompleted) At() time.Time     { return e.OccurredAt }
func (e BreakCompleted) At() time.Time     { return e.OccurredAt }
func (e StreakChanged) At() time.Time      { return e.OccurredAt }
func (e RecipeCooked) At() time.Time       { return e.OccurredAt }
func (e UpgradePurchased) At() time.Time   { return e.OccurredAt }
func (e ChecklistCompleted) At() time.Time { return e.OccurredAt }
func (e AchievementEarned) At() time.Time  { return e.OccurredAt }
