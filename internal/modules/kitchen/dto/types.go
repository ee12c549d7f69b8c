package dto

import "time"

type TimerOutput struct {
	Mode             string
	RemainingSeconds int
	Paused           bool
	Scheme           string
	SegmentMinutes   int
	FocusMinutes     int
	BreakMinutes     int
	ConfiguredScheme string
}

type InventoryLine struct {
	Ingredient string
	Quantity   int
}

type BonusOutput struct {
	XPMultiplier    float64
	CoinMultiplier  float64
	ExtraIngredient bool
}

type StatusOutput struct {
	XP             int
	Coins          int
	Streak         int
	BestStreak     int
	TotalMinutes   float64
	SessionsDone   int
	RecipesCooked  int
	LastActiveDate string
	Inventory      []InventoryLine
	OwnedUpgrades  []string
	Bonuses        BonusOutput
	Timer          TimerOutput
}

type EventOutput struct {
	Kind       string
	OccurredAt time.Time
	Message    string
}

type OpenOutput struct {
	Status     StatusOutput
	Fresh      bool
	Recovered  bool
	DayChanged bool
}

type StartInput struct {
	Mode string
}

type StartOutput struct {
	Timer  TimerOutput
	Events []EventOutput
}

type TickOutput struct {
	Timer     TimerOutput
	Elapsed   int
	Completed string
	Events    []EventOutput
}

// ConfigureInput changes only the fields that are set.
type ConfigureInput struct {
	FocusMinutes *int
	BreakMinutes *int
	Scheme       *string
}

type IngredientNeed struct {
	Ingredient string
	Need       int
	Have       int
}

type RecipeOutput struct {
	ID      string
	Name    string
	Needs   []IngredientNeed
	XP      int
	Coins   int
	CanCook bool
}

type CookOutput struct {
	RecipeID string
	XP       int
	Coins    int
	Events   []EventOutput
}

type ShopItemOutput struct {
	ID          string
	Name        string
	Description string
	Category    string
	Effect      string
	Cost        int
	Owned       bool
	Affordable  bool
}

type BuyOutput struct {
	ItemID    string
	Cost      int
	CoinsLeft int
	Events    []EventOutput
}

type TaskOutput struct {
	ID        string
	Title     string
	Tag       string
	Done      bool
	CreatedAt time.Time
}

type AddTaskInput struct {
	Title string
	Tag   string
}

type ToggleTaskOutput struct {
	Task   TaskOutput
	XP     int
	Coins  int
	Events []EventOutput
}

type AchievementOutput struct {
	ID          string
	Name        string
	Description string
	Earned      bool
}

type DayStatOutput struct {
	Date         string
	FocusMinutes int
	Sessions     int
}
