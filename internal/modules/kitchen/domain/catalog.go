package domain

import (
	"fmt"
)

type Reward struct {
	XP    int `json:"xp"`
	Coins int `json:"coins"`
}

type Recipe struct {
	ID     string
	Name   string
	Needs  map[string]int
	Reward Reward
}

type Category string

const (
	CategoryCosmetic   Category = "cosmetic"
	CategoryFunctional Category = "functional"
)

func (c Category) Validate() error {
	switch c {
	case CategoryCosmetic, CategoryFunctional:
		return nil
	default:
		return fmt.Errorf("unknown upgrade category: %s", c)
	}
}

// Effect describes what a functional upgrade changes. Zero multipliers mean
// "no change".
type Effect struct {
	XPMultiplier    float64
	CoinMultiplier  float64
	ExtraIngredient bool
}

func (e Effect) IsZero() bool {
	return e == Effect{}
}

type UpgradeItem struct {
	ID          string
	Name        string
	Description string
	Cost        int
	Category    Category
	Effect      Effect
}

type Metric string

const (
	MetricSessionsDone  Metric = "sessions_done"
	MetricRecipesCooked Metric = "recipes_cooked"
	MetricTotalMinutes  Metric = "total_minutes"
	MetricXP            Metric = "xp"
	MetricCoins         Metric = "coins"
	MetricBestStreak    Metric = "best_streak"
	MetricUpgradesOwned Metric = "upgrades_owned"
)

func (m Metric) Validate() error {
	switch m {
	case MetricSessionsDone, MetricRecipesCooked, MetricTotalMinutes, MetricXP, MetricCoins, MetricBestStreak, MetricUpgradesOwned:
		return nil
	default:
		return fmt.Errorf("unknown achievement metric: %s", m)
	}
}

func (m Metric) Value(s State) float64 {
	switch m {
	case MetricSessionsDone:
		return float64(s.SessionsDone)
	case MetricRecipesCooked:
		return float64(s.RecipesCooked)
	case MetricTotalMinutes:
		return s.TotalMinutes
	case MetricXP:
		return float64(s.XP)
	case MetricCoins:
		return float64(s.Coins)
	case MetricBestStreak:
		return float64(s.BestStreak)
	case MetricUpgradesOwned:
		return float64(len(s.OwnedUpgrades))
	default:
		return 0
	}
}

// AtLeast builds a predicate that holds once metric reaches threshold.
func AtLeast(metric Metric, threshold float64) func(State) bool {
	return func(s State) bool {
		return metric.Value(s) >= threshold
	}
}

type Achievement struct {
	ID          string
	Name        string
	Description string
	Predicate   func(State) bool
}

// Catalog is the static game data. It is built once at startup and never
// mutated afterwards.
type Catalog struct {
	Ingredients  []string
	Recipes      []Recipe
	Shop         []UpgradeItem
	Achievements []Achievement
}

func (c Catalog) Validate() error {
	if len(c.Ingredients) == 0 {
		return fmt.Errorf("catalog needs at least one ingredient")
	}
	known := make(map[string]struct{}, len(c.Ingredients))
	for _, name := range c.Ingredients {
		if name == "" {
			return fmt.Errorf("ingredient name is required")
		}
		if _, ok := known[name]; ok {
			return fmt.Errorf("duplicate ingredient: %s", name)
		}
		known[name] = struct{}{}
	}

	recipes := map[string]struct{}{}
	for _, r := range c.Recipes {
		if r.ID == "" {
			return fmt.Errorf("recipe id is required")
		}
		if _, ok := recipes[r.ID]; ok {
			return fmt.Errorf("duplicate recipe: %s", r.ID)
		}
		recipes[r.ID] = struct{}{}
		if len(r.Needs) == 0 {
			return fmt.Errorf("recipe %s needs at least one ingredient", r.ID)
		}
		for name, qty := range r.Needs {
			if _, ok := known[name]; !ok {
				return fmt.Errorf("recipe %s needs unknown ingredient %s", r.ID, name)
			}
			if qty <= 0 {
				return fmt.Errorf("recipe %s needs a positive quantity of %s", r.ID, name)
			}
		}
		if r.Reward.XP < 0 || r.Reward.Coins < 0 {
			return fmt.Errorf("recipe %s reward must be non-negative", r.ID)
		}
	}

	items := map[string]struct{}{}
	for _, item := range c.Shop {
		if item.ID == "" {
			return fmt.Errorf("shop item id is required")
		}
		if _, ok := items[item.ID]; ok {
			return fmt.Errorf("duplicate shop item: %s", item.ID)
		}
		items[item.ID] = struct{}{}
		if item.Cost < 0 {
			return fmt.Errorf("shop item %s cost must be non-negative", item.ID)
		}
		if err := item.Category.Validate(); err != nil {
			return fmt.Errorf("shop item %s: %w", item.ID, err)
		}
		if item.Category == CategoryCosmetic && !item.Effect.IsZero() {
			return fmt.Errorf("cosmetic item %s cannot carry an effect", item.ID)
		}
		if item.Effect.XPMultiplier < 0 || item.Effect.CoinMultiplier < 0 {
			return fmt.Errorf("shop item %s multipliers must be non-negative", item.ID)
		}
	}

	achievements := map[string]struct{}{}
	for _, a := range c.Achievements {
		if a.ID == "" {
			return fmt.Errorf("achievement id is required")
		}
		if _, ok := achievements[a.ID]; ok {
			return fmt.Errorf("duplicate achievement: %s", a.ID)
		}
		achievements[a.ID] = struct{}{}
		if a.Predicate == nil {
			return fmt.Errorf("achievement %s has no predicate", a.ID)
		}
	}
	return nil
}

func (c Catalog) Recipe(id string) (Recipe, bool) {
	for _, r := range c.Recipes {
		if r.ID == id {
			return r, true
		}
	}
	return Recipe{}, false
}

func (c Catalog) Item(id string) (UpgradeItem, bool) {
	for _, item := range c.Shop {
		if item.ID == id {
			return item, true
		}
	}
	return UpgradeItem{}, false
}
