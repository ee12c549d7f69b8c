package domain_test

import (
	"time"

	"studychef/internal/modules/kitchen/domain"
)

// sequence replays fixed uniform draws, cycling when exhausted.
type sequence struct {
	values []float64
	idx    int
}

func (s *sequence) Float64() float64 {
	v := s.values[s.idx%len(s.values)]
	s.idx++
	return v
}

var day1 = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func testCatalog() domain.Catalog {
	return domain.Catalog{
		Ingredients: []string{"Tomato", "Basil", "Egg", "Flour", "Milk", "Sugar", "Butter", "Berry", "Cocoa", "Cheese", "Noodle", "Mushroom"},
		Recipes: []domain.Recipe{
			{ID: "pancakes", Name: "Fluffy Pancakes", Needs: map[string]int{"Flour": 2, "Egg": 1, "Milk": 1, "Sugar": 1}, Reward: domain.Reward{XP: 15, Coins: 10}},
			{ID: "caprese", Name: "Caprese Salad", Needs: map[string]int{"Tomato": 2, "Basil": 1, "Cheese": 1}, Reward: domain.Reward{XP: 12, Coins: 8}},
		},
		Shop: []domain.UpgradeItem{
			{ID: "skin-sakura", Name: "Sakura Apron", Cost: 60, Category: domain.CategoryFunctional, Effect: domain.Effect{CoinMultiplier: 1.05}},
			{ID: "skin-mint", Name: "Mint Mixer", Cost: 60, Category: domain.CategoryFunctional, Effect: domain.Effect{XPMultiplier: 1.05}},
			{ID: "bg-pastel", Name: "Pastel Wallpaper", Cost: 30, Category: domain.CategoryCosmetic},
			{ID: "timer-quick", Name: "Quick Chef", Cost: 80, Category: domain.CategoryFunctional, Effect: domain.Effect{ExtraIngredient: true}},
		},
		Achievements: []domain.Achievement{
			{ID: "first-session", Predicate: domain.AtLeast(domain.MetricSessionsDone, 1)},
			{ID: "fifth-session", Predicate: domain.AtLeast(domain.MetricSessionsDone, 5)},
			{ID: "ten-recipes", Predicate: domain.AtLeast(domain.MetricRecipesCooked, 10)},
			{ID: "100-mins", Predicate: domain.AtLeast(domain.MetricTotalMinutes, 100)},
		},
	}
}
