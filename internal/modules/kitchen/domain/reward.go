package domain

import "math"

// RandomSource yields uniform values in [0, 1).
type RandomSource interface {
	Float64() float64
}

const (
	minutesPerCoin        = 3
	minutesPerIngredient  = 5
	bonusIngredientChance = 0.25
)

// ChecklistReward is granted the first time a checklist item is completed.
var ChecklistReward = Reward{XP: 5, Coins: 3}

// Bonuses is the combined effect of every owned functional upgrade.
type Bonuses struct {
	XPMultiplier    float64
	CoinMultiplier  float64
	ExtraIngredient bool
}

func NoBonuses() Bonuses {
	return Bonuses{XPMultiplier: 1, CoinMultiplier: 1}
}

// BonusesFor folds the effects of the owned functional items in shop.
// Multipliers from several items compound.
func BonusesFor(owned map[string]bool, shop []UpgradeItem) Bonuses {
	b := NoBonuses()
	for _, item := range shop {
		if !owned[item.ID] || item.Category != CategoryFunctional {
			continue
		}
		if item.Effect.XPMultiplier > 0 {
			b.XPMultiplier *= item.Effect.XPMultiplier
		}
		if item.Effect.CoinMultiplier > 0 {
			b.CoinMultiplier *= item.Effect.CoinMultiplier
		}
		if item.Effect.ExtraIngredient {
			b.ExtraIngredient = true
		}
	}
	return b
}

// Apply is the single place multipliers touch a reward. XP and coins are
// rounded independently.
func (b Bonuses) Apply(r Reward) Reward {
	return Reward{
		XP:    int(math.Round(float64(r.XP) * b.XPMultiplier)),
		Coins: int(math.Round(float64(r.Coins) * b.CoinMultiplier)),
	}
}

type FocusReward struct {
	Reward      Reward
	Ingredients []string
}

// ComputeFocusReward computes the grant for a completed focus segment of
// minutes length. The bonus roll is drawn first, then one draw per ingredient.
func ComputeFocusReward(minutes int, b Bonuses, ingredients []string, rnd RandomSource) FocusReward {
	if minutes < 0 {
		minutes = 0
	}
	base := Reward{XP: minutes, Coins: minutes / minutesPerCoin}

	count := minutes / minutesPerIngredient
	if rnd.Float64() < bonusIngredientChance {
		count++
	}
	if b.ExtraIngredient {
		count++
	}
	drawn := make([]string, 0, count)
	if len(ingredients) > 0 {
		for i := 0; i < count; i++ {
			drawn = append(drawn, pick(ingredients, rnd))
		}
	}
	return FocusReward{Reward: b.Apply(base), Ingredients: drawn}
}

func pick(items []string, rnd RandomSource) string {
	idx := int(rnd.Float64() * float64(len(items)))
	if idx >= len(items) {
		idx = len(items) - 1
	}
	if idx < 0 {
		idx = 0
	}
	return items[idx]
}
