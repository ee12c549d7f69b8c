package usecase

import (
	"fmt"
	"strings"

	"studychef/internal/modules/kitchen/domain"
)

func describe(e domain.Event, catalog domain.Catalog) string {
	switch ev := e.(type) {
	case domain.SegmentStarted:
		return fmt.Sprintf("%s started (%s)", title(string(ev.Mode)), clockFace(ev.Seconds))
	case domain.FocusCompleted:
		return fmt.Sprintf("Focus done: +%d XP, +%d coins, %s", ev.XPGained, ev.CoinsGained, countIngredients(ev.IngredientsGained))
	case domain.BreakCompleted:
		return "Break over"
	case domain.StreakChanged:
		return fmt.Sprintf("Streak %d (best %d)", ev.Streak, ev.BestStreak)
	case domain.RecipeCooked:
		name := ev.RecipeID
		if r, ok := catalog.Recipe(ev.RecipeID); ok && r.Name != "" {
			name = r.Name
		}
		return fmt.Sprintf("Cooked %s: +%d XP, +%d coins", name, ev.Reward.XP, ev.Reward.Coins)
	case domain.UpgradePurchased:
		name := ev.ItemID
		if item, ok := catalog.Item(ev.ItemID); ok && item.Name != "" {
			name = item.Name
		}
		return fmt.Sprintf("Bought %s for %d coins", name, ev.Cost)
	case domain.ChecklistCompleted:
		return fmt.Sprintf("Task done: %s (+%d XP, +%d coins)", ev.Title, ev.Reward.XP, ev.Reward.Coins)
	case domain.AchievementEarned:
		for _, a := range catalog.Achievements {
			if a.ID == ev.ID && a.Name != "" {
				return "Achievement unlocked: " + a.Name
			}
		}
		return "Achievement unlocked: " + ev.ID
	default:
		return string(e.Kind())
	}
}

func describeEffect(item domain.UpgradeItem) string {
	if item.Category == domain.CategoryCosmetic {
		return "cosmetic"
	}
	var parts []string
	if item.Effect.XPMultiplier > 0 && item.Effect.XPMultiplier != 1 {
		parts = append(parts, fmt.Sprintf("XP x%.2f", item.Effect.XPMultiplier))
	}
	if item.Effect.CoinMultiplier > 0 && item.Effect.CoinMultiplier != 1 {
		parts = append(parts, fmt.Sprintf("coins x%.2f", item.Effect.CoinMultiplier))
	}
	if item.Effect.ExtraIngredient {
		parts = append(parts, "+1 ingredient per focus")
	}
	if len(parts) == 0 {
		return "no effect"
	}
	return strings.Join(parts, ", ")
}

func countIngredients(names []string) string {
	if len(names) == 1 {
		return "1 ingredient"
	}
	return fmt.Sprintf("%d ingredients", len(names))
}

func clockFace(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
