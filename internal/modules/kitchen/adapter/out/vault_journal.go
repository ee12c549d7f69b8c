package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"studychef/internal/modules/kitchen/domain"
	"studychef/internal/platform/markdown"
)

const (
	journalSchemaVersion = 1
	journalLogBlock      = "log"
)

// VaultJournal keeps one markdown note per day with running totals in the
// frontmatter and an activity log in a managed block. Text outside the block
// belongs to the user and is preserved.
type VaultJournal struct {
	root     string
	location *time.Location
	catalog  domain.Catalog
}

func NewVaultJournal(root string, location *time.Location, catalog domain.Catalog) *VaultJournal {
	if location == nil {
		location = time.UTC
	}
	return &VaultJournal{root: root, location: location, catalog: catalog}
}

// NotePath is where the note for day lives.
func (j *VaultJournal) NotePath(day domain.Date) string {
	return filepath.Join(j.root, fmt.Sprintf("%04d", day.Year), fmt.Sprintf("%02d", int(day.Month)), fmt.Sprintf("%02d.md", day.Day))
}

func (j *VaultJournal) Publish(_ context.Context, event domain.Event) error {
	at := event.At().In(j.location)
	line, counters, ok := j.entry(event)
	if !ok {
		return nil
	}
	day := domain.DateOf(at)
	path := j.NotePath(day)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create journal dir: %w", err)
	}

	note := markdown.Note{Meta: map[string]any{}}
	if existing, err := os.ReadFile(path); err == nil {
		parsed, parseErr := markdown.Parse(string(existing))
		if parseErr != nil {
			return fmt.Errorf("parse journal %s: %w", path, parseErr)
		}
		note = parsed
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("read journal: %w", err)
	}
	if strings.TrimSpace(note.Body) == "" {
		note.Body = fmt.Sprintf("# Kitchen journal %s\n\n## Notes\n", day)
	}

	entries := append(note.Strings("entries"), at.Format("15:04")+" "+line)
	note.Meta["schema_version"] = journalSchemaVersion
	note.Meta["date"] = day.String()
	note.Meta["entries"] = entries
	for key, delta := range counters {
		note.Add(key, delta)
	}

	logLines := make([]string, 0, len(entries))
	for _, e := range entries {
		logLines = append(logLines, "- "+e)
	}
	note.SetBlock(journalLogBlock, strings.Join(logLines, "\n"))

	rendered, err := note.Render()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return fmt.Errorf("write journal: %w", err)
	}
	return nil
}

func (j *VaultJournal) entry(event domain.Event) (string, map[string]int, bool) {
	switch ev := event.(type) {
	case domain.FocusCompleted:
		line := fmt.Sprintf("Focus %d min: +%d XP, +%d coins", ev.Minutes, ev.XPGained, ev.CoinsGained)
		if len(ev.IngredientsGained) > 0 {
			line += " (" + strings.Join(ev.IngredientsGained, ", ") + ")"
		}
		return line, map[string]int{
			"focus_minutes": ev.Minutes,
			"sessions":      1,
			"xp_gained":     ev.XPGained,
			"coins_gained":  ev.CoinsGained,
		}, true
	case domain.RecipeCooked:
		name := ev.RecipeID
		if r, ok := j.catalog.Recipe(ev.RecipeID); ok && r.Name != "" {
			name = r.Name
		}
		return fmt.Sprintf("Cooked %s: +%d XP, +%d coins", name, ev.Reward.XP, ev.Reward.Coins), map[string]int{
			"recipes_cooked": 1,
			"xp_gained":      ev.Reward.XP,
			"coins_gained":   ev.Reward.Coins,
		}, true
	case domain.ChecklistCompleted:
		return fmt.Sprintf("Task done: %s", ev.Title), map[string]int{
			"tasks_done":   1,
			"xp_gained":    ev.Reward.XP,
			"coins_gained": ev.Reward.Coins,
		}, true
	case domain.UpgradePurchased:
		return fmt.Sprintf("Bought %s for %d coins", ev.ItemID, ev.Cost), nil, true
	case domain.AchievementEarned:
		return fmt.Sprintf("Achievement: %s", ev.ID), nil, true
	case domain.StreakChanged:
		return fmt.Sprintf("Streak %d (best %d)", ev.Streak, ev.BestStreak), nil, true
	default:
		return "", nil, false
	}
}
