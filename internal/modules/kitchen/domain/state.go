package domain

import (
	"fmt"
	"sort"
	"time"
)

type ChecklistItem struct {
	ID        string
	Title     string
	Tag       string
	Done      bool
	Rewarded  bool
	CreatedAt time.Time
}

// State is the progression economy. Mutate it only through its methods so the
// invariants checked by Validate keep holding.
type State struct {
	XP             int
	Coins          int
	Streak         int
	BestStreak     int
	TotalMinutes   float64
	SessionsDone   int
	RecipesCooked  int
	Inventory      map[string]int
	OwnedUpgrades  map[string]bool
	Achievements   map[string]bool
	LastActiveDate Date
	LastOpenDate   Date
	Checklist      []ChecklistItem
}

func NewState() State {
	return State{
		Inventory:     map[string]int{},
		OwnedUpgrades: map[string]bool{},
		Achievements:  map[string]bool{},
	}
}

func (s State) Validate() error {
	switch {
	case s.XP < 0:
		return fmt.Errorf("xp must be non-negative, got %d", s.XP)
	case s.Coins < 0:
		return fmt.Errorf("coins must be non-negative, got %d", s.Coins)
	case s.Streak < 0:
		return fmt.Errorf("streak must be non-negative, got %d", s.Streak)
	case s.BestStreak < s.Streak:
		return fmt.Errorf("best streak %d is below streak %d", s.BestStreak, s.Streak)
	case s.TotalMinutes < 0:
		return fmt.Errorf("total minutes must be non-negative, got %v", s.TotalMinutes)
	case s.SessionsDone < 0:
		return fmt.Errorf("sessions done must be non-negative, got %d", s.SessionsDone)
	case s.RecipesCooked < 0:
		return fmt.Errorf("recipes cooked must be non-negative, got %d", s.RecipesCooked)
	}
	for name, qty := range s.Inventory {
		if qty < 0 {
			return fmt.Errorf("inventory %s is negative: %d", name, qty)
		}
	}
	seen := make(map[string]struct{}, len(s.Checklist))
	for _, item := range s.Checklist {
		if item.ID == "" {
			return fmt.Errorf("checklist item id is required")
		}
		if _, ok := seen[item.ID]; ok {
			return fmt.Errorf("duplicate checklist item: %s", item.ID)
		}
		seen[item.ID] = struct{}{}
	}
	return nil
}

// Clone returns a deep copy safe to hand to readers outside the critical section.
func (s State) Clone() State {
	out := s
	out.Inventory = make(map[string]int, len(s.Inventory))
	for k, v := range s.Inventory {
		out.Inventory[k] = v
	}
	out.OwnedUpgrades = make(map[string]bool, len(s.OwnedUpgrades))
	for k, v := range s.OwnedUpgrades {
		out.OwnedUpgrades[k] = v
	}
	out.Achievements = make(map[string]bool, len(s.Achievements))
	for k, v := range s.Achievements {
		out.Achievements[k] = v
	}
	out.Checklist = append([]ChecklistItem(nil), s.Checklist...)
	return out
}

func (s State) Owns(itemID string) bool {
	return s.OwnedUpgrades[itemID]
}

func (s State) Quantity(ingredient string) int {
	return s.Inventory[ingredient]
}

// IngredientNames lists the inventory entries with a positive quantity, sorted.
func (s State) IngredientNames() []string {
	names := make([]string, 0, len(s.Inventory))
	for name, qty := range s.Inventory {
		if qty > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func (s *State) grant(r Reward) {
	s.XP += r.XP
	s.Coins += r.Coins
}

func (s *State) addIngredients(names []string) {
	if s.Inventory == nil {
		s.Inventory = map[string]int{}
	}
	for _, name := range names {
		s.Inventory[name]++
	}
}
