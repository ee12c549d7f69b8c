package domain

import (
	"fmt"
	"sort"
	"strings"

	apperrors "studychef/internal/platform/errors"
)

type Shortfall struct {
	Ingredient string
	Need       int
	Have       int
}

// InsufficientIngredientsError lists what a recipe is missing. It matches
// apperrors.ErrInsufficientIngredients under errors.Is.
type InsufficientIngredientsError struct {
	RecipeID string
	Missing  []Shortfall
}

func (e *InsufficientIngredientsError) Error() string {
	parts := make([]string, 0, len(e.Missing))
	for _, m := range e.Missing {
		parts = append(parts, fmt.Sprintf("%s %d/%d", m.Ingredient, m.Have, m.Need))
	}
	return fmt.Sprintf("%s for %s: %s", apperrors.ErrInsufficientIngredients, e.RecipeID, strings.Join(parts, ", "))
}

func (e *InsufficientIngredientsError) Unwrap() error {
	return apperrors.ErrInsufficientIngredients
}

// Shortfalls lists every ingredient of r the inventory cannot cover, sorted by name.
func (s State) Shortfalls(r Recipe) []Shortfall {
	var out []Shortfall
	for name, need := range r.Needs {
		if have := s.Inventory[name]; have < need {
			out = append(out, Shortfall{Ingredient: name, Need: need, Have: have})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ingredient < out[j].Ingredient })
	return out
}

func (s State) CanCraft(r Recipe) bool {
	return len(s.Shortfalls(r)) == 0
}

// Craft consumes r's needs and grants its bonus-adjusted reward. Nothing is
// touched unless every need is covered.
func (s *State) Craft(r Recipe, b Bonuses) (Reward, error) {
	if missing := s.Shortfalls(r); len(missing) > 0 {
		return Reward{}, &InsufficientIngredientsError{RecipeID: r.ID, Missing: missing}
	}
	for name, need := range r.Needs {
		s.Inventory[name] -= need
	}
	granted := b.Apply(r.Reward)
	s.grant(granted)
	s.RecipesCooked++
	return granted, nil
}
