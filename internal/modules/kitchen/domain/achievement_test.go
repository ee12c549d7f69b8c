package domain_test

import (
	"reflect"
	"testing"

	"studychef/internal/modules/kitchen/domain"
)

func TestRecordAchievementsReportsOnlyNewlyEarned(t *testing.T) {
	t.Parallel()
	catalog := testCatalog().Achievements
	st := domain.NewState()
	st.SessionsDone = 5

	first := st.RecordAchievements(catalog)
	if !reflect.DeepEqual(first, []string{"first-session", "fifth-session"}) {
		t.Fatalf("unexpected first evaluation: %v", first)
	}
	if again := st.RecordAchievements(catalog); len(again) != 0 {
		t.Fatalf("re-evaluation must be idempotent, got %v", again)
	}
}

func TestAchievementsAreMonotonic(t *testing.T) {
	t.Parallel()
	catalog := testCatalog().Achievements
	st := domain.NewState()
	st.TotalMinutes = 120
	st.RecordAchievements(catalog)

	// A lower metric never revokes an earned flag.
	st.TotalMinutes = 0
	got := domain.Evaluate(st, catalog)
	if !got["100-mins"] {
		t.Fatalf("earned achievement was revoked: %v", got)
	}
	if got["ten-recipes"] {
		t.Fatalf("unearned achievement reported: %v", got)
	}
}

func TestAtLeastThresholds(t *testing.T) {
	t.Parallel()
	st := domain.NewState()
	st.RecipesCooked = 9
	pred := domain.AtLeast(domain.MetricRecipesCooked, 10)
	if pred(st) {
		t.Fatalf("9 recipes must not satisfy >= 10")
	}
	st.RecipesCooked = 10
	if !pred(st) {
		t.Fatalf("10 recipes must satisfy >= 10")
	}
}
