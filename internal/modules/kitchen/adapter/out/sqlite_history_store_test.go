package out_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	kitchenadapter "studychef/internal/modules/kitchen/adapter/out"
	"studychef/internal/modules/kitchen/domain"
)

func TestSQLiteHistoryBucketsFocusByLocalDay(t *testing.T) {
	t.Parallel()
	tokyo := time.FixedZone("JST", 9*3600)
	store, err := kitchenadapter.NewSQLiteHistoryStore(filepath.Join(t.TempDir(), "history.db"), &seqID{}, tokyo)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	ctx := context.Background()
	events := []domain.Event{
		// 2026-03-01 23:30 UTC is already March 2nd in Tokyo.
		domain.FocusCompleted{Minutes: 25, OccurredAt: time.Date(2026, 3, 1, 23, 30, 0, 0, time.UTC)},
		domain.FocusCompleted{Minutes: 50, OccurredAt: time.Date(2026, 3, 2, 3, 0, 0, 0, time.UTC)},
		domain.BreakCompleted{Minutes: 5, OccurredAt: time.Date(2026, 3, 2, 3, 5, 0, 0, time.UTC)},
		domain.FocusCompleted{Minutes: 25, OccurredAt: time.Date(2026, 3, 4, 3, 0, 0, 0, time.UTC)},
		domain.RecipeCooked{RecipeID: "pancakes", Reward: domain.Reward{XP: 15, Coins: 10}, OccurredAt: time.Date(2026, 3, 4, 4, 0, 0, 0, time.UTC)},
	}
	for _, ev := range events {
		require.NoError(t, store.Publish(ctx, ev))
	}

	stats, err := store.DailyFocus(ctx, domain.Date{Year: 2026, Month: 3, Day: 1}, domain.Date{Year: 2026, Month: 3, Day: 4})
	require.NoError(t, err)
	require.Equal(t, []domain.DayStat{
		{Date: domain.Date{Year: 2026, Month: 3, Day: 2}, FocusMinutes: 75, Sessions: 2},
		{Date: domain.Date{Year: 2026, Month: 3, Day: 4}, FocusMinutes: 25, Sessions: 1},
	}, stats)
}

func TestSQLiteHistoryReopensExistingLedger(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "history.db")
	ids := &seqID{}
	first, err := kitchenadapter.NewSQLiteHistoryStore(path, ids, time.UTC)
	require.NoError(t, err)
	at := time.Date(2026, 5, 10, 8, 0, 0, 0, time.UTC)
	require.NoError(t, first.Publish(context.Background(), domain.FocusCompleted{Minutes: 25, OccurredAt: at}))
	require.NoError(t, first.Close())

	second, err := kitchenadapter.NewSQLiteHistoryStore(path, ids, time.UTC)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })
	day := domain.DateOf(at)
	stats, err := second.DailyFocus(context.Background(), day, day)
	require.NoError(t, err)
	require.Equal(t, []domain.DayStat{{Date: day, FocusMinutes: 25, Sessions: 1}}, stats)
}
