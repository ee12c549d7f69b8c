package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	kitchenadapter "studychef/internal/modules/kitchen/adapter/out"
	"studychef/internal/modules/kitchen/domain"
	"studychef/internal/modules/kitchen/dto"
	kitchenin "studychef/internal/modules/kitchen/port/in"
	"studychef/internal/modules/kitchen/service"
	"studychef/internal/modules/kitchen/usecase"
	apperrors "studychef/internal/platform/errors"
	"studychef/internal/platform/random"
	"studychef/internal/platform/tx"
)

var morning = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type seqID struct{ n int }

func (s *seqID) New() string {
	s.n++
	return fmt.Sprintf("task-%d", s.n)
}

type memStore struct {
	raw     []byte
	saves   int
	saveErr error
}

func (m *memStore) Load(context.Context) ([]byte, error) {
	if m.raw == nil {
		return nil, apperrors.ErrNoSnapshot
	}
	return m.raw, nil
}

func (m *memStore) Save(_ context.Context, raw []byte) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.raw = append([]byte(nil), raw...)
	m.saves++
	return nil
}

type recordingPublisher struct {
	kinds []domain.EventKind
	err   error
}

func (r *recordingPublisher) Publish(_ context.Context, event domain.Event) error {
	r.kinds = append(r.kinds, event.Kind())
	return r.err
}

type fixedHistory []domain.DayStat

func (f fixedHistory) DailyFocus(_ context.Context, from, to domain.Date) ([]domain.DayStat, error) {
	var out []domain.DayStat
	for _, s := range f {
		if !s.Date.Before(from) && !to.Before(s.Date) {
			out = append(out, s)
		}
	}
	return out, nil
}

type harness struct {
	clock     *manualClock
	store     *memStore
	publisher *recordingPublisher
	kitchen   *domain.Kitchen
	uc        kitchenin.Usecase
	logs      *bytes.Buffer
}

func newHarness(t *testing.T, opts usecase.Options) *harness {
	t.Helper()
	catalog, err := kitchenadapter.NewYAMLCatalogSource("").Load(context.Background())
	require.NoError(t, err)
	h := &harness{
		clock:     &manualClock{now: morning},
		store:     &memStore{},
		publisher: &recordingPublisher{},
		logs:      &bytes.Buffer{},
	}
	h.kitchen = domain.NewKitchen(catalog, random.NewSeeded(7), time.UTC, domain.DefaultSettings())
	svc := service.NewKitchenService(h.clock, tx.NewMutexManager(), &seqID{}, h.kitchen, domain.DefaultSettings())
	if opts.Store == nil {
		opts.Store = h.store
	}
	if opts.Publisher == nil {
		opts.Publisher = h.publisher
	}
	opts.Logger = hclog.New(&hclog.LoggerOptions{Output: h.logs, Level: hclog.Warn})
	h.uc = usecase.NewInteractor(svc, opts)
	return h
}

func kinds(events []dto.EventOutput) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.Kind)
	}
	return out
}

func TestOpenFreshKitchenSavesFirstDay(t *testing.T) {
	t.Parallel()
	h := newHarness(t, usecase.Options{})
	opened, err := h.uc.Open(context.Background())
	require.NoError(t, err)
	require.True(t, opened.Fresh)
	require.True(t, opened.DayChanged)
	require.False(t, opened.Recovered)
	require.Equal(t, "idle", opened.Status.Timer.Mode)
	require.Equal(t, 1, h.store.saves)

	again, err := h.uc.Open(context.Background())
	require.NoError(t, err)
	require.False(t, again.Fresh)
	require.False(t, again.DayChanged)
	require.Equal(t, 1, h.store.saves, "reopening on the same day writes nothing")
}

func TestOpenRecoversFromCorruptSnapshotWithoutOverwriting(t *testing.T) {
	t.Parallel()
	h := newHarness(t, usecase.Options{})
	h.store.raw = []byte("{not json")

	opened, err := h.uc.Open(context.Background())
	require.NoError(t, err)
	require.True(t, opened.Recovered)
	require.Zero(t, opened.Status.XP)
	require.Equal(t, 0, h.store.saves)
	require.Contains(t, h.logs.String(), "snapshot unreadable")

	_, err = h.uc.Start(context.Background(), dto.StartInput{Mode: "focus"})
	require.NoError(t, err)
	require.Equal(t, 1, h.store.saves, "the next mutation replaces the corrupt file")
}

func TestOpenCatchesUpOnRunningSegment(t *testing.T) {
	t.Parallel()
	first := newHarness(t, usecase.Options{})
	_, err := first.uc.Open(context.Background())
	require.NoError(t, err)
	_, err = first.uc.Start(context.Background(), dto.StartInput{Mode: "Focus"})
	require.NoError(t, err)

	second := newHarness(t, usecase.Options{})
	second.store.raw = first.store.raw
	second.clock.Advance(10 * time.Minute)
	_, err = second.uc.Open(context.Background())
	require.NoError(t, err)

	tick, err := second.uc.Tick(context.Background())
	require.NoError(t, err)
	require.Equal(t, 600, tick.Elapsed)
	require.Equal(t, 900, tick.Timer.RemainingSeconds)
	require.Empty(t, tick.Completed)

	status, err := second.uc.Status(context.Background())
	require.NoError(t, err)
	require.InDelta(t, 10.0, status.TotalMinutes, 1e-9)
}

func TestFocusCompletionGrantsRewardsAndPublishes(t *testing.T) {
	t.Parallel()
	h := newHarness(t, usecase.Options{})
	ctx := context.Background()
	_, err := h.uc.Open(ctx)
	require.NoError(t, err)

	started, err := h.uc.Start(ctx, dto.StartInput{Mode: "focus"})
	require.NoError(t, err)
	require.Equal(t, []string{"segment_started"}, kinds(started.Events))
	require.Equal(t, 1500, started.Timer.RemainingSeconds)

	h.clock.Advance(25 * time.Minute)
	tick, err := h.uc.Tick(ctx)
	require.NoError(t, err)
	require.Equal(t, "focus", tick.Completed)
	require.Equal(t, []string{"focus_completed", "streak_changed", "segment_started", "achievement_earned"}, kinds(tick.Events))
	require.Equal(t, "break", tick.Timer.Mode)
	require.Equal(t, 300, tick.Timer.RemainingSeconds)
	require.Equal(t, []domain.EventKind{
		domain.EventSegmentStarted,
		domain.EventFocusCompleted,
		domain.EventStreakChanged,
		domain.EventSegmentStarted,
		domain.EventAchievementEarned,
	}, h.publisher.kinds)

	status, err := h.uc.Status(ctx)
	require.NoError(t, err)
	require.Equal(t, 25, status.XP)
	require.Equal(t, 8, status.Coins)
	require.Equal(t, 1, status.SessionsDone)
	require.Equal(t, 1, status.Streak)
	require.Equal(t, "2026-03-02", status.LastActiveDate)
	require.InDelta(t, 25.0, status.TotalMinutes, 1e-9)

	achievements, err := h.uc.Achievements(ctx)
	require.NoError(t, err)
	earned := map[string]bool{}
	for _, a := range achievements {
		earned[a.ID] = a.Earned
	}
	require.Equal(t, map[string]bool{"first-session": true, "fifth-session": false, "ten-recipes": false, "100-mins": false}, earned)
}

func TestTickAutosavesOnInterval(t *testing.T) {
	t.Parallel()
	h := newHarness(t, usecase.Options{Autosave: 30 * time.Second})
	ctx := context.Background()
	_, err := h.uc.Open(ctx)
	require.NoError(t, err)
	_, err = h.uc.Start(ctx, dto.StartInput{Mode: "focus"})
	require.NoError(t, err)
	require.Equal(t, 2, h.store.saves)

	h.clock.Advance(10 * time.Second)
	_, err = h.uc.Tick(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, h.store.saves)

	h.clock.Advance(25 * time.Second)
	_, err = h.uc.Tick(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, h.store.saves)

	_, err = h.uc.Tick(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, h.store.saves, "a tick that consumes no time never saves")
}

func TestSaveFailuresSurfaceOnCommandsButNotTicks(t *testing.T) {
	t.Parallel()
	h := newHarness(t, usecase.Options{})
	ctx := context.Background()
	_, err := h.uc.Open(ctx)
	require.NoError(t, err)
	_, err = h.uc.Start(ctx, dto.StartInput{Mode: "focus"})
	require.NoError(t, err)

	h.store.saveErr = errors.New("disk full")
	h.clock.Advance(time.Minute)
	_, err = h.uc.Tick(ctx)
	require.NoError(t, err)
	require.Contains(t, h.logs.String(), "autosave failed")

	_, err = h.uc.TogglePause(ctx)
	require.ErrorContains(t, err, "disk full")
}

func TestCookAndBuyFlow(t *testing.T) {
	t.Parallel()
	h := newHarness(t, usecase.Options{})
	h.kitchen.State.Coins = 100
	h.kitchen.State.Inventory = map[string]int{"Flour": 2, "Egg": 1, "Milk": 1, "Sugar": 1}
	ctx := context.Background()
	_, err := h.uc.Open(ctx)
	require.NoError(t, err)

	recipes, err := h.uc.Recipes(ctx)
	require.NoError(t, err)
	cookable := map[string]bool{}
	for _, r := range recipes {
		cookable[r.ID] = r.CanCook
	}
	require.True(t, cookable["pancakes"])
	require.False(t, cookable["omelette"])

	cooked, err := h.uc.Cook(ctx, "pancakes")
	require.NoError(t, err)
	require.Equal(t, 15, cooked.XP)
	require.Equal(t, 10, cooked.Coins)
	require.Equal(t, []string{"recipe_cooked"}, kinds(cooked.Events))
	require.Equal(t, "Cooked Fluffy Pancakes: +15 XP, +10 coins", cooked.Events[0].Message)

	_, err = h.uc.Cook(ctx, "pancakes")
	require.ErrorIs(t, err, apperrors.ErrInsufficientIngredients)
	_, err = h.uc.Cook(ctx, "souffle")
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	bought, err := h.uc.Buy(ctx, "skin-mint")
	require.NoError(t, err)
	require.Equal(t, 60, bought.Cost)
	require.Equal(t, 50, bought.CoinsLeft)

	_, err = h.uc.Buy(ctx, "skin-mint")
	require.ErrorIs(t, err, apperrors.ErrAlreadyOwned)
	_, err = h.uc.Buy(ctx, "timer-quick")
	require.ErrorIs(t, err, apperrors.ErrInsufficientFunds)

	status, err := h.uc.Status(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"skin-mint"}, status.OwnedUpgrades)
	require.InDelta(t, 1.05, status.Bonuses.XPMultiplier, 1e-9)
	require.Empty(t, status.Inventory)

	shop, err := h.uc.Shop(ctx)
	require.NoError(t, err)
	for _, item := range shop {
		if item.ID == "skin-mint" {
			require.True(t, item.Owned)
			require.Equal(t, "XP x1.05", item.Effect)
		}
	}
}

func TestChecklistRewardsOnceAndPublishFailuresAreLogged(t *testing.T) {
	t.Parallel()
	h := newHarness(t, usecase.Options{})
	h.publisher.err = errors.New("hook offline")
	ctx := context.Background()
	_, err := h.uc.Open(ctx)
	require.NoError(t, err)

	task, err := h.uc.AddTask(ctx, dto.AddTaskInput{Title: "  Read chapter 3 ", Tag: "math"})
	require.NoError(t, err)
	require.Equal(t, "Read chapter 3", task.Title)

	done, err := h.uc.ToggleTask(ctx, task.ID)
	require.NoError(t, err)
	require.True(t, done.Task.Done)
	require.Equal(t, 5, done.XP)
	require.Equal(t, 3, done.Coins)
	require.Equal(t, []string{"checklist_completed"}, kinds(done.Events))
	require.Contains(t, h.logs.String(), "event delivery failed")

	undone, err := h.uc.ToggleTask(ctx, task.ID)
	require.NoError(t, err)
	require.False(t, undone.Task.Done)
	redone, err := h.uc.ToggleTask(ctx, task.ID)
	require.NoError(t, err)
	require.Zero(t, redone.XP)
	require.Empty(t, redone.Events)

	require.NoError(t, h.uc.RemoveTask(ctx, task.ID))
	tasks, err := h.uc.Tasks(ctx)
	require.NoError(t, err)
	require.Empty(t, tasks)
	require.ErrorIs(t, h.uc.RemoveTask(ctx, task.ID), apperrors.ErrNotFound)

	status, err := h.uc.Status(ctx)
	require.NoError(t, err)
	require.Equal(t, 5, status.XP)
	require.Equal(t, 3, status.Coins)
}

func TestExportImportAndCorruptImport(t *testing.T) {
	t.Parallel()
	source := newHarness(t, usecase.Options{})
	ctx := context.Background()
	_, err := source.uc.Open(ctx)
	require.NoError(t, err)
	task, err := source.uc.AddTask(ctx, dto.AddTaskInput{Title: "Flashcards"})
	require.NoError(t, err)
	_, err = source.uc.ToggleTask(ctx, task.ID)
	require.NoError(t, err)
	exported, err := source.uc.Export(ctx)
	require.NoError(t, err)

	target := newHarness(t, usecase.Options{})
	_, err = target.uc.Open(ctx)
	require.NoError(t, err)
	imported, err := target.uc.Import(ctx, exported)
	require.NoError(t, err)
	require.Equal(t, 5, imported.XP)
	require.JSONEq(t, string(exported), string(target.store.raw))

	_, err = target.uc.Import(ctx, []byte(`{"version":2}`))
	require.ErrorIs(t, err, apperrors.ErrCorruptSnapshot)
	status, err := target.uc.Status(ctx)
	require.NoError(t, err)
	require.Equal(t, 5, status.XP, "a rejected import leaves state untouched")
}

func TestConfigureAndReset(t *testing.T) {
	t.Parallel()
	h := newHarness(t, usecase.Options{})
	ctx := context.Background()
	_, err := h.uc.Open(ctx)
	require.NoError(t, err)
	_, err = h.uc.Start(ctx, dto.StartInput{Mode: "focus"})
	require.NoError(t, err)

	focus := 50
	scheme := "Freeform"
	timer, err := h.uc.Configure(ctx, dto.ConfigureInput{FocusMinutes: &focus, Scheme: &scheme})
	require.NoError(t, err)
	require.Equal(t, 1500, timer.RemainingSeconds, "the running segment keeps its length")
	require.Equal(t, 50, timer.FocusMinutes)
	require.Equal(t, "chained", timer.Scheme)
	require.Equal(t, "freeform", timer.ConfiguredScheme)

	bad := 0
	_, err = h.uc.Configure(ctx, dto.ConfigureInput{BreakMinutes: &bad})
	require.ErrorIs(t, err, apperrors.ErrInvalidConfiguration)

	_, err = h.uc.Start(ctx, dto.StartInput{Mode: "idle"})
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = h.uc.AddTask(ctx, dto.AddTaskInput{Title: "Essay"})
	require.NoError(t, err)
	reset, err := h.uc.Reset(ctx)
	require.NoError(t, err)
	require.Equal(t, "idle", reset.Timer.Mode)
	require.Equal(t, 25, reset.Timer.FocusMinutes)
	require.Equal(t, "chained", reset.Timer.ConfiguredScheme)
	tasks, err := h.uc.Tasks(ctx)
	require.NoError(t, err)
	require.Empty(t, tasks)
}

func TestHistoryFillsMissingDays(t *testing.T) {
	t.Parallel()
	h := newHarness(t, usecase.Options{History: fixedHistory{
		{Date: domain.Date{Year: 2026, Month: 2, Day: 20}, FocusMinutes: 99, Sessions: 3},
		{Date: domain.Date{Year: 2026, Month: 3, Day: 1}, FocusMinutes: 50, Sessions: 2},
	}})
	days, err := h.uc.History(context.Background(), 3)
	require.NoError(t, err)
	require.Equal(t, []dto.DayStatOutput{
		{Date: "2026-02-28"},
		{Date: "2026-03-01", FocusMinutes: 50, Sessions: 2},
		{Date: "2026-03-02"},
	}, days)

	_, err = h.uc.History(context.Background(), 0)
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

type overlapStore struct {
	mu       sync.Mutex
	inFlight int
	overlaps int
	raw      []byte
}

func (s *overlapStore) Load(context.Context) ([]byte, error) {
	return nil, apperrors.ErrNoSnapshot
}

func (s *overlapStore) Save(_ context.Context, raw []byte) error {
	s.mu.Lock()
	s.inFlight++
	if s.inFlight > 1 {
		s.overlaps++
	}
	s.mu.Unlock()

	time.Sleep(2 * time.Millisecond)

	s.mu.Lock()
	s.raw = append([]byte(nil), raw...)
	s.inFlight--
	s.mu.Unlock()
	return nil
}

func TestConcurrentCommandsSaveInOrder(t *testing.T) {
	t.Parallel()
	store := &overlapStore{}
	h := newHarness(t, usecase.Options{Store: store})
	ctx := context.Background()

	errs := make(chan error, 8)
	var wg sync.WaitGroup
	for n := 1; n <= 8; n++ {
		minutes := 20 + n
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := h.uc.Configure(ctx, dto.ConfigureInput{FocusMinutes: &minutes})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	latest, err := h.uc.Export(ctx)
	require.NoError(t, err)
	store.mu.Lock()
	defer store.mu.Unlock()
	require.Zero(t, store.overlaps)
	require.Equal(t, string(latest), string(store.raw))
}
