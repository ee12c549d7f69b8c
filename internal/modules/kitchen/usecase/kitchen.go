package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"

	"studychef/internal/modules/kitchen/domain"
	"studychef/internal/modules/kitchen/dto"
	kitchenin "studychef/internal/modules/kitchen/port/in"
	kitchenout "studychef/internal/modules/kitchen/port/out"
	"studychef/internal/modules/kitchen/service"
	apperrors "studychef/internal/platform/errors"
)

type Options struct {
	Store     kitchenout.SnapshotStore
	Publisher kitchenout.EventPublisher
	History   kitchenout.HistoryReader
	Logger    hclog.Logger
	// Autosave bounds how long ticking may go without a save. Zero saves on
	// every tick.
	Autosave time.Duration
}

type Interactor struct {
	svc       *service.KitchenService
	store     kitchenout.SnapshotStore
	publisher kitchenout.EventPublisher
	history   kitchenout.HistoryReader
	logger    hclog.Logger
	autosave  time.Duration

	mu        sync.Mutex
	lastSaved time.Time
}

func NewInteractor(svc *service.KitchenService, opts Options) kitchenin.Usecase {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Interactor{
		svc:       svc,
		store:     opts.Store,
		publisher: opts.Publisher,
		history:   opts.History,
		logger:    logger,
		autosave:  opts.Autosave,
	}
}

// Open restores the saved snapshot. A corrupt snapshot is logged and replaced
// by defaults on the next save.
func (i *Interactor) Open(ctx context.Context) (dto.OpenOutput, error) {
	out := dto.OpenOutput{}
	raw, err := i.load(ctx)
	switch {
	case errors.Is(err, apperrors.ErrNoSnapshot):
		out.Fresh = true
	case err != nil:
		return dto.OpenOutput{}, err
	default:
		if err := i.svc.Restore(ctx, raw); err != nil {
			if !errors.Is(err, apperrors.ErrCorruptSnapshot) {
				return dto.OpenOutput{}, err
			}
			i.logger.Warn("snapshot unreadable, starting from defaults", "error", err)
			out.Recovered = true
		}
	}

	changed, err := i.svc.RollOver(ctx)
	if err != nil {
		return dto.OpenOutput{}, err
	}
	out.DayChanged = changed
	if changed && !out.Recovered {
		if err := i.persist(ctx); err != nil {
			return dto.OpenOutput{}, err
		}
	}

	view, err := i.svc.View(ctx)
	if err != nil {
		return dto.OpenOutput{}, err
	}
	out.Status = toStatus(view)
	i.logger.Debug("kitchen opened", "fresh", out.Fresh, "recovered", out.Recovered, "day_changed", changed)
	return out, nil
}

func (i *Interactor) Status(ctx context.Context) (dto.StatusOutput, error) {
	view, err := i.svc.View(ctx)
	if err != nil {
		return dto.StatusOutput{}, err
	}
	return toStatus(view), nil
}

func (i *Interactor) Start(ctx context.Context, input dto.StartInput) (dto.StartOutput, error) {
	mode := domain.Mode(strings.ToLower(strings.TrimSpace(input.Mode)))
	events, view, err := i.svc.Start(ctx, mode)
	if err != nil {
		return dto.StartOutput{}, err
	}
	if err := i.persist(ctx); err != nil {
		return dto.StartOutput{}, err
	}
	i.logger.Info("segment started", "mode", mode, "seconds", view.Timer.Remaining)
	return dto.StartOutput{Timer: toTimer(view.Timer), Events: i.publish(ctx, events)}, nil
}

func (i *Interactor) TogglePause(ctx context.Context) (dto.TimerOutput, error) {
	view, err := i.svc.TogglePause(ctx)
	if err != nil {
		return dto.TimerOutput{}, err
	}
	if err := i.persist(ctx); err != nil {
		return dto.TimerOutput{}, err
	}
	return toTimer(view.Timer), nil
}

// Tick advances the timer. Save failures are logged, never returned, so a
// broken disk cannot stall the countdown.
func (i *Interactor) Tick(ctx context.Context) (dto.TickOutput, error) {
	tick, events, view, err := i.svc.Tick(ctx)
	if err != nil {
		return dto.TickOutput{}, err
	}
	if tick.Elapsed > 0 {
		i.logger.Trace("tick", "elapsed", tick.Elapsed, "remaining", view.Timer.Remaining)
	}
	if tick.Completed != "" {
		i.logger.Info("segment completed", "mode", tick.Completed, "sessions", view.State.SessionsDone)
	}
	if len(events) > 0 || (tick.Elapsed > 0 && i.saveDue()) {
		if err := i.persist(ctx); err != nil {
			i.logger.Warn("autosave failed", "error", err)
		}
	}
	return dto.TickOutput{
		Timer:     toTimer(view.Timer),
		Elapsed:   tick.Elapsed,
		Completed: string(tick.Completed),
		Events:    i.publish(ctx, events),
	}, nil
}

func (i *Interactor) Configure(ctx context.Context, input dto.ConfigureInput) (dto.TimerOutput, error) {
	view, err := i.svc.Configure(ctx, func(current domain.Settings) domain.Settings {
		if input.FocusMinutes != nil {
			current.FocusMinutes = *input.FocusMinutes
		}
		if input.BreakMinutes != nil {
			current.BreakMinutes = *input.BreakMinutes
		}
		if input.Scheme != nil {
			current.Scheme = domain.Scheme(strings.ToLower(strings.TrimSpace(*input.Scheme)))
		}
		return current
	})
	if err != nil {
		return dto.TimerOutput{}, err
	}
	if err := i.persist(ctx); err != nil {
		return dto.TimerOutput{}, err
	}
	return toTimer(view.Timer), nil
}

func (i *Interactor) Recipes(ctx context.Context) ([]dto.RecipeOutput, error) {
	view, err := i.svc.View(ctx)
	if err != nil {
		return nil, err
	}
	recipes := i.svc.Catalog().Recipes
	out := make([]dto.RecipeOutput, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, toRecipe(r, view))
	}
	return out, nil
}

func (i *Interactor) Cook(ctx context.Context, recipeID string) (dto.CookOutput, error) {
	granted, events, err := i.svc.Cook(ctx, recipeID)
	if err != nil {
		return dto.CookOutput{}, err
	}
	if err := i.persist(ctx); err != nil {
		return dto.CookOutput{}, err
	}
	i.logger.Info("recipe cooked", "recipe", recipeID, "xp", granted.XP, "coins", granted.Coins)
	return dto.CookOutput{RecipeID: recipeID, XP: granted.XP, Coins: granted.Coins, Events: i.publish(ctx, events)}, nil
}

func (i *Interactor) Shop(ctx context.Context) ([]dto.ShopItemOutput, error) {
	view, err := i.svc.View(ctx)
	if err != nil {
		return nil, err
	}
	items := i.svc.Catalog().Shop
	out := make([]dto.ShopItemOutput, 0, len(items))
	for _, item := range items {
		out = append(out, toShopItem(item, view.State))
	}
	return out, nil
}

func (i *Interactor) Buy(ctx context.Context, itemID string) (dto.BuyOutput, error) {
	events, view, err := i.svc.Purchase(ctx, itemID)
	if err != nil {
		return dto.BuyOutput{}, err
	}
	if err := i.persist(ctx); err != nil {
		return dto.BuyOutput{}, err
	}
	item, _ := i.svc.Catalog().Item(strings.TrimSpace(itemID))
	i.logger.Info("upgrade purchased", "item", item.ID, "cost", item.Cost)
	return dto.BuyOutput{ItemID: item.ID, Cost: item.Cost, CoinsLeft: view.State.Coins, Events: i.publish(ctx, events)}, nil
}

func (i *Interactor) Tasks(ctx context.Context) ([]dto.TaskOutput, error) {
	view, err := i.svc.View(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TaskOutput, 0, len(view.State.Checklist))
	for _, item := range view.State.Checklist {
		out = append(out, toTask(item))
	}
	return out, nil
}

func (i *Interactor) AddTask(ctx context.Context, input dto.AddTaskInput) (dto.TaskOutput, error) {
	item, err := i.svc.AddTask(ctx, input.Title, input.Tag)
	if err != nil {
		return dto.TaskOutput{}, err
	}
	if err := i.persist(ctx); err != nil {
		return dto.TaskOutput{}, err
	}
	return toTask(item), nil
}

func (i *Interactor) ToggleTask(ctx context.Context, taskID string) (dto.ToggleTaskOutput, error) {
	item, granted, events, err := i.svc.ToggleTask(ctx, taskID)
	if err != nil {
		return dto.ToggleTaskOutput{}, err
	}
	if err := i.persist(ctx); err != nil {
		return dto.ToggleTaskOutput{}, err
	}
	return dto.ToggleTaskOutput{Task: toTask(item), XP: granted.XP, Coins: granted.Coins, Events: i.publish(ctx, events)}, nil
}

func (i *Interactor) RemoveTask(ctx context.Context, taskID string) error {
	if err := i.svc.RemoveTask(ctx, taskID); err != nil {
		return err
	}
	return i.persist(ctx)
}

func (i *Interactor) Achievements(ctx context.Context) ([]dto.AchievementOutput, error) {
	earned, events, err := i.svc.Achievements(ctx)
	if err != nil {
		return nil, err
	}
	if len(events) > 0 {
		if err := i.persist(ctx); err != nil {
			return nil, err
		}
		i.publish(ctx, events)
	}
	catalog := i.svc.Catalog().Achievements
	out := make([]dto.AchievementOutput, 0, len(catalog))
	for _, a := range catalog {
		out = append(out, dto.AchievementOutput{ID: a.ID, Name: a.Name, Description: a.Description, Earned: earned[a.ID]})
	}
	return out, nil
}

// History lists focus totals for the last days calendar days, oldest first,
// with empty days included.
func (i *Interactor) History(ctx context.Context, days int) ([]dto.DayStatOutput, error) {
	if days <= 0 {
		return nil, fmt.Errorf("%w: days must be positive, got %d", apperrors.ErrInvalidInput, days)
	}
	today := i.svc.Today()
	from := today.AddDays(-(days - 1))
	var stats []domain.DayStat
	if i.history != nil {
		var err error
		stats, err = i.history.DailyFocus(ctx, from, today)
		if err != nil {
			return nil, err
		}
	}
	filled := domain.FillDays(from, today, stats)
	out := make([]dto.DayStatOutput, 0, len(filled))
	for _, s := range filled {
		out = append(out, dto.DayStatOutput{Date: s.Date.String(), FocusMinutes: s.FocusMinutes, Sessions: s.Sessions})
	}
	return out, nil
}

func (i *Interactor) Export(ctx context.Context) ([]byte, error) {
	return i.svc.Encode(ctx)
}

// Import validates raw completely before it replaces anything.
func (i *Interactor) Import(ctx context.Context, raw []byte) (dto.StatusOutput, error) {
	if err := i.svc.Restore(ctx, raw); err != nil {
		return dto.StatusOutput{}, err
	}
	if err := i.persist(ctx); err != nil {
		return dto.StatusOutput{}, err
	}
	i.logger.Info("snapshot imported", "bytes", len(raw))
	return i.Status(ctx)
}

func (i *Interactor) Reset(ctx context.Context) (dto.StatusOutput, error) {
	view, err := i.svc.Reset(ctx)
	if err != nil {
		return dto.StatusOutput{}, err
	}
	if err := i.persist(ctx); err != nil {
		return dto.StatusOutput{}, err
	}
	i.logger.Warn("progress reset")
	return toStatus(view), nil
}

func (i *Interactor) Save(ctx context.Context) error {
	return i.persist(ctx)
}

func (i *Interactor) load(ctx context.Context) ([]byte, error) {
	if i.store == nil {
		return nil, apperrors.ErrNoSnapshot
	}
	return i.store.Load(ctx)
}

// persist encodes and saves under one lock so a slower save can never land
// after a newer snapshot.
func (i *Interactor) persist(ctx context.Context) error {
	if i.store == nil {
		return nil
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	raw, err := i.svc.Encode(ctx)
	if err != nil {
		return err
	}
	if err := i.store.Save(ctx, raw); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	i.lastSaved = i.svc.Now()
	return nil
}

func (i *Interactor) saveDue() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.svc.Now().Sub(i.lastSaved) >= i.autosave
}

// publish hands events to the publisher in order. Delivery errors are logged;
// the mutation already happened.
func (i *Interactor) publish(ctx context.Context, events []domain.Event) []dto.EventOutput {
	out := make([]dto.EventOutput, 0, len(events))
	for _, e := range events {
		if i.publisher != nil {
			if err := i.publisher.Publish(ctx, e); err != nil {
				i.logger.Warn("event delivery failed", "kind", e.Kind(), "error", err)
			}
		}
		out = append(out, dto.EventOutput{Kind: string(e.Kind()), OccurredAt: e.At(), Message: describe(e, i.svc.Catalog())})
	}
	return out
}

func toTimer(t domain.Timer) dto.TimerOutput {
	return dto.TimerOutput{
		Mode:             string(t.Mode),
		RemainingSeconds: max(t.Remaining, 0),
		Paused:           t.Paused,
		Scheme:           string(t.Scheme),
		SegmentMinutes:   t.SegmentMinutes,
		FocusMinutes:     t.Settings.FocusMinutes,
		BreakMinutes:     t.Settings.BreakMinutes,
		ConfiguredScheme: string(t.Settings.Scheme),
	}
}

func toStatus(v service.View) dto.StatusOutput {
	s := v.State
	names := s.IngredientNames()
	inventory := make([]dto.InventoryLine, 0, len(names))
	for _, name := range names {
		inventory = append(inventory, dto.InventoryLine{Ingredient: name, Quantity: s.Inventory[name]})
	}
	owned := make([]string, 0, len(s.OwnedUpgrades))
	for id, ok := range s.OwnedUpgrades {
		if ok {
			owned = append(owned, id)
		}
	}
	sort.Strings(owned)
	return dto.StatusOutput{
		XP:             s.XP,
		Coins:          s.Coins,
		Streak:         s.Streak,
		BestStreak:     s.BestStreak,
		TotalMinutes:   s.TotalMinutes,
		SessionsDone:   s.SessionsDone,
		RecipesCooked:  s.RecipesCooked,
		LastActiveDate: s.LastActiveDate.String(),
		Inventory:      inventory,
		OwnedUpgrades:  owned,
		Bonuses: dto.BonusOutput{
			XPMultiplier:    v.Bonuses.XPMultiplier,
			CoinMultiplier:  v.Bonuses.CoinMultiplier,
			ExtraIngredient: v.Bonuses.ExtraIngredient,
		},
		Timer: toTimer(v.Timer),
	}
}

func toRecipe(r domain.Recipe, v service.View) dto.RecipeOutput {
	names := make([]string, 0, len(r.Needs))
	for name := range r.Needs {
		names = append(names, name)
	}
	sort.Strings(names)
	needs := make([]dto.IngredientNeed, 0, len(names))
	for _, name := range names {
		needs = append(needs, dto.IngredientNeed{Ingredient: name, Need: r.Needs[name], Have: v.State.Quantity(name)})
	}
	reward := v.Bonuses.Apply(r.Reward)
	return dto.RecipeOutput{ID: r.ID, Name: r.Name, Needs: needs, XP: reward.XP, Coins: reward.Coins, CanCook: v.State.CanCraft(r)}
}

func toShopItem(item domain.UpgradeItem, s domain.State) dto.ShopItemOutput {
	return dto.ShopItemOutput{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Category:    string(item.Category),
		Effect:      describeEffect(item),
		Cost:        item.Cost,
		Owned:       s.Owns(item.ID),
		Affordable:  s.Coins >= item.Cost,
	}
}

func toTask(item domain.ChecklistItem) dto.TaskOutput {
	return dto.TaskOutput{ID: item.ID, Title: item.Title, Tag: item.Tag, Done: item.Done, CreatedAt: item.CreatedAt}
}
