package service

import (
	"context"
	"strings"
	"time"

	"studychef/internal/modules/kitchen/domain"
	"studychef/internal/platform/clock"
	"studychef/internal/platform/id"
	"studychef/internal/platform/tx"
)

// View is a copy of the kitchen taken inside the critical section.
type View struct {
	State   domain.State
	Timer   domain.Timer
	Bonuses domain.Bonuses
}

// KitchenService serializes every operation on the kitchen and stamps them
// with the clock. It performs no I/O.
type KitchenService struct {
	clock    clock.Clock
	tx       tx.Manager
	idGen    id.Generator
	kitchen  *domain.Kitchen
	defaults domain.Settings
}

func NewKitchenService(clock clock.Clock, txm tx.Manager, idGen id.Generator, kitchen *domain.Kitchen, defaults domain.Settings) *KitchenService {
	return &KitchenService{clock: clock, tx: txm, idGen: idGen, kitchen: kitchen, defaults: defaults}
}

func (s *KitchenService) Catalog() domain.Catalog {
	return s.kitchen.Catalog()
}

func (s *KitchenService) Now() time.Time {
	return s.clock.Now()
}

func (s *KitchenService) Today() domain.Date {
	return s.kitchen.Today(s.clock.Now())
}

func (s *KitchenService) View(ctx context.Context) (View, error) {
	var out View
	err := s.tx.Within(ctx, func(context.Context) error {
		out = s.view()
		return nil
	})
	return out, err
}

// Restore decodes raw and replaces the kitchen with it. On error the kitchen
// is unchanged.
func (s *KitchenService) Restore(ctx context.Context, raw []byte) error {
	return s.tx.Within(ctx, func(context.Context) error {
		snap, err := domain.DecodeSnapshot(raw, s.defaults)
		if err != nil {
			return err
		}
		return s.kitchen.Restore(snap, s.clock.Now())
	})
}

func (s *KitchenService) Encode(ctx context.Context) ([]byte, error) {
	var raw []byte
	err := s.tx.Within(ctx, func(context.Context) error {
		var encErr error
		raw, encErr = domain.EncodeSnapshot(s.kitchen.Snapshot())
		return encErr
	})
	return raw, err
}

func (s *KitchenService) RollOver(ctx context.Context) (bool, error) {
	var changed bool
	err := s.tx.Within(ctx, func(context.Context) error {
		changed = s.kitchen.RollOver(s.clock.Now())
		return nil
	})
	return changed, err
}

func (s *KitchenService) Start(ctx context.Context, mode domain.Mode) ([]domain.Event, View, error) {
	var events []domain.Event
	var out View
	err := s.tx.Within(ctx, func(context.Context) error {
		var startErr error
		events, startErr = s.kitchen.Start(mode, s.clock.Now())
		out = s.view()
		return startErr
	})
	return events, out, err
}

func (s *KitchenService) TogglePause(ctx context.Context) (View, error) {
	var out View
	err := s.tx.Within(ctx, func(context.Context) error {
		s.kitchen.TogglePause(s.clock.Now())
		out = s.view()
		return nil
	})
	return out, err
}

func (s *KitchenService) Tick(ctx context.Context) (domain.Tick, []domain.Event, View, error) {
	var tick domain.Tick
	var events []domain.Event
	var out View
	err := s.tx.Within(ctx, func(context.Context) error {
		tick, events = s.kitchen.Tick(s.clock.Now())
		out = s.view()
		return nil
	})
	return tick, events, out, err
}

// Configure applies change to the current settings. The running segment keeps
// its length.
func (s *KitchenService) Configure(ctx context.Context, change func(domain.Settings) domain.Settings) (View, error) {
	var out View
	err := s.tx.Within(ctx, func(context.Context) error {
		if err := s.kitchen.Configure(change(s.kitchen.Timer.Settings)); err != nil {
			return err
		}
		out = s.view()
		return nil
	})
	return out, err
}

func (s *KitchenService) Cook(ctx context.Context, recipeID string) (domain.Reward, []domain.Event, error) {
	var granted domain.Reward
	var events []domain.Event
	err := s.tx.Within(ctx, func(context.Context) error {
		var cookErr error
		granted, events, cookErr = s.kitchen.Cook(strings.TrimSpace(recipeID), s.clock.Now())
		return cookErr
	})
	return granted, events, err
}

func (s *KitchenService) Purchase(ctx context.Context, itemID string) ([]domain.Event, View, error) {
	var events []domain.Event
	var out View
	err := s.tx.Within(ctx, func(context.Context) error {
		var buyErr error
		events, buyErr = s.kitchen.Purchase(strings.TrimSpace(itemID), s.clock.Now())
		out = s.view()
		return buyErr
	})
	return events, out, err
}

func (s *KitchenService) AddTask(ctx context.Context, title, tag string) (domain.ChecklistItem, error) {
	item := domain.ChecklistItem{ID: s.idGen.New(), Title: title, Tag: tag, CreatedAt: s.clock.Now()}
	err := s.tx.Within(ctx, func(context.Context) error {
		if err := s.kitchen.AddTask(item); err != nil {
			return err
		}
		item = s.kitchen.State.Checklist[len(s.kitchen.State.Checklist)-1]
		return nil
	})
	if err != nil {
		return domain.ChecklistItem{}, err
	}
	return item, nil
}

func (s *KitchenService) ToggleTask(ctx context.Context, taskID string) (domain.ChecklistItem, domain.Reward, []domain.Event, error) {
	var item domain.ChecklistItem
	var granted domain.Reward
	var events []domain.Event
	err := s.tx.Within(ctx, func(context.Context) error {
		var toggleErr error
		item, granted, events, toggleErr = s.kitchen.ToggleTask(strings.TrimSpace(taskID), s.clock.Now())
		return toggleErr
	})
	return item, granted, events, err
}

func (s *KitchenService) RemoveTask(ctx context.Context, taskID string) error {
	return s.tx.Within(ctx, func(context.Context) error {
		return s.kitchen.RemoveTask(strings.TrimSpace(taskID))
	})
}

func (s *KitchenService) Achievements(ctx context.Context) (map[string]bool, []domain.Event, error) {
	var earned map[string]bool
	var events []domain.Event
	err := s.tx.Within(ctx, func(context.Context) error {
		earned, events = s.kitchen.Achievements(s.clock.Now())
		return nil
	})
	return earned, events, err
}

// Reset discards all progress and returns the timer to the configured defaults.
func (s *KitchenService) Reset(ctx context.Context) (View, error) {
	var out View
	err := s.tx.Within(ctx, func(context.Context) error {
		s.kitchen.Reset(s.defaults)
		s.kitchen.RollOver(s.clock.Now())
		out = s.view()
		return nil
	})
	return out, err
}

func (s *KitchenService) view() View {
	return View{
		State:   s.kitchen.State.Clone(),
		Timer:   s.kitchen.Timer,
		Bonuses: s.kitchen.Bonuses(),
	}
}
