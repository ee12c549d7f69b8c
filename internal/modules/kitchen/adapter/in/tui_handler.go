package in

import (
	"context"

	"studychef/internal/modules/kitchen/dto"
	kitchenin "studychef/internal/modules/kitchen/port/in"
)

// TUIHandler is the surface the interactive kitchen drives. Every call that
// returns events hands them back so the UI can raise toasts.
type TUIHandler struct {
	usecase kitchenin.Usecase
}

func NewTUIHandler(usecase kitchenin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) Status(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.Status(ctx)
}

func (h TUIHandler) Start(ctx context.Context, mode string) (dto.StartOutput, error) {
	return h.usecase.Start(ctx, dto.StartInput{Mode: mode})
}

func (h TUIHandler) TogglePause(ctx context.Context) (dto.TimerOutput, error) {
	return h.usecase.TogglePause(ctx)
}

func (h TUIHandler) Tick(ctx context.Context) (dto.TickOutput, error) {
	return h.usecase.Tick(ctx)
}

func (h TUIHandler) Configure(ctx context.Context, input dto.ConfigureInput) (dto.TimerOutput, error) {
	return h.usecase.Configure(ctx, input)
}

func (h TUIHandler) Recipes(ctx context.Context) ([]dto.RecipeOutput, error) {
	return h.usecase.Recipes(ctx)
}

func (h TUIHandler) Cook(ctx context.Context, recipeID string) (dto.CookOutput, error) {
	return h.usecase.Cook(ctx, recipeID)
}

func (h TUIHandler) Shop(ctx context.Context) ([]dto.ShopItemOutput, error) {
	return h.usecase.Shop(ctx)
}

func (h TUIHandler) Buy(ctx context.Context, itemID string) (dto.BuyOutput, error) {
	return h.usecase.Buy(ctx, itemID)
}

func (h TUIHandler) Tasks(ctx context.Context) ([]dto.TaskOutput, error) {
	return h.usecase.Tasks(ctx)
}

func (h TUIHandler) AddTask(ctx context.Context, title string) (dto.TaskOutput, error) {
	return h.usecase.AddTask(ctx, dto.AddTaskInput{Title: title})
}

func (h TUIHandler) ToggleTask(ctx context.Context, taskID string) (dto.ToggleTaskOutput, error) {
	return h.usecase.ToggleTask(ctx, taskID)
}

func (h TUIHandler) RemoveTask(ctx context.Context, taskID string) error {
	return h.usecase.RemoveTask(ctx, taskID)
}

func (h TUIHandler) Achievements(ctx context.Context) ([]dto.AchievementOutput, error) {
	return h.usecase.Achievements(ctx)
}

func (h TUIHandler) History(ctx context.Context, days int) ([]dto.DayStatOutput, error) {
	return h.usecase.History(ctx, days)
}

// Save flushes state on quit.
func (h TUIHandler) Save(ctx context.Context) error {
	return h.usecase.Save(ctx)
}
