package in

import (
	"context"

	"studychef/internal/modules/kitchen/dto"
	kitchenin "studychef/internal/modules/kitchen/port/in"
)

type CLIHandler struct {
	usecase kitchenin.Usecase
}

func NewCLIHandler(usecase kitchenin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Open(ctx context.Context) (dto.OpenOutput, error) {
	return h.usecase.Open(ctx)
}

func (h CLIHandler) Status(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.Status(ctx)
}

func (h CLIHandler) Start(ctx context.Context, mode string) (dto.StartOutput, error) {
	return h.usecase.Start(ctx, dto.StartInput{Mode: mode})
}

func (h CLIHandler) TogglePause(ctx context.Context) (dto.TimerOutput, error) {
	return h.usecase.TogglePause(ctx)
}

func (h CLIHandler) Tick(ctx context.Context) (dto.TickOutput, error) {
	return h.usecase.Tick(ctx)
}

func (h CLIHandler) Configure(ctx context.Context, input dto.ConfigureInput) (dto.TimerOutput, error) {
	return h.usecase.Configure(ctx, input)
}

func (h CLIHandler) Recipes(ctx context.Context) ([]dto.RecipeOutput, error) {
	return h.usecase.Recipes(ctx)
}

func (h CLIHandler) Cook(ctx context.Context, recipeID string) (dto.CookOutput, error) {
	return h.usecase.Cook(ctx, recipeID)
}

func (h CLIHandler) Shop(ctx context.Context) ([]dto.ShopItemOutput, error) {
	return h.usecase.Shop(ctx)
}

func (h CLIHandler) Buy(ctx context.Context, itemID string) (dto.BuyOutput, error) {
	return h.usecase.Buy(ctx, itemID)
}

func (h CLIHandler) Tasks(ctx context.Context) ([]dto.TaskOutput, error) {
	return h.usecase.Tasks(ctx)
}

func (h CLIHandler) AddTask(ctx context.Context, title, tag string) (dto.TaskOutput, error) {
	return h.usecase.AddTask(ctx, dto.AddTaskInput{Title: title, Tag: tag})
}

func (h CLIHandler) ToggleTask(ctx context.Context, taskID string) (dto.ToggleTaskOutput, error) {
	return h.usecase.ToggleTask(ctx, taskID)
}

func (h CLIHandler) RemoveTask(ctx context.Context, taskID string) error {
	return h.usecase.RemoveTask(ctx, taskID)
}

func (h CLIHandler) Achievements(ctx context.Context) ([]dto.AchievementOutput, error) {
	return h.usecase.Achievements(ctx)
}

func (h CLIHandler) History(ctx context.Context, days int) ([]dto.DayStatOutput, error) {
	return h.usecase.History(ctx, days)
}

func (h CLIHandler) Export(ctx context.Context) ([]byte, error) {
	return h.usecase.Export(ctx)
}

func (h CLIHandler) Import(ctx context.Context, raw []byte) (dto.StatusOutput, error) {
	return h.usecase.Import(ctx, raw)
}

func (h CLIHandler) Reset(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.Reset(ctx)
}
