package in

import (
	"context"

	"studychef/internal/modules/kitchen/dto"
)

type Usecase interface {
	Open(ctx context.Context) (dto.OpenOutput, error)
	Status(ctx context.Context) (dto.StatusOutput, error)
	Start(ctx context.Context, input dto.StartInput) (dto.StartOutput, error)
	TogglePause(ctx context.Context) (dto.TimerOutput, error)
	Tick(ctx context.Context) (dto.TickOutput, error)
	Configure(ctx context.Context, input dto.ConfigureInput) (dto.TimerOutput, error)
	Recipes(ctx context.Context) ([]dto.RecipeOutput, error)
	Cook(ctx context.Context, recipeID string) (dto.CookOutput, error)
	Shop(ctx context.Context) ([]dto.ShopItemOutput, error)
	Buy(ctx context.Context, itemID string) (dto.BuyOutput, error)
	Tasks(ctx context.Context) ([]dto.TaskOutput, error)
	AddTask(ctx context.Context, input dto.AddTaskInput) (dto.TaskOutput, error)
	ToggleTask(ctx context.Context, taskID string) (dto.ToggleTaskOutput, error)
	RemoveTask(ctx context.Context, taskID string) error
	Achievements(ctx context.Context) ([]dto.AchievementOutput, error)
	History(ctx context.Context, days int) ([]dto.DayStatOutput, error)
	Export(ctx context.Context) ([]byte, error)
	Import(ctx context.Context, raw []byte) (dto.StatusOutput, error)
	Reset(ctx context.Context) (dto.StatusOutput, error)
	Save(ctx context.Context) error
}
