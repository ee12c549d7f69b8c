package in

import (
	"context"

	"studychef/internal/modules/hooks/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.HookInfo, error)
	Doctor(ctx context.Context) ([]dto.DoctorResult, error)
	Dispatch(ctx context.Context, input dto.NotifyInput) (dto.DispatchOutput, error)
	Test(ctx context.Context, hookName string) (dto.DeliveryResult, error)
}
