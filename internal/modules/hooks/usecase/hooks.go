package usecase

import (
	"context"

	"studychef/internal/modules/hooks/dto"
	hooksin "studychef/internal/modules/hooks/port/in"
	"studychef/internal/modules/hooks/service"
)

type Interactor struct {
	svc *service.HooksService
}

func NewInteractor(svc *service.HooksService) hooksin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(ctx context.Context) ([]dto.HookInfo, error) {
	return i.svc.List(ctx)
}

func (i *Interactor) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return i.svc.Doctor(ctx)
}

func (i *Interactor) Dispatch(ctx context.Context, input dto.NotifyInput) (dto.DispatchOutput, error) {
	return i.svc.Dispatch(ctx, input)
}

func (i *Interactor) Test(ctx context.Context, hookName string) (dto.DeliveryResult, error) {
	return i.svc.Test(ctx, hookName)
}
