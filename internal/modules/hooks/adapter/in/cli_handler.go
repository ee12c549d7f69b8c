package in

import (
	"context"

	"studychef/internal/modules/hooks/dto"
	hooksin "studychef/internal/modules/hooks/port/in"
)

type CLIHandler struct {
	usecase hooksin.Usecase
}

func NewCLIHandler(usecase hooksin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]dto.HookInfo, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return h.usecase.Doctor(ctx)
}

func (h CLIHandler) Test(ctx context.Context, hookName string) (dto.DeliveryResult, error) {
	return h.usecase.Test(ctx, hookName)
}
