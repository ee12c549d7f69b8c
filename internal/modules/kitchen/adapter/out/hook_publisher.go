package out

import (
	"context"
	"encoding/json"
	"fmt"

	hooksdto "studychef/internal/modules/hooks/dto"
	hooksin "studychef/internal/modules/hooks/port/in"
	"studychef/internal/modules/kitchen/domain"
	kitchenout "studychef/internal/modules/kitchen/port/out"
)

// HookPublisher forwards kitchen events to the hook plugins. The event's JSON
// form is the notification payload.
type HookPublisher struct {
	hooks hooksin.Usecase
}

func NewHookPublisher(hooks hooksin.Usecase) kitchenout.EventPublisher {
	return &HookPublisher{hooks: hooks}
}

func (p *HookPublisher) Publish(ctx context.Context, event domain.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", event.Kind(), err)
	}
	_, err = p.hooks.Dispatch(ctx, hooksdto.NotifyInput{
		Kind:        string(event.Kind()),
		OccurredAt:  event.At(),
		PayloadJSON: string(payload),
	})
	return err
}
