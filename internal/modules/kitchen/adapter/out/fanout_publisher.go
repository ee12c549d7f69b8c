package out

import (
	"context"
	"errors"
	"fmt"

	"studychef/internal/modules/kitchen/domain"
	kitchenout "studychef/internal/modules/kitchen/port/out"
)

// FanoutPublisher delivers each event to every sink in order. A failing sink
// does not stop the others; all failures are joined.
type FanoutPublisher struct {
	sinks []namedSink
}

type namedSink struct {
	name string
	sink kitchenout.EventPublisher
}

func NewFanoutPublisher() *FanoutPublisher {
	return &FanoutPublisher{}
}

// Add registers sink under name. Nil sinks are skipped.
func (p *FanoutPublisher) Add(name string, sink kitchenout.EventPublisher) *FanoutPublisher {
	if sink != nil {
		p.sinks = append(p.sinks, namedSink{name: name, sink: sink})
	}
	return p
}

func (p *FanoutPublisher) Publish(ctx context.Context, event domain.Event) error {
	var errs []error
	for _, s := range p.sinks {
		if err := s.sink.Publish(ctx, event); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.name, err))
		}
	}
	return errors.Join(errs...)
}
