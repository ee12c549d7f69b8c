package out

import (
	"context"

	"studychef/internal/modules/kitchen/domain"
)

// SnapshotStore persists the encoded snapshot. Load returns
// apperrors.ErrNoSnapshot when nothing was saved yet.
type SnapshotStore interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, raw []byte) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}

type HistoryReader interface {
	DailyFocus(ctx context.Context, from, to domain.Date) ([]domain.DayStat, error)
}

type CatalogSource interface {
	Load(ctx context.Context) (domain.Catalog, error)
}
