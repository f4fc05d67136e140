package output

import (
	"context"

	"apollo/internal/domain/entities"
)

type EventRepository interface {
	// Create stores the event and, when it does not exist yet, its event channel.
	Create(ctx context.Context, event *entities.Event) error
	FindByEventChannelID(ctx context.Context, channelID string) ([]entities.Event, error)
}
