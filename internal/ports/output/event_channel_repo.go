package output

import (
	"context"

	"apollo/internal/domain/entities"
)

type EventChannelRepository interface {
	FindByGuildID(ctx context.Context, guildID string) ([]entities.EventChannel, error)
	// Delete removes the channel and its events. Deleting an unknown channel is not an error.
	Delete(ctx context.Context, channelID string) error
}
