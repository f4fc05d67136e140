package output

import (
	"context"

	"apollo/internal/domain/entities"
)

// GuildPlatform covers the guild side of the chat platform.
type GuildPlatform interface {
	// CreateEventChannel creates a text channel under parentID (may be empty)
	// and returns its ID.
	CreateEventChannel(ctx context.Context, guildID, parentID string) (string, error)
	ChannelExists(ctx context.Context, channelID string) (bool, error)
	// PublishEventListing replaces the bot's listing in the channel with events.
	PublishEventListing(ctx context.Context, channelID string, events []entities.Event) error
}
