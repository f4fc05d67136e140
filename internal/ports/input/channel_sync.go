package input

import "context"

type ChannelSyncUseCase interface {
	// SyncGuild forgets the guild's event channels that no longer exist on the platform.
	SyncGuild(ctx context.Context, guildID string) (removed int, err error)
	// ForgetChannel drops a channel known to be deleted.
	ForgetChannel(ctx context.Context, channelID string) error
}
