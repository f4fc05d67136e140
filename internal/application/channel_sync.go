package application

import (
	"context"
	"fmt"
	"log/slog"

	"apollo/internal/ports/input"
	"apollo/internal/ports/output"
)

var _ input.ChannelSyncUseCase = (*ChannelSyncService)(nil)

// ChannelSyncService prunes event channels that were deleted on the platform,
// typically while the bot was offline.
type ChannelSyncService struct {
	channelRepo output.EventChannelRepository
	platform    output.GuildPlatform
	logger      *slog.Logger
}

func NewChannelSyncService(
	channelRepo output.EventChannelRepository,
	platform output.GuildPlatform,
	logger *slog.Logger,
) *ChannelSyncService {
	return &ChannelSyncService{
		channelRepo: channelRepo,
		platform:    platform,
		logger:      logger,
	}
}

func (s *ChannelSyncService) SyncGuild(ctx context.Context, guildID string) (int, error) {
	channels, err := s.channelRepo.FindByGuildID(ctx, guildID)
	if err != nil {
		return 0, fmt.Errorf("list event channels: %w", err)
	}
	removed := 0
	for _, ch := range channels {
		exists, err := s.platform.ChannelExists(ctx, ch.ID)
		if err != nil {
			return removed, fmt.Errorf("check channel %s: %w", ch.ID, err)
		}
		if exists {
			continue
		}
		if err := s.channelRepo.Delete(ctx, ch.ID); err != nil {
			return removed, fmt.Errorf("delete event channel %s: %w", ch.ID, err)
		}
		s.logger.InfoContext(ctx, "forgot deleted event channel", "guild_id", guildID, "channel_id", ch.ID)
		removed++
	}
	return removed, nil
}

func (s *ChannelSyncService) ForgetChannel(ctx context.Context, channelID string) error {
	if err := s.channelRepo.Delete(ctx, channelID); err != nil {
		return fmt.Errorf("delete event channel %s: %w", channelID, err)
	}
	return nil
}
