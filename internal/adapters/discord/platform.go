package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/lmittmann/tint"

	"apollo/internal/domain/entities"
	"apollo/internal/ports/output"
	pkgdiscord "apollo/pkg/discord"
)

const (
	fallbackChannelName = "events"
	listingHistoryLimit = 100
)

var channelNameSanitize = regexp.MustCompile(`[^\p{L}\p{N}_-]+`)

// Discord channel names are lowercase, dash separated, at most 100 runes.
func sanitizeChannelName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = channelNameSanitize.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if r := []rune(s); len(r) > 100 {
		s = string(r[:100])
	}
	return s
}

// Platform manages event channels and their listings in guilds.
type Platform struct {
	session    Session
	translator output.T
	locale     string
	selfID     func() string
	logger     *slog.Logger
}

var _ output.GuildPlatform = (*Platform)(nil)

// NewPlatform returns a Platform. selfID reports the bot's user ID once the
// gateway is ready.
func NewPlatform(session Session, translator output.T, locale string, selfID func() string, logger *slog.Logger) *Platform {
	return &Platform{
		session:    session,
		translator: translator,
		locale:     locale,
		selfID:     selfID,
		logger:     logger,
	}
}

func (p *Platform) CreateEventChannel(ctx context.Context, guildID, parentID string) (string, error) {
	name := sanitizeChannelName(p.translator.T(p.locale, "channel.default_name", nil))
	if name == "" {
		name = fallbackChannelName
	}
	ch, err := p.session.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
		Name:     name,
		Type:     discordgo.ChannelTypeGuildText,
		Topic:    p.translator.T(p.locale, "channel.topic", nil),
		ParentID: parentID,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("create channel in guild %s: %w", guildID, err)
	}
	p.logger.InfoContext(ctx, "event channel created", "guild_id", guildID, "channel_id", ch.ID)
	return ch.ID, nil
}

func isUnknownChannel(err error) bool {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) {
		return false
	}
	if restErr.Message != nil && restErr.Message.Code == discordgo.ErrCodeUnknownChannel {
		return true
	}
	return restErr.Response != nil && restErr.Response.StatusCode == http.StatusNotFound
}

// ChannelExists reports false only when Discord says the channel is gone.
// Other failures, missing access included, are returned or count as present.
func (p *Platform) ChannelExists(ctx context.Context, channelID string) (bool, error) {
	_, err := p.session.Channel(channelID, discordgo.WithContext(ctx))
	switch {
	case err == nil:
		return true, nil
	case isUnknownChannel(err):
		return false, nil
	default:
		var restErr *discordgo.RESTError
		if errors.As(err, &restErr) && restErr.Response != nil && restErr.Response.StatusCode == http.StatusForbidden {
			return true, nil
		}
		return false, fmt.Errorf("fetch channel %s: %w", channelID, err)
	}
}

func (p *Platform) labels() pkgdiscord.ListingLabels {
	return pkgdiscord.ListingLabels{
		Organizer: p.translator.T(p.locale, "listing.organizer", nil),
		StartTime: p.translator.T(p.locale, "listing.start_time", nil),
		Capacity:  p.translator.T(p.locale, "listing.capacity", nil),
		Unlimited: p.translator.T(p.locale, "listing.unlimited", nil),
	}
}

func (p *Platform) clearListing(ctx context.Context, channelID string) error {
	self := p.selfID()
	if self == "" {
		return errors.New("bot user unknown")
	}
	msgs, err := p.session.ChannelMessages(channelID, listingHistoryLimit, "", "", "", discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("list messages of %s: %w", channelID, err)
	}
	for _, m := range msgs {
		if m.Author == nil || m.Author.ID != self {
			continue
		}
		if err := p.session.ChannelMessageDelete(channelID, m.ID, discordgo.WithContext(ctx)); err != nil {
			p.logger.WarnContext(ctx, "delete listing message", "channel_id", channelID, "message_id", m.ID, tint.Err(err))
		}
	}
	return nil
}

// PublishEventListing replaces the bot's messages in the channel with one
// embed per event. events are expected in start time order.
func (p *Platform) PublishEventListing(ctx context.Context, channelID string, events []entities.Event) error {
	if err := p.clearListing(ctx, channelID); err != nil {
		return err
	}

	if len(events) == 0 {
		_, err := p.session.ChannelMessageSend(channelID, p.translator.T(p.locale, "listing.empty", nil), discordgo.WithContext(ctx))
		if err != nil {
			return fmt.Errorf("post empty listing: %w", err)
		}
		return nil
	}

	labels := p.labels()
	embeds := make([]*discordgo.MessageEmbed, 0, len(events))
	for _, e := range events {
		embeds = append(embeds, pkgdiscord.BuildEventEmbed(e, labels))
	}
	for _, chunk := range pkgdiscord.ChunkEmbeds(embeds) {
		if _, err := p.session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{Embeds: chunk}, discordgo.WithContext(ctx)); err != nil {
			return fmt.Errorf("post listing: %w", err)
		}
	}
	return nil
}
