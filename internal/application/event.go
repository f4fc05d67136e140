package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lmittmann/tint"

	"apollo/internal/domain"
	"apollo/internal/domain/entities"
	"apollo/internal/ports/input"
	"apollo/internal/ports/output"
	"apollo/pkg/tz"
)

const (
	DescriptionReplyTimeout = 240 * time.Second
	ChannelChoiceTimeout    = 90 * time.Second
)

var _ input.EventCreationUseCase = (*EventService)(nil)

// EventService drives the event creation conversation. One call to
// CreateEvent is one independent flow; the service itself holds no per-flow state.
type EventService struct {
	guildRepo   output.GuildRepository
	userRepo    output.UserRepository
	channelRepo output.EventChannelRepository
	eventRepo   output.EventRepository
	messenger   output.DirectMessenger
	platform    output.GuildPlatform
	translator  output.T
	channelSync input.ChannelSyncUseCase
	logger      *slog.Logger

	zones []string
	now   func() time.Time
}

func NewEventService(
	guildRepo output.GuildRepository,
	userRepo output.UserRepository,
	channelRepo output.EventChannelRepository,
	eventRepo output.EventRepository,
	messenger output.DirectMessenger,
	platform output.GuildPlatform,
	translator output.T,
	channelSync input.ChannelSyncUseCase,
	logger *slog.Logger,
) *EventService {
	return &EventService{
		guildRepo:   guildRepo,
		userRepo:    userRepo,
		channelRepo: channelRepo,
		eventRepo:   eventRepo,
		messenger:   messenger,
		platform:    platform,
		translator:  translator,
		channelSync: channelSync,
		logger:      logger,
		zones:       tz.Supported,
		now:         time.Now,
	}
}

func (s *EventService) CreateEvent(ctx context.Context, inv input.EventInvocation) (*entities.Event, error) {
	if inv.GuildID == "" {
		return nil, domain.ErrGuildOnly
	}
	log := s.logger.With("guild_id", inv.GuildID, "user_id", inv.UserID)

	// Channels deleted while the bot was offline must not be offered.
	if removed, err := s.channelSync.SyncGuild(ctx, inv.GuildID); err != nil {
		log.WarnContext(ctx, "event channel sync failed", tint.Err(err))
	} else if removed > 0 {
		log.InfoContext(ctx, "event channels pruned", "removed", removed)
	}

	if _, err := s.guildRepo.FindOrCreate(ctx, inv.GuildID); err != nil {
		return nil, fmt.Errorf("find or create guild: %w", err)
	}

	c := &conversation{s: s, inv: inv}

	if !inv.CanCreateEvents {
		c.respond(ctx, "error.missing_permissions")
		return nil, domain.ErrMissingPermissions
	}

	channels, err := s.channelRepo.FindByGuildID(ctx, inv.GuildID)
	if err != nil {
		return nil, fmt.Errorf("list event channels: %w", err)
	}
	organizer, err := s.userRepo.FindOrCreate(ctx, inv.UserID)
	if err != nil {
		return nil, fmt.Errorf("find or create user: %w", err)
	}

	c.respond(ctx, "event.check_dms")
	event, err := c.collect(ctx, channels, organizer)
	if err != nil {
		c.fail(ctx, err)
		return nil, err
	}

	// A new channel is only created once the answers are complete, so an
	// abandoned flow leaves nothing behind on the guild.
	if event.EventChannel.ID == "" {
		id, err := s.platform.CreateEventChannel(ctx, inv.GuildID, inv.ParentID)
		if err != nil {
			return nil, fmt.Errorf("create event channel: %w", err)
		}
		event.EventChannel.ID = id
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	log.InfoContext(ctx, "event created", "event_id", event.ID, "channel_id", event.EventChannel.ID)

	if err := c.say(ctx, "event.created", map[string]any{"ChannelID": event.EventChannel.ID}); err != nil {
		log.WarnContext(ctx, "event created DM failed", tint.Err(err))
	}

	events, err := s.eventRepo.FindByEventChannelID(ctx, event.EventChannel.ID)
	if err != nil {
		log.ErrorContext(ctx, "list channel events failed", tint.Err(err))
		return event, nil
	}
	if err := s.platform.PublishEventListing(ctx, event.EventChannel.ID, events); err != nil {
		log.ErrorContext(ctx, "publish event listing failed", "channel_id", event.EventChannel.ID, tint.Err(err))
	}
	return event, nil
}

// conversation is the state of a single flow.
type conversation struct {
	s   *EventService
	inv input.EventInvocation
}

func (c *conversation) t(key string, data map[string]any) string {
	return c.s.translator.T(c.inv.Locale, key, data)
}

func (c *conversation) respond(ctx context.Context, key string) {
	if c.inv.Responder == nil {
		return
	}
	if err := c.inv.Responder.Respond(ctx, c.t(key, nil)); err != nil {
		c.s.logger.WarnContext(ctx, "interaction response failed", "key", key, tint.Err(err))
	}
}

func (c *conversation) say(ctx context.Context, key string, data map[string]any) error {
	if err := c.s.messenger.SendDM(ctx, c.inv.UserID, c.t(key, data)); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCannotDM, err)
	}
	return nil
}

// fail tells the member why the flow ended, where that is useful.
func (c *conversation) fail(ctx context.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrCannotDM):
		c.respond(ctx, "error.cannot_dm")
	case errors.Is(err, domain.ErrReplyTimeout), errors.Is(err, domain.ErrChannelChoiceTimeout):
		_ = c.say(ctx, "error."+domain.Code(err), nil)
	}
}

func (c *conversation) collect(ctx context.Context, channels []entities.EventChannel, organizer *entities.User) (*entities.Event, error) {
	// The intro goes first so that closed DMs end the flow before any prompt.
	if err := c.say(ctx, "event.intro", nil); err != nil {
		return nil, err
	}

	channel, err := c.resolveChannel(ctx, channels)
	if err != nil {
		return nil, fmt.Errorf("event channel: %w", err)
	}

	title, err := ask(ctx, c, c.sayFunc("event.title_prompt"), map[string]any{"Max": domain.MaxTitleLength}, 0, domain.ParseTitle)
	if err != nil {
		return nil, fmt.Errorf("title: %w", err)
	}
	desc, err := ask(ctx, c, c.sayFunc("event.description_prompt"), map[string]any{"Max": domain.MaxDescriptionLength}, DescriptionReplyTimeout, domain.ParseDescription)
	if err != nil {
		return nil, fmt.Errorf("description: %w", err)
	}
	capacity, err := ask(ctx, c, c.sayFunc("event.capacity_prompt"), map[string]any{"Max": domain.MaxCapacity}, 0, domain.ParseCapacity)
	if err != nil {
		return nil, fmt.Errorf("capacity: %w", err)
	}

	zones := c.s.zones
	menu := func(ctx context.Context) error {
		if err := c.s.messenger.SendTimeZoneMenu(ctx, c.inv.UserID, c.t("event.time_zone_prompt", nil), zones); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrCannotDM, err)
		}
		return nil
	}
	zone, err := ask(ctx, c, menu, map[string]any{"Count": len(zones)}, 0, func(s string) (string, error) {
		return domain.ParseTimeZoneChoice(s, zones)
	})
	if err != nil {
		return nil, fmt.Errorf("time zone: %w", err)
	}

	start, err := ask(ctx, c, c.sayFunc("event.start_time_prompt"), nil, 0, func(s string) (time.Time, error) {
		return domain.ParseStartTime(s, zone, c.s.now())
	})
	if err != nil {
		return nil, fmt.Errorf("start time: %w", err)
	}

	return &entities.Event{
		Title:        title,
		Description:  desc,
		Capacity:     capacity,
		OrganizerID:  organizer.ID,
		EventChannel: channel,
		TimeZone:     zone,
		StartTime:    start,
	}, nil
}

func (c *conversation) sayFunc(key string) func(context.Context) error {
	return func(ctx context.Context) error {
		return c.say(ctx, key, nil)
	}
}

// ask sends a prompt, then reads replies until parse accepts one. Every
// rejected reply gets the "event.<code>" message of the domain error.
func ask[V any](
	ctx context.Context,
	c *conversation,
	prompt func(context.Context) error,
	data map[string]any,
	timeout time.Duration,
	parse func(string) (V, error),
) (V, error) {
	var zero V
	if err := prompt(ctx); err != nil {
		return zero, err
	}
	for {
		reply, err := c.s.messenger.NextDM(ctx, c.inv.UserID, timeout)
		if err != nil {
			return zero, err
		}
		v, err := parse(reply)
		if err == nil {
			return v, nil
		}
		code := domain.Code(err)
		if code == "" {
			return zero, err
		}
		if err := c.say(ctx, "event."+code, data); err != nil {
			return zero, err
		}
	}
}

func (c *conversation) resolveChannel(ctx context.Context, channels []entities.EventChannel) (entities.EventChannel, error) {
	switch len(channels) {
	case 0:
		// empty ID: created by CreateEvent after the last answer
		return entities.EventChannel{GuildID: c.inv.GuildID}, nil
	case 1:
		return channels[0], nil
	}

	prompt := c.t("event.channel_prompt", nil)
	placeholder := c.t("event.channel_placeholder", nil)
	for {
		id, err := c.s.messenger.ChooseEventChannel(ctx, c.inv.UserID, prompt, placeholder, channels, ChannelChoiceTimeout)
		if err != nil {
			return entities.EventChannel{}, err
		}
		for _, ch := range channels {
			if ch.ID == id {
				return ch, nil
			}
		}
		if err := c.say(ctx, "error."+domain.Code(domain.ErrUnknownEventChannel), nil); err != nil {
			return entities.EventChannel{}, err
		}
	}
}
