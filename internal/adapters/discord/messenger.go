package discord

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"apollo/internal/domain"
	"apollo/internal/domain/entities"
	"apollo/internal/ports/output"
	pkgdiscord "apollo/pkg/discord"
)

const (
	channelSelectPrefix = "event_channel_select_"
	maxSelectOptions    = 25
)

// Messenger talks to members over direct messages.
type Messenger struct {
	session       Session
	waiter        *waiter
	translator    output.T
	defaultLocale string
	now           func() time.Time

	mu       sync.Mutex
	dmByUser map[string]string
	seq      uint64
}

var _ output.DirectMessenger = (*Messenger)(nil)

func NewMessenger(session Session, w *waiter, translator output.T, defaultLocale string) *Messenger {
	return &Messenger{
		session:       session,
		waiter:        w,
		translator:    translator,
		defaultLocale: defaultLocale,
		now:           time.Now,
		dmByUser:      make(map[string]string),
	}
}

func (m *Messenger) dmChannel(ctx context.Context, userID string) (string, error) {
	m.mu.Lock()
	id, ok := m.dmByUser[userID]
	m.mu.Unlock()
	if ok {
		return id, nil
	}
	ch, err := m.session.UserChannelCreate(userID, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("open DM channel: %w", err)
	}
	if ch == nil {
		return "", errors.New("open DM channel: empty response")
	}
	m.mu.Lock()
	m.dmByUser[userID] = ch.ID
	m.mu.Unlock()
	return ch.ID, nil
}

func (m *Messenger) SendDM(ctx context.Context, userID, content string) error {
	ch, err := m.dmChannel(ctx, userID)
	if err != nil {
		return err
	}
	if _, err := m.session.ChannelMessageSend(ch, content, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("send DM: %w", err)
	}
	return nil
}

func (m *Messenger) SendTimeZoneMenu(ctx context.Context, userID, title string, zones []string) error {
	ch, err := m.dmChannel(ctx, userID)
	if err != nil {
		return err
	}
	_, err = m.session.ChannelMessageSendComplex(ch, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{pkgdiscord.BuildTimeZoneEmbed(title, zones, m.now())},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("send time zone menu: %w", err)
	}
	return nil
}

func (m *Messenger) NextDM(ctx context.Context, userID string, timeout time.Duration) (string, error) {
	msg, err := waitFor(ctx, m.waiter, timeout, func(mc *discordgo.MessageCreate) bool {
		// attachment-only messages carry no answer
		return mc.GuildID == "" && mc.Author != nil && mc.Author.ID == userID &&
			strings.TrimSpace(mc.Content) != ""
	})
	if errors.Is(err, errWaitTimeout) {
		return "", domain.ErrReplyTimeout
	}
	if err != nil {
		return "", err
	}
	return msg.Content, nil
}

func (m *Messenger) nextCustomID(userID string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	return fmt.Sprintf("%s%s_%d", channelSelectPrefix, userID, m.seq)
}

func (m *Messenger) channelLabel(ctx context.Context, channelID string) string {
	ch, err := m.session.Channel(channelID, discordgo.WithContext(ctx))
	if err != nil || ch == nil || ch.Name == "" {
		return channelID
	}
	return "#" + ch.Name
}

func (m *Messenger) ChooseEventChannel(ctx context.Context, userID, prompt, placeholder string, channels []entities.EventChannel, timeout time.Duration) (string, error) {
	dm, err := m.dmChannel(ctx, userID)
	if err != nil {
		return "", err
	}

	if len(channels) > maxSelectOptions {
		channels = channels[:maxSelectOptions]
	}
	options := make([]discordgo.SelectMenuOption, 0, len(channels))
	for _, c := range channels {
		options = append(options, discordgo.SelectMenuOption{
			Label: m.channelLabel(ctx, c.ID),
			Value: c.ID,
		})
	}

	customID := m.nextCustomID(userID)
	menu := discordgo.SelectMenu{
		CustomID:    customID,
		Placeholder: placeholder,
		Options:     options,
	}
	_, err = m.session.ChannelMessageSendComplex(dm, &discordgo.MessageSend{
		Content:    prompt,
		Components: menuRow(menu),
	}, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("send channel chooser: %w", err)
	}

	i, err := waitFor(ctx, m.waiter, timeout, func(i *discordgo.InteractionCreate) bool {
		return i.Type == discordgo.InteractionMessageComponent &&
			i.MessageComponentData().CustomID == customID &&
			interactionUserID(i) == userID
	})
	if errors.Is(err, errWaitTimeout) {
		return "", domain.ErrChannelChoiceTimeout
	}
	if err != nil {
		return "", err
	}

	values := i.MessageComponentData().Values
	choice := ""
	if len(values) > 0 {
		choice = values[0]
	}

	// acknowledge and lock the menu on the chosen channel
	menu.Disabled = true
	menu.Options = make([]discordgo.SelectMenuOption, len(options))
	for n, o := range options {
		o.Default = o.Value == choice
		menu.Options[n] = o
	}
	_ = m.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    prompt,
			Components: menuRow(menu),
		},
	})
	return choice, nil
}

func menuRow(menu discordgo.SelectMenu) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{menu}},
	}
}
