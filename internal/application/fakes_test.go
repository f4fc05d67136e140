package application

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"apollo/internal/domain"
	"apollo/internal/domain/entities"
)

const timeoutReply = "<timeout>"

var errScriptExhausted = errors.New("script exhausted")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memStore backs the four repositories.
type memStore struct {
	mu       sync.Mutex
	guilds   map[string]entities.Guild
	users    map[string]entities.User
	channels map[string]entities.EventChannel
	events   []entities.Event
	nextID   uint
}

func newMemStore() *memStore {
	return &memStore{
		guilds:   map[string]entities.Guild{},
		users:    map[string]entities.User{},
		channels: map[string]entities.EventChannel{},
	}
}

type memGuilds struct{ *memStore }

func (m memGuilds) FindOrCreate(_ context.Context, id string) (*entities.Guild, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.guilds[id]
	if !ok {
		g = entities.Guild{ID: id, CreatedAt: time.Now()}
		m.guilds[id] = g
	}
	return &g, nil
}

type memUsers struct{ *memStore }

func (m memUsers) FindOrCreate(_ context.Context, id string) (*entities.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		u = entities.User{ID: id, CreatedAt: time.Now()}
		m.users[id] = u
	}
	return &u, nil
}

type memChannels struct{ *memStore }

func (m memChannels) FindByGuildID(_ context.Context, guildID string) ([]entities.EventChannel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entities.EventChannel
	for _, ch := range m.channels {
		if ch.GuildID == guildID {
			out = append(out, ch)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m memChannels) Delete(_ context.Context, channelID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.channels, channelID)
	kept := m.events[:0]
	for _, e := range m.events {
		if e.EventChannel.ID != channelID {
			kept = append(kept, e)
		}
	}
	m.events = kept
	return nil
}

type memEvents struct{ *memStore }

func (m memEvents) Create(_ context.Context, event *entities.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.channels[event.EventChannel.ID]; !ok {
		m.channels[event.EventChannel.ID] = event.EventChannel
	}
	m.nextID++
	event.ID = m.nextID
	event.CreatedAt = time.Now()
	m.events = append(m.events, *event)
	return nil
}

func (m memEvents) FindByEventChannelID(_ context.Context, channelID string) ([]entities.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entities.Event
	for _, e := range m.events {
		if e.EventChannel.ID == channelID {
			out = append(out, e)
		}
	}
	return out, nil
}

// scriptedMessenger replays member answers in order.
type scriptedMessenger struct {
	mu           sync.Mutex
	replies      []string
	choices      []string
	sent         []string
	placeholders []string
	menus    [][]string
	timeouts []time.Duration
	choosers int
	sendErr  error
}

func (m *scriptedMessenger) SendDM(_ context.Context, _ string, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, content)
	return nil
}

func (m *scriptedMessenger) SendTimeZoneMenu(_ context.Context, _ string, title string, zones []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, title)
	m.menus = append(m.menus, zones)
	return nil
}

func (m *scriptedMessenger) NextDM(_ context.Context, _ string, timeout time.Duration) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timeouts = append(m.timeouts, timeout)
	if len(m.replies) == 0 {
		return "", errScriptExhausted
	}
	r := m.replies[0]
	m.replies = m.replies[1:]
	if r == timeoutReply {
		return "", domain.ErrReplyTimeout
	}
	return r, nil
}

func (m *scriptedMessenger) ChooseEventChannel(_ context.Context, _ string, prompt, placeholder string, _ []entities.EventChannel, timeout time.Duration) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.choosers++
	m.sent = append(m.sent, prompt)
	m.placeholders = append(m.placeholders, placeholder)
	if len(m.choices) == 0 {
		return "", errScriptExhausted
	}
	c := m.choices[0]
	m.choices = m.choices[1:]
	if c == timeoutReply {
		return "", domain.ErrChannelChoiceTimeout
	}
	return c, nil
}

func (m *scriptedMessenger) count(msg string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, s := range m.sent {
		if s == msg {
			n++
		}
	}
	return n
}

type fakePlatform struct {
	mu        sync.Mutex
	created   []string // parent IDs passed to CreateEventChannel
	nextID    string
	missing   map[string]bool
	published map[string][]entities.Event
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{
		nextID:    "new-channel",
		missing:   map[string]bool{},
		published: map[string][]entities.Event{},
	}
}

func (p *fakePlatform) CreateEventChannel(_ context.Context, _ string, parentID string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.created = append(p.created, parentID)
	return p.nextID, nil
}

func (p *fakePlatform) ChannelExists(_ context.Context, channelID string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.missing[channelID], nil
}

func (p *fakePlatform) PublishEventListing(_ context.Context, channelID string, events []entities.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published[channelID] = events
	return nil
}

// keyTranslator renders the key itself, which keeps assertions readable.
type keyTranslator struct{}

func (keyTranslator) T(_ string, key string, _ map[string]any) string { return key }

// localeTranslator prefixes the key with the locale it was asked for.
type localeTranslator struct{}

func (localeTranslator) T(locale, key string, _ map[string]any) string { return locale + ":" + key }

type recordingResponder struct {
	mu    sync.Mutex
	texts []string
}

func (r *recordingResponder) Respond(_ context.Context, content string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.texts = append(r.texts, content)
	return nil
}
