package gormstore

import (
	"time"

	"apollo/internal/domain/entities"
)

type guildModel struct {
	ID        string `gorm:"primaryKey"`
	CreatedAt time.Time
}

func (guildModel) TableName() string { return "guilds" }

type userModel struct {
	ID        string `gorm:"primaryKey"`
	CreatedAt time.Time
}

func (userModel) TableName() string { return "users" }

type eventChannelModel struct {
	ID        string `gorm:"primaryKey"`
	GuildID   string `gorm:"not null;index"`
	CreatedAt time.Time
}

func (eventChannelModel) TableName() string { return "event_channels" }

func (m eventChannelModel) toDomain() entities.EventChannel {
	return entities.EventChannel{ID: m.ID, GuildID: m.GuildID, CreatedAt: m.CreatedAt.UTC()}
}

type eventModel struct {
	ID             uint    `gorm:"primaryKey"`
	Title          string  `gorm:"size:200;not null"`
	Description    *string `gorm:"size:1000"`
	Capacity       *int
	OrganizerID    string    `gorm:"not null"`
	EventChannelID string    `gorm:"not null;index:idx_events_channel_start"`
	TimeZone       string    `gorm:"not null"`
	StartTime      time.Time `gorm:"not null;index:idx_events_channel_start"`
	CreatedAt      time.Time
}

func (eventModel) TableName() string { return "events" }

func eventToModel(e *entities.Event) eventModel {
	m := eventModel{
		Title:          e.Title,
		OrganizerID:    e.OrganizerID,
		EventChannelID: e.EventChannel.ID,
		TimeZone:       e.TimeZone,
		StartTime:      e.StartTime.UTC(),
	}
	if e.HasDescription() {
		desc := e.Description
		m.Description = &desc
	}
	if e.HasCapacity() {
		capacity := e.Capacity
		m.Capacity = &capacity
	}
	return m
}

func (m eventModel) toDomain(ch entities.EventChannel) entities.Event {
	e := entities.Event{
		ID:           m.ID,
		Title:        m.Title,
		OrganizerID:  m.OrganizerID,
		EventChannel: ch,
		TimeZone:     m.TimeZone,
		StartTime:    m.StartTime.UTC(),
		CreatedAt:    m.CreatedAt.UTC(),
	}
	if m.Description != nil {
		e.Description = *m.Description
	}
	if m.Capacity != nil {
		e.Capacity = *m.Capacity
	}
	return e
}
