package entities

import "time"

// EventChannel is a guild text channel dedicated to listing events.
// ID is the Discord channel ID.
type EventChannel struct {
	ID        string
	GuildID   string
	CreatedAt time.Time
}
