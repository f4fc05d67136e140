package entities

import "time"

// HasDescription reports whether the organizer gave a description (NONE = absent).
func (e *Event) HasDescription() bool {
	return e.Description != ""
}

// HasCapacity reports whether the event is limited in attendees.
func (e *Event) HasCapacity() bool {
	return e.Capacity > 0
}

type Event struct {
	ID           uint
	Title        string
	Description  string // "" = absent
	Capacity     int    // 0 = absent
	OrganizerID  string
	EventChannel EventChannel
	TimeZone     string    // IANA name, e.g. "Europe/Paris"
	StartTime    time.Time // UTC
	CreatedAt    time.Time
}
