package input

import (
	"context"

	"apollo/internal/domain/entities"
	"apollo/internal/ports/output"
)

// EventInvocation describes one use of the event command.
type EventInvocation struct {
	GuildID   string
	ChannelID string
	// ParentID is the category of the invoking channel; new event channels go there.
	ParentID        string
	UserID          string
	Locale          string
	CanCreateEvents bool
	Responder       output.Responder
}

type EventCreationUseCase interface {
	// CreateEvent runs the whole conversation and returns the stored event.
	CreateEvent(ctx context.Context, inv EventInvocation) (*entities.Event, error)
}
