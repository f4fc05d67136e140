package output

import (
	"context"
	"time"

	"apollo/internal/domain/entities"
)

// DirectMessenger is the conversation with one member over direct messages.
// A zero timeout waits until ctx is done.
type DirectMessenger interface {
	SendDM(ctx context.Context, userID, content string) error
	SendTimeZoneMenu(ctx context.Context, userID, title string, zones []string) error
	// NextDM blocks until the member sends a DM. Returns domain.ErrReplyTimeout
	// when timeout elapses first.
	NextDM(ctx context.Context, userID string, timeout time.Duration) (string, error)
	// ChooseEventChannel presents channels and returns the ID the member selected.
	// placeholder is shown in the menu before a choice is made.
	// Returns domain.ErrChannelChoiceTimeout when timeout elapses first.
	ChooseEventChannel(ctx context.Context, userID, prompt, placeholder string, channels []entities.EventChannel, timeout time.Duration) (string, error)
}

// Responder answers the interaction that started a flow, in the guild channel.
type Responder interface {
	Respond(ctx context.Context, content string) error
}
