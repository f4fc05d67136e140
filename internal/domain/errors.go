package domain

import "errors"

// Error is a domain error carrying a stable code. Adapters turn the code into
// a translation key ("event.<code>" or "error.<code>").
type Error struct {
	code string
	msg  string
}

func newError(code, msg string) *Error {
	return &Error{code: code, msg: msg}
}

func (e *Error) Error() string { return e.msg }

// Code returns the stable identifier of the error.
func (e *Error) Code() string { return e.code }

// Code extracts the domain code from err, or "" when err is not a domain error.
func Code(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.code
	}
	return ""
}

// Input validation errors. The flow re-prompts on every one of them.
var (
	ErrInvalidTitle       = newError("invalid_title", "title is too long")
	ErrInvalidDescription = newError("invalid_description", "description is too long")
	ErrInvalidCapacity    = newError("invalid_capacity", "capacity must be NONE or a number in range")
	ErrInvalidTimeZone    = newError("invalid_time_zone", "time zone choice is not in the menu")
	ErrInvalidStartTime   = newError("invalid_start_time", "start time does not match a supported format")
	ErrStartTimeInPast    = newError("start_time_in_the_past", "start time must be in the future")
)

// Flow errors. Each of them ends the event creation flow.
var (
	ErrMissingPermissions   = newError("missing_permissions", "member is not allowed to create events")
	ErrCannotDM             = newError("cannot_dm", "direct messages to the member failed")
	ErrReplyTimeout         = newError("reply_timeout", "no reply received in time")
	ErrChannelChoiceTimeout = newError("channel_choice_timeout", "no event channel chosen in time")
	ErrUnknownEventChannel  = newError("unknown_event_channel", "selected channel is not an event channel of this guild")
	ErrGuildOnly            = newError("guild_only", "command is only available in a guild")
)
