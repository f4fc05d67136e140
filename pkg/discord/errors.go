package discord

import "apollo/internal/domain"

// validationCodes are answered with an "event.*" message; every other domain
// code uses "error.*".
var validationCodes = map[string]bool{
	domain.Code(domain.ErrInvalidTitle):       true,
	domain.Code(domain.ErrInvalidDescription): true,
	domain.Code(domain.ErrInvalidCapacity):    true,
	domain.Code(domain.ErrInvalidTimeZone):    true,
	domain.Code(domain.ErrInvalidStartTime):   true,
	domain.Code(domain.ErrStartTimeInPast):    true,
}

// ErrorKey maps err to the translation key of its user-facing message.
func ErrorKey(err error) string {
	code := domain.Code(err)
	switch {
	case code == "":
		return "error.generic"
	case validationCodes[code]:
		return "event." + code
	default:
		return "error." + code
	}
}
