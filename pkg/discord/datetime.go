package discord

import (
	"fmt"
	"time"

	"apollo/pkg/tz"
)

// FormatEventDateTime shows t in the event's zone, followed by a Discord
// timestamp tag that every reader sees in their own local time.
func FormatEventDateTime(t time.Time, zone string) string {
	if t.IsZero() {
		return ""
	}
	local := t
	if loc, err := tz.Location(zone); err == nil {
		local = t.In(loc)
	}
	return fmt.Sprintf("%s (%s)\n%s", local.Format("Mon 02 Jan 2006 15:04"), zone, Timestamp(t, 'R'))
}

// Timestamp returns a <t:unix:style> tag. Styles: t T d D f F R.
func Timestamp(t time.Time, style byte) string {
	return fmt.Sprintf("<t:%d:%c>", t.Unix(), style)
}
