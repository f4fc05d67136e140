// Package tz holds the fixed list of time zones offered to organizers.
package tz

import (
	"fmt"
	"time"
	_ "time/tzdata" // containers often ship without /usr/share/zoneinfo
)

// Supported is the numbered menu shown to organizers. The order is part of the
// user interface: reply "1" selects the first entry.
var Supported = []string{
	"Pacific/Honolulu",
	"America/Anchorage",
	"America/Los_Angeles",
	"America/Denver",
	"America/Phoenix",
	"America/Chicago",
	"America/New_York",
	"America/Halifax",
	"America/Sao_Paulo",
	"UTC",
	"Europe/London",
	"Europe/Paris",
	"Europe/Berlin",
	"Europe/Helsinki",
	"Europe/Moscow",
	"Asia/Dubai",
	"Asia/Kolkata",
	"Asia/Bangkok",
	"Asia/Singapore",
	"Asia/Shanghai",
	"Asia/Tokyo",
	"Australia/Perth",
	"Australia/Sydney",
	"Pacific/Auckland",
}

var locations = map[string]*time.Location{}

func init() {
	for _, name := range Supported {
		loc, err := time.LoadLocation(name)
		if err != nil {
			panic("tz: load " + name + ": " + err.Error())
		}
		locations[name] = loc
	}
}

// Location returns the location for one of the Supported zones.
func Location(name string) (*time.Location, error) {
	loc, ok := locations[name]
	if !ok {
		return nil, fmt.Errorf("tz: unsupported time zone %q", name)
	}
	return loc, nil
}
