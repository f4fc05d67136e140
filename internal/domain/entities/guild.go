package entities

import "time"

type Guild struct {
	ID        string
	CreatedAt time.Time
}
