package database

import (
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"apollo/internal/domain/entities"
)

// Optional event fields use their zero value for "absent" in the domain and NULL in SQL.

func textOrNull(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}

func int4OrNull(n int) pgtype.Int4 {
	return pgtype.Int4{Int32: int32(n), Valid: n > 0}
}

const eventColumns = `e.id, e.title, e.description, e.capacity, e.organizer_id, e.time_zone, e.start_time, e.created_at,
	c.id, c.guild_id, c.created_at`

func scanEvent(row pgx.CollectableRow) (entities.Event, error) {
	var (
		e        entities.Event
		id       int64
		desc     pgtype.Text
		capacity pgtype.Int4
	)
	err := row.Scan(
		&id, &e.Title, &desc, &capacity, &e.OrganizerID, &e.TimeZone, &e.StartTime, &e.CreatedAt,
		&e.EventChannel.ID, &e.EventChannel.GuildID, &e.EventChannel.CreatedAt,
	)
	if err != nil {
		return entities.Event{}, err
	}
	e.ID = uint(id)
	e.Description = desc.String
	e.Capacity = int(capacity.Int32)
	e.StartTime = e.StartTime.UTC()
	return e, nil
}
