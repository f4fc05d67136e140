package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"apollo/internal/domain/entities"
	"apollo/internal/ports/output"
)

var _ output.EventRepository = (*EventRepository)(nil)

type EventRepository struct {
	db TxBeginner
}

func NewEventRepository(db TxBeginner) *EventRepository {
	return &EventRepository{db: db}
}

// Create writes the event together with its channel row, so a newly created
// Discord channel is only recorded once an event actually uses it.
func (r *EventRepository) Create(ctx context.Context, event *entities.Event) error {
	ch := event.EventChannel
	err := inTx(ctx, r.db, readWrite, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		batch.Queue(`INSERT INTO guilds (id) VALUES ($1) ON CONFLICT (id) DO NOTHING`, ch.GuildID)
		batch.Queue(`INSERT INTO users (id) VALUES ($1) ON CONFLICT (id) DO NOTHING`, event.OrganizerID)
		batch.Queue(`INSERT INTO event_channels (id, guild_id) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`, ch.ID, ch.GuildID)
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return err
		}

		var id int64
		err := tx.QueryRow(ctx, `
			INSERT INTO events (title, description, capacity, organizer_id, event_channel_id, time_zone, start_time)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at`,
			event.Title,
			textOrNull(event.Description),
			int4OrNull(event.Capacity),
			event.OrganizerID,
			ch.ID,
			event.TimeZone,
			event.StartTime.UTC(),
		).Scan(&id, &event.CreatedAt)
		if err != nil {
			return err
		}
		event.ID = uint(id)
		return tx.QueryRow(ctx, `SELECT created_at FROM event_channels WHERE id = $1`, ch.ID).Scan(&event.EventChannel.CreatedAt)
	})
	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (r *EventRepository) FindByEventChannelID(ctx context.Context, channelID string) ([]entities.Event, error) {
	var out []entities.Event
	err := inTx(ctx, r.db, readOnly, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
			SELECT `+eventColumns+`
			FROM events e
			JOIN event_channels c ON c.id = e.event_channel_id
			WHERE e.event_channel_id = $1
			ORDER BY e.start_time, e.id`,
			channelID)
		if err != nil {
			return err
		}
		out, err = pgx.CollectRows(rows, scanEvent)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get events by event channel id: %w", err)
	}
	return out, nil
}
