package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"apollo/internal/domain/entities"
	"apollo/internal/ports/output"
)

var _ output.EventChannelRepository = (*EventChannelRepository)(nil)

type EventChannelRepository struct {
	db TxBeginner
}

func NewEventChannelRepository(db TxBeginner) *EventChannelRepository {
	return &EventChannelRepository{db: db}
}

func (r *EventChannelRepository) FindByGuildID(ctx context.Context, guildID string) ([]entities.EventChannel, error) {
	var out []entities.EventChannel
	err := inTx(ctx, r.db, readOnly, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx,
			`SELECT id, guild_id, created_at FROM event_channels WHERE guild_id = $1 ORDER BY created_at, id`,
			guildID)
		if err != nil {
			return err
		}
		out, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (entities.EventChannel, error) {
			var ch entities.EventChannel
			err := row.Scan(&ch.ID, &ch.GuildID, &ch.CreatedAt)
			return ch, err
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get event channels by guild id: %w", err)
	}
	return out, nil
}

func (r *EventChannelRepository) Delete(ctx context.Context, channelID string) error {
	err := inTx(ctx, r.db, readWrite, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `DELETE FROM event_channels WHERE id = $1`, channelID)
		return err
	})
	if err != nil {
		return fmt.Errorf("delete event channel: %w", err)
	}
	return nil
}
