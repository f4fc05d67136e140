package gormstore

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"apollo/internal/domain/entities"
	"apollo/internal/ports/output"
)

var (
	_ output.GuildRepository        = (*GuildRepository)(nil)
	_ output.UserRepository         = (*UserRepository)(nil)
	_ output.EventChannelRepository = (*EventChannelRepository)(nil)
	_ output.EventRepository        = (*EventRepository)(nil)
)

type GuildRepository struct{ db *gorm.DB }

func NewGuildRepository(db *gorm.DB) *GuildRepository { return &GuildRepository{db: db} }

func (r *GuildRepository) FindOrCreate(ctx context.Context, id string) (*entities.Guild, error) {
	var m guildModel
	if err := r.db.WithContext(ctx).Where(guildModel{ID: id}).FirstOrCreate(&m).Error; err != nil {
		return nil, fmt.Errorf("find or create guild: %w", err)
	}
	return &entities.Guild{ID: m.ID, CreatedAt: m.CreatedAt.UTC()}, nil
}

type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

func (r *UserRepository) FindOrCreate(ctx context.Context, id string) (*entities.User, error) {
	var m userModel
	if err := r.db.WithContext(ctx).Where(userModel{ID: id}).FirstOrCreate(&m).Error; err != nil {
		return nil, fmt.Errorf("find or create user: %w", err)
	}
	return &entities.User{ID: m.ID, CreatedAt: m.CreatedAt.UTC()}, nil
}

type EventChannelRepository struct{ db *gorm.DB }

func NewEventChannelRepository(db *gorm.DB) *EventChannelRepository {
	return &EventChannelRepository{db: db}
}

func (r *EventChannelRepository) FindByGuildID(ctx context.Context, guildID string) ([]entities.EventChannel, error) {
	var rows []eventChannelModel
	err := r.db.WithContext(ctx).
		Where("guild_id = ?", guildID).
		Order("created_at, id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("get event channels by guild id: %w", err)
	}
	out := make([]entities.EventChannel, len(rows))
	for i := range rows {
		out[i] = rows[i].toDomain()
	}
	return out, nil
}

// Delete removes the channel and its events in one transaction.
func (r *EventChannelRepository) Delete(ctx context.Context, channelID string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_channel_id = ?", channelID).Delete(&eventModel{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", channelID).Delete(&eventChannelModel{}).Error
	})
	if err != nil {
		return fmt.Errorf("delete event channel: %w", err)
	}
	return nil
}

type EventRepository struct{ db *gorm.DB }

func NewEventRepository(db *gorm.DB) *EventRepository { return &EventRepository{db: db} }

func (r *EventRepository) Create(ctx context.Context, event *entities.Event) error {
	ch := event.EventChannel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		doNothing := clause.OnConflict{DoNothing: true}
		if err := tx.Clauses(doNothing).Create(&guildModel{ID: ch.GuildID}).Error; err != nil {
			return err
		}
		if err := tx.Clauses(doNothing).Create(&userModel{ID: event.OrganizerID}).Error; err != nil {
			return err
		}
		if err := tx.Clauses(doNothing).Create(&eventChannelModel{ID: ch.ID, GuildID: ch.GuildID}).Error; err != nil {
			return err
		}
		var stored eventChannelModel
		if err := tx.First(&stored, "id = ?", ch.ID).Error; err != nil {
			return err
		}

		m := eventToModel(event)
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		event.ID = m.ID
		event.CreatedAt = m.CreatedAt.UTC()
		event.EventChannel = stored.toDomain()
		return nil
	})
	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (r *EventRepository) FindByEventChannelID(ctx context.Context, channelID string) ([]entities.Event, error) {
	var (
		ch   eventChannelModel
		rows []eventModel
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", channelID).Limit(1).Find(&ch)
		if res.Error != nil || res.RowsAffected == 0 {
			return res.Error
		}
		return tx.Where("event_channel_id = ?", channelID).Order("start_time, id").Find(&rows).Error
	})
	if err != nil {
		return nil, fmt.Errorf("get events by event channel id: %w", err)
	}
	out := make([]entities.Event, len(rows))
	for i := range rows {
		out[i] = rows[i].toDomain(ch.toDomain())
	}
	return out, nil
}
