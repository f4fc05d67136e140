package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"apollo/internal/domain/entities"
	"apollo/internal/ports/output"
)

var (
	_ output.GuildRepository = (*GuildRepository)(nil)
	_ output.UserRepository  = (*UserRepository)(nil)
)

type GuildRepository struct {
	db TxBeginner
}

func NewGuildRepository(db TxBeginner) *GuildRepository {
	return &GuildRepository{db: db}
}

func (r *GuildRepository) FindOrCreate(ctx context.Context, id string) (*entities.Guild, error) {
	g := &entities.Guild{ID: id}
	err := inTx(ctx, r.db, readWrite, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `INSERT INTO guilds (id) VALUES ($1) ON CONFLICT (id) DO NOTHING`, id); err != nil {
			return err
		}
		return tx.QueryRow(ctx, `SELECT created_at FROM guilds WHERE id = $1`, id).Scan(&g.CreatedAt)
	})
	if err != nil {
		return nil, fmt.Errorf("find or create guild: %w", err)
	}
	return g, nil
}

type UserRepository struct {
	db TxBeginner
}

func NewUserRepository(db TxBeginner) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindOrCreate(ctx context.Context, id string) (*entities.User, error) {
	u := &entities.User{ID: id}
	err := inTx(ctx, r.db, readWrite, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `INSERT INTO users (id) VALUES ($1) ON CONFLICT (id) DO NOTHING`, id); err != nil {
			return err
		}
		return tx.QueryRow(ctx, `SELECT created_at FROM users WHERE id = $1`, id).Scan(&u.CreatedAt)
	})
	if err != nil {
		return nil, fmt.Errorf("find or create user: %w", err)
	}
	return u, nil
}
