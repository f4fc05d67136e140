package output

import (
	"context"

	"apollo/internal/domain/entities"
)

type GuildRepository interface {
	FindOrCreate(ctx context.Context, id string) (*entities.Guild, error)
}
