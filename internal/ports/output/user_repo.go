package output

import (
	"context"

	"apollo/internal/domain/entities"
)

type UserRepository interface {
	FindOrCreate(ctx context.Context, id string) (*entities.User, error)
}
