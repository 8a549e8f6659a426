package user

import (
	"context"

	models "github.com/cjl-232/cryptcord-server/internal/user/model"
)

type UserRepository interface {
	// ResolveOrCreate returns the identity row for a public key, creating
	// one the first time the key is seen. Safe to call from any number of
	// concurrent tasks with the same key: every caller converges on the
	// row that won the uniqueness constraint.
	ResolveOrCreate(ctx context.Context, publicKey string) (*models.User, error)

	GetByPublicKey(ctx context.Context, publicKey string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
}
