package repository

import (
	"context"
	"database/sql"

	models "github.com/cjl-232/cryptcord-server/internal/user/model"
	"github.com/cjl-232/cryptcord-server/pkg/logger"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type UserRepository struct {
	db     *bun.DB
	logger *logger.Logger
}

var ErrUserNotFound = errors.New("user not found")

func NewUserRepository(db *bun.DB, logger logger.Logger) *UserRepository {
	return &UserRepository{
		db:     db,
		logger: &logger,
	}
}

// ResolveOrCreate maps a public key to its identity row, inserting one on
// first sight. The unique constraint on public_key is the sole arbitration
// point between concurrent callers: the insert is a no-op for losers, who
// then re-read the winner's row.
func (r *UserRepository) ResolveOrCreate(ctx context.Context, publicKey string) (*models.User, error) {

	user := new(models.User)
	err := r.db.NewSelect().Model(user).Where("public_key = ?", publicKey).Scan(ctx)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrap(err, "userRepo.ResolveOrCreate.Select: ")
	}

	user = &models.User{PublicKey: publicKey}
	_, err = r.db.NewInsert().
		Model(user).
		On("CONFLICT (public_key) DO NOTHING").
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "userRepo.ResolveOrCreate.Insert: ")
	}
	if user.ID != 0 {
		return user, nil
	}

	// A concurrent insert won the constraint; the conflict clause returned
	// no row, so read the one that survived.
	user = new(models.User)
	if err := r.db.NewSelect().Model(user).Where("public_key = ?", publicKey).Scan(ctx); err != nil {
		return nil, errors.Wrap(err, "userRepo.ResolveOrCreate.Reread: ")
	}
	return user, nil
}

func (r *UserRepository) GetByPublicKey(ctx context.Context, publicKey string) (*models.User, error) {

	user := new(models.User)
	err := r.db.NewSelect().Model(user).Where("public_key = ?", publicKey).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, errors.Wrap(err, "userRepo.GetByPublicKey.Scan: ")
	}
	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {

	user := new(models.User)
	err := r.db.NewSelect().Model(user).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, errors.Wrap(err, "userRepo.GetByID.Scan: ")
	}
	return user, nil
}
