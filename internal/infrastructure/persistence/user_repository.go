package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/printdesk/backend/internal/domain/identity"
	"github.com/printdesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormUserRepository stores login accounts. Usernames are kept lower case,
// so lookups fold the input the same way.
type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) users(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.UserModel{})
}

func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	return firstRow[models.UserModel, identity.User](r.users(ctx), "id = ?", id)
}

func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	return firstRow[models.UserModel, identity.User](r.users(ctx), "username = ?", foldUsername(username))
}

func (r *GormUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return anyRows(r.users(ctx).Where("username = ?", foldUsername(username)))
}

func (r *GormUserRepository) Count(ctx context.Context) (int64, error) {
	return countRows(r.users(ctx))
}

func (r *GormUserRepository) Save(ctx context.Context, user *identity.User) error {
	return translateError(r.db.WithContext(ctx).Save(models.UserModelFromDomain(user)).Error)
}

func foldUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

var _ identity.UserRepository = (*GormUserRepository)(nil)
