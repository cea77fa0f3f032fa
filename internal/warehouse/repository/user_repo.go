package repository

import (
	"context"

	"github.com/garmentflow/wms/internal/warehouse/entity"
	"gorm.io/gorm"
)

// UserRepository persists API accounts.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a user. Duplicate username or email surfaces as
// ErrDuplicateKey.
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	return translate(r.db.WithContext(ctx).Create(user).Error)
}

// FindByUsername fetches a user by login name.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}
