package repository

import (
	"context"

	"gorm.io/gorm"

	"stocks-api/models"
)

// UserRepository defines the interface for application users.
type UserRepository interface {
	Create(ctx context.Context, user *models.AppUser) error
	FindByID(ctx context.Context, id string) (*models.AppUser, error)
	FindByUserName(ctx context.Context, userName string) (*models.AppUser, error)
	ExistsByUserNameOrEmail(ctx context.Context, userName, email string) (bool, error)
}

// NewUserRepository creates a new GORM-based user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

type userRepository struct {
	db *gorm.DB
}

func (r *userRepository) Create(ctx context.Context, user *models.AppUser) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*models.AppUser, error) {
	var user models.AppUser
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUserName matches user names case-insensitively.
func (r *userRepository) FindByUserName(ctx context.Context, userName string) (*models.AppUser, error) {
	var user models.AppUser
	if err := r.db.WithContext(ctx).Where("LOWER(user_name) = LOWER(?)", userName).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ExistsByUserNameOrEmail(ctx context.Context, userName, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.AppUser{}).
		Where("LOWER(user_name) = LOWER(?) OR LOWER(email) = LOWER(?)", userName, email).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
