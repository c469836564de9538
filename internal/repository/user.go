package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/minitwitter/minitwitter/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts the user. A duplicate username surfaces as
// gorm.ErrDuplicatedKey for the service to map.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "username = ?", username).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return &user, nil
}

// SearchUsernames mirrors a LIKE '%query%' contract over usernames; an
// empty query matches everyone.
func (r *UserRepository) SearchUsernames(ctx context.Context, query string) ([]string, error) {
	var usernames []string
	db := r.db.WithContext(ctx).Model(&models.User{})

	if query != "" {
		db = db.Where("username LIKE ?", "%"+query+"%")
	}

	if err := db.Order("username").Pluck("username", &usernames).Error; err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	return usernames, nil
}
