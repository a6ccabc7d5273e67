package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"lumen/internal/domain/user"
	"lumen/internal/infrastructure/persistence/models"
)

type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) GetByID(ctx context.Context, id uint) (*user.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return toUserEntity(&model), nil
}

func (r *UserRepositoryImpl) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return toUserEntity(&model), nil
}

func (r *UserRepositoryImpl) Create(ctx context.Context, u *user.User) error {
	model := &models.UserModel{
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	u.ID = model.ID
	u.CreatedAt = model.CreatedAt
	u.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *UserRepositoryImpl) Update(ctx context.Context, u *user.User) error {
	result := r.db.WithContext(ctx).Model(&models.UserModel{}).
		Where("id = ?", u.ID).
		Updates(map[string]any{
			"email":         u.Email,
			"name":          u.Name,
			"password_hash": u.PasswordHash,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return user.ErrNotFound
	}
	return nil
}

func toUserEntity(m *models.UserModel) *user.User {
	return &user.User{
		ID:           m.ID,
		Email:        m.Email,
		Name:         m.Name,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
