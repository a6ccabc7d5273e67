package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lumen/internal/domain/user"
	"lumen/internal/infrastructure/persistence/models"
)

// RoleRepositoryImpl backs the authorization store with the user_roles
// table. HasRole is the server-side role predicate the admin gate relies on.
type RoleRepositoryImpl struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) user.RoleRepository {
	return &RoleRepositoryImpl{db: db}
}

func (r *RoleRepositoryImpl) HasRole(ctx context.Context, userID uint, role string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.UserRoleModel{}).
		Where("user_id = ? AND role = ?", userID, role).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check role: %w", err)
	}
	return count > 0, nil
}

func (r *RoleRepositoryImpl) AssignRole(ctx context.Context, userID uint, role string) error {
	model := &models.UserRoleModel{UserID: userID, Role: role}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to assign role: %w", err)
	}
	return nil
}

func (r *RoleRepositoryImpl) RevokeRole(ctx context.Context, userID uint, role string) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND role = ?", userID, role).
		Delete(&models.UserRoleModel{}).Error
	if err != nil {
		return fmt.Errorf("failed to revoke role: %w", err)
	}
	return nil
}

func (r *RoleRepositoryImpl) GetRoles(ctx context.Context, userID uint) ([]string, error) {
	var roles []string
	err := r.db.WithContext(ctx).Model(&models.UserRoleModel{}).
		Where("user_id = ?", userID).
		Pluck("role", &roles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get roles: %w", err)
	}
	return roles, nil
}
