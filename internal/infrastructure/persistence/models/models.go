// Package models holds the gorm persistence models. Domain entities are
// mapped to and from these in the repository layer.
package models

import (
	"time"

	"gorm.io/gorm"
)

type UserModel struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"size:254;uniqueIndex;not null"`
	Name         string `gorm:"size:100;not null"`
	PasswordHash string `gorm:"size:100;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (UserModel) TableName() string {
	return "users"
}

// UserRoleModel is the authorization store: one row per (user, role) grant.
// The admin check queries this table, never a client-supplied claim.
type UserRoleModel struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"uniqueIndex:idx_user_role;not null"`
	Role      string `gorm:"size:32;uniqueIndex:idx_user_role;not null"`
	CreatedAt time.Time
}

func (UserRoleModel) TableName() string {
	return "user_roles"
}

type PostModel struct {
	ID          uint   `gorm:"primaryKey"`
	Slug        string `gorm:"size:200;uniqueIndex;not null"`
	Title       string `gorm:"size:200;not null"`
	Excerpt     string `gorm:"size:500"`
	Content     string `gorm:"type:text;not null"`
	CoverImage  string `gorm:"size:500"`
	Published   bool   `gorm:"index;not null;default:false"`
	PublishedAt *time.Time
	AuthorID    uint `gorm:"index;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (PostModel) TableName() string {
	return "blog_posts"
}
