package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleStaff  UserRole = "staff"
	RoleMember UserRole = "member"
)

func ValidRole(r UserRole) bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleMember:
		return true
	}
	return false
}

type User struct {
	ID           string   `gorm:"size:36;primaryKey" json:"id"`
	Name         string   `gorm:"size:100;not null" json:"name"`
	Email        string   `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"size:255;not null" json:"-"`
	Phone        string   `gorm:"size:30" json:"phone"`
	Role         UserRole `gorm:"size:20;not null;default:member" json:"role"`
	// Set when the account was created with a generated one-time password.
	PasswordResetRequired bool      `json:"password_reset_required"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
