package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the canonical identity record. Email is the sole login identifier;
// usernames do not exist in this system.
type User struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Email         string     `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash  string     `gorm:"column:password_hash;not null"`
	FirstName     string     `gorm:"column:first_name;not null;default:''"`
	LastName      string     `gorm:"column:last_name;not null;default:''"`
	DisplayName   string     `gorm:"column:display_name;not null;default:''"`
	EmailVerified bool       `gorm:"column:email_verified;not null;default:false"`
	IsActive      bool       `gorm:"column:is_active;not null;default:true"`
	IsStaff       bool       `gorm:"column:is_staff;not null;default:false"`
	IsSuperuser   bool       `gorm:"column:is_superuser;not null;default:false"`
	LastLoginAt   *time.Time `gorm:"column:last_login_at"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeCreate assigns the immutable identifier.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// BeforeSave fills DisplayName when it is blank: "first last" when either
// name is present, otherwise the local part of the email. An explicitly set
// display name is left alone.
func (u *User) BeforeSave(tx *gorm.DB) error {
	if u.DisplayName != "" {
		return nil
	}
	if name := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName)); name != "" {
		u.DisplayName = name
		return nil
	}
	u.DisplayName = strings.SplitN(u.Email, "@", 2)[0]
	return nil
}
