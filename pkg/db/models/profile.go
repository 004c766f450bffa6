package models

import (
	"time"

	"github.com/clearedcrew/clearedcrew-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile extends a User one-to-one with location, clearance, and skill
// attributes. A profile never exists without its user; deleting the user
// removes the profile.
type Profile struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	User   *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	MiddleName  string     `gorm:"column:middle_name;not null;default:''"`
	DateOfBirth *time.Time `gorm:"column:date_of_birth;type:date"`

	State  enums.AUState `gorm:"column:state;type:text;not null;default:''"`
	Suburb string        `gorm:"column:suburb;not null;default:''"`

	ClearanceLevel  enums.ClearanceLevel `gorm:"column:clearance_level;type:text;not null;default:'None';index"`
	ClearanceNo     string               `gorm:"column:clearance_no;not null;default:''"`
	ClearanceExpiry *time.Time           `gorm:"column:clearance_expiry;type:date"`

	SkillSets  string `gorm:"column:skill_sets;type:text;not null;default:''"`
	SkillLevel string `gorm:"column:skill_level;not null;default:''"`

	OnboardingCompleted bool `gorm:"column:onboarding_completed;not null;default:false;index"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.ClearanceLevel == "" {
		p.ClearanceLevel = enums.ClearanceLevelNone
	}
	return nil
}
