package profiles

import (
	"time"

	"github.com/clearedcrew/clearedcrew-backend/pkg/db/models"
	"github.com/clearedcrew/clearedcrew-backend/pkg/enums"
	"github.com/clearedcrew/clearedcrew-backend/pkg/types"
	"github.com/google/uuid"
)

// ProfileDTO is the transport shape for a user's profile.
type ProfileDTO struct {
	ID                  uuid.UUID            `json:"id"`
	UserID              uuid.UUID            `json:"user_id"`
	MiddleName          string               `json:"middle_name"`
	DateOfBirth         *types.Date          `json:"date_of_birth,omitempty"`
	State               enums.AUState        `json:"state"`
	Suburb              string               `json:"suburb"`
	ClearanceLevel      enums.ClearanceLevel `json:"clearance_level"`
	ClearanceNo         string               `json:"clearance_no"`
	ClearanceExpiry     *types.Date          `json:"clearance_expiry,omitempty"`
	SkillSets           string               `json:"skill_sets"`
	SkillLevel          string               `json:"skill_level"`
	OnboardingCompleted bool                 `json:"onboarding_completed"`
	CreatedAt           time.Time            `json:"created_at"`
	UpdatedAt           time.Time            `json:"updated_at"`
}

// UpdateProfileRequest carries partial profile updates. Nil pointers leave the
// stored value untouched.
type UpdateProfileRequest struct {
	MiddleName          *string     `json:"middle_name,omitempty"`
	DateOfBirth         *types.Date `json:"date_of_birth,omitempty"`
	State               *string     `json:"state,omitempty"`
	Suburb              *string     `json:"suburb,omitempty"`
	ClearanceLevel      *string     `json:"clearance_level,omitempty"`
	ClearanceNo         *string     `json:"clearance_no,omitempty"`
	ClearanceExpiry     *types.Date `json:"clearance_expiry,omitempty"`
	SkillSets           *string     `json:"skill_sets,omitempty"`
	SkillLevel          *string     `json:"skill_level,omitempty"`
	OnboardingCompleted *bool       `json:"onboarding_completed,omitempty"`
}

func FromModel(p *models.Profile) *ProfileDTO {
	if p == nil {
		return nil
	}

	return &ProfileDTO{
		ID:                  p.ID,
		UserID:              p.UserID,
		MiddleName:          p.MiddleName,
		DateOfBirth:         types.FromTimePtr(p.DateOfBirth),
		State:               p.State,
		Suburb:              p.Suburb,
		ClearanceLevel:      p.ClearanceLevel,
		ClearanceNo:         p.ClearanceNo,
		ClearanceExpiry:     types.FromTimePtr(p.ClearanceExpiry),
		SkillSets:           p.SkillSets,
		SkillLevel:          p.SkillLevel,
		OnboardingCompleted: p.OnboardingCompleted,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}
