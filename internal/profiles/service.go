package profiles

import (
	"context"
	"errors"
	"strings"

	"github.com/clearedcrew/clearedcrew-backend/pkg/db"
	"github.com/clearedcrew/clearedcrew-backend/pkg/db/models"
	"github.com/clearedcrew/clearedcrew-backend/pkg/enums"
	pkgerrors "github.com/clearedcrew/clearedcrew-backend/pkg/errors"
	"github.com/clearedcrew/clearedcrew-backend/pkg/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const profileNotFoundMessage = "profile not found"

// Service defines the profile operations available to an authenticated user.
type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (*ProfileDTO, error)
	Create(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*ProfileDTO, error)
	Update(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*ProfileDTO, error)
	CompleteOnboarding(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*ProfileDTO, bool, error)
}

// TxRunner abstracts transactional execution so tests can stub it out.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type profileRepository interface {
	Create(ctx context.Context, profile *models.Profile) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	Save(ctx context.Context, profile *models.Profile) error
}

// ServiceParams bundles the dependencies for the profile service.
type ServiceParams struct {
	TxRunner    TxRunner
	RepoFactory func(tx *gorm.DB) profileRepository
}

type service struct {
	tx    TxRunner
	repos func(tx *gorm.DB) profileRepository
}

// NewService constructs a profile service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.TxRunner == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "tx runner required")
	}
	if params.RepoFactory == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "profile repo factory required")
	}
	return &service{tx: params.TxRunner, repos: params.RepoFactory}, nil
}

func (s *service) Get(ctx context.Context, userID uuid.UUID) (*ProfileDTO, error) {
	var dto *ProfileDTO
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		profile, err := s.loadProfile(ctx, s.repos(tx), userID)
		if err != nil {
			return err
		}
		dto = FromModel(profile)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*ProfileDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "not authenticated")
	}

	var dto *ProfileDTO
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repos(tx)
		// create is a fallback for accounts that predate the automatic
		// profile; when a profile already exists it is returned as-is
		if existing, err := repo.FindByUserID(ctx, userID); err == nil {
			dto = FromModel(existing)
			return nil
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check profile")
		}

		profile := &models.Profile{UserID: userID}
		if err := ApplyRequest(profile, req); err != nil {
			return err
		}
		if err := repo.Create(ctx, profile); err != nil {
			if db.IsUniqueViolation(err) {
				existing, findErr := repo.FindByUserID(ctx, userID)
				if findErr != nil {
					return pkgerrors.Wrap(pkgerrors.CodeInternal, findErr, "load profile")
				}
				dto = FromModel(existing)
				return nil
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create profile")
		}
		dto = FromModel(profile)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (s *service) Update(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*ProfileDTO, error) {
	var dto *ProfileDTO
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repos(tx)
		profile, err := s.loadProfile(ctx, repo, userID)
		if err != nil {
			return err
		}
		if err := ApplyRequest(profile, req); err != nil {
			return err
		}
		if err := repo.Save(ctx, profile); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save profile")
		}
		dto = FromModel(profile)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// CompleteOnboarding applies any submitted profile fields and forces the
// flag to true; the operation, not the caller's payload, decides the flag.
// A profile that already finished onboarding is returned untouched, so
// repeated calls are safe. The bool reports whether this call flipped the
// flag, so callers can count genuine completions.
func (s *service) CompleteOnboarding(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*ProfileDTO, bool, error) {
	var (
		dto     *ProfileDTO
		flipped bool
	)
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repos(tx)
		profile, err := s.loadProfile(ctx, repo, userID)
		if err != nil {
			return err
		}
		if profile.OnboardingCompleted {
			dto = FromModel(profile)
			return nil
		}
		if err := ApplyRequest(profile, req); err != nil {
			return err
		}
		profile.OnboardingCompleted = true
		if err := repo.Save(ctx, profile); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save profile")
		}
		dto = FromModel(profile)
		flipped = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return dto, flipped, nil
}

// DefaultServiceParams binds the service to the GORM-backed repository.
func DefaultServiceParams(runner TxRunner) ServiceParams {
	return ServiceParams{
		TxRunner: runner,
		RepoFactory: func(tx *gorm.DB) profileRepository {
			return NewRepository(tx)
		},
	}
}

func (s *service) loadProfile(ctx context.Context, repo profileRepository, userID uuid.UUID) (*models.Profile, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "not authenticated")
	}
	profile, err := repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, profileNotFoundMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup profile")
	}
	return profile, nil
}

// ApplyRequest copies the provided fields onto the profile, validating enum
// values as it goes.
func ApplyRequest(profile *models.Profile, req UpdateProfileRequest) error {
	if req.MiddleName != nil {
		profile.MiddleName = strings.TrimSpace(*req.MiddleName)
	}
	if req.DateOfBirth != nil {
		profile.DateOfBirth = types.ToTimePtr(req.DateOfBirth)
	}
	if req.State != nil {
		state, err := enums.ParseAUState(strings.ToUpper(strings.TrimSpace(*req.State)))
		if err != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, err.Error())
		}
		profile.State = state
	}
	if req.Suburb != nil {
		profile.Suburb = strings.TrimSpace(*req.Suburb)
	}
	if req.ClearanceLevel != nil {
		level, err := enums.ParseClearanceLevel(strings.TrimSpace(*req.ClearanceLevel))
		if err != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, err.Error())
		}
		profile.ClearanceLevel = level
	}
	if req.ClearanceNo != nil {
		profile.ClearanceNo = strings.TrimSpace(*req.ClearanceNo)
	}
	if req.ClearanceExpiry != nil {
		profile.ClearanceExpiry = types.ToTimePtr(req.ClearanceExpiry)
	}
	if req.SkillSets != nil {
		profile.SkillSets = strings.TrimSpace(*req.SkillSets)
	}
	if req.SkillLevel != nil {
		profile.SkillLevel = strings.TrimSpace(*req.SkillLevel)
	}
	if req.OnboardingCompleted != nil {
		profile.OnboardingCompleted = *req.OnboardingCompleted
	}
	return nil
}
