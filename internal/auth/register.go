package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/clearedcrew/clearedcrew-backend/internal/profiles"
	"github.com/clearedcrew/clearedcrew-backend/internal/users"
	"github.com/clearedcrew/clearedcrew-backend/pkg/config"
	"github.com/clearedcrew/clearedcrew-backend/pkg/db"
	"github.com/clearedcrew/clearedcrew-backend/pkg/db/models"
	pkgerrors "github.com/clearedcrew/clearedcrew-backend/pkg/errors"
	"github.com/clearedcrew/clearedcrew-backend/pkg/security"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RegisterService handles account creation.
type RegisterService interface {
	Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error)
	RegisterWithProfile(ctx context.Context, req RegisterWithProfileRequest) (*RegisterResponse, error)
}

// TxRunner abstracts transactional execution so tests can stub it out.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type registerUserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
}

type registerProfileRepository interface {
	Create(ctx context.Context, profile *models.Profile) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	Save(ctx context.Context, profile *models.Profile) error
}

// RegisterServiceParams packages the dependencies for the registration flow.
type RegisterServiceParams struct {
	TxRunner           TxRunner
	UserRepoFactory    func(tx *gorm.DB) registerUserRepository
	ProfileRepoFactory func(tx *gorm.DB) registerProfileRepository
	PasswordPolicy     *security.Policy
	PasswordConfig     config.PasswordConfig
}

type registerService struct {
	tx           TxRunner
	userRepos    func(tx *gorm.DB) registerUserRepository
	profileRepos func(tx *gorm.DB) registerProfileRepository
	policy       *security.Policy
	passwordCfg  config.PasswordConfig
}

// NewRegisterService builds a registration service with the provided dependencies.
func NewRegisterService(params RegisterServiceParams) (RegisterService, error) {
	if params.TxRunner == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "tx runner required")
	}
	if params.UserRepoFactory == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "user repo factory required")
	}
	if params.ProfileRepoFactory == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "profile repo factory required")
	}
	if params.PasswordPolicy == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "password policy required")
	}
	return &registerService{
		tx:           params.TxRunner,
		userRepos:    params.UserRepoFactory,
		profileRepos: params.ProfileRepoFactory,
		policy:       params.PasswordPolicy,
		passwordCfg:  params.PasswordConfig,
	}, nil
}

// DefaultRegisterServiceParams binds the registration flow to the GORM-backed
// repositories.
func DefaultRegisterServiceParams(runner TxRunner, policy *security.Policy, passwordCfg config.PasswordConfig) RegisterServiceParams {
	return RegisterServiceParams{
		TxRunner: runner,
		UserRepoFactory: func(tx *gorm.DB) registerUserRepository {
			return users.NewRepository(tx)
		},
		ProfileRepoFactory: func(tx *gorm.DB) registerProfileRepository {
			return profiles.NewRepository(tx)
		},
		PasswordPolicy: policy,
		PasswordConfig: passwordCfg,
	}
}

func (s *registerService) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	return s.register(ctx, req, profiles.UpdateProfileRequest{})
}

func (s *registerService) RegisterWithProfile(ctx context.Context, req RegisterWithProfileRequest) (*RegisterResponse, error) {
	return s.register(ctx, req.RegisterRequest, req.Profile)
}

// register creates the user row and its profile row in one transaction, so an
// account never exists without a profile.
func (s *registerService) register(ctx context.Context, req RegisterRequest, profileReq profiles.UpdateProfileRequest) (*RegisterResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if req.Password != req.Password2 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "passwords do not match")
	}
	if err := s.policy.Validate(req.Password, nil); err != nil {
		return nil, err
	}

	passwordHash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var resp *RegisterResponse
	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		userRepo := s.userRepos(tx)
		profileRepo := s.profileRepos(tx)

		if _, err := userRepo.FindByEmail(ctx, email); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check user email")
		}

		user, err := userRepo.Create(ctx, users.CreateUserDTO{
			Email:        email,
			PasswordHash: passwordHash,
			FirstName:    strings.TrimSpace(req.FirstName),
			LastName:     strings.TrimSpace(req.LastName),
		})
		if err != nil {
			if db.IsUniqueViolation(err) {
				return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
		}

		profile := &models.Profile{UserID: user.ID}
		if err := profiles.ApplyRequest(profile, profileReq); err != nil {
			return err
		}
		if err := profileRepo.Create(ctx, profile); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create profile")
		}

		resp = &RegisterResponse{
			User:    users.FromModel(user),
			Profile: profiles.FromModel(profile),
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return resp, nil
}
