package users

import (
	"context"
	"errors"
	"strings"

	"github.com/clearedcrew/clearedcrew-backend/internal/profiles"
	"github.com/clearedcrew/clearedcrew-backend/pkg/db"
	"github.com/clearedcrew/clearedcrew-backend/pkg/db/models"
	pkgerrors "github.com/clearedcrew/clearedcrew-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const accountNotFoundMessage = "account not found"

// Service defines the self-service account operations.
type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (*UserDTO, error)
	Update(ctx context.Context, userID uuid.UUID, req UpdateAccountRequest) (*UserDTO, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}

// TxRunner abstracts transactional execution so tests can stub it out.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type accountUserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Save(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type accountProfileRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	Save(ctx context.Context, profile *models.Profile) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

// ServiceParams bundles the dependencies for the account service.
type ServiceParams struct {
	TxRunner           TxRunner
	UserRepoFactory    func(tx *gorm.DB) accountUserRepository
	ProfileRepoFactory func(tx *gorm.DB) accountProfileRepository
}

type service struct {
	tx           TxRunner
	userRepos    func(tx *gorm.DB) accountUserRepository
	profileRepos func(tx *gorm.DB) accountProfileRepository
}

// NewService constructs an account service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.TxRunner == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "tx runner required")
	}
	if params.UserRepoFactory == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "user repo factory required")
	}
	if params.ProfileRepoFactory == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "profile repo factory required")
	}
	return &service{
		tx:           params.TxRunner,
		userRepos:    params.UserRepoFactory,
		profileRepos: params.ProfileRepoFactory,
	}, nil
}

func (s *service) Get(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	var dto *UserDTO
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		user, err := s.loadUser(ctx, s.userRepos(tx), userID)
		if err != nil {
			return err
		}
		dto = FromModel(user)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (s *service) Update(ctx context.Context, userID uuid.UUID, req UpdateAccountRequest) (*UserDTO, error) {
	var email string
	if req.Email != nil {
		email = strings.ToLower(strings.TrimSpace(*req.Email))
		if email == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "email cannot be empty")
		}
	}

	var dto *UserDTO
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.userRepos(tx)
		user, err := s.loadUser(ctx, repo, userID)
		if err != nil {
			return err
		}

		if email != "" && email != user.Email {
			if _, err := repo.FindByEmail(ctx, email); err == nil {
				return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check user email")
			}
			user.Email = email
			user.EmailVerified = false
		}
		if req.FirstName != nil {
			user.FirstName = strings.TrimSpace(*req.FirstName)
		}
		if req.LastName != nil {
			user.LastName = strings.TrimSpace(*req.LastName)
		}
		// clearing the display name hands it back to the save-time derivation
		if req.DisplayName != nil {
			user.DisplayName = strings.TrimSpace(*req.DisplayName)
		}
		if req.IsActive != nil {
			user.IsActive = *req.IsActive
		}

		if err := repo.Save(ctx, user); err != nil {
			if db.IsUniqueViolation(err) {
				return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save user")
		}

		// the profile row is touched in the same transaction so its
		// updated_at stays in step with the account row
		profileRepo := s.profileRepos(tx)
		if profile, err := profileRepo.FindByUserID(ctx, userID); err == nil {
			if err := profileRepo.Save(ctx, profile); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "refresh profile")
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup profile")
		}

		dto = FromModel(user)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Delete removes the account and its profile in one transaction. The profile
// row is deleted explicitly rather than relying on the FK cascade alone.
func (s *service) Delete(ctx context.Context, userID uuid.UUID) error {
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.userRepos(tx)
		if _, err := s.loadUser(ctx, repo, userID); err != nil {
			return err
		}
		if err := s.profileRepos(tx).DeleteByUserID(ctx, userID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete profile")
		}
		if err := repo.Delete(ctx, userID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete user")
		}
		return nil
	})
}

// DefaultServiceParams binds the service to the GORM-backed repositories.
func DefaultServiceParams(runner TxRunner) ServiceParams {
	return ServiceParams{
		TxRunner: runner,
		UserRepoFactory: func(tx *gorm.DB) accountUserRepository {
			return NewRepository(tx)
		},
		ProfileRepoFactory: func(tx *gorm.DB) accountProfileRepository {
			return profiles.NewRepository(tx)
		},
	}
}

func (s *service) loadUser(ctx context.Context, repo accountUserRepository, userID uuid.UUID) (*models.User, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "not authenticated")
	}
	user, err := repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, accountNotFoundMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}
	return user, nil
}
