package profiles

import (
	"context"
	"testing"
	"time"

	"github.com/clearedcrew/clearedcrew-backend/pkg/db/models"
	"github.com/clearedcrew/clearedcrew-backend/pkg/enums"
	pkgerrors "github.com/clearedcrew/clearedcrew-backend/pkg/errors"
	"github.com/clearedcrew/clearedcrew-backend/pkg/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stubTxRunner struct{}

func (s stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubProfileRepo struct {
	byUser map[uuid.UUID]*models.Profile
}

func newStubProfileRepo(seed ...*models.Profile) *stubProfileRepo {
	repo := &stubProfileRepo{byUser: map[uuid.UUID]*models.Profile{}}
	for _, profile := range seed {
		repo.byUser[profile.UserID] = profile
	}
	return repo
}

func (s *stubProfileRepo) Create(ctx context.Context, profile *models.Profile) error {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	if profile.ClearanceLevel == "" {
		profile.ClearanceLevel = enums.ClearanceLevelNone
	}
	s.byUser[profile.UserID] = profile
	return nil
}

func (s *stubProfileRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	if profile, ok := s.byUser[userID]; ok {
		return profile, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubProfileRepo) Save(ctx context.Context, profile *models.Profile) error {
	s.byUser[profile.UserID] = profile
	return nil
}

func newProfileService(t *testing.T, repo *stubProfileRepo) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		TxRunner: stubTxRunner{},
		RepoFactory: func(tx *gorm.DB) profileRepository {
			return repo
		},
	})
	if err != nil {
		t.Fatalf("new profile service: %v", err)
	}
	return svc
}

func strPtr(v string) *string {
	return &v
}

func TestProfileCreateAndGet(t *testing.T) {
	repo := newStubProfileRepo()
	svc := newProfileService(t, repo)
	userID := uuid.New()
	dob := types.NewDate(1991, time.May, 20)

	dto, err := svc.Create(context.Background(), userID, UpdateProfileRequest{
		MiddleName:     strPtr("James"),
		DateOfBirth:    &dob,
		State:          strPtr("vic"),
		Suburb:         strPtr("  Richmond "),
		ClearanceLevel: strPtr("Baseline"),
		SkillSets:      strPtr("networking, sysadmin"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.State != enums.AUStateVIC {
		t.Fatalf("state not normalized, got %s", dto.State)
	}
	if dto.Suburb != "Richmond" {
		t.Fatalf("suburb not trimmed: %q", dto.Suburb)
	}
	if dto.ClearanceLevel != enums.ClearanceLevelBaseline {
		t.Fatalf("clearance level not applied: %s", dto.ClearanceLevel)
	}
	if dto.OnboardingCompleted {
		t.Fatal("onboarding must start incomplete")
	}

	got, err := svc.Get(context.Background(), userID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.DateOfBirth == nil || got.DateOfBirth.String() != "1991-05-20" {
		t.Fatalf("date of birth not persisted: %v", got.DateOfBirth)
	}
}

func TestProfileCreateFallsBackToExisting(t *testing.T) {
	userID := uuid.New()
	existingID := uuid.New()
	repo := newStubProfileRepo(&models.Profile{ID: existingID, UserID: userID, Suburb: "Brunswick"})
	svc := newProfileService(t, repo)

	dto, err := svc.Create(context.Background(), userID, UpdateProfileRequest{Suburb: strPtr("Coburg")})
	if err != nil {
		t.Fatalf("create fallback: %v", err)
	}
	if dto.ID != existingID {
		t.Fatalf("expected existing profile returned, got %s", dto.ID)
	}
	if dto.Suburb != "Brunswick" {
		t.Fatalf("existing profile must be returned untouched, got %q", dto.Suburb)
	}
}

func TestProfileUpdatePartial(t *testing.T) {
	userID := uuid.New()
	repo := newStubProfileRepo(&models.Profile{
		ID:             uuid.New(),
		UserID:         userID,
		Suburb:         "Fitzroy",
		State:          enums.AUStateVIC,
		ClearanceLevel: enums.ClearanceLevelNone,
	})
	svc := newProfileService(t, repo)

	dto, err := svc.Update(context.Background(), userID, UpdateProfileRequest{
		ClearanceLevel: strPtr("NV1"),
		ClearanceNo:    strPtr("CS-12345"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if dto.ClearanceLevel != enums.ClearanceLevelNV1 || dto.ClearanceNo != "CS-12345" {
		t.Fatalf("clearance fields not applied: %+v", dto)
	}
	if dto.Suburb != "Fitzroy" || dto.State != enums.AUStateVIC {
		t.Fatalf("untouched fields changed: %+v", dto)
	}
}

func TestProfileUpdateRejectsUnknownEnums(t *testing.T) {
	userID := uuid.New()
	repo := newStubProfileRepo(&models.Profile{ID: uuid.New(), UserID: userID})
	svc := newProfileService(t, repo)

	_, err := svc.Update(context.Background(), userID, UpdateProfileRequest{State: strPtr("TAS-ish")})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for state, got %v", err)
	}

	_, err = svc.Update(context.Background(), userID, UpdateProfileRequest{ClearanceLevel: strPtr("TopSecret")})
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for clearance, got %v", err)
	}
}

func TestProfileUpdateMissing(t *testing.T) {
	svc := newProfileService(t, newStubProfileRepo())

	_, err := svc.Update(context.Background(), uuid.New(), UpdateProfileRequest{Suburb: strPtr("Carlton")})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCompleteOnboardingIdempotent(t *testing.T) {
	userID := uuid.New()
	repo := newStubProfileRepo(&models.Profile{ID: uuid.New(), UserID: userID})
	svc := newProfileService(t, repo)

	// the flag is forced true even when the payload says otherwise
	completed := false
	suburb := "Belconnen"
	dto, flipped, err := svc.CompleteOnboarding(context.Background(), userID, UpdateProfileRequest{
		Suburb:              &suburb,
		OnboardingCompleted: &completed,
	})
	if err != nil {
		t.Fatalf("complete onboarding: %v", err)
	}
	if !dto.OnboardingCompleted {
		t.Fatal("expected onboarding flag set")
	}
	if !flipped {
		t.Fatal("first completion should report the flag transition")
	}
	if dto.Suburb != "Belconnen" {
		t.Fatalf("expected submitted fields applied, got suburb %q", dto.Suburb)
	}

	again, flipped, err := svc.CompleteOnboarding(context.Background(), userID, UpdateProfileRequest{})
	if err != nil {
		t.Fatalf("second complete: %v", err)
	}
	if !again.OnboardingCompleted {
		t.Fatal("flag must stay true on repeat calls")
	}
	if flipped {
		t.Fatal("repeat completion must not report a transition")
	}
}
