package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/clearedcrew/clearedcrew-backend/internal/auth"
	"github.com/clearedcrew/clearedcrew-backend/internal/profiles"
	"github.com/clearedcrew/clearedcrew-backend/internal/users"
	pkgauth "github.com/clearedcrew/clearedcrew-backend/pkg/auth"
	"github.com/clearedcrew/clearedcrew-backend/pkg/auth/session"
	"github.com/clearedcrew/clearedcrew-backend/pkg/config"
	pkgerrors "github.com/clearedcrew/clearedcrew-backend/pkg/errors"
	"github.com/clearedcrew/clearedcrew-backend/pkg/security"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

type allowAllSessions struct{}

func (allowAllSessions) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

type stubUserService struct {
	dto *users.UserDTO
}

func (s *stubUserService) Get(ctx context.Context, userID uuid.UUID) (*users.UserDTO, error) {
	return s.dto, nil
}

func (s *stubUserService) Update(ctx context.Context, userID uuid.UUID, req users.UpdateAccountRequest) (*users.UserDTO, error) {
	return s.dto, nil
}

func (s *stubUserService) Delete(ctx context.Context, userID uuid.UUID) error {
	return nil
}

type stubProfileService struct{}

func (stubProfileService) Get(ctx context.Context, userID uuid.UUID) (*profiles.ProfileDTO, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
}

func (stubProfileService) Create(ctx context.Context, userID uuid.UUID, req profiles.UpdateProfileRequest) (*profiles.ProfileDTO, error) {
	return &profiles.ProfileDTO{UserID: userID}, nil
}

func (stubProfileService) Update(ctx context.Context, userID uuid.UUID, req profiles.UpdateProfileRequest) (*profiles.ProfileDTO, error) {
	return &profiles.ProfileDTO{UserID: userID}, nil
}

func (stubProfileService) CompleteOnboarding(ctx context.Context, userID uuid.UUID, req profiles.UpdateProfileRequest) (*profiles.ProfileDTO, bool, error) {
	return &profiles.ProfileDTO{UserID: userID, OnboardingCompleted: true}, true, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "8080"},
		JWT: config.JWTConfig{
			Secret:            "router-test-secret",
			Issuer:            "clearedcrew-test",
			ExpirationMinutes: 15,
		},
	}
}

func newTestRouter(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	userID := uuid.New()
	return NewRouter(
		cfg,
		nil,
		nil,
		nil,
		allowAllSessions{},
		auth.Service(nil),
		auth.RegisterService(nil),
		&stubUserService{dto: &users.UserDTO{ID: userID, Email: "router@example.com"}},
		stubProfileService{},
		security.NewPolicy(config.PasswordConfig{}),
		nil,
		prometheus.NewRegistry(),
	)
}

func TestRouterHealthLive(t *testing.T) {
	router := newTestRouter(t, testConfig())

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("X-ClearedCrew-Env"); got != "test" {
		t.Fatalf("env header = %q", got)
	}
}

func TestRouterMetricsExposed(t *testing.T) {
	router := newTestRouter(t, testConfig())

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRouterPasswordPolicyPublic(t *testing.T) {
	router := newTestRouter(t, testConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/password-policy", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "characters") {
		t.Fatalf("expected policy rules in body, got %s", rec.Body.String())
	}
}

func TestRouterAccountRequiresToken(t *testing.T) {
	router := newTestRouter(t, testConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRouterAccountWithToken(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(t, cfg)

	token, err := pkgauth.MintAccessToken(cfg.JWT, time.Now(), pkgauth.AccessTokenPayload{
		UserID: uuid.New(),
		JTI:    session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "router@example.com") {
		t.Fatalf("account payload missing: %s", rec.Body.String())
	}
}

func TestRouterDashboardToleratesMissingProfile(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(t, cfg)

	token, err := pkgauth.MintAccessToken(cfg.JWT, time.Now(), pkgauth.AccessTokenPayload{
		UserID: uuid.New(),
		JTI:    session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"onboarding_completed":false`) {
		t.Fatalf("expected incomplete onboarding, got %s", rec.Body.String())
	}
}

func TestRouterUnknownRoute(t *testing.T) {
	router := newTestRouter(t, testConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/unknown", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
