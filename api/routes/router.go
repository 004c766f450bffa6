package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/clearedcrew/clearedcrew-backend/api/controllers"
	"github.com/clearedcrew/clearedcrew-backend/api/middleware"
	"github.com/clearedcrew/clearedcrew-backend/internal/auth"
	"github.com/clearedcrew/clearedcrew-backend/internal/profiles"
	"github.com/clearedcrew/clearedcrew-backend/internal/users"
	"github.com/clearedcrew/clearedcrew-backend/pkg/auth/session"
	"github.com/clearedcrew/clearedcrew-backend/pkg/config"
	"github.com/clearedcrew/clearedcrew-backend/pkg/db"
	"github.com/clearedcrew/clearedcrew-backend/pkg/logger"
	"github.com/clearedcrew/clearedcrew-backend/pkg/metrics"
	"github.com/clearedcrew/clearedcrew-backend/pkg/redis"
	"github.com/clearedcrew/clearedcrew-backend/pkg/security"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	sessions session.AccessSessionChecker,
	authService auth.Service,
	registerService auth.RegisterService,
	userService users.Service,
	profileService profiles.Service,
	passwordPolicy *security.Policy,
	accountMetrics *metrics.AccountMetrics,
	gatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	var helpTexts []string
	if passwordPolicy != nil {
		helpTexts = passwordPolicy.HelpTexts()
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbP, redisClient, logg))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, redisClient, logg)).
			Post("/register", controllers.AuthRegister(registerService, accountMetrics, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, redisClient, logg)).
			Post("/register-with-profile", controllers.AuthRegisterWithProfile(registerService, accountMetrics, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).
			Post("/login", controllers.AuthLogin(authService, accountMetrics, logg))
		r.Post("/refresh", controllers.AuthRefresh(authService, logg))
		r.Get("/password-policy", controllers.PasswordPolicyShow(helpTexts))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, sessions, logg))
			r.Post("/logout", controllers.AuthLogout(authService, logg))
		})
	})

	r.Route("/api/v1/me", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))

		r.Get("/", controllers.AccountGet(userService, logg))
		r.Patch("/", controllers.AccountUpdate(userService, logg))
		r.Delete("/", controllers.AccountDelete(userService, authService, logg))
		r.Get("/dashboard", controllers.Dashboard(userService, profileService, logg))

		r.Route("/profile", func(r chi.Router) {
			r.Get("/", controllers.ProfileGet(profileService, logg))
			r.Post("/", controllers.ProfileCreate(profileService, logg))
			r.Patch("/", controllers.ProfileUpdate(profileService, logg))
		})

		r.Post("/onboarding", controllers.OnboardingComplete(profileService, accountMetrics, logg))
	})

	return r
}
