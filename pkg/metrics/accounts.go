package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// AccountMetrics records counters for the account lifecycle endpoints.
type AccountMetrics struct {
	registrations        *prometheus.CounterVec
	logins               *prometheus.CounterVec
	onboardingCompleted  prometheus.Counter
	registrationDuration *prometheus.HistogramVec
}

// NewAccountMetrics registers the account metrics on the provided registerer.
func NewAccountMetrics(reg prometheus.Registerer) *AccountMetrics {
	if reg == nil {
		return &AccountMetrics{}
	}
	registrations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "account_registrations_total",
		Help: "Account registrations by outcome.",
	}, []string{"mode", "outcome"})
	logins := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "account_logins_total",
		Help: "Login attempts by outcome.",
	}, []string{"outcome"})
	onboarding := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "profile_onboarding_completed_total",
		Help: "Profiles marked as onboarding complete.",
	})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "account_registration_duration_seconds",
		Help:    "Duration of registration requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"mode"})
	reg.MustRegister(registrations, logins, onboarding, duration)
	return &AccountMetrics{
		registrations:        registrations,
		logins:               logins,
		onboardingCompleted:  onboarding,
		registrationDuration: duration,
	}
}

// IncRegistration increments the registration counter for the given mode and outcome.
func (a *AccountMetrics) IncRegistration(mode, outcome string) {
	if a == nil || a.registrations == nil {
		return
	}
	a.registrations.WithLabelValues(normalizeLabel(mode), normalizeLabel(outcome)).Inc()
}

// IncLogin increments the login counter for the given outcome.
func (a *AccountMetrics) IncLogin(outcome string) {
	if a == nil || a.logins == nil {
		return
	}
	a.logins.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncOnboardingCompleted increments the onboarding completion counter.
func (a *AccountMetrics) IncOnboardingCompleted() {
	if a == nil || a.onboardingCompleted == nil {
		return
	}
	a.onboardingCompleted.Inc()
}

// ObserveRegistrationDuration records how long a registration request took.
func (a *AccountMetrics) ObserveRegistrationDuration(mode string, duration time.Duration) {
	if a == nil || a.registrationDuration == nil {
		return
	}
	a.registrationDuration.WithLabelValues(normalizeLabel(mode)).Observe(duration.Seconds())
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
