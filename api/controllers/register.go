package controllers

import (
	"net/http"
	"time"

	"github.com/clearedcrew/clearedcrew-backend/api/responses"
	"github.com/clearedcrew/clearedcrew-backend/api/validators"
	"github.com/clearedcrew/clearedcrew-backend/internal/auth"
	pkgerrors "github.com/clearedcrew/clearedcrew-backend/pkg/errors"
	"github.com/clearedcrew/clearedcrew-backend/pkg/logger"
	"github.com/clearedcrew/clearedcrew-backend/pkg/metrics"
)

// AuthRegister creates an account plus its empty profile.
func AuthRegister(reg auth.RegisterService, accountMetrics *metrics.AccountMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if reg == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body auth.RegisterRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		start := time.Now()
		result, err := reg.Register(r.Context(), body)
		accountMetrics.ObserveRegistrationDuration("plain", time.Since(start))
		if err != nil {
			accountMetrics.IncRegistration("plain", "failure")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		accountMetrics.IncRegistration("plain", "success")

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// AuthRegisterWithProfile creates the account and fills the profile in one
// transaction.
func AuthRegisterWithProfile(reg auth.RegisterService, accountMetrics *metrics.AccountMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if reg == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body auth.RegisterWithProfileRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		start := time.Now()
		result, err := reg.RegisterWithProfile(r.Context(), body)
		accountMetrics.ObserveRegistrationDuration("combined", time.Since(start))
		if err != nil {
			accountMetrics.IncRegistration("combined", "failure")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		accountMetrics.IncRegistration("combined", "success")

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}
