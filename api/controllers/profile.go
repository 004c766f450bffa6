package controllers

import (
	"net/http"

	"github.com/clearedcrew/clearedcrew-backend/api/responses"
	"github.com/clearedcrew/clearedcrew-backend/api/validators"
	"github.com/clearedcrew/clearedcrew-backend/internal/profiles"
	"github.com/clearedcrew/clearedcrew-backend/internal/users"
	"github.com/clearedcrew/clearedcrew-backend/pkg/logger"
	"github.com/clearedcrew/clearedcrew-backend/pkg/metrics"
)

// ProfileGet returns the authenticated user's profile.
func ProfileGet(svc profiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Get(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}

// ProfileCreate creates the profile row for accounts that predate the
// automatic profile, or after a profile was removed.
func ProfileCreate(svc profiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body profiles.UpdateProfileRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Create(r.Context(), userID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// ProfileUpdate applies partial changes to the authenticated user's profile.
func ProfileUpdate(svc profiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body profiles.UpdateProfileRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Update(r.Context(), userID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}

// OnboardingComplete applies any submitted profile fields and marks the
// profile's onboarding as done. Safe to repeat; the body is optional.
func OnboardingComplete(svc profiles.Service, accountMetrics *metrics.AccountMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body profiles.UpdateProfileRequest
		if r.ContentLength != 0 {
			if err := validators.DecodeJSONBody(r, &body); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		dto, completed, err := svc.CompleteOnboarding(r.Context(), userID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		// repeat calls are no-ops and must not inflate the counter
		if completed {
			accountMetrics.IncOnboardingCompleted()
		}

		responses.WriteSuccess(w, dto)
	}
}

// Dashboard aggregates the account and profile into one payload.
func Dashboard(userSvc users.Service, profileSvc profiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := userSvc.Get(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payload := map[string]any{
			"user":                 user,
			"profile":              nil,
			"onboarding_completed": false,
		}

		// a missing profile is not an error here; the dashboard just shows
		// onboarding as incomplete
		if profile, err := profileSvc.Get(r.Context(), userID); err == nil {
			payload["profile"] = profile
			payload["onboarding_completed"] = profile.OnboardingCompleted
		}

		responses.WriteSuccess(w, payload)
	}
}
