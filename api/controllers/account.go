package controllers

import (
	"net/http"

	"github.com/clearedcrew/clearedcrew-backend/api/middleware"
	"github.com/clearedcrew/clearedcrew-backend/api/responses"
	"github.com/clearedcrew/clearedcrew-backend/api/validators"
	"github.com/clearedcrew/clearedcrew-backend/internal/auth"
	"github.com/clearedcrew/clearedcrew-backend/internal/users"
	"github.com/clearedcrew/clearedcrew-backend/pkg/logger"
)

// AccountGet returns the authenticated user's account.
func AccountGet(svc users.Service, logg *logger.Logger) http.HandlerFunc {
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

// AccountUpdate applies partial changes to the authenticated user's account.
func AccountUpdate(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body users.UpdateAccountRequest
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

// AccountDelete removes the account, its profile, and the active session.
func AccountDelete(svc users.Service, authSvc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), userID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		// the account is gone; a failed revoke only leaves a session that
		// can no longer resolve a user
		if authSvc != nil {
			if accessID := middleware.AccessIDFromContext(r.Context()); accessID != "" {
				if err := authSvc.Logout(r.Context(), accessID); err != nil && logg != nil {
					logg.Warn(r.Context(), "revoke session after delete failed")
				}
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// PasswordPolicyShow lists the rules a new password must satisfy.
func PasswordPolicyShow(helpTexts []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if helpTexts == nil {
			helpTexts = []string{}
		}
		responses.WriteSuccess(w, map[string]any{"rules": helpTexts})
	}
}
