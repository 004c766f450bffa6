package controllers

import (
	"net/http"

	"github.com/clearedcrew/clearedcrew-backend/api/middleware"
	"github.com/clearedcrew/clearedcrew-backend/api/responses"
	"github.com/clearedcrew/clearedcrew-backend/api/validators"
	"github.com/clearedcrew/clearedcrew-backend/internal/auth"
	pkgerrors "github.com/clearedcrew/clearedcrew-backend/pkg/errors"
	"github.com/clearedcrew/clearedcrew-backend/pkg/logger"
	"github.com/clearedcrew/clearedcrew-backend/pkg/metrics"
)

// AuthLogin wires the login endpoint into the HTTP layer.
func AuthLogin(svc auth.Service, accountMetrics *metrics.AccountMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), body)
		if err != nil {
			accountMetrics.IncLogin("failure")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		accountMetrics.IncLogin("success")

		responses.WriteSuccess(w, result)
	}
}

// AuthLogout revokes the refresh session tied to the caller's access token.
// The route sits behind the auth middleware, so the access id is already in
// the request context.
func AuthLogout(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		accessID := middleware.AccessIDFromContext(r.Context())
		if err := svc.Logout(r.Context(), accessID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "logged_out"})
	}
}

// AuthRefresh rotates the refresh token and issues a new access token. The
// presented access token may be expired.
func AuthRefresh(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var body auth.RefreshRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Refresh(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
