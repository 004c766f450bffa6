package controllers

import (
	"context"

	"github.com/clearedcrew/clearedcrew-backend/api/middleware"
	pkgerrors "github.com/clearedcrew/clearedcrew-backend/pkg/errors"
	"github.com/google/uuid"
)

// currentUserID pulls the authenticated user from the request context.
func currentUserID(ctx context.Context) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(ctx)
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "not authenticated")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}
	return id, nil
}
