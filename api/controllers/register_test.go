package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/clearedcrew/clearedcrew-backend/internal/auth"
	"github.com/clearedcrew/clearedcrew-backend/internal/users"
	pkgerrors "github.com/clearedcrew/clearedcrew-backend/pkg/errors"
	"github.com/clearedcrew/clearedcrew-backend/pkg/types"
	"github.com/google/uuid"
)

type stubRegisterService struct {
	resp *auth.RegisterResponse
	err  error

	lastPlain    *auth.RegisterRequest
	lastCombined *auth.RegisterWithProfileRequest
}

func (s *stubRegisterService) Register(ctx context.Context, req auth.RegisterRequest) (*auth.RegisterResponse, error) {
	s.lastPlain = &req
	return s.resp, s.err
}

func (s *stubRegisterService) RegisterWithProfile(ctx context.Context, req auth.RegisterWithProfileRequest) (*auth.RegisterResponse, error) {
	s.lastCombined = &req
	return s.resp, s.err
}

func TestAuthRegisterCreated(t *testing.T) {
	svc := &stubRegisterService{
		resp: &auth.RegisterResponse{
			User: &users.UserDTO{ID: uuid.New(), Email: "new@example.com"},
		},
	}
	handler := AuthRegister(svc, nil, nil)

	body := `{"email":"new@example.com","password":"a-long-password","password2":"a-long-password","first_name":"New","last_name":"User"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.lastPlain == nil || svc.lastPlain.Email != "new@example.com" {
		t.Fatalf("request not forwarded: %+v", svc.lastPlain)
	}
}

func TestAuthRegisterRejectsMissingFields(t *testing.T) {
	svc := &stubRegisterService{}
	handler := AuthRegister(svc, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(`{"email":"new@example.com"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if svc.lastPlain != nil {
		t.Fatal("service should not be called on invalid body")
	}
}

func TestAuthRegisterMapsConflict(t *testing.T) {
	svc := &stubRegisterService{err: pkgerrors.New(pkgerrors.CodeConflict, "email already registered")}
	handler := AuthRegister(svc, nil, nil)

	body := `{"email":"dup@example.com","password":"a-long-password","password2":"a-long-password"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	var payload types.ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Error.Message != "email already registered" {
		t.Fatalf("unexpected message %q", payload.Error.Message)
	}
}

func TestAuthRegisterWithProfileForwardsProfile(t *testing.T) {
	svc := &stubRegisterService{resp: &auth.RegisterResponse{}}
	handler := AuthRegisterWithProfile(svc, nil, nil)

	body := `{
		"email":"combined@example.com",
		"password":"a-long-password",
		"password2":"a-long-password",
		"profile":{"state":"NSW","suburb":"Newtown","clearance_level":"NV1"}
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register-with-profile", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.lastCombined == nil || svc.lastCombined.Profile.Suburb == nil || *svc.lastCombined.Profile.Suburb != "Newtown" {
		t.Fatalf("profile fields not forwarded: %+v", svc.lastCombined)
	}
}
