package handler

import (
	"context"
	"net/http"

	"github.com/travelswift/booking-system/internal/adapter/http/handler/dto"
	"github.com/travelswift/booking-system/internal/domain/models"
	"github.com/travelswift/booking-system/internal/service/orchestrator"
	"github.com/travelswift/booking-system/pkg/logger"
	wrap "github.com/travelswift/booking-system/pkg/logger/wrapper"
	"github.com/travelswift/booking-system/pkg/validator"
)

type IdentityFlow interface {
	Signup(ctx context.Context, sessionID string, draft *models.SignupDraft) (orchestrator.Snapshot, error)
	SubmitCode(ctx context.Context, sessionID, code string) (orchestrator.Snapshot, error)
	Login(ctx context.Context, sessionID, identifier, password string) (orchestrator.Snapshot, error)
	Logout(ctx context.Context, sessionID string) error
	UpdateProfile(ctx context.Context, sessionID, name, phone string) (orchestrator.Snapshot, error)
	UploadPicture(ctx context.Context, sessionID string) (orchestrator.Snapshot, error)
}

type TokenProvider interface {
	GenerateTokens(ctx context.Context, user *models.UserProfile, sessionID string) (*models.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error)
}

type Auth struct {
	flow   IdentityFlow
	tokens TokenProvider
	l      logger.Logger
}

func NewAuth(flow IdentityFlow, tokens TokenProvider, l logger.Logger) *Auth {
	return &Auth{
		flow:   flow,
		tokens: tokens,
		l:      l,
	}
}

// Signup stages a new account and moves the session into the
// verification step. No account exists until the code is confirmed.
func (h *Auth) Signup(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "signup")

	sessionID, ok := sessionIDFromRequest(w, r)
	if !ok {
		return
	}

	req := &dto.SignupRequest{}
	if err := readJSON(w, r, req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	dto.ValidateSignup(v, req)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	snap, err := h.flow.Signup(ctx, sessionID, req.ToDraft())
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to begin signup", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{"session": snapshotEnvelope(snap)}
	if err := writeJSON(w, http.StatusAccepted, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// SubmitCode confirms the staged signup. On success the session is
// authenticated and a token pair is issued.
func (h *Auth) SubmitCode(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "submit_code")

	sessionID, ok := sessionIDFromRequest(w, r)
	if !ok {
		return
	}

	req := &dto.SubmitCodeRequest{}
	if err := readJSON(w, r, req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	dto.ValidateSubmitCode(v, req)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	snap, err := h.flow.SubmitCode(ctx, sessionID, req.Code)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to verify code", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	h.writeAuthenticated(ctx, w, snap)
}

func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "login")

	sessionID, ok := sessionIDFromRequest(w, r)
	if !ok {
		return
	}

	req := &dto.LoginRequest{}
	if err := readJSON(w, r, req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	dto.ValidateLogin(v, req)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	snap, err := h.flow.Login(ctx, sessionID, req.Identifier, req.Password)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to login", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	h.writeAuthenticated(ctx, w, snap)
}

func (h *Auth) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "refresh_token")

	req := &dto.RefreshTokenRequest{}
	if err := readJSON(w, r, req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	dto.ValidateRefreshToken(v, req)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	tokens, err := h.tokens.Refresh(ctx, req.RefreshToken)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to refresh tokens", err)
		errorResponse(w, http.StatusUnauthorized, "invalid or expired refresh token")
		return
	}

	response := envelope{"tokens": tokens}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// Logout tears the session down entirely. The next attach starts from
// a clean anonymous state.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "logout")

	sessionID, ok := sessionIDFromRequest(w, r)
	if !ok {
		return
	}

	if err := h.flow.Logout(ctx, sessionID); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to logout", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{"message": "logged out"}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// Me returns the profile attached by the auth middleware.
func (h *Auth) Me(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "me")

	user := models.UserFromContext(r.Context())
	if user.IsAnonymous() {
		errorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	response := envelope{"user": user}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

func (h *Auth) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "update_profile")

	sessionID, ok := sessionIDFromRequest(w, r)
	if !ok {
		return
	}

	req := &dto.UpdateProfileRequest{}
	if err := readJSON(w, r, req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	dto.ValidateUpdateProfile(v, req)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	snap, err := h.flow.UpdateProfile(ctx, sessionID, req.Name, req.Phone)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to update profile", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{"user": snap.User}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// UploadPicture captures a profile picture from the device camera and
// stores the resulting handle on the profile.
func (h *Auth) UploadPicture(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "upload_picture")

	sessionID, ok := sessionIDFromRequest(w, r)
	if !ok {
		return
	}

	snap, err := h.flow.UploadPicture(ctx, sessionID)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to capture profile picture", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{"user": snap.User}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// writeAuthenticated issues a token pair for the now verified session
// and writes it together with the session view.
func (h *Auth) writeAuthenticated(ctx context.Context, w http.ResponseWriter, snap orchestrator.Snapshot) {
	tokens, err := h.tokens.GenerateTokens(ctx, snap.User, snap.SessionID)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to generate tokens", err)
		internalErrorResponse(w, "failed to generate tokens")
		return
	}

	response := envelope{
		"session": snapshotEnvelope(snap),
		"tokens":  tokens,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}
