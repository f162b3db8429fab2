package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"auth-service/internal/auth"
	"auth-service/internal/domain"
	authsvc "auth-service/internal/service/auth"
	"auth-service/pkg/ctxutil"
)

// authService defines the minimal interface needed by AuthHandler.
type authService interface {
	Register(ctx context.Context, input authsvc.RegisterInput) (*domain.User, error)
	Login(ctx context.Context, input authsvc.LoginInput) (*domain.User, error)
	LoginWithGitHub(ctx context.Context, code string) (*domain.User, error)
	UserExists(ctx context.Context, email string) error
	CreateAccessToken(ctx context.Context, user *domain.User) (*auth.AccessToken, error)
	AuthorizationURL(state string) string
}

// AuthHandler serves auth REST endpoints.
type AuthHandler struct {
	svc authService
	log *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(svc authService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: logger.With("handler", "auth")}
}

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type githubLoginRequest struct {
	Code string `json:"code"`
}

type authResponse struct {
	AccessToken string       `json:"accessToken"`
	ExpiresAt   string       `json:"expiresAt"`
	User        userResponse `json:"user"`
}

type userResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.svc.Register(r.Context(), authsvc.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.respondWithToken(w, r, http.StatusCreated, user)
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.svc.Login(r.Context(), authsvc.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.respondWithToken(w, r, http.StatusOK, user)
}

// LoginWithGitHub handles POST /auth/login/github.
func (h *AuthHandler) LoginWithGitHub(w http.ResponseWriter, r *http.Request) {
	var req githubLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.svc.LoginWithGitHub(r.Context(), req.Code)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.respondWithToken(w, r, http.StatusOK, user)
}

// AuthorizationURL handles GET /auth/github/url.
func (h *AuthHandler) AuthorizationURL(w http.ResponseWriter, r *http.Request) {
	url := h.svc.AuthorizationURL(r.URL.Query().Get("state"))
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

// Exists handles GET /auth/exists.
func (h *AuthHandler) Exists(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	err := h.svc.UserExists(r.Context(), email)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]bool{"exists": false})
	case errors.Is(err, domain.ErrAlreadyExists):
		writeJSON(w, http.StatusOK, map[string]bool{"exists": true})
	default:
		h.handleError(w, r, err)
	}
}

// Me handles GET /me. The auth middleware has already validated the token.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":    userID.String(),
		"roles": ctxutil.RolesFromCtx(r.Context()),
	})
}

// respondWithToken issues an access token for the user and writes the
// combined response.
func (h *AuthHandler) respondWithToken(w http.ResponseWriter, r *http.Request, status int, user *domain.User) {
	token, err := h.svc.CreateAccessToken(r.Context(), user)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, status, authResponse{
		AccessToken: token.Token,
		ExpiresAt:   token.ExpiresAt.UTC().Format(time.RFC3339),
		User: userResponse{
			ID:        user.ID.String(),
			Email:     user.Email,
			FirstName: user.FirstName,
			LastName:  user.LastName,
		},
	})
}

// handleError maps domain errors to HTTP statuses. Unknown email and wrong
// password both answer 401 so the API does not reveal which one happened.
func (h *AuthHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "already exists")
	case errors.Is(err, domain.ErrExternalLogin):
		writeError(w, http.StatusBadGateway, "external login failed")
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
