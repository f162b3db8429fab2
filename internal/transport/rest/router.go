package rest

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"auth-service/internal/config"
	"auth-service/internal/transport/middleware"
)

// tokenValidator matches the JWT manager's validation method.
type tokenValidator interface {
	ValidateAccessToken(token string) (uuid.UUID, []string, error)
}

// NewRouter wires handlers and middleware into the HTTP routing table.
// Registration and login endpoints are public; /me requires a valid bearer
// token. The external login endpoints are registered only when GitHub
// OAuth is configured.
func NewRouter(
	authHandler *AuthHandler,
	healthHandler *HealthHandler,
	validator tokenValidator,
	logger *slog.Logger,
	corsCfg config.CORSConfig,
	githubEnabled bool,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", healthHandler.Live)
	mux.HandleFunc("GET /ready", healthHandler.Ready)
	mux.HandleFunc("GET /health", healthHandler.Health)

	mux.HandleFunc("POST /auth/register", authHandler.Register)
	mux.HandleFunc("POST /auth/login", authHandler.Login)
	mux.HandleFunc("GET /auth/exists", authHandler.Exists)

	if githubEnabled {
		mux.HandleFunc("POST /auth/login/github", authHandler.LoginWithGitHub)
		mux.HandleFunc("GET /auth/github/url", authHandler.AuthorizationURL)
	}

	mux.HandleFunc("GET /me", authHandler.Me)

	chain := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.CORS(corsCfg),
		middleware.Auth(validator),
	)

	return chain(mux)
}
