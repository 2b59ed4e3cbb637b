package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/taskmaster/planner/internal/adapters/localstore"
	"github.com/taskmaster/planner/internal/adapters/remote"
	"github.com/taskmaster/planner/internal/domain/entities"
	"github.com/taskmaster/planner/internal/infrastructure/logger"
)

// AuthError is a login failure meant to be shown to the user
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	return e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse represents the login response of the API
type AuthResponse struct {
	User  entities.User `json:"user"`
	Token string        `json:"token"`
}

// AuthService handles the session of the planner user.
// Authentication never falls back to local storage.
type AuthService struct {
	client *remote.Client
	local  *localstore.Store
	logger *logger.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(deps Deps) *AuthService {
	return &AuthService{
		client: deps.Client,
		local:  deps.Local,
		logger: deps.Logger.WithComponent("auth"),
	}
}

// Login signs in with the API and stores the token
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	resp, err := remote.Send[AuthResponse](ctx, s.client, http.MethodPost, "/login", LoginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		s.logger.LogSecurityEvent("login_failed", email, "", map[string]interface{}{"error": err.Error()})

		if errors.Is(err, entities.ErrUnauthorized) {
			msg := "Invalid email or password"
			var se *remote.StatusError
			if errors.As(err, &se) && se.Message != "" {
				msg = se.Message
			}
			return nil, &AuthError{Message: msg, Err: err}
		}
		return nil, &AuthError{Message: "Login failed, try again later", Err: err}
	}

	s.SetToken(ctx, resp.Token)
	localstore.Save(ctx, s.local, localstore.KeyUser, resp.User)

	s.logger.Infow("User logged in", "email", resp.User.Email)

	return &resp, nil
}

// Logout forgets the token and the signed-in user
func (s *AuthService) Logout(ctx context.Context) {
	s.local.Remove(ctx, localstore.KeyToken)
	s.local.Remove(ctx, localstore.KeyUser)
}

// Token returns the stored bearer token
func (s *AuthService) Token(ctx context.Context) string {
	return s.local.GetString(ctx, localstore.KeyToken)
}

// SetToken stores the bearer token
func (s *AuthService) SetToken(ctx context.Context, token string) {
	s.local.SetString(ctx, localstore.KeyToken, token)
}

// IsAuthenticated reports whether a token is stored
func (s *AuthService) IsAuthenticated(ctx context.Context) bool {
	return s.Token(ctx) != ""
}

// SessionUser returns the user stored at login, if any
func (s *AuthService) SessionUser(ctx context.Context) (entities.User, bool) {
	user := localstore.Load(ctx, s.local, localstore.KeyUser, entities.User{})
	return user, user.Email != ""
}

// CurrentUser loads the signed-in user from the API. An expired session is cleared.
func (s *AuthService) CurrentUser(ctx context.Context) (entities.User, error) {
	user, err := remote.Get[entities.User](ctx, s.client, "/user", nil)
	if err != nil {
		if errors.Is(err, entities.ErrUnauthorized) {
			s.Logout(ctx)
			return entities.User{}, &AuthError{Message: "Session expired, please log in again", Err: err}
		}
		return entities.User{}, err
	}

	localstore.Save(ctx, s.local, localstore.KeyUser, user)
	return user, nil
}
