package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskmaster/planner/internal/adapters/repository"
	"github.com/taskmaster/planner/internal/infrastructure/config"
	"github.com/taskmaster/planner/internal/infrastructure/logger"
)

// Claims are the JWT claims of a demo session
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Tokens issues and validates HS256 session tokens
type Tokens struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewTokens creates a new token issuer
func NewTokens(cfg config.JWTConfig) *Tokens {
	return &Tokens{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
		ttl:    cfg.ExpiresIn,
		now:    time.Now,
	}
}

// Issue signs a token for the user
func (t *Tokens) Issue(userID int, email string) (string, error) {
	now := t.now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(userID),
			Issuer:    t.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Parse validates a token and returns its claims
func (t *Tokens) Parse(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(tok *jwt.Token) (interface{}, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(t.issuer),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// LoginRequest carries demo credentials
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthHandler serves the demo login and the signed-in user
type AuthHandler struct {
	db       *repository.Database
	tokens   *Tokens
	email    string
	password []byte
	logger   *logger.Logger
}

// NewAuthHandler creates a new auth handler for the configured demo credentials
func NewAuthHandler(db *repository.Database, tokens *Tokens, demo config.DemoConfig, logger *logger.Logger) (*AuthHandler, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(demo.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash demo password: %w", err)
	}

	return &AuthHandler{
		db:       db,
		tokens:   tokens,
		email:    strings.ToLower(demo.Email),
		password: hash,
		logger:   logger,
	}, nil
}

// Login godoc
// @Summary Demo login
// @Description Exchange the demo credentials for a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} object
// @Failure 401 {object} MessageResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	}

	emailOK := strings.ToLower(req.Email) == h.email
	passwordOK := bcrypt.CompareHashAndPassword(h.password, []byte(req.Password)) == nil
	if !emailOK || !passwordOK {
		h.logger.LogSecurityEvent("login_failed", req.Email, c.RealIP(), nil)
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	}

	user, err := h.db.Object(repository.ResourceUser)
	if err != nil {
		return storeError(err)
	}
	userID, _ := repository.IDOf(user["id"])

	token, err := h.tokens.Issue(userID, req.Email)
	if err != nil {
		h.logger.Errorw("Token issue failed", "error", err)
		return err
	}

	h.logger.Infow("User logged in", "user_id", userID, "ip", c.RealIP())
	return c.JSON(http.StatusOK, map[string]interface{}{
		"user":  user,
		"token": token,
	})
}

// CurrentUser godoc
// @Summary Current user
// @Description Returns the signed-in user. With ?email= the user is looked up by email and no token is needed.
// @Tags auth
// @Produce json
// @Param email query string false "Email lookup"
// @Success 200 {object} entities.User
// @Failure 401 {object} MessageResponse
// @Failure 404 {object} MessageResponse
// @Security BearerAuth
// @Router /user [get]
func (h *AuthHandler) CurrentUser(c echo.Context) error {
	user, err := h.db.Object(repository.ResourceUser)
	if err != nil {
		return storeError(err)
	}

	if email := c.QueryParam("email"); email != "" {
		if !strings.EqualFold(fmt.Sprint(user["email"]), email) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return c.JSON(http.StatusOK, user)
	}

	if _, err := h.authenticate(c); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// PatchUser godoc
// @Summary Update the signed-in user
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} entities.User
// @Failure 401 {object} MessageResponse
// @Security BearerAuth
// @Router /user [patch]
func (h *AuthHandler) PatchUser(c echo.Context) error {
	if _, err := h.authenticate(c); err != nil {
		return err
	}
	patch, err := bindRecord(c)
	if err != nil {
		return err
	}
	delete(patch, "id")

	user, err := h.db.PatchObject(c.Request().Context(), repository.ResourceUser, patch)
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) authenticate(c echo.Context) (*Claims, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization header")
	}

	token := strings.TrimPrefix(header, "Bearer ")
	if token == header {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization header format")
	}

	claims, err := h.tokens.Parse(token)
	if err != nil {
		h.logger.LogSecurityEvent("invalid_token", "", c.RealIP(), map[string]interface{}{
			"error": err.Error(),
		})
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Session expired, please sign in again")
	}
	return claims, nil
}
