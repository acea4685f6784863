package handlers

import (
	"context"
	"net/http"
	"regexp"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/yatube/backend/internal/apperrors"
	"github.com/anonto42/yatube/backend/internal/middleware"
	"github.com/anonto42/yatube/backend/internal/models"
	"github.com/anonto42/yatube/backend/internal/repositories"
	"github.com/anonto42/yatube/backend/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// TokenVerifier checks Firebase ID tokens. *auth.Client implements it.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	userRepository repositories.UserRepository
	firebaseAuth   TokenVerifier
	jwtSecret      string
	log            *zap.Logger
}

// NewAuthHandler creates a new AuthHandler. firebaseAuth may be nil, in
// which case Firebase login is unavailable.
func NewAuthHandler(userRepo repositories.UserRepository, firebaseAuth TokenVerifier, jwtSecret string, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		firebaseAuth:   firebaseAuth,
		jwtSecret:      jwtSecret,
		log:            log,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/signup", h.Signup)
	g.POST("/signin", h.SignIn)
	g.POST("/firebase-login", h.FirebaseLogin)
}

// Signup handles local user registration
func (h *AuthHandler) Signup(c echo.Context) error {
	ctx := c.Request().Context()
	var req models.CreateLocalUserRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.BadRequest("invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if _, err := h.userRepository.GetUserByUsername(ctx, req.Username); err == nil {
		return apperrors.Conflict("username")
	} else if !apperrors.Is(err, apperrors.KindNotFound) {
		return err
	}
	if _, err := h.userRepository.GetUserByEmail(ctx, req.Email); err == nil {
		return apperrors.Conflict("email")
	} else if !apperrors.Is(err, apperrors.KindNotFound) {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &models.User{
		Username: req.Username,
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashedPassword),
	}
	if err := h.userRepository.CreateUser(ctx, user); err != nil {
		return err
	}
	h.log.Info("User signed up", logger.WithUserID(user.ID), zap.String("username", user.Username))

	return h.respondWithToken(c, http.StatusCreated, user)
}

// SignIn handles local authentication with username and password
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req models.SignInRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.BadRequest("invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByUsername(c.Request().Context(), req.Username)
	if err != nil {
		if apperrors.Is(err, apperrors.KindNotFound) {
			return apperrors.Unauthorized("invalid username or password")
		}
		return err
	}
	if user.Password == "" || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return apperrors.Unauthorized("invalid username or password")
	}

	return h.respondWithToken(c, http.StatusOK, user)
}

// FirebaseLoginRequest defines the request body for Firebase login
type FirebaseLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// FirebaseLogin exchanges a Firebase ID token for a local JWT, creating or
// linking the local account on first use.
func (h *AuthHandler) FirebaseLogin(c echo.Context) error {
	if h.firebaseAuth == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Firebase login is not configured")
	}

	ctx := c.Request().Context()
	var req FirebaseLoginRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.BadRequest("invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, err := h.firebaseAuth.VerifyIDToken(ctx, req.IDToken)
	if err != nil {
		h.log.Debug("Firebase token rejected", zap.Error(err))
		return apperrors.Unauthorized("invalid Firebase ID token")
	}

	firebaseUID := token.UID
	email, _ := token.Claims["email"].(string)
	name, _ := token.Claims["name"].(string)

	user, err := h.userRepository.GetUserByFirebaseUID(ctx, firebaseUID)
	switch {
	case err == nil:
		if name != "" && user.Name != name {
			user.Name = name
			if err := h.userRepository.UpdateUser(ctx, user); err != nil {
				return err
			}
		}
	case apperrors.Is(err, apperrors.KindNotFound):
		user, err = h.linkOrCreateFirebaseUser(ctx, firebaseUID, email, name)
		if err != nil {
			return err
		}
	default:
		return err
	}

	return h.respondWithToken(c, http.StatusOK, user)
}

func (h *AuthHandler) linkOrCreateFirebaseUser(ctx context.Context, firebaseUID, email, name string) (*models.User, error) {
	if email != "" {
		user, err := h.userRepository.GetUserByEmail(ctx, email)
		if err == nil {
			user.FirebaseUID = &firebaseUID
			if err := h.userRepository.UpdateUser(ctx, user); err != nil {
				return nil, err
			}
			return user, nil
		}
		if !apperrors.Is(err, apperrors.KindNotFound) {
			return nil, err
		}
	}

	username, err := h.availableUsername(ctx, firebaseUID, email)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Username:    username,
		Name:        name,
		Email:       email,
		FirebaseUID: &firebaseUID,
	}
	if err := h.userRepository.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	h.log.Info("User created from Firebase", logger.WithUserID(user.ID), zap.String("username", username))
	return user, nil
}

var usernameUnsafe = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// availableUsername derives a username from the email's local part, falling
// back to the Firebase UID when that is empty or taken.
func (h *AuthHandler) availableUsername(ctx context.Context, firebaseUID, email string) (string, error) {
	candidates := []string{}
	if at := strings.Index(email, "@"); at > 0 {
		if local := usernameUnsafe.ReplaceAllString(email[:at], ""); len(local) >= 3 {
			candidates = append(candidates, strings.ToLower(local))
		}
	}
	uidPart := usernameUnsafe.ReplaceAllString(firebaseUID, "")
	if len(uidPart) > 20 {
		uidPart = uidPart[:20]
	}
	candidates = append(candidates, "user"+strings.ToLower(uidPart))

	for _, candidate := range candidates {
		_, err := h.userRepository.GetUserByUsername(ctx, candidate)
		if apperrors.Is(err, apperrors.KindNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", apperrors.Conflict("username")
}

func (h *AuthHandler) respondWithToken(c echo.Context, status int, user *models.User) error {
	token, err := middleware.SignToken(h.jwtSecret, user)
	if err != nil {
		return err
	}
	return c.JSON(status, success(echo.Map{
		"token": token,
		"user":  user.ToCompact(),
	}))
}
