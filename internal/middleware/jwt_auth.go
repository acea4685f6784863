package middleware

import (
	"errors"
	"strings"
	"time"

	"github.com/anonto42/yatube/backend/internal/apperrors"
	"github.com/anonto42/yatube/backend/internal/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

// claimsKey is where the verified claims are stored on the echo context.
const claimsKey = "user"

// TokenTTL is how long an issued token stays valid.
const TokenTTL = 72 * time.Hour

// JWTAuthMiddleware extracts the viewer from a bearer token. Requests
// without an Authorization header pass through as anonymous; a header with
// a bad token is rejected.
func JWTAuthMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return next(c)
			}

			// Expecting "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return apperrors.Unauthorized("invalid Authorization header format")
			}

			claims, err := ParseToken(secret, parts[1])
			if err != nil {
				return err
			}

			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

// RequireViewer rejects anonymous requests.
func RequireViewer(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if ViewerID(c) == 0 {
			return apperrors.Unauthorized("authentication required")
		}
		return next(c)
	}
}

// ViewerID returns the authenticated user id, or 0 for anonymous requests.
func ViewerID(c echo.Context) uint {
	claims, ok := c.Get(claimsKey).(*models.JwtCustomClaims)
	if !ok || claims == nil {
		return 0
	}
	return claims.UserID
}

// SignToken issues an HS256 token for user.
func SignToken(secret string, user *models.User) (string, error) {
	now := time.Now()
	claims := &models.JwtCustomClaims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseToken verifies tokenString and returns its claims.
func ParseToken(secret, tokenString string) (*models.JwtCustomClaims, error) {
	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrSignatureInvalid) {
			return nil, apperrors.Unauthorized("invalid token signature")
		}
		return nil, apperrors.Unauthorized("invalid token")
	}
	if !token.Valid || claims.UserID == 0 {
		return nil, apperrors.Unauthorized("invalid token")
	}
	return claims, nil
}
