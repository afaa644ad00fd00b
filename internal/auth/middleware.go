package auth

import (
	"errors"
	"fmt"
	"strings"

	"factoryops-backend/internal/config"
	"factoryops-backend/internal/models"
	"factoryops-backend/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const CtxUserKey = "current_user"

// JWTMiddleware verifies the bearer token and resolves it to the stored
// user record, so role and factory assignment are always read fresh
// rather than trusted from the token.
func JWTMiddleware(cfg *config.Config, st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Missing Authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization header must be 'Bearer <token>'")
		}

		token, err := jwt.ParseWithClaims(parts[1], &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
		}

		claims, ok := token.Claims.(*JWTCustomClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
		}

		user, err := store.GetAs[models.User](c.Context(), st, models.UserKey(claims.UserID))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusUnauthorized, "Unknown user")
			}
			return err
		}

		c.Locals(CtxUserKey, user)
		return c.Next()
	}
}

// RequireFactory rejects users not yet assigned to a factory. Every
// factory-scoped route group sits behind it.
func RequireFactory() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil || user.FactoryID == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}
		return c.Next()
	}
}

func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(CtxUserKey).(*models.User)
	return user
}
