package auth

import (
	"errors"
	"strings"

	"factoryops-backend/internal/config"
	"factoryops-backend/internal/models"
	"factoryops-backend/internal/request"
	"factoryops-backend/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type SignupRequest struct {
	Email       string          `json:"email" validate:"required,email"`
	Password    string          `json:"password" validate:"required,min=8"`
	Name        string          `json:"name" validate:"required"`
	FactoryName string          `json:"factory_name"`
	Role        models.UserRole `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignupHandler creates the identity and, for an Owner providing a
// factory name, the factory itself. Non-owner signups stay unassigned
// until an owner links them to a factory.
func SignupHandler(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SignupRequest
		if err := request.Parse(c, &body); err != nil {
			return err
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))
		if body.Role == "" {
			body.Role = models.RoleOwner
		}

		if _, err := st.Get(c.Context(), models.CredentialKey(body.Email)); err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Email already registered")
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not hash password")
		}

		var factoryID *string
		if body.Role == models.RoleOwner && body.FactoryName != "" {
			factory := models.Factory{
				ID:        models.NewID(),
				Name:      body.FactoryName,
				Currency:  "USD",
				Timezone:  "UTC",
				CreatedAt: models.Now(),
			}
			if err := st.Set(c.Context(), models.FactoryKey(factory.ID), factory); err != nil {
				return err
			}
			factoryID = &factory.ID
		}

		user := models.User{
			ID:        models.NewID(),
			Email:     body.Email,
			Name:      body.Name,
			FactoryID: factoryID,
			Role:      body.Role,
			CreatedAt: models.Now(),
		}
		if err := st.Set(c.Context(), models.UserKey(user.ID), user); err != nil {
			return err
		}

		cred := models.Credential{UserID: user.ID, Email: body.Email, PasswordHash: string(hash)}
		if err := st.Set(c.Context(), models.CredentialKey(body.Email), cred); err != nil {
			return err
		}

		logrus.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Info("user signed up")

		resp := fiber.Map{"success": true, "user": user}
		if factoryID != nil {
			resp["factory_id"] = *factoryID
		}
		return c.JSON(resp)
	}
}

func LoginHandler(cfg *config.Config, st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := request.Parse(c, &body); err != nil {
			return err
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		cred, err := store.GetAs[models.Credential](c.Context(), st, models.CredentialKey(body.Email))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusUnauthorized, "Invalid email or password")
			}
			return err
		}

		if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid email or password")
		}

		user, err := store.GetAs[models.User](c.Context(), st, models.UserKey(cred.UserID))
		if err != nil {
			return err
		}

		token, err := GenerateToken(cfg.JWTSecret, user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not issue token")
		}

		return c.JSON(fiber.Map{
			"success":      true,
			"access_token": token,
			"user":         user,
		})
	}
}

func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user": CurrentUser(c)})
	}
}
