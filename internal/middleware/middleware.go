package middleware

import (
	"EatBefore/domain"
	"EatBefore/internal/api/presenters"
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

const LocalsEmail = "email"

type (
	// SessionValidator resolves a bearer token to the signed-in email.
	SessionValidator interface {
		ValidateSession(ctx context.Context, token string) (string, error)
	}

	Middleware interface {
		CORSMiddleware() fiber.Handler
		AuthMiddleware(sessions SessionValidator) fiber.Handler
	}

	middleware struct {
		allowOrigins string
	}
)

func NewMiddleware(allowOrigins string) Middleware {
	if allowOrigins == "" {
		allowOrigins = "*"
	}
	return &middleware{allowOrigins: allowOrigins}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: m.allowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PATCH, DELETE, OPTIONS",
	})
}

func (m *middleware) AuthMiddleware(sessions SessionValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetToken, domain.ErrTokenNotFound)
		}
		if !strings.HasPrefix(header, "Bearer ") {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, domain.ErrTokenInvalid)
		}

		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		email, err := sessions.ValidateSession(c.Context(), token)
		if err != nil {
			if !errors.Is(err, domain.ErrTokenExpired) {
				err = domain.ErrTokenInvalid
			}
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, err)
		}

		c.Locals(LocalsEmail, email)
		return c.Next()
	}
}
