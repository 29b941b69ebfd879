package handlers

import (
	"EatBefore/domain"
	"errors"

	"github.com/gofiber/fiber/v2"
)

// statusFromError maps service errors onto HTTP status codes.
func statusFromError(err error) int {
	var (
		validationErr *domain.ValidationError
		enrichmentErr *domain.EnrichmentError
		configErr     *domain.ConfigurationError
		storeErr      *domain.StoreError
	)

	switch {
	case errors.As(err, &validationErr):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrDraftBusy):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrDraftNotFound),
		errors.Is(err, domain.ErrGroceryItemNotFound),
		errors.Is(err, domain.ErrFavoriteNotFound):
		return fiber.StatusNotFound
	case errors.As(err, &enrichmentErr):
		return fiber.StatusBadGateway
	case errors.As(err, &configErr):
		return fiber.StatusServiceUnavailable
	case errors.As(err, &storeErr):
		return fiber.StatusInternalServerError
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrTokenInvalid),
		errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrTokenNotFound):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrAccountExists):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
