package presenters

import (
	"EatBefore/domain"
	"errors"

	"github.com/gofiber/fiber/v2"
)

type (
	Response struct {
		Status  bool        `json:"status"`
		Message string      `json:"message"`
		Data    interface{} `json:"data,omitempty"`
		Error   *ErrorBody  `json:"error,omitempty"`
	}

	// ErrorBody carries the alert a client shows for a failed request.
	ErrorBody struct {
		Code    string `json:"code,omitempty"`
		Field   string `json:"field,omitempty"`
		Title   string `json:"title,omitempty"`
		Message string `json:"message"`
	}
)

func SuccessResponse(c *fiber.Ctx, data interface{}, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *fiber.Ctx, statusCode int, message string, err error) error {
	body := &ErrorBody{Message: message}
	if err != nil {
		body.Message = err.Error()
	}

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		body.Code = string(validationErr.Code)
		body.Field = validationErr.Field
		body.Title = validationErr.Title
	}

	return c.Status(statusCode).JSON(Response{
		Status:  false,
		Message: message,
		Error:   body,
	})
}
