package utils

import (
	"errors"

	domainerrors "aileana/internal/errors"

	"github.com/gofiber/fiber/v2"
)

// Respond sends a JSON response with the specified status code.
func Respond(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(data)
}

// Success sends a successful JSON response.
func Success(c *fiber.Ctx, data interface{}) error {
	return Respond(c, fiber.StatusOK, data)
}

// BadRequest sends a JSON error response with status 400.
func BadRequest(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusBadRequest, fiber.Map{"error": message})
}

// Unauthorized sends a JSON error response with status 401.
func Unauthorized(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusUnauthorized, fiber.Map{"error": message})
}

// Forbidden sends a JSON error response with status 403.
func Forbidden(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusForbidden, fiber.Map{"error": message})
}

// NotFound sends a JSON error response with status 404.
func NotFound(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusNotFound, fiber.Map{"error": message})
}

// InternalError sends a JSON error response with status 500.
func InternalError(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusInternalServerError, fiber.Map{"error": message})
}

// DomainErrorResponse maps a service error to its HTTP response. The
// mapping keys off the stable error code, never the message.
func DomainErrorResponse(c *fiber.Ctx, err error) error {
	var domainErr *domainerrors.DomainError
	if !errors.As(err, &domainErr) {
		return InternalError(c, "something went wrong")
	}

	status := fiber.StatusBadRequest
	switch domainErr.Code {
	case domainerrors.ErrWalletNotFound.Code,
		domainerrors.ErrUserNotFound.Code,
		domainerrors.ErrPaymentIntentNotFound.Code,
		domainerrors.ErrCallNotFound.Code:
		status = fiber.StatusNotFound
	case domainerrors.ErrForbidden.Code:
		status = fiber.StatusForbidden
	case domainerrors.ErrSignatureMismatch.Code:
		status = fiber.StatusUnauthorized
	case domainerrors.ErrGatewayFailure.Code:
		status = fiber.StatusBadGateway
	case domainerrors.ErrInvalidTransition.Code,
		domainerrors.ErrInvalidInput.Code,
		domainerrors.ErrInsufficientBalance.Code:
		status = fiber.StatusBadRequest
	}

	return Respond(c, status, fiber.Map{
		"error": domainErr.Message,
		"code":  domainErr.Code,
	})
}
