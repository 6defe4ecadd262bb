package utils

import (
	"errors"

	"aileana/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ErrNoClaims means a handler ran without the auth middleware having
// stored claims for the request first.
var ErrNoClaims = errors.New("no authenticated claims in context")

// GetUserClaims returns the claims the auth middleware attached to
// this request.
func GetUserClaims(c *fiber.Ctx) (*models.UserClaims, error) {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok || claims == nil {
		return nil, ErrNoClaims
	}
	return claims, nil
}
