package handlers

import (
	"aileana/internal/models"
	"aileana/internal/services/call"
	"aileana/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type CallHandler struct {
	callService call.Service
}

func NewCallHandler(callService call.Service) *CallHandler {
	return &CallHandler{callService: callService}
}

// InitiateCall starts a call session to the given receiver and returns
// the session with its signaling offer.
func (h *CallHandler) InitiateCall(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		ReceiverID uint `json:"receiver_id"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if input.ReceiverID == 0 {
		return utils.BadRequest(c, "receiver_id is required")
	}

	result, err := h.callService.InitiateCall(c.Context(), claims.UserID, input.ReceiverID)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	return utils.Respond(c, fiber.StatusCreated, result)
}

// UpdateCallStatus moves a call through its lifecycle. Ending a call
// triggers billing.
func (h *CallHandler) UpdateCallStatus(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		CallID uint   `json:"call_id"`
		Status string `json:"status"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if input.CallID == 0 || input.Status == "" {
		return utils.BadRequest(c, "call_id and status are required")
	}

	session, err := h.callService.UpdateStatus(c.Context(), input.CallID, models.CallStatus(input.Status), claims.UserID)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	return utils.Success(c, fiber.Map{"call": session})
}

// GetCallHistory returns the user's most recent calls.
func (h *CallHandler) GetCallHistory(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	calls, err := h.callService.GetCallHistory(c.Context(), claims.UserID)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	return utils.Success(c, fiber.Map{"calls": calls})
}

// GetCall returns a single call session; only its parties may view it.
func (h *CallHandler) GetCall(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	callID, err := c.ParamsInt("callId")
	if err != nil || callID <= 0 {
		return utils.BadRequest(c, "invalid call id")
	}

	session, err := h.callService.GetCallByID(c.Context(), uint(callID), claims.UserID)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	return utils.Success(c, fiber.Map{"call": session})
}
