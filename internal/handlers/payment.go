package handlers

import (
	"log"

	"aileana/internal/config"
	"aileana/internal/services/payment"
	"aileana/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type PaymentHandler struct {
	paymentService payment.Service
}

func NewPaymentHandler(paymentService payment.Service) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// VerifyPayment reconciles a payment intent against the gateway on
// behalf of the user polling after checkout. Safe to call repeatedly.
func (h *PaymentHandler) VerifyPayment(c *fiber.Ctx) error {
	reference := c.Params("paymentReference")
	if reference == "" {
		return utils.BadRequest(c, "payment reference is required")
	}

	result, err := h.paymentService.VerifyAndCredit(c.Context(), reference)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	return utils.Success(c, fiber.Map{
		"success":        result.Success,
		"credited":       result.Credited,
		"amount":         result.Amount,
		"transaction_id": result.TransactionID,
		"message":        result.Message,
	})
}

// MonnifyWebhook handles gateway payment notifications. The signature
// covers the raw body, so it is verified before any parsing. After the
// signature passes, the webhook is always acknowledged with 200 so the
// gateway stops retrying; verification itself is replayed through the
// same idempotent path the user-facing poll uses.
func (h *PaymentHandler) MonnifyWebhook(c *fiber.Ctx) error {
	rawBody := c.Body()
	signature := c.Get("monnify-signature")

	if err := payment.VerifyWebhookSignature(rawBody, signature, config.Monnify().SecretKey); err != nil {
		log.Printf("webhook rejected: signature mismatch")
		return utils.Unauthorized(c, "invalid webhook signature")
	}

	reference := payment.ExtractWebhookReference(rawBody)
	if reference == "" {
		return utils.Success(c, fiber.Map{"received": true, "processed": false})
	}

	result, err := h.paymentService.VerifyAndCredit(c.Context(), reference)
	if err != nil {
		log.Printf("webhook verify failed for %s: %v", reference, err)
		return utils.Success(c, fiber.Map{"received": true, "processed": false})
	}

	return utils.Success(c, fiber.Map{
		"received":  true,
		"processed": result.Credited,
	})
}
