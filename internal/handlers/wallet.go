package handlers

import (
	"aileana/internal/services/payment"
	"aileana/internal/services/wallet"
	"aileana/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type WalletHandler struct {
	walletService  wallet.Service
	paymentService payment.Service
}

func NewWalletHandler(walletService wallet.Service, paymentService payment.Service) *WalletHandler {
	return &WalletHandler{
		walletService:  walletService,
		paymentService: paymentService,
	}
}

// GetWallet returns the authenticated user's wallet.
func (h *WalletHandler) GetWallet(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	w, err := h.walletService.GetWallet(c.Context(), claims.UserID)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	return utils.Success(c, fiber.Map{"wallet": w})
}

// GetTransactions returns the wallet's most recent ledger entries,
// newest first.
func (h *WalletHandler) GetTransactions(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	limit := c.QueryInt("limit", wallet.DefaultHistoryLimit)
	entries, err := h.walletService.GetTransactionHistory(c.Context(), claims.UserID, limit)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	return utils.Success(c, fiber.Map{"transactions": entries})
}

// Deduct debits the authenticated user's own wallet. The caller
// supplies the reference, so retries of the same deduction are
// replayed instead of charged twice.
func (h *WalletHandler) Deduct(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		Amount    decimal.Decimal `json:"amount"`
		Reference string          `json:"reference"`
		Narration string          `json:"narration"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if input.Narration == "" {
		input.Narration = "Wallet debit"
	}

	w, entry, err := h.walletService.Debit(c.Context(), claims.UserID, input.Amount, input.Reference, input.Narration)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	return utils.Success(c, fiber.Map{
		"wallet":      w,
		"transaction": entry,
	})
}

// InitializeTopup creates a payment intent and returns the checkout
// URL the user completes payment on.
func (h *WalletHandler) InitializeTopup(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		Amount decimal.Decimal `json:"amount"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	result, err := h.paymentService.InitiateTopup(c.Context(), claims.UserID, input.Amount)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	return utils.Success(c, fiber.Map{
		"payment_reference": result.PaymentReference,
		"checkout_url":      result.CheckoutURL,
		"amount":            result.Amount,
	})
}
