package payment

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"

	domainerrors "aileana/internal/errors"
)

// VerifyWebhookSignature authenticates an inbound gateway callback.
// The expected signature is the hex sha512 of the raw payload
// concatenated with the shared secret. The comparison is constant
// time: the transport is unauthenticated and a timing oracle here
// would let an attacker forge paid notifications.
func VerifyWebhookSignature(rawBody []byte, signature, secret string) error {
	if signature == "" {
		return domainerrors.ErrSignatureMismatch
	}

	sum := sha512.Sum512(append(append([]byte{}, rawBody...), []byte(secret)...))
	computed := hex.EncodeToString(sum[:])

	if subtle.ConstantTimeCompare([]byte(computed), []byte(signature)) != 1 {
		return domainerrors.ErrSignatureMismatch
	}
	return nil
}

// webhookPayload covers the shapes the gateway is known to send; the
// reference sometimes arrives nested under eventData and sometimes at
// the top level.
type webhookPayload struct {
	EventType string `json:"eventType"`
	EventData struct {
		PaymentReference string `json:"paymentReference"`
		PaymentStatus    string `json:"paymentStatus"`
	} `json:"eventData"`
	PaymentReference string `json:"paymentReference"`
}

// ExtractWebhookReference pulls the payment reference out of a
// callback payload, returning "" when none is present.
func ExtractWebhookReference(rawBody []byte) string {
	var payload webhookPayload
	if err := json.Unmarshal(rawBody, &payload); err != nil {
		return ""
	}
	if payload.EventData.PaymentReference != "" {
		return payload.EventData.PaymentReference
	}
	return payload.PaymentReference
}
