package errors

var (
	ErrWalletNotFound = &DomainError{
		Code:    "WALLET_NOT_FOUND",
		Message: "wallet not found",
	}
	ErrUserNotFound = &DomainError{
		Code:    "USER_NOT_FOUND",
		Message: "user not found",
	}
	ErrPaymentIntentNotFound = &DomainError{
		Code:    "PAYMENT_INTENT_NOT_FOUND",
		Message: "payment intent not found",
	}
	ErrCallNotFound = &DomainError{
		Code:    "CALL_NOT_FOUND",
		Message: "call not found",
	}
	ErrForbidden = &DomainError{
		Code:    "FORBIDDEN",
		Message: "you are not a party to this resource",
	}
	ErrInvalidInput = &DomainError{
		Code:    "INVALID_INPUT",
		Message: "invalid input",
	}
	ErrInvalidTransition = &DomainError{
		Code:    "INVALID_TRANSITION",
		Message: "invalid status transition",
	}
	ErrInsufficientBalance = &DomainError{
		Code:    "INSUFFICIENT_BALANCE",
		Message: "insufficient wallet balance",
	}
	ErrGatewayFailure = &DomainError{
		Code:    "EXTERNAL_GATEWAY_FAILURE",
		Message: "payment gateway request failed",
	}
	ErrSignatureMismatch = &DomainError{
		Code:    "SIGNATURE_MISMATCH",
		Message: "invalid webhook signature",
	}
)
