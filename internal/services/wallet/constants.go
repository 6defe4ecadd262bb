package wallet

// DefaultHistoryLimit caps the transaction history page, matching the
// API contract of "last 50 entries, newest first".
const DefaultHistoryLimit = 50
