/*
Package wallet implements the wallet ledger engine: the single owner
of wallet balances and their append-only transaction log.

Credit and Debit are idempotent on a caller-supplied reference. The
reference, not a retry counter, is the source of truth for "has this
economic event already happened": payment webhooks get redelivered and
call charges get retried, and in both cases the replay must return the
original ledger entry instead of moving money twice.

Every mutation runs inside one store transaction with a row-level
exclusive lock on the wallet, so the read-validate-write sequence is
safe under concurrent debits. The unique index on the reference column
is the final backstop when two concurrent callers race past the
in-transaction existence check.
*/
package wallet
