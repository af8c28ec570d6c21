package errors

var (
	ErrAlreadyReviewed    = newException(KindConflict, "already_reviewed", "task already reviewed by this worker")
	ErrNoSlotsRemaining   = newException(KindConflict, "no_slots_remaining", "task has no review slots remaining")
	ErrLockAlreadyActive  = newException(KindConflict, "lock_already_active", "a payout is already in progress")
	ErrNoActiveLock       = newException(KindConflict, "no_active_lock", "no payout is in progress")
	ErrPayoutInProgress   = newException(KindConflict, "payout_in_progress", "earnings are locked for a payout in progress")
	ErrPaymentAlreadyUsed = newException(KindConflict, "payment_already_used", "payment reference has already been used")
)
