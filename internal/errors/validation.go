package errors

var (
	ErrOptionNotInTask      = newException(KindValidation, "option_not_in_task", "option does not belong to task")
	ErrInsufficientFunds    = newException(KindValidation, "insufficient_funds", "payment does not cover a single review")
	ErrInsufficientPending  = newException(KindValidation, "insufficient_pending", "amount does not match pending earnings")
	ErrLockAmountMismatch   = newException(KindValidation, "amount_mismatch", "amount does not match locked earnings")
	ErrInvalidAmount        = newException(KindValidation, "invalid_amount", "amount must be a positive number of SOL with at most 9 decimals")
	ErrTooFewOptions        = newException(KindValidation, "too_few_options", "at least 2 options are required")
	ErrTooManyOptions       = newException(KindValidation, "too_many_options", "too many options")
	ErrInvalidAddress       = newException(KindValidation, "invalid_address", "invalid wallet address")
	ErrInvalidPaymentRef    = newException(KindValidation, "invalid_payment_reference", "invalid payment reference")
	ErrNotTaskOwner         = newException(KindValidation, "not_task_owner", "task belongs to another requester")
	ErrInvalidPayoutOutcome = newException(KindValidation, "invalid_outcome", "outcome must be settled or failed")
)
