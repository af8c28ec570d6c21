package errors

var (
	ErrPaymentNotFound  = newException(KindExternalVerification, "payment_not_found", "transaction not found or not finalized")
	ErrAmountMismatch   = newException(KindExternalVerification, "payment_amount_mismatch", "transaction amount incorrect")
	ErrWrongDestination = newException(KindExternalVerification, "wrong_destination", "transaction sent to wrong address")
	ErrWrongSender      = newException(KindExternalVerification, "wrong_sender", "transaction not initiated by user wallet")
)
