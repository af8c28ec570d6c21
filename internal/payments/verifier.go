package payments

import (
	"context"
	"errors"

	"review-pool.com/review-pool/internal/chain"
	"review-pool.com/review-pool/internal/constants"
	apperrors "review-pool.com/review-pool/internal/errors"
)

type VerifiedPayment struct {
	Reference   string
	Sender      string
	Destination string
	Amount      int64
}

// Verifier checks a payment reference against what the caller expects to
// have been paid. It only reads from the chain, so repeated calls agree.
type Verifier struct {
	lookup chain.TransferLookup
}

func NewVerifier(lookup chain.TransferLookup) *Verifier {
	return &Verifier{lookup: lookup}
}

func (v *Verifier) Verify(
	ctx context.Context,
	reference string,
	expectedSender string,
	expectedDestination string,
	expectedAmount int64,
) (VerifiedPayment, error) {
	transfer, err := v.lookup.LookupTransfer(ctx, reference, constants.DestinationAccountIndex)
	if err != nil {
		if errors.Is(err, chain.ErrTransferNotFound) {
			return VerifiedPayment{}, apperrors.ErrPaymentNotFound
		}
		return VerifiedPayment{}, apperrors.Internal(err)
	}

	if transfer.NetAmount != expectedAmount {
		return VerifiedPayment{}, apperrors.ErrAmountMismatch
	}
	if transfer.Destination != expectedDestination {
		return VerifiedPayment{}, apperrors.ErrWrongDestination
	}
	if transfer.Sender != expectedSender {
		return VerifiedPayment{}, apperrors.ErrWrongSender
	}

	return VerifiedPayment{
		Reference:   reference,
		Sender:      transfer.Sender,
		Destination: transfer.Destination,
		Amount:      transfer.NetAmount,
	}, nil
}
