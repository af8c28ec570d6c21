package payments

import (
	"github.com/gagliardetto/solana-go"

	apperrors "review-pool.com/review-pool/internal/errors"
)

// ValidateAddress checks that s is a base58 encoded ed25519 public key.
func ValidateAddress(s string) error {
	if _, err := solana.PublicKeyFromBase58(s); err != nil {
		return apperrors.ErrInvalidAddress
	}
	return nil
}

// ValidateReference checks that s is a base58 encoded transaction signature.
func ValidateReference(s string) error {
	if _, err := solana.SignatureFromBase58(s); err != nil {
		return apperrors.ErrInvalidPaymentRef
	}
	return nil
}
