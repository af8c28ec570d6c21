package payments

import (
	"strings"

	"github.com/shopspring/decimal"

	"review-pool.com/review-pool/internal/constants"
	apperrors "review-pool.com/review-pool/internal/errors"
)

var lamportsPerSOL = decimal.NewFromInt(constants.LamportsPerSOL)

// ParseAmount converts a SOL amount such as "0.25" into lamports without
// going through floating point.
func ParseAmount(sol string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(sol))
	if err != nil {
		return 0, apperrors.ErrInvalidAmount
	}

	lamports := d.Mul(lamportsPerSOL)
	if !lamports.IsInteger() || lamports.Sign() <= 0 {
		return 0, apperrors.ErrInvalidAmount
	}
	if lamports.GreaterThan(decimal.NewFromInt(1 << 62)) {
		return 0, apperrors.ErrInvalidAmount
	}

	return lamports.IntPart(), nil
}

// FormatAmount renders lamports as a SOL string.
func FormatAmount(lamports int64) string {
	return decimal.New(lamports, -9).String()
}

// SlotsFor is the number of whole reviews an amount pays for. Any remainder
// below one unit price is not credited.
func SlotsFor(amount, unitPrice int64) int64 {
	if amount <= 0 || unitPrice <= 0 {
		return 0
	}
	return amount / unitPrice
}
