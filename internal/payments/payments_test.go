package payments

import (
	"context"
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"review-pool.com/review-pool/internal/chain"
	apperrors "review-pool.com/review-pool/internal/errors"
)

const (
	treasury  = "82oLAu5vM3vjMNBFithiTnF2qxWUYxjgEuAE83Jr1JjL"
	requester = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"
)

type fakeLookup struct {
	transfers map[string]chain.Transfer
	err       error
	calls     int
}

func (f *fakeLookup) LookupTransfer(ctx context.Context, reference string, accountIndex int) (chain.Transfer, error) {
	f.calls++
	if f.err != nil {
		return chain.Transfer{}, f.err
	}
	t, ok := f.transfers[reference]
	if !ok {
		return chain.Transfer{}, chain.ErrTransferNotFound
	}
	return t, nil
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{in: "0.1", want: 100_000_000},
		{in: "0.25", want: 250_000_000},
		{in: " 2 ", want: 2_000_000_000},
		{in: "0.000000001", want: 1},
		{in: "0.0000000001", wantErr: true},
		{in: "0", wantErr: true},
		{in: "-1", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.wantErr {
			assert.ErrorIs(t, err, apperrors.ErrInvalidAmount, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "0.25", FormatAmount(250_000_000))
	assert.Equal(t, "2", FormatAmount(2_000_000_000))
	assert.Equal(t, "0", FormatAmount(0))
}

func TestSlotsFor_RoundsDown(t *testing.T) {
	assert.Equal(t, int64(2), SlotsFor(250_000_000, 100_000_000))
	assert.Equal(t, int64(3), SlotsFor(300_000_000, 100_000_000))
	assert.Equal(t, int64(0), SlotsFor(99_999_999, 100_000_000))
	assert.Equal(t, int64(0), SlotsFor(-1, 100_000_000))
}

func TestValidateAddressAndReference(t *testing.T) {
	assert.NoError(t, ValidateAddress(treasury))
	assert.NoError(t, ValidateAddress("11111111111111111111111111111111"))
	assert.ErrorIs(t, ValidateAddress("not-base58-0OIl"), apperrors.ErrInvalidAddress)
	assert.ErrorIs(t, ValidateAddress("abc"), apperrors.ErrInvalidAddress)

	sig := solana.Signature{}.String()
	assert.NoError(t, ValidateReference(sig))
	assert.ErrorIs(t, ValidateReference(treasury), apperrors.ErrInvalidPaymentRef)
}

func TestVerifier_Verify(t *testing.T) {
	lookup := &fakeLookup{transfers: map[string]chain.Transfer{
		"good":      {Sender: requester, Destination: treasury, NetAmount: 250_000_000},
		"elsewhere": {Sender: requester, Destination: requester, NetAmount: 250_000_000},
	}}
	v := NewVerifier(lookup)
	ctx := context.Background()

	payment, err := v.Verify(ctx, "good", requester, treasury, 250_000_000)
	require.NoError(t, err)
	assert.Equal(t, VerifiedPayment{Reference: "good", Sender: requester, Destination: treasury, Amount: 250_000_000}, payment)

	again, err := v.Verify(ctx, "good", requester, treasury, 250_000_000)
	require.NoError(t, err)
	assert.Equal(t, payment, again)

	_, err = v.Verify(ctx, "missing", requester, treasury, 250_000_000)
	assert.ErrorIs(t, err, apperrors.ErrPaymentNotFound)

	_, err = v.Verify(ctx, "good", requester, treasury, 250_000_001)
	assert.ErrorIs(t, err, apperrors.ErrAmountMismatch)

	_, err = v.Verify(ctx, "elsewhere", requester, treasury, 250_000_000)
	assert.ErrorIs(t, err, apperrors.ErrWrongDestination)

	_, err = v.Verify(ctx, "good", treasury, treasury, 250_000_000)
	assert.ErrorIs(t, err, apperrors.ErrWrongSender)
}

func TestVerifier_LookupFailureIsInternal(t *testing.T) {
	v := NewVerifier(&fakeLookup{err: errors.New("connection refused")})

	_, err := v.Verify(context.Background(), "good", requester, treasury, 1)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInternal, apperrors.KindOf(err))
}
