package chain

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// legacy and v0 transactions are both accepted
var maxTransactionVersion uint64 = 0

type RPCClient struct {
	client     *rpc.Client
	commitment rpc.CommitmentType
}

// NewRPCClient builds a client for a Solana JSON-RPC endpoint.
func NewRPCClient(url, commitment string) *RPCClient {
	if url == "" {
		url = rpc.DevNet_RPC
	}
	if commitment == "" {
		commitment = string(rpc.CommitmentFinalized)
	}
	return &RPCClient{
		client:     rpc.New(url),
		commitment: rpc.CommitmentType(commitment),
	}
}

func (c *RPCClient) LookupTransfer(ctx context.Context, reference string, accountIndex int) (Transfer, error) {
	signature, err := solana.SignatureFromBase58(reference)
	if err != nil {
		return Transfer{}, fmt.Errorf("parse signature %q: %w", reference, err)
	}

	version := maxTransactionVersion
	out, err := c.client.GetTransaction(ctx, signature, &rpc.GetTransactionOpts{
		Encoding:                       solana.EncodingBase64,
		Commitment:                     c.commitment,
		MaxSupportedTransactionVersion: &version,
	})
	if errors.Is(err, rpc.ErrNotFound) {
		return Transfer{}, ErrTransferNotFound
	}
	if err != nil {
		return Transfer{}, fmt.Errorf("get transaction: %w", err)
	}
	if out == nil || out.Meta == nil || out.Transaction == nil {
		return Transfer{}, ErrTransferNotFound
	}

	meta := out.Meta
	// a failed transaction is still recorded but moved no funds
	if meta.Err != nil {
		return Transfer{}, ErrTransferNotFound
	}

	tx, err := out.Transaction.GetTransaction()
	if err != nil {
		return Transfer{}, fmt.Errorf("decode transaction %s: %w", reference, err)
	}

	keys := tx.Message.AccountKeys
	if accountIndex <= 0 || accountIndex >= len(keys) ||
		accountIndex >= len(meta.PreBalances) || accountIndex >= len(meta.PostBalances) {
		return Transfer{}, fmt.Errorf("transaction %s has no account at index %d", reference, accountIndex)
	}

	return Transfer{
		Reference:   reference,
		Sender:      keys[0].String(),
		Destination: keys[accountIndex].String(),
		NetAmount:   int64(meta.PostBalances[accountIndex]) - int64(meta.PreBalances[accountIndex]),
	}, nil
}
