package chain

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSignature(t *testing.T) string {
	t.Helper()
	var sig solana.Signature
	_, err := rand.Read(sig[:])
	require.NoError(t, err)
	return sig.String()
}

// encodeTransaction serializes a legacy transaction with the given account
// keys the way getTransaction returns it for base64 encoding.
func encodeTransaction(t *testing.T, keys ...solana.PublicKey) string {
	t.Helper()
	tx := solana.Transaction{
		Signatures: []solana.Signature{{}},
		Message: solana.Message{
			Header:      solana.MessageHeader{NumRequiredSignatures: 1},
			AccountKeys: keys,
		},
	}
	raw, err := tx.MarshalBinary()
	require.NoError(t, err)
	return base64.StdEncoding.EncodeToString(raw)
}

func transactionResult(metaErr string, pre, post []uint64, encoded string) string {
	preJSON, _ := json.Marshal(pre)
	postJSON, _ := json.Marshal(post)
	return fmt.Sprintf(`{
		"slot": 1,
		"blockTime": null,
		"meta": {"err": %s, "fee": 5000, "preBalances": %s, "postBalances": %s},
		"transaction": [%q, "base64"]
	}`, metaErr, preJSON, postJSON, encoded)
}

func newRPCServer(t *testing.T, reply string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     json.RawMessage `json:"id"`
			Method string          `json:"method"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "getTransaction", req.Method)
		id := string(req.ID)
		if id == "" {
			id = "0"
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":` + id + `,` + reply + `}`))
	}))
}

func TestRPCClient_LookupTransfer(t *testing.T) {
	sender := solana.NewWallet().PublicKey()
	treasury := solana.NewWallet().PublicKey()
	encoded := encodeTransaction(t, sender, treasury, solana.SystemProgramID)

	srv := newRPCServer(t, `"result":`+transactionResult("null",
		[]uint64{5_000_000_000, 100, 1}, []uint64{4_749_995_000, 250_000_100, 1}, encoded))
	defer srv.Close()

	sig := newSignature(t)
	transfer, err := NewRPCClient(srv.URL, "").LookupTransfer(context.Background(), sig, 1)
	require.NoError(t, err)

	assert.Equal(t, sig, transfer.Reference)
	assert.Equal(t, sender.String(), transfer.Sender)
	assert.Equal(t, treasury.String(), transfer.Destination)
	assert.Equal(t, int64(250_000_000), transfer.NetAmount)
}

func TestRPCClient_MissingTransactionIsNotFound(t *testing.T) {
	srv := newRPCServer(t, `"result":null`)
	defer srv.Close()

	_, err := NewRPCClient(srv.URL, "finalized").LookupTransfer(context.Background(), newSignature(t), 1)
	assert.ErrorIs(t, err, ErrTransferNotFound)
}

func TestRPCClient_FailedTransactionIsNotFound(t *testing.T) {
	encoded := encodeTransaction(t, solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey())
	srv := newRPCServer(t, `"result":`+transactionResult(`{"InstructionError":[0,"Custom"]}`,
		[]uint64{10, 0}, []uint64{5, 0}, encoded))
	defer srv.Close()

	_, err := NewRPCClient(srv.URL, "").LookupTransfer(context.Background(), newSignature(t), 1)
	assert.ErrorIs(t, err, ErrTransferNotFound)
}

func TestRPCClient_RPCErrorIsSurfaced(t *testing.T) {
	srv := newRPCServer(t, `"error":{"code":-32602,"message":"Invalid param"}`)
	defer srv.Close()

	_, err := NewRPCClient(srv.URL, "").LookupTransfer(context.Background(), newSignature(t), 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrTransferNotFound)
	assert.Contains(t, err.Error(), "Invalid param")
}

func TestRPCClient_AccountIndexOutOfRange(t *testing.T) {
	encoded := encodeTransaction(t, solana.NewWallet().PublicKey())
	srv := newRPCServer(t, `"result":`+transactionResult("null", []uint64{10}, []uint64{5}, encoded))
	defer srv.Close()

	_, err := NewRPCClient(srv.URL, "").LookupTransfer(context.Background(), newSignature(t), 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrTransferNotFound)
}

func TestRPCClient_RejectsMalformedSignature(t *testing.T) {
	_, err := NewRPCClient("http://127.0.0.1:0", "").LookupTransfer(context.Background(), "not-a-signature", 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrTransferNotFound)
}
