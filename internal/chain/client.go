package chain

import (
	"context"
	"errors"
)

// Transfer is what the chain reports about a finalized payment.
type Transfer struct {
	Reference   string `json:"reference"`
	Sender      string `json:"sender"`
	Destination string `json:"destination"`
	NetAmount   int64  `json:"net_amount"`
}

// TransferLookup resolves a payment reference into the transfer it describes.
// NetAmount is the balance change of the account at accountIndex.
type TransferLookup interface {
	LookupTransfer(ctx context.Context, reference string, accountIndex int) (Transfer, error)
}

var ErrTransferNotFound = errors.New("transfer not found or not finalized")
