package relay

import (
	"context"
)

type RelayUsecase interface {
	// PostMessage stores a message for the named recipient, creating the
	// recipient's identity on first sight, and returns the storage receipt.
	PostMessage(ctx context.Context, senderID int64, cmd PostMessageCommand) (*ReceiptDTO, error)

	// RetrieveMessages returns the caller's messages, optionally narrowed
	// by a sender allow-list and a minimum timestamp (inclusive).
	RetrieveMessages(ctx context.Context, recipientID int64, cmd RetrieveCommand) ([]MessageDTO, error)

	PostExchangeKey(ctx context.Context, senderID int64, cmd PostKeyCommand) (*ReceiptDTO, error)
	RetrieveExchangeKeys(ctx context.Context, recipientID int64, cmd RetrieveCommand) ([]ExchangeKeyDTO, error)
}
