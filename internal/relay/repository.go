package relay

import (
	"context"

	models "github.com/cjl-232/cryptcord-server/internal/relay/model"
)

type RelayRepository interface {
	// InsertMessage persists a message, assigning its timestamp and nonce.
	InsertMessage(ctx context.Context, message *models.Message) error

	// ListMessages returns the rows addressed to recipientID, narrowed by
	// the filter, ordered by timestamp then insertion id, with each row's
	// sender relation loaded.
	ListMessages(ctx context.Context, recipientID int64, filter RetrievalFilter) ([]models.Message, error)

	InsertExchangeKey(ctx context.Context, key *models.ExchangeKey) error
	ListExchangeKeys(ctx context.Context, recipientID int64, filter RetrievalFilter) ([]models.ExchangeKey, error)
}
