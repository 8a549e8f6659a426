package repository

import (
	"context"
	"time"

	"github.com/cjl-232/cryptcord-server/internal/relay"
	models "github.com/cjl-232/cryptcord-server/internal/relay/model"
	"github.com/cjl-232/cryptcord-server/pkg/logger"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type RelayRepository struct {
	db     *bun.DB
	logger *logger.Logger
}

func NewRelayRepository(db *bun.DB, logger logger.Logger) *RelayRepository {
	return &RelayRepository{
		db:     db,
		logger: &logger,
	}
}

// InsertMessage stamps the row with its receipt values before writing.
// The timestamp is assigned here rather than by a column default so both
// storage backends record identical, UTC, nanosecond-precision values.
func (r *RelayRepository) InsertMessage(ctx context.Context, message *models.Message) error {

	message.Nonce = uuid.NewString()
	message.Timestamp = time.Now().UTC()

	_, err := r.db.NewInsert().Model(message).Returning("*").Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "relayRepo.InsertMessage.Insert: ")
	}
	return nil
}

func (r *RelayRepository) ListMessages(ctx context.Context, recipientID int64, filter relay.RetrievalFilter) ([]models.Message, error) {

	var messages []models.Message
	q := r.db.NewSelect().
		Model(&messages).
		Relation("Sender").
		Where("message.recipient_id = ?", recipientID)

	if len(filter.SenderPublicKeys) > 0 {
		q = q.Where("\"sender\".public_key IN (?)", bun.In(filter.SenderPublicKeys))
	}
	if filter.MinTimestamp != nil {
		q = q.Where("message.timestamp >= ?", *filter.MinTimestamp)
	}

	err := q.Order("message.timestamp ASC", "message.id ASC").Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "relayRepo.ListMessages.Scan: ")
	}
	return messages, nil
}

func (r *RelayRepository) InsertExchangeKey(ctx context.Context, key *models.ExchangeKey) error {

	key.Nonce = uuid.NewString()
	key.Timestamp = time.Now().UTC()

	_, err := r.db.NewInsert().Model(key).Returning("*").Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "relayRepo.InsertExchangeKey.Insert: ")
	}
	return nil
}

func (r *RelayRepository) ListExchangeKeys(ctx context.Context, recipientID int64, filter relay.RetrievalFilter) ([]models.ExchangeKey, error) {

	var keys []models.ExchangeKey
	q := r.db.NewSelect().
		Model(&keys).
		Relation("Sender").
		Where("exchange_key.recipient_id = ?", recipientID)

	if len(filter.SenderPublicKeys) > 0 {
		q = q.Where("\"sender\".public_key IN (?)", bun.In(filter.SenderPublicKeys))
	}
	if filter.MinTimestamp != nil {
		q = q.Where("exchange_key.timestamp >= ?", *filter.MinTimestamp)
	}

	err := q.Order("exchange_key.timestamp ASC", "exchange_key.id ASC").Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "relayRepo.ListExchangeKeys.Scan: ")
	}
	return keys, nil
}
