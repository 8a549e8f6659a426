package usecase

import (
	"context"
	"crypto/ed25519"

	"github.com/google/uuid"

	"github.com/cjl-232/cryptcord-server/config"
	"github.com/cjl-232/cryptcord-server/internal/relay"
	models "github.com/cjl-232/cryptcord-server/internal/relay/model"
	"github.com/cjl-232/cryptcord-server/internal/user"
	usermodels "github.com/cjl-232/cryptcord-server/internal/user/model"
	"github.com/cjl-232/cryptcord-server/pkg/errors"
	"github.com/cjl-232/cryptcord-server/pkg/logger"
	"github.com/cjl-232/cryptcord-server/pkg/utils"
)

type RelayUsecase struct {
	repo   relay.RelayRepository
	users  user.UserRepository
	logger logger.Logger
	config config.Config
}

func NewRelayUsecase(repo relay.RelayRepository, users user.UserRepository, logger logger.Logger, config config.Config) *RelayUsecase {
	return &RelayUsecase{repo: repo, users: users, logger: logger, config: config}
}

func (uc *RelayUsecase) PostMessage(ctx context.Context, senderID int64, cmd relay.PostMessageCommand) (*relay.ReceiptDTO, error) {
	recipientKey, err := normalizeKey(cmd.RecipientPublicKey)
	if err != nil {
		return nil, errors.ErrInvalidRecipientKey
	}
	if err := uc.validateCiphertext(cmd.Ciphertext); err != nil {
		return nil, err
	}
	if _, err := utils.DecodeBase64(cmd.Signature, ed25519.SignatureSize); err != nil {
		return nil, errors.ErrInvalidPayloadSignature
	}

	recipient, err := uc.resolveRecipient(ctx, recipientKey, senderID)
	if err != nil {
		return nil, err
	}

	message := &models.Message{
		SenderID:    senderID,
		RecipientID: recipient.ID,
		Ciphertext:  cmd.Ciphertext,
		Signature:   cmd.Signature,
	}
	if err := uc.repo.InsertMessage(ctx, message); err != nil {
		uc.logger.Error("failed to store message", "err", err)
		return nil, errors.ErrStorageFailed(err)
	}

	return &relay.ReceiptDTO{Timestamp: message.Timestamp, Nonce: message.Nonce}, nil
}

func (uc *RelayUsecase) RetrieveMessages(ctx context.Context, recipientID int64, cmd relay.RetrieveCommand) ([]relay.MessageDTO, error) {
	filter, err := buildFilter(cmd)
	if err != nil {
		return nil, err
	}

	rows, err := uc.repo.ListMessages(ctx, recipientID, filter)
	if err != nil {
		uc.logger.Error("failed to list messages", "err", err)
		return nil, errors.ErrStorageFailed(err)
	}

	out := make([]relay.MessageDTO, 0, len(rows))
	for _, m := range rows {
		dto := relay.MessageDTO{
			Ciphertext: m.Ciphertext,
			Signature:  m.Signature,
			Timestamp:  m.Timestamp,
			Nonce:      m.Nonce,
		}
		if m.Sender != nil {
			dto.SenderPublicKey = m.Sender.PublicKey
		}
		out = append(out, dto)
	}
	return out, nil
}

func (uc *RelayUsecase) PostExchangeKey(ctx context.Context, senderID int64, cmd relay.PostKeyCommand) (*relay.ReceiptDTO, error) {
	recipientKey, err := normalizeKey(cmd.RecipientPublicKey)
	if err != nil {
		return nil, errors.ErrInvalidRecipientKey
	}
	exchangeKey, err := normalizeKey(cmd.PublicExchangeKey)
	if err != nil {
		return nil, errors.ErrInvalidExchangeKey
	}
	if _, err := utils.DecodeBase64(cmd.Signature, ed25519.SignatureSize); err != nil {
		return nil, errors.ErrInvalidPayloadSignature
	}
	if cmd.ResponseTo != "" {
		if _, err := uuid.Parse(cmd.ResponseTo); err != nil {
			return nil, errors.ErrInvalidResponseTo
		}
	}

	recipient, err := uc.resolveRecipient(ctx, recipientKey, senderID)
	if err != nil {
		return nil, err
	}

	key := &models.ExchangeKey{
		SenderID:          senderID,
		RecipientID:       recipient.ID,
		PublicExchangeKey: exchangeKey,
		Signature:         cmd.Signature,
		ResponseTo:        cmd.ResponseTo,
	}
	if err := uc.repo.InsertExchangeKey(ctx, key); err != nil {
		uc.logger.Error("failed to store exchange key", "err", err)
		return nil, errors.ErrStorageFailed(err)
	}

	return &relay.ReceiptDTO{Timestamp: key.Timestamp, Nonce: key.Nonce}, nil
}

func (uc *RelayUsecase) RetrieveExchangeKeys(ctx context.Context, recipientID int64, cmd relay.RetrieveCommand) ([]relay.ExchangeKeyDTO, error) {
	filter, err := buildFilter(cmd)
	if err != nil {
		return nil, err
	}

	rows, err := uc.repo.ListExchangeKeys(ctx, recipientID, filter)
	if err != nil {
		uc.logger.Error("failed to list exchange keys", "err", err)
		return nil, errors.ErrStorageFailed(err)
	}

	out := make([]relay.ExchangeKeyDTO, 0, len(rows))
	for _, k := range rows {
		dto := relay.ExchangeKeyDTO{
			PublicExchangeKey: k.PublicExchangeKey,
			Signature:         k.Signature,
			Timestamp:         k.Timestamp,
			Nonce:             k.Nonce,
			ResponseTo:        k.ResponseTo,
		}
		if k.Sender != nil {
			dto.SenderPublicKey = k.Sender.PublicKey
		}
		out = append(out, dto)
	}
	return out, nil
}

// resolveRecipient creates the recipient identity on first sight. The
// self-send check runs after resolution so that a sender naming itself by
// an unseen key spelling is still caught.
func (uc *RelayUsecase) resolveRecipient(ctx context.Context, recipientKey string, senderID int64) (*usermodels.User, error) {
	recipient, err := uc.users.ResolveOrCreate(ctx, recipientKey)
	if err != nil {
		uc.logger.Error("failed to resolve recipient identity", "err", err)
		return nil, errors.ErrIdentityResolutionFailed(err)
	}
	if recipient.ID == senderID {
		return nil, errors.ErrSelfAddressed
	}
	return recipient, nil
}

func (uc *RelayUsecase) validateCiphertext(ciphertext string) error {
	if ciphertext == "" {
		return errors.ErrEmptyCiphertext
	}
	if max := uc.config.Limits.MaxPayloadBytes; max > 0 && len(ciphertext) > max {
		return errors.ErrCiphertextTooLarge
	}
	return nil
}

// normalizeKey collapses a base64 key to its canonical padded spelling so
// that equality lookups hit regardless of how the client encoded it.
func normalizeKey(b64 string) (string, error) {
	raw, err := utils.DecodeBase64(b64, ed25519.PublicKeySize)
	if err != nil {
		return "", err
	}
	return utils.EncodeBase64(raw), nil
}

func buildFilter(cmd relay.RetrieveCommand) (relay.RetrievalFilter, error) {
	filter := relay.RetrievalFilter{MinTimestamp: cmd.MinDatetime}
	for _, key := range cmd.SenderPublicKeys {
		normalized, err := normalizeKey(key)
		if err != nil {
			return relay.RetrievalFilter{}, errors.ErrInvalidSenderKeys
		}
		filter.SenderPublicKeys = append(filter.SenderPublicKeys, normalized)
	}
	return filter, nil
}
