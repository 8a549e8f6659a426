package delivery

import (
	"time"

	"github.com/cjl-232/cryptcord-server/internal/relay"
	"github.com/cjl-232/cryptcord-server/pkg/errors"
)

func parsePostMessage(data map[string]any) (relay.PostMessageCommand, error) {
	var cmd relay.PostMessageCommand
	var err error
	if cmd.RecipientPublicKey, err = requiredString(data, "recipient_public_key"); err != nil {
		return cmd, err
	}
	if cmd.Ciphertext, err = requiredString(data, "ciphertext"); err != nil {
		return cmd, err
	}
	if cmd.Signature, err = requiredString(data, "signature"); err != nil {
		return cmd, err
	}
	return cmd, nil
}

func parsePostKey(data map[string]any) (relay.PostKeyCommand, error) {
	var cmd relay.PostKeyCommand
	var err error
	if cmd.RecipientPublicKey, err = requiredString(data, "recipient_public_key"); err != nil {
		return cmd, err
	}
	if cmd.PublicExchangeKey, err = requiredString(data, "public_exchange_key"); err != nil {
		return cmd, err
	}
	if cmd.Signature, err = requiredString(data, "signature"); err != nil {
		return cmd, err
	}
	if cmd.ResponseTo, err = optionalString(data, "response_to"); err != nil {
		return cmd, err
	}
	return cmd, nil
}

func parseRetrieve(data map[string]any) (relay.RetrieveCommand, error) {
	var cmd relay.RetrieveCommand
	var err error
	if cmd.SenderPublicKeys, err = optionalStringList(data, "sender_keys"); err != nil {
		return cmd, err
	}
	if cmd.MinDatetime, err = optionalTime(data, "min_datetime"); err != nil {
		return cmd, err
	}
	return cmd, nil
}

func requiredString(data map[string]any, field string) (string, error) {
	v, ok := data[field]
	if !ok {
		return "", errors.InvalidArg(field + " is required")
	}
	s, ok := v.(string)
	if !ok {
		return "", errors.InvalidArg(field + " must be a string")
	}
	return s, nil
}

func optionalString(data map[string]any, field string) (string, error) {
	v, ok := data[field]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", errors.InvalidArg(field + " must be a string")
	}
	return s, nil
}

func optionalStringList(data map[string]any, field string) ([]string, error) {
	v, ok := data[field]
	if !ok || v == nil {
		return nil, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, errors.ErrInvalidSenderKeys
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, errors.ErrInvalidSenderKeys
		}
		out = append(out, s)
	}
	return out, nil
}

func optionalTime(data map[string]any, field string) (*time.Time, error) {
	s, err := optionalString(data, field)
	if err != nil || s == "" {
		if err != nil {
			err = errors.ErrInvalidMinDatetime
		}
		return nil, err
	}
	ts, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return nil, errors.ErrInvalidMinDatetime
	}
	ts = ts.UTC()
	return &ts, nil
}

// Timestamps leave the server in RFC 3339 form at UTC, matching the values
// clients feed back through min_datetime.
func formatTimestamp(ts time.Time) string {
	return ts.UTC().Format(time.RFC3339Nano)
}

func receiptData(receipt *relay.ReceiptDTO) map[string]any {
	return map[string]any{
		"timestamp": formatTimestamp(receipt.Timestamp),
		"nonce":     receipt.Nonce,
	}
}

func messageData(m relay.MessageDTO) map[string]any {
	return map[string]any{
		"sender_public_key": m.SenderPublicKey,
		"ciphertext":        m.Ciphertext,
		"signature":         m.Signature,
		"timestamp":         formatTimestamp(m.Timestamp),
		"nonce":             m.Nonce,
	}
}

func exchangeKeyData(k relay.ExchangeKeyDTO) map[string]any {
	out := map[string]any{
		"sender_public_key":   k.SenderPublicKey,
		"public_exchange_key": k.PublicExchangeKey,
		"signature":           k.Signature,
		"timestamp":           formatTimestamp(k.Timestamp),
		"nonce":               k.Nonce,
	}
	if k.ResponseTo != "" {
		out["response_to"] = k.ResponseTo
	}
	return out
}
