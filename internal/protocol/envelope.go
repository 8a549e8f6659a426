package protocol

import (
	"crypto/ed25519"
	"encoding/base64"
	"encoding/json"

	"github.com/cjl-232/cryptcord-server/pkg/errors"
	"github.com/cjl-232/cryptcord-server/pkg/utils"
)

// Actions understood by the dispatcher. The set is closed: anything else is
// answered with a 404 envelope.
const (
	ActionPostMessage      = "POST_MESSAGE"
	ActionRetrieveMessages = "RETRIEVE_MESSAGES"
	ActionPostKey          = "POST_KEY"
	ActionRetrieveKeys     = "RETRIEVE_KEYS"
)

// Envelope is a structurally valid request. PublicKeyText is the canonical
// spelling of PublicKey, suitable for identity lookups.
type Envelope struct {
	Data          map[string]any
	PublicKey     ed25519.PublicKey
	PublicKeyText string
	Signature     []byte
}

// wireEnvelope distinguishes absent fields from mistyped ones, which plain
// string fields cannot.
type wireEnvelope struct {
	Data      json.RawMessage `json:"data"`
	PublicKey *string         `json:"public_key"`
	Signature *string         `json:"signature"`
}

// ParseEnvelope decodes and structurally validates a raw request. The top
// level and data must be JSON objects and public_key must spell exactly 32
// bytes. No cryptography happens here.
func ParseEnvelope(raw []byte) (*Envelope, error) {
	var wire wireEnvelope
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, errors.ErrMalformedEnvelope
	}
	if len(wire.Data) == 0 || wire.PublicKey == nil || wire.Signature == nil {
		return nil, errors.ErrMalformedEnvelope
	}

	var data map[string]any
	if err := json.Unmarshal(wire.Data, &data); err != nil || data == nil {
		return nil, errors.ErrMalformedEnvelope
	}

	key, err := utils.DecodeBase64(*wire.PublicKey, ed25519.PublicKeySize)
	if err != nil {
		return nil, errors.ErrInvalidPublicKey
	}

	signature, err := base64.StdEncoding.DecodeString(*wire.Signature)
	if err != nil {
		return nil, errors.ErrMalformedSignature
	}

	return &Envelope{
		Data:          data,
		PublicKey:     key,
		PublicKeyText: utils.EncodeBase64(key),
		Signature:     signature,
	}, nil
}

// Verify reports whether the signature covers the canonical encoding of the
// data object. A signature of the wrong length simply fails verification.
func (e *Envelope) Verify() (bool, error) {
	canonical, err := Canonical(e.Data)
	if err != nil {
		return false, err
	}
	return utils.ValidateSignature(e.PublicKey, canonical, e.Signature)
}

// Action extracts the dispatch tag from the data object.
func (e *Envelope) Action() (string, error) {
	v, ok := e.Data["action"]
	if !ok {
		return "", errors.ErrMissingAction
	}
	action, ok := v.(string)
	if !ok {
		return "", errors.ErrInvalidAction
	}
	return action, nil
}
