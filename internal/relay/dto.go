package relay

import (
	"time"
)

// NOTE: commands travel from handler to usecase
// Note: DTO travels from usecase to handler
// Input commands
type PostMessageCommand struct {
	RecipientPublicKey string // base64 of a 32-byte Ed25519 key
	Ciphertext         string // opaque; stored and returned verbatim
	Signature          string // base64 of 64 bytes, covers the ciphertext
}

type PostKeyCommand struct {
	RecipientPublicKey string
	PublicExchangeKey  string // base64 of 32 bytes of key material
	Signature          string
	ResponseTo         string // optional nonce of the key being answered
}

type RetrieveCommand struct {
	SenderPublicKeys []string   // optional allow-list; empty means no filter
	MinDatetime      *time.Time // optional, inclusive
}

// RetrievalFilter carries normalized retrieval constraints to the repository.
type RetrievalFilter struct {
	SenderPublicKeys []string
	MinTimestamp     *time.Time
}

// Output DTOs
type ReceiptDTO struct {
	Timestamp time.Time
	Nonce     string
}

type MessageDTO struct {
	SenderPublicKey string
	Ciphertext      string
	Signature       string
	Timestamp       time.Time
	Nonce           string
}

type ExchangeKeyDTO struct {
	SenderPublicKey   string
	PublicExchangeKey string
	Signature         string
	Timestamp         time.Time
	Nonce             string
	ResponseTo        string // empty when the key opens an exchange
}
