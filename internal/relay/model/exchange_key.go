package model

import (
	"time"

	user "github.com/cjl-232/cryptcord-server/internal/user/model"
)

// ExchangeKey is an ephemeral public value posted for another user to
// collect, used to bootstrap a shared secret out of band. Append-only.
type ExchangeKey struct {
	ID int64 `bun:",pk,autoincrement"`

	SenderID int64      `bun:",notnull"`
	Sender   *user.User `bun:"rel:belongs-to,join:sender_id=id"`

	RecipientID int64      `bun:",notnull"`
	Recipient   *user.User `bun:"rel:belongs-to,join:recipient_id=id"`

	// PublicExchangeKey holds 32 bytes of key material, base64-encoded.
	PublicExchangeKey string `bun:",notnull"`

	// Signature covers the key material. 64 bytes, base64-encoded.
	Signature string `bun:",notnull"`

	// ResponseTo carries the nonce of the key this one answers, making a
	// two-step exchange: the initiator posts key A, the responder posts
	// key B with ResponseTo set to A's nonce. Empty for opening keys.
	ResponseTo string `bun:",nullzero"`

	Nonce     string    `bun:",unique,notnull"`
	Timestamp time.Time `bun:",notnull"`
}
