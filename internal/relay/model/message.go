package model

import (
	"time"

	user "github.com/cjl-232/cryptcord-server/internal/user/model"
)

// Message is an opaque encrypted payload in transit between two users.
// Rows are append-only and visible only to queries filtered by recipient.
type Message struct {
	ID int64 `bun:",pk,autoincrement"`

	SenderID int64      `bun:",notnull"`
	Sender   *user.User `bun:"rel:belongs-to,join:sender_id=id"`

	RecipientID int64      `bun:",notnull"`
	Recipient   *user.User `bun:"rel:belongs-to,join:recipient_id=id"`

	// Ciphertext is never inspected; the server stores and returns it as-is.
	Ciphertext string `bun:",notnull"`

	// Signature covers the ciphertext and is verified by the recipient,
	// not the server. 64 bytes, base64-encoded.
	Signature string `bun:",notnull"`

	Nonce     string    `bun:",unique,notnull"`
	Timestamp time.Time `bun:",notnull"`
}
