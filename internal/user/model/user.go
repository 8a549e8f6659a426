package models

import (
	"time"
)

// User pins a stable integer identity to a public key. Rows are created
// lazily the first time a key is seen, as a request's sender or as a named
// recipient, and are never updated or deleted.
type User struct {
	ID int64 `bun:",pk,autoincrement"`

	// PublicKey holds the canonical base64 form of a 32-byte Ed25519 key.
	PublicKey string `bun:",unique,notnull"`

	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}
