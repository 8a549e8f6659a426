package protocol

import "encoding/json"

// Canonical returns the deterministic encoding of a decoded data object.
// encoding/json writes map keys in sorted order at every depth and emits no
// insignificant whitespace, so two spellings of the same object always
// canonicalize to the same bytes. Signatures are made and checked over this
// encoding, never over the bytes as they arrived on the wire.
func Canonical(data map[string]any) ([]byte, error) {
	return json.Marshal(data)
}
