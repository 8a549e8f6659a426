package utils

import (
	"encoding/base64"
	"fmt"
)

// DecodeBase64 decodes standard base64 text and checks the decoded length.
func DecodeBase64(b64 string, expectedLen int) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, err
	}
	if len(data) != expectedLen {
		return nil, fmt.Errorf("expected %d bytes, got %d", expectedLen, len(data))
	}
	return data, nil
}

// EncodeBase64 returns the canonical standard-base64 form of raw bytes.
// Re-encoding decoded input collapses equivalent encodings of the same
// key onto a single stored representation.
func EncodeBase64(raw []byte) string {
	return base64.StdEncoding.EncodeToString(raw)
}
