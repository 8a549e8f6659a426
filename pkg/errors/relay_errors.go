package errors

var (
	// Protocol errors, raised while decoding and authenticating envelopes.
	ErrMalformedEnvelope  = InvalidArg("request envelope is malformed")
	ErrInvalidPublicKey   = InvalidArg("public_key must be 32 bytes of valid base64")
	ErrMalformedSignature = InvalidArg("signature must be valid base64")
	ErrInvalidSignature   = Unauthorized("signature verification failed")
	ErrMissingAction      = InvalidArg("action is required")
	ErrInvalidAction      = InvalidArg("action must be a string")
	ErrUnknownAction      = NotFound("unrecognised action")
	ErrRequestTooLarge    = ResourceExhausted("request exceeds the maximum permitted size")

	// Domain errors, used in the usecase and repository layers.
	ErrInvalidRecipientKey     = InvalidArg("recipient_public_key must be 32 bytes of valid base64")
	ErrSelfAddressed           = InvalidArg("sender and recipient must differ")
	ErrEmptyCiphertext         = InvalidArg("ciphertext cannot be empty")
	ErrCiphertextTooLarge      = InvalidArg("ciphertext exceeds the maximum permitted size")
	ErrInvalidPayloadSignature = InvalidArg("signature must be 64 bytes of valid base64")
	ErrInvalidExchangeKey      = InvalidArg("public_exchange_key must be 32 bytes of valid base64")
	ErrInvalidResponseTo       = InvalidArg("response_to must be a valid nonce")
	ErrInvalidSenderKeys       = InvalidArg("sender_keys must be a list of base64 public keys")
	ErrInvalidMinDatetime      = InvalidArg("min_datetime must be an RFC 3339 timestamp")
)

func ErrStorageFailed(cause error) error {
	return Wrap(CodeInternal, "storage operation failed", cause)
}

func ErrIdentityResolutionFailed(cause error) error {
	return Wrap(CodeInternal, "failed to resolve sender identity", cause)
}
