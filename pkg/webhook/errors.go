package webhook

import "errors"

var (
	// ErrMissingSignature indicates a secret is configured but the request carried no signature.
	ErrMissingSignature = errors.New("webhook signature missing")
	// ErrInvalidSignature indicates the signature was malformed or did not match the body.
	ErrInvalidSignature = errors.New("webhook signature invalid")
)
