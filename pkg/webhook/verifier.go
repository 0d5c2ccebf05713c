// Package webhook verifies HMAC-SHA256 signatures on inbound webhook deliveries.
package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
)

// Verifier checks a base64 HMAC-SHA256 signature computed over the raw body.
//
// A Verifier with no secret accepts every request. That mirrors the behaviour
// operators relied on before a secret was provisioned and is reported at
// startup; configure a secret in any environment reachable from the internet.
type Verifier struct {
	secret []byte
	header string
}

// NewVerifier creates a Verifier from a finalized Config.
func NewVerifier(cfg *Config) *Verifier {
	header := cfg.Header
	if header == "" {
		header = DefaultHeader
	}
	return &Verifier{
		secret: []byte(cfg.Secret),
		header: header,
	}
}

// Enabled reports whether a secret is configured.
func (v *Verifier) Enabled() bool {
	return v != nil && len(v.secret) > 0
}

// Header returns the request header carrying the signature.
func (v *Verifier) Header() string {
	if v == nil || v.header == "" {
		return DefaultHeader
	}
	return v.header
}

// Verify compares signature against the HMAC of body in constant time.
func (v *Verifier) Verify(body []byte, signature string) error {
	if !v.Enabled() {
		return nil
	}

	signature = strings.TrimSpace(signature)
	if signature == "" {
		return ErrMissingSignature
	}

	got, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return ErrInvalidSignature
	}

	if !hmac.Equal(digest(v.secret, body), got) {
		return ErrInvalidSignature
	}
	return nil
}

// Sign returns the header value a sender with secret would attach to body.
func Sign(secret string, body []byte) string {
	return base64.StdEncoding.EncodeToString(digest([]byte(secret), body))
}

func digest(secret, body []byte) []byte {
	mac := hmac.New(sha256.New, secret)
	mac.Write(body)
	return mac.Sum(nil)
}
