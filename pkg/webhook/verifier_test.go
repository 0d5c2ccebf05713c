package webhook_test

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/sourcetag/pkg/webhook"
)

func TestVerifyDisabledWithoutSecret(t *testing.T) {
	v := webhook.NewVerifier(&webhook.Config{})

	assert.False(t, v.Enabled())
	assert.NoError(t, v.Verify([]byte(`{"id":1}`), ""))
	assert.NoError(t, v.Verify([]byte(`{"id":1}`), "garbage"))
}

func TestVerify(t *testing.T) {
	body := []byte(`{"id":820982911946154508,"tags":"VIP"}`)
	v := webhook.NewVerifier(&webhook.Config{Secret: "shhh"})
	require.True(t, v.Enabled())

	tests := []struct {
		name      string
		signature string
		wantErr   error
	}{
		{"valid", webhook.Sign("shhh", body), nil},
		{"valid with whitespace", "  " + webhook.Sign("shhh", body) + "\n", nil},
		{"missing", "", webhook.ErrMissingSignature},
		{"not base64", "%%%", webhook.ErrInvalidSignature},
		{"wrong secret", webhook.Sign("other", body), webhook.ErrInvalidSignature},
		{"truncated", base64.StdEncoding.EncodeToString([]byte("short")), webhook.ErrInvalidSignature},
		{"hex digest", "5d41402abc4b2a76b9719d911017c592", webhook.ErrInvalidSignature},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Verify(body, tt.signature)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestVerifyTamperedBody(t *testing.T) {
	v := webhook.NewVerifier(&webhook.Config{Secret: "shhh"})
	sig := webhook.Sign("shhh", []byte(`{"id":1}`))

	assert.ErrorIs(t, v.Verify([]byte(`{"id":2}`), sig), webhook.ErrInvalidSignature)
}

func TestHeader(t *testing.T) {
	assert.Equal(t, webhook.DefaultHeader, webhook.NewVerifier(&webhook.Config{}).Header())
	assert.Equal(t, "X-Signature", webhook.NewVerifier(&webhook.Config{Header: "X-Signature"}).Header())

	var nilVerifier *webhook.Verifier
	assert.False(t, nilVerifier.Enabled())
	assert.NoError(t, nilVerifier.Verify(nil, ""))
}

func TestConfigFinalize(t *testing.T) {
	t.Setenv("TEST_WEBHOOK_SECRET", "from-env")

	cfg := &webhook.Config{}
	require.NoError(t, cfg.Finalize(&webhook.Env{Secret: "TEST_WEBHOOK_SECRET"}))

	assert.Equal(t, "from-env", cfg.Secret)
	assert.Equal(t, webhook.DefaultHeader, cfg.Header)
}
