package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/sourcetag/internal/config"
	"github.com/JaimeStill/sourcetag/pkg/webhook"
)

func signCmd() *cobra.Command {
	var (
		secret      string
		payloadPath string
	)

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Print the signature header value for a webhook payload",
		Long: fmt.Sprintf(`Computes the base64 HMAC-SHA256 of a payload file, as sent in the
%s header. The secret defaults to %s.`, webhook.DefaultHeader, config.EnvShopifyWebhookSecret),
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				secret = os.Getenv(config.EnvShopifyWebhookSecret)
			}
			if secret == "" {
				return errors.New("a secret is required: pass --secret or set " + config.EnvShopifyWebhookSecret)
			}

			body, err := readInput(cmd, payloadPath)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), webhook.Sign(secret, body))
			return err
		},
	}

	cmd.Flags().StringVarP(&secret, "secret", "s", "", "Shared webhook secret")
	cmd.Flags().StringVarP(&payloadPath, "payload", "p", "-", `Payload file ("-" reads stdin)`)

	return cmd
}
