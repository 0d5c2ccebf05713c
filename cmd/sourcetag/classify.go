package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/sourcetag/internal/attribution"
	"github.com/JaimeStill/sourcetag/internal/orders"
)

func classifyCmd() *cobra.Command {
	var (
		orderPath      string
		style          string
		matchSiteHosts bool
		tagOrganic     bool
	)

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify an order payload without calling the Admin API",
		Long: `Reads an order webhook payload (a bare order or an {"order": {...}} envelope)
and prints the verdict, the classification tag, and the merged tag list.
Nothing is written back to the store.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			tagStyle, err := attribution.ParseTagStyle(style)
			if err != nil {
				return err
			}

			body, err := readInput(cmd, orderPath)
			if err != nil {
				return err
			}

			order, err := orders.DecodeOrder(body)
			if err != nil {
				return err
			}

			opts := orders.DefaultOptions()
			opts.Style = tagStyle
			opts.TagOrganic = tagOrganic
			opts.Classifier.MatchSiteHosts = matchSiteHosts

			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
			sys := orders.New(nil, nil, opts, 0, logger)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(sys.Plan(order))
		},
	}

	cmd.Flags().StringVarP(&orderPath, "order", "o", "-", `Order payload file ("-" reads stdin)`)
	cmd.Flags().StringVar(&style, "style", string(attribution.StylePlain), "Tag style (plain, detailed)")
	cmd.Flags().BoolVar(&matchSiteHosts, "match-site-hosts", false, "Treat platform names in site URLs as paid")
	cmd.Flags().BoolVar(&tagOrganic, "tag-organic", true, "Write the Organic tag on organic orders")

	return cmd
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
