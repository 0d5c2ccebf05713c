package main

import (
	"github.com/spf13/cobra"

	"github.com/JaimeStill/sourcetag/internal/api"
	"github.com/JaimeStill/sourcetag/internal/config"
	"github.com/JaimeStill/sourcetag/pkg/openapi"
)

func openapiCmd() *cobra.Command {
	var (
		configPath string
		output     string
	)

	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Write the OpenAPI document for the webhook endpoints",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFrom(configPath)
			if err != nil {
				return err
			}

			spec := api.NewSpec(cfg)
			if output != "-" {
				return openapi.WriteJSON(spec, output)
			}

			data, err := openapi.MarshalJSON(spec)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(append(data, '\n'))
			return err
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", config.BaseConfigFile, "Base config file")
	cmd.Flags().StringVarP(&output, "output", "o", "-", `Output file ("-" writes stdout)`)

	return cmd
}
