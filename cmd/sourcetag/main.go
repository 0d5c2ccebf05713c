// Command sourcetag serves the order webhook and provides local tooling for
// classifying sample orders and signing test payloads.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "sourcetag",
		Short:         "Tag new orders as Paid or Organic traffic",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(serveCmd())
	root.AddCommand(classifyCmd())
	root.AddCommand(signCmd())
	root.AddCommand(openapiCmd())

	return root
}
