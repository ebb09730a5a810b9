package main

import (
	"github.com/spf13/cobra"

	"github.com/conn-castle/devstarter/internal/catalog"
	"github.com/conn-castle/devstarter/internal/messages"
)

func newCatalogCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   messages.CatalogUse,
		Short: messages.CatalogShort,
		Args:  cobra.NoArgs,
		// Listing the catalog leaves the previous run's log in place.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return catalog.Encode(cmd.OutOrStdout(), a.catalog(), format)
		},
	}
	cmd.Flags().StringVar(&format, "format", catalog.FormatText, messages.CatalogFlagFormat)
	return cmd
}
