package commands

import (
	"github.com/spf13/cobra"

	"github.com/Viskhan-95/golden-chicken/internal/app"
)

func (c *CLI) newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the products of the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			category, _ := cmd.Flags().GetInt("category")
			search, _ := cmd.Flags().GetString("search")

			return c.app.Catalog(cmd.Context(), app.CatalogOptions{
				ConfigPath: configPath,
				Category:   category,
				Search:     search,
			}, cmd.OutOrStdout())
		},
	}
	cmd.Flags().Int("category", 0, "Only list this category, 0 for all")
	cmd.Flags().String("search", "", "Only list products whose name contains the text")
	return cmd
}
