package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/agriscan/internal/catalog"
)

var labelsCmd = &cobra.Command{
	Use:   "labels",
	Short: "List the disease labels in the catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalog.Load(cfg.Catalog)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s catalog, %d labels\n\n", cat.Crop(), cat.Len())
		for i, e := range cat.Entries() {
			fmt.Fprintf(out, "%3d  %-32s %s\n", i+1, e.Label, e.Category.DisplayName())
		}
		return nil
	},
}
