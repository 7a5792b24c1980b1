package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the active product catalog as JSON",
	Run: func(cmd *cobra.Command, _ []string) {
		logger, _, p := setup()

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(p.Catalog().Items()); err != nil {
			logger.Fatal("printing the catalog", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}
