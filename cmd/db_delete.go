package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var dbDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "delete the knowledge base",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		if err := newCurator().Delete(); err != nil {
			return fmt.Errorf("unable to delete knowledge base: %w", err)
		}
		fmt.Println("Knowledge base deleted")
		return nil
	},
}

func init() {
	dbCmd.AddCommand(dbDeleteCmd)
}
