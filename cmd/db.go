package cmd

import (
	"github.com/spf13/cobra"

	"github.com/anchore/cpematch/cpematch/db"
	"github.com/anchore/cpematch/cpematch/store"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "knowledge base operations",
}

func init() {
	rootCmd.AddCommand(dbCmd)
}

func newCurator() *db.Curator {
	return db.NewCurator(appConfig.DB.ToCuratorConfig(), store.New())
}
