package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var showSupportedDBSchema bool

var dbStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "display knowledge base status",
	Args:  cobra.NoArgs,
	RunE:  runDBStatusCmd,
}

func init() {
	dbStatusCmd.Flags().BoolVar(&showSupportedDBSchema, "schema", false, "show supported knowledge base schema")

	dbCmd.AddCommand(dbStatusCmd)
}

func runDBStatusCmd(_ *cobra.Command, _ []string) error {
	status := newCurator().Status()

	if showSupportedDBSchema {
		fmt.Println(status.RequiredSchemaVersion)
		return nil
	}

	fmt.Println("Location:          ", status.Location)
	if !status.Built.IsZero() {
		fmt.Printf("Built:              %s (%s)\n", status.Built.Format("2006-01-02 15:04:05 MST"), humanize.Time(status.Built))
	}
	fmt.Println("Records:           ", humanize.Comma(int64(status.Records)))
	fmt.Println("Schema:            ", status.CurrentSchemaVersion)
	fmt.Println("Required schema:   ", status.RequiredSchemaVersion)
	if status.Err != nil {
		fmt.Printf("Status:             INVALID [%+v]\n", status.Err)
		return fmt.Errorf("knowledge base is not usable")
	}
	fmt.Println("Status:             Valid")
	return nil
}
