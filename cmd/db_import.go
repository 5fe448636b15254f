package cmd

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/anchore/cpematch/internal/log"
)

var dbImportCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "import vulnerable software records",
	Long: `import a JSON array of vulnerable software records (NVD cpe_match fields: id, vulnerabilityId, cpe23Uri,
cpe22Uri, versionStartIncluding, versionStartExcluding, versionEndIncluding, versionEndExcluding, vulnerable),
replacing the current knowledge base. Invalid records are reported and skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runDBImportCmd,
}

func init() {
	dbCmd.AddCommand(dbImportCmd)
}

func runDBImportCmd(_ *cobra.Command, args []string) error {
	curator := newCurator()
	defer func() {
		if err := curator.Store().Close(); err != nil {
			log.Warnf("unable to close knowledge base: %+v", err)
		}
	}()

	id, err := curator.ImportFrom(args[0])
	if id == nil {
		return fmt.Errorf("unable to import knowledge base: %w", err)
	}

	skipped := 0
	if err != nil {
		var merr *multierror.Error
		if errors.As(err, &merr) {
			skipped = len(merr.Errors)
		}
		log.Warnf("skipped invalid records: %+v", err)
	}

	fmt.Printf("Knowledge base imported: %d records (%d skipped)\n", id.Records, skipped)
	return nil
}
