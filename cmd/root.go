package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/anchore/cpematch/internal"
	"github.com/anchore/cpematch/internal/stringutil"
)

var rootCmd = &cobra.Command{
	Use:   internal.ApplicationName,
	Short: "Find the vulnerable software records applicable to a component",
	Long: stringutil.Tprintf(`Matches components (CPEs, package URLs or name/version pairs) against a knowledge base of vulnerable
software records, exactly by CPE and fuzzily through a search index.

    {{.appName}} db import records.json     build the knowledge base from NVD cpe_match records
    {{.appName}} match --cpe CPE             find the records applicable to a single CPE
    {{.appName}} match --file components     match every component listed in a file
`, nil),
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

func init() {
	setGlobalCliOptions()
}

func setGlobalCliOptions() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&persistentOpts.ConfigPath, "config", "c", "", "application config file")
	flags.CountVarP(&persistentOpts.Verbosity, "verbose", "v", "increase verbosity (-v = info, -vv = debug)")
	flags.BoolP("quiet", "q", false, "suppress all logging output")

	if err := bindFlags(flags, map[string]string{"quiet": "quiet"}); err != nil {
		fmt.Printf("%+v", err)
		os.Exit(1)
	}
}

// bindFlags binds each flag to the given config key
func bindFlags(flags *pflag.FlagSet, keysByFlag map[string]string) error {
	for flag, key := range keysByFlag {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return fmt.Errorf("unable to bind flag '%s': %w", flag, err)
		}
	}
	return nil
}
