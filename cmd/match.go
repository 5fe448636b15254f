package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/profile"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/wagoodman/go-partybus"

	"github.com/anchore/cpematch/cpematch"
	"github.com/anchore/cpematch/cpematch/event"
	"github.com/anchore/cpematch/cpematch/matcher"
	"github.com/anchore/cpematch/cpematch/pkg"
	"github.com/anchore/cpematch/cpematch/presenter"
	"github.com/anchore/cpematch/internal"
	"github.com/anchore/cpematch/internal/bus"
	"github.com/anchore/cpematch/internal/log"
	"github.com/anchore/cpematch/internal/stringutil"
	"github.com/anchore/cpematch/internal/ui"
)

var errNoComponents = errors.New("no components given: use --cpe, --purl, --name, --file or pipe components to stdin")

// matchOptions are the component selection options, only available on the command line.
type matchOptions struct {
	CPE     string
	PURL    string
	Name    string
	Version string
	File    string
}

var matchOpts = matchOptions{}

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "find the vulnerable software records applicable to components",
	Long: stringutil.Tprintf(`Find the vulnerable software records applicable to one or more components:

    {{.appName}} match --cpe 'cpe:2.3:a:apache:http_server:2.4.53:*:*:*:*:*:*:*'
    {{.appName}} match --purl pkg:deb/debian/libexpat1@2.2.0
    {{.appName}} match --name libexpat1 --version 2.2.0
    {{.appName}} match --file components.json     a JSON array of {name, version, cpe, purl} objects
    {{.appName}} match < components.txt           one CPE or package URL per line
`, nil),
	Args: cobra.NoArgs,
	RunE: runMatchCmd,
}

func init() {
	setMatchFlags(matchCmd)
	rootCmd.AddCommand(matchCmd)
}

func setMatchFlags(c *cobra.Command) {
	flags := c.Flags()
	flags.StringVar(&matchOpts.CPE, "cpe", "", "match a single CPE (2.3 formatted string or 2.2 URI)")
	flags.StringVar(&matchOpts.PURL, "purl", "", "match a single package URL")
	flags.StringVar(&matchOpts.Name, "name", "", "name of the component to match")
	flags.StringVar(&matchOpts.Version, "version", "", "version of the component to match")
	flags.StringVarP(&matchOpts.File, "file", "f", "", "file of components to match (JSON array, or one CPE / package URL per line)")

	flags.StringP("output", "o", presenter.TablePresenter.String(), fmt.Sprintf("report output formatter, options=%v", presenter.Options))
	flags.String("report-file", "", "file to write the report output to (default is STDOUT)")
	flags.Int("workers", 0, "number of components matched concurrently (default is the number of CPUs)")
	flags.Bool("fuzzy", true, "search the index for components without an exact match")
	flags.Bool("exclude-components-with-purl", false, "do not fuzzy match components with a package URL (deb packages excepted)")
	flags.Int("max-candidates", matcher.DefaultMaxCandidates, "maximum number of index hits considered per component")
	flags.Float64("similarity", matcher.DefaultSimilarity, "share of a search term that must match a product name, within (0, 1]")

	err := bindFlags(flags, map[string]string{
		"output":                       "output",
		"report-file":                  "file",
		"workers":                      "match.workers",
		"fuzzy":                        "match.fuzzy.enabled",
		"exclude-components-with-purl": "match.fuzzy.exclude-components-with-purl",
		"max-candidates":               "match.fuzzy.max-candidates",
		"similarity":                   "match.fuzzy.similarity",
	})
	if err != nil {
		fmt.Printf("%+v", err)
		os.Exit(1)
	}
}

func runMatchCmd(_ *cobra.Command, _ []string) error {
	if appConfig.Dev.ProfileCPU {
		defer profile.Start(profile.CPUProfile).Stop()
	} else if appConfig.Dev.ProfileMem {
		defer profile.Start(profile.MemProfile).Stop()
	}

	writer, withColor, closer, err := reportWriter()
	defer func() {
		if err := closer(); err != nil {
			log.Warnf("unable to write to report destination: %+v", err)
		}
	}()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	return eventLoop(
		startMatchWorker(ctx, matchOpts, withColor),
		setupSignals(),
		eventSubscription,
		cancel,
		ui.Select(isVerbose(), appConfig.Quiet, writer)...,
	)
}

func isVerbose() bool {
	return appConfig.CliOptions.Verbosity > 0 || appConfig.Verbosity > 0
}

func startMatchWorker(ctx context.Context, opts matchOptions, withColor bool) <-chan error {
	errs := make(chan error)
	go func() {
		defer close(errs)

		components, err := opts.components(afero.NewOsFs())
		if err != nil {
			errs <- err
			return
		}

		s, _, err := cpematch.LoadKnowledgeBase(appConfig.DB.ToCuratorConfig())
		if err != nil {
			errs <- fmt.Errorf("unable to load knowledge base: %w", err)
			return
		}
		defer func() {
			if err := s.Close(); err != nil {
				log.Warnf("unable to close knowledge base: %+v", err)
			}
		}()

		results, err := matcher.New(s, appConfig.Match.ToMatcherConfig()).FindAll(ctx, components)
		if err != nil {
			errs <- fmt.Errorf("unable to match components: %w", err)
			return
		}

		bus.Publish(partybus.Event{
			Type:  event.ReportReady,
			Value: presenter.GetPresenter(appConfig.OutputOpt, results, withColor),
		})
	}()
	return errs
}

// components resolves what to match: a components file, a single component described by flags, or components piped
// to stdin (in that order of preference).
func (o matchOptions) components(fs afero.Fs) ([]pkg.Component, error) {
	if strings.TrimSpace(o.File) != "" {
		return pkg.ReadComponents(fs, o.File)
	}

	if o.CPE != "" || o.PURL != "" || o.Name != "" {
		return []pkg.Component{pkg.New(o.Name, o.Version, o.CPE, o.PURL)}, nil
	}

	piped, err := internal.IsPipedInput()
	if err != nil {
		return nil, err
	}
	if !piped {
		return nil, errNoComponents
	}

	components, err := pkg.DecodeComponents(os.Stdin)
	if err != nil {
		return nil, err
	}
	if len(components) == 0 {
		return nil, errNoComponents
	}
	return components, nil
}
