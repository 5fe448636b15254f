package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// reportWriter returns where the match report goes (stdout unless a report file is configured) and whether the
// destination can render color.
func reportWriter() (io.Writer, bool, func() error, error) {
	nop := func() error { return nil }

	path := strings.TrimSpace(appConfig.File)
	if path == "" {
		return os.Stdout, isTerminal(os.Stdout), nop, nil
	}

	reportFile, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, false, nop, fmt.Errorf("unable to create report file: %w", err)
	}
	return reportFile, false, func() error {
		if !appConfig.Quiet {
			fmt.Fprintf(os.Stderr, "Report written to %q\n", path)
		}
		return reportFile.Close()
	}, nil
}
