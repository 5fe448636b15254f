//go:build windows

package ui

import (
	"io"
)

// Select always uses the logger UI on windows, the status line relies on ANSI escape sequences.
func Select(_, _ bool, reportWriter io.Writer) (uis []UI) {
	return append(uis, NewLoggerUI(reportWriter))
}
