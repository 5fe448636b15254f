package ui

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/gookit/color"
	"github.com/wagoodman/go-partybus"
	"github.com/wagoodman/go-progress"

	"github.com/anchore/cpematch/cpematch/event"
	"github.com/anchore/cpematch/cpematch/event/parsers"
	"github.com/anchore/cpematch/internal/log"
	"github.com/anchore/cpematch/internal/logger"
)

const completedStatus = "✔"

var (
	titleFormat   = color.Bold
	auxInfoFormat = color.HEX("#777777")
)

// terminalUI keeps a single, continuously redrawn status line on stderr while components are being matched. Logs are
// buffered while the status line is shown and flushed before the report is written.
type terminalUI struct {
	unsubscribe  func() error
	waitGroup    *sync.WaitGroup
	cancel       context.CancelFunc
	lock         sync.Mutex
	closed       bool
	logBuffer    *bytes.Buffer
	uiOutput     *os.File
	reportOutput io.Writer
}

// NewTerminalUI draws matching progress to the terminal and writes the final report to the given writer.
func NewTerminalUI(reportWriter io.Writer) UI {
	return &terminalUI{
		waitGroup:    &sync.WaitGroup{},
		uiOutput:     os.Stderr,
		reportOutput: reportWriter,
	}
}

func (h *terminalUI) Setup(unsubscribe func() error) error {
	h.unsubscribe = unsubscribe
	hideCursor(h.uiOutput)

	// prep the logger to not clobber the screen from now on (logrus only)
	h.logBuffer = bytes.NewBufferString("")
	if logWrapper, ok := log.Log.(*logger.LogrusLogger); ok {
		logWrapper.Logger.SetOutput(h.logBuffer)
	}
	return nil
}

func (h *terminalUI) Handle(e partybus.Event) error {
	switch e.Type {
	case event.MatchingStarted:
		if err := h.handleMatchingStarted(e); err != nil {
			log.Errorf("unable to show %s event: %+v", e.Type, err)
		}
	case event.KnowledgeBaseRefreshed:
		if err := handleKnowledgeBaseRefreshed(e); err != nil {
			log.Errorf("unable to show %s event: %+v", e.Type, err)
		}
	case event.FuzzyMatchingDegraded:
		if err := handleFuzzyMatchingDegraded(e); err != nil {
			log.Errorf("unable to show %s event: %+v", e.Type, err)
		}
	case event.ReportReady:
		// the report goes to stdout, so the terminal state must be reset first
		h.closeScreen(false)

		if err := handleReportReady(e, h.reportOutput); err != nil {
			log.Errorf("unable to show %s event: %+v", e.Type, err)
		}

		// this is the last expected event, stop listening to events
		return h.unsubscribe()
	case event.NonRootCommandFinished:
		h.closeScreen(false)

		if err := handleNonRootCommandFinished(e, h.reportOutput); err != nil {
			log.Errorf("unable to show %s event: %+v", e.Type, err)
		}
		return h.unsubscribe()
	}
	return nil
}

func (h *terminalUI) handleMatchingStarted(e partybus.Event) error {
	mon, err := parsers.ParseMatchingStarted(e)
	if err != nil {
		return fmt.Errorf("bad %s event: %w", e.Type, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	h.lock.Lock()
	h.cancel = cancel
	h.lock.Unlock()

	spin := newSpinner(spinnerDotSet)
	stream := progress.StreamMonitors(ctx, []progress.Monitorable{mon.ComponentsProcessed, mon.MatchesDiscovered}, 100*time.Millisecond)
	title := titleFormat.Sprint("Matching components...")
	total := mon.ComponentsProcessed.Size()

	h.waitGroup.Add(1)
	go func() {
		defer h.waitGroup.Done()

		h.writeStatus(color.Magenta.Sprint(spin.Next()), title, auxInfoFormat.Sprintf("[%d / %d components, %d matches]", 0, total, 0))
		for p := range stream {
			h.writeStatus(color.Magenta.Sprint(spin.Next()), title, auxInfoFormat.Sprintf("[%d / %d components, %d matches]", p[0], total, p[1]))
		}

		h.writeStatus(
			color.Green.Sprint(completedStatus),
			titleFormat.Sprint("Matched components"),
			auxInfoFormat.Sprintf("[%d components, %d matches]", mon.ComponentsProcessed.Current(), mon.MatchesDiscovered.Current()),
		)
		fmt.Fprintln(h.uiOutput)
	}()
	return nil
}

func (h *terminalUI) writeStatus(status, title, auxInfo string) {
	h.lock.Lock()
	defer h.lock.Unlock()
	if h.closed {
		return
	}
	fmt.Fprintf(h.uiOutput, "\r\x1b[K %s %-28s %s", status, title, auxInfo)
}

func (h *terminalUI) closeScreen(force bool) {
	h.lock.Lock()
	cancel := h.cancel
	h.lock.Unlock()

	if force && cancel != nil {
		cancel()
	}
	// background progress must finish drawing before the final report is shown
	h.waitGroup.Wait()
	if cancel != nil {
		cancel()
	}

	h.lock.Lock()
	defer h.lock.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	h.flushLog()
}

func (h *terminalUI) flushLog() {
	// flush any errors to the screen before the report
	if logWrapper, ok := log.Log.(*logger.LogrusLogger); ok {
		fmt.Fprint(logWrapper.Output, h.logBuffer.String())
		logWrapper.Logger.SetOutput(logWrapper.Output)
	} else {
		fmt.Fprint(h.uiOutput, h.logBuffer.String())
	}
}

func (h *terminalUI) Teardown(force bool) error {
	h.closeScreen(force)
	showCursor(h.uiOutput)
	return nil
}

func hideCursor(output io.Writer) {
	fmt.Fprint(output, "\x1b[?25l")
}

func showCursor(output io.Writer) {
	fmt.Fprint(output, "\x1b[?25h")
}
