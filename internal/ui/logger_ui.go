package ui

import (
	"io"

	"github.com/wagoodman/go-partybus"

	"github.com/anchore/cpematch/cpematch/event"
	"github.com/anchore/cpematch/internal/log"
)

type loggerUI struct {
	unsubscribe  func() error
	reportOutput io.Writer
}

// NewLoggerUI writes all events to the common application logger and writes the final report to the given writer.
func NewLoggerUI(reportWriter io.Writer) UI {
	return &loggerUI{
		reportOutput: reportWriter,
	}
}

func (l *loggerUI) Setup(unsubscribe func() error) error {
	l.unsubscribe = unsubscribe
	return nil
}

func (l loggerUI) Handle(e partybus.Event) error {
	switch e.Type {
	case event.KnowledgeBaseRefreshed:
		if err := handleKnowledgeBaseRefreshed(e); err != nil {
			log.Warnf("unable to show %s event: %+v", e.Type, err)
		}
		return nil
	case event.FuzzyMatchingDegraded:
		if err := handleFuzzyMatchingDegraded(e); err != nil {
			log.Warnf("unable to show %s event: %+v", e.Type, err)
		}
		return nil
	case event.ReportReady:
		if err := handleReportReady(e, l.reportOutput); err != nil {
			log.Warnf("unable to show report ready event: %+v", err)
		}
	case event.NonRootCommandFinished:
		if err := handleNonRootCommandFinished(e, l.reportOutput); err != nil {
			log.Warnf("unable to show command finished event: %+v", err)
		}
	// ignore all other events
	default:
		return nil
	}

	// this is the last expected event, stop listening to events
	return l.unsubscribe()
}

func (l loggerUI) Teardown(_ bool) error {
	return nil
}
