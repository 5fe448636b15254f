package ui

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/wagoodman/go-partybus"

	"github.com/anchore/cpematch/cpematch/event/parsers"
	"github.com/anchore/cpematch/internal/log"
)

func handleReportReady(event partybus.Event, reportOutput io.Writer) error {
	pres, err := parsers.ParseReportReady(event)
	if err != nil {
		return fmt.Errorf("bad %s event: %w", event.Type, err)
	}

	if err := pres.Present(reportOutput); err != nil {
		return fmt.Errorf("unable to show match report: %w", err)
	}
	return nil
}

func handleNonRootCommandFinished(event partybus.Event, reportOutput io.Writer) error {
	result, err := parsers.ParseNonRootCommandFinished(event)
	if err != nil {
		return fmt.Errorf("bad %s event: %w", event.Type, err)
	}

	if _, err := reportOutput.Write([]byte(*result)); err != nil {
		return fmt.Errorf("unable to show command result: %w", err)
	}
	return nil
}

func handleKnowledgeBaseRefreshed(event partybus.Event) error {
	dir, id, err := parsers.ParseKnowledgeBaseRefreshed(event)
	if err != nil {
		return fmt.Errorf("bad %s event: %w", event.Type, err)
	}

	log.Infof("knowledge base loaded from %q: %d records built %s", dir, id.Records, humanize.Time(id.BuildTimestamp))
	return nil
}

func handleFuzzyMatchingDegraded(event partybus.Event) error {
	d, err := parsers.ParseFuzzyMatchingDegraded(event)
	if err != nil {
		return fmt.Errorf("bad %s event: %w", event.Type, err)
	}

	log.Warnf("fuzzy matching degraded for %s: %v", d.Source, d.Reason)
	return nil
}
