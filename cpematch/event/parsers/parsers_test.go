package parsers

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wagoodman/go-partybus"
	"github.com/wagoodman/go-progress"

	"github.com/anchore/cpematch/cpematch/db"
	"github.com/anchore/cpematch/cpematch/event"
	"github.com/anchore/cpematch/cpematch/event/monitor"
	"github.com/anchore/cpematch/cpematch/match"
)

func TestParseKnowledgeBaseRefreshed(t *testing.T) {
	id := db.ID{BuildTimestamp: time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC), SchemaVersion: db.SchemaVersion, Records: 12}

	dir, actual, err := ParseKnowledgeBaseRefreshed(partybus.Event{
		Type:   event.KnowledgeBaseRefreshed,
		Source: "/tmp/kb",
		Value:  id,
	})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/kb", dir)
	assert.Equal(t, id, *actual)
}

func TestParseFuzzyMatchingDegraded(t *testing.T) {
	reason := errors.New("no index")
	actual, err := ParseFuzzyMatchingDegraded(partybus.Event{
		Type:   event.FuzzyMatchingDegraded,
		Source: "libexpat1@2.2.0",
		Error:  reason,
	})
	require.NoError(t, err)
	assert.Equal(t, "libexpat1@2.2.0", actual.Source)
	assert.ErrorIs(t, actual.Reason, reason)
}

func TestParseMatchingStarted(t *testing.T) {
	processed := &progress.Manual{Total: 3}
	discovered := &progress.Manual{}

	mon, err := ParseMatchingStarted(partybus.Event{
		Type: event.MatchingStarted,
		Value: monitor.Matching{
			ComponentsProcessed: processed,
			MatchesDiscovered:   discovered,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), mon.ComponentsProcessed.Size())
}

func TestParseMatchingFinished(t *testing.T) {
	results := []match.Result{{}, {}}
	actual, err := ParseMatchingFinished(partybus.Event{Type: event.MatchingFinished, Value: results})
	require.NoError(t, err)
	assert.Len(t, actual, 2)
}

func TestParsers_badPayload(t *testing.T) {
	tests := []struct {
		name  string
		parse func() error
	}{
		{
			name: "wrong type",
			parse: func() error {
				_, err := ParseMatchingStarted(partybus.Event{Type: event.MatchingFinished})
				return err
			},
		},
		{
			name: "wrong value",
			parse: func() error {
				_, _, err := ParseKnowledgeBaseRefreshed(partybus.Event{Type: event.KnowledgeBaseRefreshed, Value: "nope"})
				return err
			},
		},
		{
			name: "missing source",
			parse: func() error {
				_, err := ParseFuzzyMatchingDegraded(partybus.Event{Type: event.FuzzyMatchingDegraded})
				return err
			},
		},
		{
			name: "missing presenter",
			parse: func() error {
				_, err := ParseReportReady(partybus.Event{Type: event.ReportReady, Value: 42})
				return err
			},
		},
		{
			name: "non-string result",
			parse: func() error {
				_, err := ParseNonRootCommandFinished(partybus.Event{Type: event.NonRootCommandFinished, Value: 42})
				return err
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.parse()
			var payloadErr *ErrBadPayload
			assert.ErrorAs(t, err, &payloadErr)
		})
	}
}
