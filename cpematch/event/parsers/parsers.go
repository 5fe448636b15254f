package parsers

import (
	"fmt"

	"github.com/wagoodman/go-partybus"

	"github.com/anchore/cpematch/cpematch/db"
	"github.com/anchore/cpematch/cpematch/event"
	"github.com/anchore/cpematch/cpematch/event/monitor"
	"github.com/anchore/cpematch/cpematch/match"
	"github.com/anchore/cpematch/cpematch/presenter"
)

type ErrBadPayload struct {
	Type  partybus.EventType
	Field string
	Value interface{}
}

func (e *ErrBadPayload) Error() string {
	return fmt.Sprintf("event='%s' has bad event payload field='%v': '%+v'", string(e.Type), e.Field, e.Value)
}

func newPayloadErr(t partybus.EventType, field string, value interface{}) error {
	return &ErrBadPayload{
		Type:  t,
		Field: field,
		Value: value,
	}
}

func checkEventType(actual, expected partybus.EventType) error {
	if actual != expected {
		return newPayloadErr(expected, "Type", actual)
	}
	return nil
}

// ParseKnowledgeBaseRefreshed returns the directory the knowledge base was published from along with its identity.
func ParseKnowledgeBaseRefreshed(e partybus.Event) (string, *db.ID, error) {
	if err := checkEventType(e.Type, event.KnowledgeBaseRefreshed); err != nil {
		return "", nil, err
	}

	dir, ok := e.Source.(string)
	if !ok {
		// this is optional
		dir = ""
	}

	id, ok := e.Value.(db.ID)
	if !ok {
		return "", nil, newPayloadErr(e.Type, "Value", e.Value)
	}

	return dir, &id, nil
}

// Degradation describes a match tier that was skipped.
type Degradation struct {
	Source string
	Reason error
}

func ParseFuzzyMatchingDegraded(e partybus.Event) (*Degradation, error) {
	if err := checkEventType(e.Type, event.FuzzyMatchingDegraded); err != nil {
		return nil, err
	}

	source, ok := e.Source.(string)
	if !ok {
		return nil, newPayloadErr(e.Type, "Source", e.Source)
	}

	return &Degradation{Source: source, Reason: e.Error}, nil
}

func ParseMatchingStarted(e partybus.Event) (*monitor.Matching, error) {
	if err := checkEventType(e.Type, event.MatchingStarted); err != nil {
		return nil, err
	}

	mon, ok := e.Value.(monitor.Matching)
	if !ok {
		return nil, newPayloadErr(e.Type, "Value", e.Value)
	}

	return &mon, nil
}

func ParseMatchingFinished(e partybus.Event) ([]match.Result, error) {
	if err := checkEventType(e.Type, event.MatchingFinished); err != nil {
		return nil, err
	}

	results, ok := e.Value.([]match.Result)
	if !ok {
		return nil, newPayloadErr(e.Type, "Value", e.Value)
	}

	return results, nil
}

func ParseReportReady(e partybus.Event) (presenter.Presenter, error) {
	if err := checkEventType(e.Type, event.ReportReady); err != nil {
		return nil, err
	}

	pres, ok := e.Value.(presenter.Presenter)
	if !ok {
		return nil, newPayloadErr(e.Type, "Value", e.Value)
	}

	return pres, nil
}

func ParseNonRootCommandFinished(e partybus.Event) (*string, error) {
	if err := checkEventType(e.Type, event.NonRootCommandFinished); err != nil {
		return nil, err
	}

	result, ok := e.Value.(string)
	if !ok {
		return nil, newPayloadErr(e.Type, "Value", e.Value)
	}

	return &result, nil
}
