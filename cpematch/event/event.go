package event

import "github.com/wagoodman/go-partybus"

const (
	KnowledgeBaseRefreshed partybus.EventType = "cpematch-knowledge-base-refreshed"
	FuzzyMatchingDegraded  partybus.EventType = "cpematch-fuzzy-matching-degraded"
	MatchingStarted        partybus.EventType = "cpematch-matching-started"
	MatchingFinished       partybus.EventType = "cpematch-matching-finished"
	ReportReady            partybus.EventType = "cpematch-report-ready"
	NonRootCommandFinished partybus.EventType = "cpematch-non-root-command-finished"
)
