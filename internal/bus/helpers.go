package bus

import (
	"github.com/wagoodman/go-partybus"

	"github.com/anchore/cpematch/cpematch/event"
)

// Degraded notifies subscribers that a match tier was skipped, along with the reason.
func Degraded(source string, reason error) {
	Publish(partybus.Event{
		Type:   event.FuzzyMatchingDegraded,
		Source: source,
		Error:  reason,
	})
}
