package monitor

import (
	"github.com/wagoodman/go-progress"
)

// Matching is the progress of a batch of components being matched.
type Matching struct {
	ComponentsProcessed progress.Progressable
	MatchesDiscovered   progress.Monitorable
}
