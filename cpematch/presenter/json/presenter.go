package json

import (
	"encoding/json"
	"io"

	"github.com/anchore/cpematch/cpematch/match"
)

// Presenter is a generic struct for holding fields needed for reporting
type Presenter struct {
	results []match.Result
}

// NewPresenter creates a new JSON presenter
func NewPresenter(results []match.Result) *Presenter {
	return &Presenter{
		results: results,
	}
}

// Present creates a JSON-based reporting
func (pres *Presenter) Present(output io.Writer) error {
	doc := NewDocument(pres.results)

	enc := json.NewEncoder(output)
	// prevent > and < from being escaped in the payload
	enc.SetEscapeHTML(false)
	enc.SetIndent("", " ")
	return enc.Encode(&doc)
}
