package presenter

import (
	"io"

	"github.com/anchore/cpematch/cpematch/match"
	"github.com/anchore/cpematch/cpematch/presenter/json"
	"github.com/anchore/cpematch/cpematch/presenter/table"
)

// Presenter is the main interface other Presenters need to implement
type Presenter interface {
	Present(io.Writer) error
}

// GetPresenter retrieves a Presenter that matches a CLI option
func GetPresenter(option Option, results []match.Result, withColor bool) Presenter {
	switch option {
	case JSONPresenter:
		return json.NewPresenter(results)
	case TablePresenter:
		return table.NewPresenter(results, withColor)
	default:
		return nil
	}
}
