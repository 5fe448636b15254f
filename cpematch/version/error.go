package version

import (
	"errors"
	"fmt"
)

var ErrNoVersionProvided = errors.New("no version provided for comparison")

func invalidBoundError(bound, raw string, err error) error {
	return fmt.Errorf("invalid %s bound %q: %w", bound, raw, err)
}
