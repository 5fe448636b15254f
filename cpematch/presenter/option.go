package presenter

import "strings"

// Option selects the report format.
type Option int

const (
	UnknownPresenter Option = iota
	JSONPresenter
	TablePresenter
)

var optionNames = map[Option]string{
	JSONPresenter:  "json",
	TablePresenter: "table",
}

// Options are the formats selectable by the user, in the order they are listed in help text.
var Options = []Option{
	TablePresenter,
	JSONPresenter,
}

// ParseOption matches a user supplied format name (case-insensitive), returning UnknownPresenter when nothing matches.
func ParseOption(userStr string) Option {
	name := strings.ToLower(strings.TrimSpace(userStr))
	for _, o := range Options {
		if optionNames[o] == name {
			return o
		}
	}
	return UnknownPresenter
}

func (o Option) String() string {
	if name, ok := optionNames[o]; ok {
		return name
	}
	return "unknown"
}
