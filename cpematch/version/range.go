package version

import (
	"fmt"
	"strings"
)

// Range bounds the vulnerable versions of a knowledge base record. Every bound is optional, present bounds are
// conjoined and an empty range contains every version.
type Range struct {
	StartIncluding string `json:"versionStartIncluding,omitempty"`
	StartExcluding string `json:"versionStartExcluding,omitempty"`
	EndIncluding   string `json:"versionEndIncluding,omitempty"`
	EndExcluding   string `json:"versionEndExcluding,omitempty"`
}

type bound struct {
	name    string
	value   string
	allowed func(cmp int) bool
}

func (r Range) bounds() []bound {
	return []bound{
		{name: "start including", value: r.StartIncluding, allowed: func(cmp int) bool { return cmp >= 0 }},
		{name: "start excluding", value: r.StartExcluding, allowed: func(cmp int) bool { return cmp > 0 }},
		{name: "end including", value: r.EndIncluding, allowed: func(cmp int) bool { return cmp <= 0 }},
		{name: "end excluding", value: r.EndExcluding, allowed: func(cmp int) bool { return cmp < 0 }},
	}
}

func (r Range) IsEmpty() bool {
	return r.StartIncluding == "" && r.StartExcluding == "" && r.EndIncluding == "" && r.EndExcluding == ""
}

// Contains indicates whether the candidate version satisfies every present bound.
func (r Range) Contains(candidate string) (bool, error) {
	if r.IsEmpty() {
		return true, nil
	}
	if candidate == "" {
		return false, ErrNoVersionProvided
	}

	for _, b := range r.bounds() {
		if b.value == "" {
			continue
		}
		cmp, err := Compare(candidate, b.value)
		if err != nil {
			return false, invalidBoundError(b.name, b.value, err)
		}
		if !b.allowed(cmp) {
			return false, nil
		}
	}
	return true, nil
}

func (r Range) String() string {
	if r.IsEmpty() {
		return "none"
	}

	var parts []string
	if r.StartIncluding != "" {
		parts = append(parts, fmt.Sprintf(">= %s", r.StartIncluding))
	}
	if r.StartExcluding != "" {
		parts = append(parts, fmt.Sprintf("> %s", r.StartExcluding))
	}
	if r.EndIncluding != "" {
		parts = append(parts, fmt.Sprintf("<= %s", r.EndIncluding))
	}
	if r.EndExcluding != "" {
		parts = append(parts, fmt.Sprintf("< %s", r.EndExcluding))
	}
	return strings.Join(parts, ", ")
}
