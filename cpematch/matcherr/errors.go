package matcherr

import "errors"

var (
	// ErrMalformedCPE indicates a CPE string that could not be parsed as a 2.3 formatted string or a 2.2 URI.
	ErrMalformedCPE = errors.New("malformed CPE")

	// ErrUnsupportedWildcardPosition indicates a wildcard in an attribute that cannot be interpreted as one. The
	// value is compared as an opaque literal instead.
	ErrUnsupportedWildcardPosition = errors.New("unsupported wildcard position")

	// ErrNoIdentifyingData indicates a component has neither a CPE (explicit or derivable) nor a name to search by.
	ErrNoIdentifyingData = errors.New("component has no identifying data")

	// ErrIndexUnavailable indicates the search index is not ready, thus fuzzy matching cannot be performed.
	ErrIndexUnavailable = errors.New("search index unavailable")

	// ErrNoKnowledgeBase indicates no knowledge base has been loaded or imported yet.
	ErrNoKnowledgeBase = errors.New("no knowledge base loaded")
)
