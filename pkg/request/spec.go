package request

import (
	"encoding/json"
	"net/http"
)

// Method selects the HTTP method used for the single outbound request.
type Method string

const (
	MethodGet  Method = http.MethodGet
	MethodPut  Method = http.MethodPut
	MethodPost Method = http.MethodPost
)

// Header is a single key/value pair. Keys need not be unique, the order in
// which pairs were supplied on the command line is preserved.
type Header struct {
	Key   string
	Value string
}

// Candidate is the raw, unvalidated form of a request as parsed from the
// command line.
type Candidate struct {
	Method Method
	// URL to request.
	URL string
	// Headers as supplied, one KEY=VALUE string per flag occurrence.
	Headers []string
	// Data is the raw request body, empty when none was given.
	Data string
	// Verbose enables debug reporting.
	Verbose bool
}

// Spec is the validated, structured representation of user intent before
// dispatch. Immutable once built.
type Spec struct {
	Method  Method
	URL     string
	Headers []Header
	// Body is kept raw so the payload round-trips losslessly.
	Body    json.RawMessage
	Verbose bool
}
