package network

import "net/http"

type Header http.Header

type Request struct {
	// URL being requested.
	URL string
	// Method used for the request.
	Method string
	// Headers sent with the request.
	Headers Header
	// Body is the JSON payload, empty when the request carries none.
	Body []byte
}

// Response contains information about a response.
type Response struct {
	// URL of the response.
	URL string
	// StatusCode is the HTTP status code of the request, such as 200, 301,
	// 404 etc.
	StatusCode int
	// StatusPhrase is the phrase associated with the HTTP status code.
	StatusPhrase string
	// Headers received with the response.
	Headers Header
	// Body is the full response body.
	Body []byte
}

// Success reports whether the status code indicates a 2xx response.
func (r *Response) Success() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}
