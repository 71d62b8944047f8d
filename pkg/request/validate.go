package request

import (
	"encoding/json"
	"strings"
)

// Field identifies which part of the candidate failed validation.
type Field string

const (
	FieldURL     Field = "url"
	FieldHeaders Field = "headers"
	FieldBody    Field = "body"
)

type ValidationError struct {
	Field   Field
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validate checks the candidate and builds a Spec from it. It returns the
// first problem it finds; no network activity happens here.
func (c *Candidate) Validate() (*Spec, error) {
	if !strings.HasPrefix(c.URL, "http://") && !strings.HasPrefix(c.URL, "https://") {
		return nil, &ValidationError{
			Field:   FieldURL,
			Message: "URL must begin with http:// or https://.",
		}
	}

	headers := make([]Header, 0, len(c.Headers))
	for _, raw := range c.Headers {
		if strings.Count(raw, "=") != 1 {
			return nil, &ValidationError{
				Field:   FieldHeaders,
				Message: "Headers must be in KEY=VALUE format.",
			}
		}

		key, value, _ := strings.Cut(raw, "=")
		headers = append(headers, Header{Key: key, Value: value})
	}

	var body json.RawMessage
	if c.Data != "" {
		if !json.Valid([]byte(c.Data)) {
			return nil, &ValidationError{
				Field:   FieldBody,
				Message: "Body must be in json format.",
			}
		}

		body = json.RawMessage(c.Data)
	}

	return &Spec{
		Method:  c.Method,
		URL:     c.URL,
		Headers: headers,
		Body:    body,
		Verbose: c.Verbose,
	}, nil
}
