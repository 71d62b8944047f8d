package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/aholstenson/gocurl/pkg/network"
	"github.com/aholstenson/gocurl/pkg/outputs"
	"github.com/aholstenson/gocurl/pkg/progress"
	"github.com/aholstenson/gocurl/pkg/request"
)

// NetworkError is a transport-level failure, such as DNS resolution,
// connection refusal, a TLS handshake problem or a timeout. It is distinct
// from a non-2xx response, which Do returns without error.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return "could not reach " + e.URL + ": " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Client issues a single blocking HTTP request per call to Do.
type Client struct {
	reporter progress.Reporter
	output   outputs.Output

	userAgent  string
	httpClient *http.Client
}

func NewClient(opts ...Option) (*Client, error) {
	config := &clientConfig{
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(config)
	}

	reporter := config.reporter
	if reporter == nil {
		reporter = progress.NewEmptyReporter()
	}

	return &Client{
		reporter: reporter,
		output:   config.output,

		userAgent: config.userAgent,
		httpClient: &http.Client{
			Timeout: config.timeout,
		},
	}, nil
}

// Do performs the described request and returns the response.
// Transport failures surface as *NetworkError; a response with a non-2xx
// status is still a response and returns without error.
func (c *Client) Do(ctx context.Context, spc *request.Spec) (*network.Response, error) {
	var payload io.Reader
	if len(spc.Body) > 0 {
		payload = bytes.NewReader(spc.Body)
	}

	req, err := http.NewRequestWithContext(ctx, string(spc.Method), spc.URL, payload)
	if err != nil {
		return nil, fmt.Errorf("could not build request: %w", err)
	}

	for _, h := range spc.Headers {
		req.Header.Add(h.Key, h.Value)
	}

	// The payload is always JSON, but headers supplied by the user win.
	if len(spc.Body) > 0 && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.reporter.Action(spc.URL)
	c.reporter.Request(&network.Request{
		URL:     spc.URL,
		Method:  string(spc.Method),
		Headers: network.Header(req.Header),
		Body:    spc.Body,
	})

	if c.output != nil {
		if err := c.output.Request(req); err != nil {
			c.reporter.Error(err, "Could not record request")
		}
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: spc.URL, Err: err}
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &NetworkError{URL: spc.URL, Err: err}
	}

	if c.output != nil {
		res.Body = io.NopCloser(bytes.NewReader(body))
		if err := c.output.Response(req, res); err != nil {
			c.reporter.Error(err, "Could not record response")
		}
	}

	out := &network.Response{
		URL:          spc.URL,
		StatusCode:   res.StatusCode,
		StatusPhrase: http.StatusText(res.StatusCode),
		Headers:      network.Header(res.Header),
		Body:         body,
	}
	c.reporter.Response(out)

	return out, nil
}
