package client

import (
	"time"

	"github.com/aholstenson/gocurl/pkg/outputs"
	"github.com/aholstenson/gocurl/pkg/progress"
)

// DefaultTimeout bounds the whole request unless overridden.
const DefaultTimeout = 30 * time.Second

type clientConfig struct {
	reporter  progress.Reporter
	output    outputs.Output
	userAgent string
	timeout   time.Duration
}

type Option func(c *clientConfig)

func WithReporter(reporter progress.Reporter) Option {
	return func(c *clientConfig) {
		c.reporter = reporter
	}
}

func WithOutput(output outputs.Output) Option {
	return func(c *clientConfig) {
		c.output = output
	}
}

func WithUserAgent(ua string) Option {
	return func(c *clientConfig) {
		c.userAgent = ua
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}
