package warc

type warcConfig struct {
	prefix   string
	software string
}

type Option func(c *warcConfig)

func WithPrefix(prefix string) Option {
	return func(c *warcConfig) {
		c.prefix = prefix
	}
}

func WithSoftware(software string) Option {
	return func(c *warcConfig) {
		c.software = software
	}
}
