package warc

import (
	"net/http"
	"net/http/httputil"
	"time"

	"github.com/aholstenson/gocurl/pkg/outputs"
	"github.com/nlnwa/gowarc"
	"github.com/rosshhun/gonormalizer"
)

// targetURI canonicalizes the URL stored in the WARC record headers so the
// same resource always keys the same way. Only the record metadata is
// affected, never the request on the wire.
func targetURI(url string) string {
	nurl, err := gonormalizer.Normalize(url)
	if err != nil {
		// If there's an error ignore it and keep the original URL
		return url
	}
	return nurl
}

// WARCOutput stores the request and response of an exchange as WARC records
// in a directory.
type WARCOutput struct {
	writer *gowarc.WarcFileWriter
}

func NewOutput(directory string, opts ...Option) (*WARCOutput, error) {
	config := &warcConfig{
		prefix: "%{prefix}s%{ts}s-",
	}
	for _, opt := range opts {
		opt(config)
	}

	writer := gowarc.NewWarcFileWriter(gowarc.WithFileNameGenerator(&gowarc.PatternNameGenerator{
		Directory: directory,
		Pattern:   config.prefix + "%04{serial}d.%{ext}s",
	}))

	o := &WARCOutput{
		writer: writer,
	}

	if config.software != "" {
		if err := o.warcinfo(config.software); err != nil {
			return nil, err
		}
	}

	return o, nil
}

func (o *WARCOutput) Close() error {
	return o.writer.Close()
}

func (o *WARCOutput) warcinfo(software string) error {
	builder := gowarc.NewRecordBuilder(gowarc.Warcinfo)

	_, err := builder.Write([]byte("software: " + software + "\r\n"))
	if err != nil {
		return err
	}

	builder.AddWarcHeaderTime(gowarc.WarcDate, time.Now())
	builder.AddWarcHeader(gowarc.ContentType, "application/warc-fields")

	record, _, err := builder.Build()
	if err != nil {
		return err
	}

	o.writer.Write(record)
	return nil
}

func (o *WARCOutput) Request(req *http.Request) error {
	builder := gowarc.NewRecordBuilder(gowarc.Request)

	data, err := httputil.DumpRequest(req, true)
	if err != nil {
		return err
	}

	_, err = builder.Write(data)
	if err != nil {
		return err
	}

	builder.AddWarcHeader(gowarc.WarcTargetURI, targetURI(req.URL.String()))
	builder.AddWarcHeaderTime(gowarc.WarcDate, time.Now())
	builder.AddWarcHeader(gowarc.ContentType, "application/http; msgtype=request")

	record, _, err := builder.Build()
	if err != nil {
		return err
	}

	o.writer.Write(record)
	return nil
}

func (o *WARCOutput) Response(req *http.Request, res *http.Response) error {
	builder := gowarc.NewRecordBuilder(gowarc.Response)

	data, err := httputil.DumpResponse(res, true)
	if err != nil {
		return err
	}

	_, err = builder.Write(data)
	if err != nil {
		return err
	}

	builder.AddWarcHeader(gowarc.WarcTargetURI, targetURI(req.URL.String()))
	builder.AddWarcHeaderTime(gowarc.WarcDate, time.Now())
	builder.AddWarcHeader(gowarc.ContentType, "application/http; msgtype=response")

	record, _, err := builder.Build()
	if err != nil {
		return err
	}

	o.writer.Write(record)
	return nil
}

var _ outputs.Output = &WARCOutput{}
