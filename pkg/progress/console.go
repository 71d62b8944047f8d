package progress

import (
	"io"
	"strconv"

	"github.com/aholstenson/gocurl/pkg/network"
)

type ConsoleReporter struct {
	out     io.Writer
	verbose bool
}

// NewConsoleReporter reports to the given writer, one line per event. Debug
// messages are dropped unless verbose is set.
func NewConsoleReporter(out io.Writer, verbose bool) (Reporter, error) {
	return &ConsoleReporter{
		out:     out,
		verbose: verbose,
	}, nil
}

func (c *ConsoleReporter) print(msg string) {
	io.WriteString(c.out, msg+"\n")
}

func (c *ConsoleReporter) Close() error {
	return nil
}

func (c *ConsoleReporter) Action(msg string) {
	c.print(msg)
}

func (c *ConsoleReporter) Info(msg string) {
	c.print(msg)
}

func (c *ConsoleReporter) Debug(msg string) {
	if c.verbose {
		c.print(msg)
	}
}

func (c *ConsoleReporter) Error(err error, msg string) {
	c.print("❌ " + msg + ": " + err.Error())
}

func (c *ConsoleReporter) Request(req *network.Request) {
	c.print("⬆️ " + req.Method + " " + req.URL)
}

func (c *ConsoleReporter) Response(res *network.Response) {
	c.print("⬇️ " + strconv.Itoa(res.StatusCode) + " " + res.StatusPhrase)

	if len(res.Body) == 0 {
		return
	}

	if res.Success() {
		c.print(string(res.Body))
	} else {
		c.print("❌ " + string(res.Body))
	}
}

var _ Reporter = &ConsoleReporter{}
