package runner

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aholstenson/gocurl/pkg/client"
	"github.com/aholstenson/gocurl/pkg/outputs/warc"
	"github.com/aholstenson/gocurl/pkg/progress"
	"github.com/aholstenson/gocurl/pkg/request"
	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"
)

const version = "gocurl 0.1.0"

type CLI struct {
	Get  GetCmd  `cmd:"" help:"Perform a GET request"`
	Put  PutCmd  `cmd:"" help:"Perform a PUT request"`
	Post PostCmd `cmd:"" help:"Perform a POST request"`

	Version kong.VersionFlag `help:"Show version"`
}

type RequestArgs struct {
	URL     string        `arg:"" help:"URL to request"`
	Headers []string      `short:"H" sep:"none" placeholder:"KEY=VALUE" help:"Request headers"`
	Data    string        `short:"d" placeholder:"JSON" help:"Request body as json"`
	Verbose bool          `help:"High verbosity"`
	Timeout time.Duration `default:"30s" help:"Abort the request after this duration"`
	Record  string        `type:"existingdir" help:"Directory where a WARC transcript of the exchange is stored"`
}

type GetCmd struct {
	RequestArgs
}

func (c *GetCmd) Run(env *environment) error {
	return env.execute(request.MethodGet, &c.RequestArgs)
}

type PutCmd struct {
	RequestArgs
}

func (c *PutCmd) Run(env *environment) error {
	return env.execute(request.MethodPut, &c.RequestArgs)
}

type PostCmd struct {
	RequestArgs
}

func (c *PostCmd) Run(env *environment) error {
	return env.execute(request.MethodPost, &c.RequestArgs)
}

type environment struct {
	exitCode    int
	newReporter func(verbose bool, cancel func()) (progress.Reporter, error)
}

// terminalReporter picks the interactive reporter when stdout is a terminal
// and the plain console reporter otherwise.
func terminalReporter(verbose bool, cancel func()) (progress.Reporter, error) {
	if isatty.IsTerminal(os.Stdout.Fd()) {
		return progress.NewInteractiveReporter(verbose, cancel)
	}
	return progress.NewConsoleReporter(os.Stdout, verbose)
}

// Run parses the command line, performs the request and returns the exit
// code for the process: 0 for a 2xx response, 1 for everything that fails.
func Run() int {
	cli := &CLI{}
	cliCtx := kong.Parse(cli,
		kong.Name("gocurl"),
		kong.Description("A very simplified REST client for GET, PUT and POST."),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)

	env := &environment{newReporter: terminalReporter}
	if err := cliCtx.Run(env); err != nil {
		cliCtx.Errorf("%s", err.Error())
		return 1
	}

	return env.exitCode
}

func (env *environment) candidate(method request.Method, args *RequestArgs) *request.Candidate {
	return &request.Candidate{
		Method:  method,
		URL:     args.URL,
		Headers: args.Headers,
		Data:    args.Data,
		Verbose: args.Verbose,
	}
}

func (env *environment) execute(method request.Method, args *RequestArgs) error {
	spc, err := env.candidate(method, args).Validate()
	if err != nil {
		env.exitCode = 1
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reporter, err := env.newReporter(spc.Verbose, cancel)
	if err != nil {
		env.exitCode = 1
		return fmt.Errorf("could not create reporter: %w", err)
	}
	defer reporter.Close()

	options := []client.Option{
		client.WithReporter(reporter),
		client.WithTimeout(args.Timeout),
		client.WithUserAgent("gocurl/0.1.0"),
	}

	if args.Record != "" {
		prefix := time.Now().In(time.UTC).Format("20060102150405") + "-"
		output, err := warc.NewOutput(args.Record,
			warc.WithPrefix(prefix),
			warc.WithSoftware("gocurl/0.1.0"),
		)
		if err != nil {
			env.exitCode = 1
			return fmt.Errorf("could not create WARC output: %w", err)
		}
		defer output.Close()

		reporter.Info("Recording exchange to " + args.Record)
		options = append(options, client.WithOutput(output))
	}

	httpClient, err := client.NewClient(options...)
	if err != nil {
		env.exitCode = 1
		return fmt.Errorf("could not create client: %w", err)
	}

	reporter.Debug(fmt.Sprintf("Sending %s to %s with headers %v and body %s",
		spc.Method, spc.URL, spc.Headers, spc.Body))

	res, err := httpClient.Do(ctx, spc)
	if err != nil {
		env.exitCode = 1
		reporter.Error(err, "Request failed")
		return nil
	}

	if !res.Success() {
		env.exitCode = 1
	}

	return nil
}
