package progress

import (
	"io"

	"github.com/aholstenson/gocurl/pkg/network"
)

// Reporter receives everything the client wants to tell the user. The sink
// is always explicit, there is no package-wide logging state.
type Reporter interface {
	io.Closer

	Action(msg string)

	Info(msg string)

	Debug(msg string)

	Error(err error, msg string)

	Request(req *network.Request)

	Response(res *network.Response)
}
