package outputs

import (
	"io"
	"net/http"
)

// Output records the single HTTP exchange performed by the client.
type Output interface {
	io.Closer

	Request(req *http.Request) error

	Response(req *http.Request, res *http.Response) error
}
