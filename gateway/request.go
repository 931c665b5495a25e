package gateway

import (
	"net/http"
	"net/url"

	"github.com/octabyte/skillswap-client/utils"
	"github.com/tidwall/gjson"
)

// File is one part of a multipart upload. Content is held in memory so the
// request can be replayed after a token refresh.
type File struct {
	Param       string
	Name        string
	ContentType string
	Content     []byte
}

type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   interface{}
	Form   map[string]string
	Files  []File
	// Operation names the span; defaults to the path.
	Operation string
}

func (r Request) operation() string {
	if r.Operation != "" {
		return r.Operation
	}
	return r.Path
}

type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Decode unmarshals the envelope field at path into out.
func (r *Response) Decode(path string, out interface{}) error {
	return utils.DecodeField(r.Body, path, out)
}

func (r *Response) Get(path string) gjson.Result {
	return gjson.GetBytes(r.Body, path)
}

// Message is the server-provided text of the envelope, if any.
func (r *Response) Message() string {
	return utils.FirstString(r.Body, "message", "error")
}
