package backend

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Response is a fully read backend reply.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Decode parses the body as a single JSON value of any kind. Objects decode to
// map[string]any and numbers to json.Number so ids print the way they were sent.
func (r *Response) Decode() (any, error) {
	dec := json.NewDecoder(bytes.NewReader(r.Body))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("invalid JSON response: empty body")
		}
		return nil, fmt.Errorf("invalid JSON response: %w", err)
	}
	if dec.More() {
		return nil, errors.New("invalid JSON response: trailing data after value")
	}
	return v, nil
}
