// Package json writes results as indented JSON documents, one per call.
package json

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/xdgmime/pkg/errors"
)

type Renderer struct {
	enc *json.Encoder
}

type errorDoc struct {
	Error   string           `json:"error"`
	Code    errors.ErrorCode `json:"code"`
	Details map[string]any   `json:"details,omitempty"`
}

type messageDoc struct {
	Message string `json:"message"`
}

func New(w io.Writer) (*Renderer, error) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return &Renderer{enc: enc}, nil
}

// RenderResult encodes result as is; the display types carry their own
// field tags.
func (r *Renderer) RenderResult(result any) error {
	return r.enc.Encode(result)
}

// RenderError keeps the error code and details so scripts can branch on
// them.
func (r *Renderer) RenderError(err error) error {
	return r.enc.Encode(errorDoc{
		Error:   err.Error(),
		Code:    errors.GetErrorCode(err),
		Details: errors.GetErrorDetails(err),
	})
}

func (r *Renderer) RenderMessage(msg string) error {
	return r.enc.Encode(messageDoc{Message: msg})
}
