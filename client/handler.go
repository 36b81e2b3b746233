package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/healthlink/fhir/schema"
)

const fhirJSONMediaType = "application/fhir+json"

// RequestHandler finishes preparing a transport request for one kind of
// interaction and converts the raw response into a typed outcome. Handlers
// never throw past this boundary; failures surface on the outcome.
type RequestHandler interface {
	// Prepare sets method, headers and body on the base request.
	Prepare(req *http.Request) error

	// Outcome maps the transport response, raw body and transport error
	// into a typed outcome.
	Outcome(resp *http.Response, body []byte, transportErr error) *Outcome

	// NotSent builds the outcome for a request that never left the client.
	NotSent(reason error) *Outcome
}

// JSONHandler is the default handler for FHIR JSON interactions.
type JSONHandler struct {
	Method  string
	Payload any
	Headers map[string]string
}

// NewReadHandler returns a handler for a plain FHIR read interaction.
func NewReadHandler() *JSONHandler {
	return &JSONHandler{Method: http.MethodGet}
}

// NewWriteHandler returns a handler that sends payload as a FHIR JSON body.
func NewWriteHandler(method string, payload any) *JSONHandler {
	return &JSONHandler{Method: method, Payload: payload}
}

func (h *JSONHandler) Prepare(req *http.Request) error {
	if h.Method != "" {
		req.Method = h.Method
	}
	req.Header.Set("Accept", fhirJSONMediaType)
	for name, value := range h.Headers {
		req.Header.Set(name, value)
	}
	if h.Payload != nil {
		data, err := json.Marshal(h.Payload)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		req.Body = io.NopCloser(bytes.NewReader(data))
		req.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		}
		req.ContentLength = int64(len(data))
		req.Header.Set("Content-Type", fhirJSONMediaType)
	}
	return nil
}

func (h *JSONHandler) Outcome(resp *http.Response, body []byte, transportErr error) *Outcome {
	outcome := &Outcome{Sent: true}
	if resp != nil {
		outcome.Status = resp.StatusCode
		outcome.Header = resp.Header
		outcome.Body = body
	}
	if transportErr != nil {
		outcome.Error = fmt.Errorf("%w: %v", ErrTransport, transportErr)
		return outcome
	}
	if resp.StatusCode >= http.StatusBadRequest {
		outcome.Error = fmt.Errorf("server returned status %d", resp.StatusCode)
		return outcome
	}
	if len(body) > 0 {
		outcome.Resource = schema.NewResource(body)
	}
	return outcome
}

func (h *JSONHandler) NotSent(reason error) *Outcome {
	return &Outcome{Error: reason}
}
