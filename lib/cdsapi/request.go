package cdsapi

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"
)

const JSONMimeType = "application/json"

// maxRequestSize caps the hook request body; hook contexts are small, prefetch is not supported.
const maxRequestSize = 1 << 20

// ReadRequest reads the JSON body of a CDS Hooks HTTP request into T.
// If it fails, the returned error can be sent to the client using SendErrorResponse.
func ReadRequest[T any](httpRequest *http.Request) (*T, error) {
	if contentType := httpRequest.Header.Get("Content-Type"); contentType != "" {
		mediaType, _, err := mime.ParseMediaType(contentType)
		if err != nil {
			return nil, BadRequestError("invalid content type", err)
		}
		if mediaType != JSONMimeType && !strings.HasSuffix(mediaType, "+json") {
			return nil, BadRequestError("invalid content type, expected "+JSONMimeType, nil)
		}
	}
	var result T
	decoder := json.NewDecoder(io.LimitReader(httpRequest.Body, maxRequestSize))
	if err := decoder.Decode(&result); err != nil {
		return nil, BadRequestError("request body is not a valid JSON object", err)
	}
	if _, err := decoder.Token(); err != io.EOF {
		return nil, BadRequestError("request body is not a valid JSON object", errors.New("unexpected data after JSON object"))
	}
	return &result, nil
}
