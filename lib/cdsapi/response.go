package cdsapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"
)

// SendErrorResponse sends the given error as JSON error body to the CDS client.
// If the error isn't an Error instance, a generic error is sent back, to avoid leaking sensitive internals.
func SendErrorResponse(ctx context.Context, httpResponse http.ResponseWriter, err error) {
	log.Ctx(ctx).Warn().Err(err).Msg("CDS Hooks API error")
	statusCode := http.StatusInternalServerError
	body := ErrorBody{Error: "An internal server error occurred"}
	var apiError *Error
	if errors.As(err, &apiError) {
		if apiError.StatusCode != 0 {
			statusCode = apiError.StatusCode
		}
		body.Error = apiError.Message
	}
	SendResponse(ctx, httpResponse, statusCode, body)
}

func SendResponse(ctx context.Context, httpResponse http.ResponseWriter, httpStatus int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		log.Ctx(ctx).Err(err).Msg("Failed to marshal response")
		httpStatus = http.StatusInternalServerError
		data = []byte(`{"error":"Failed to marshal response"}`)
	}
	httpResponse.Header().Set("Content-Type", JSONMimeType)
	httpResponse.Header().Set("Content-Length", strconv.Itoa(len(data)))
	httpResponse.WriteHeader(httpStatus)
	if _, err = httpResponse.Write(data); err != nil {
		log.Ctx(ctx).Err(err).Msg("Failed to write response")
	}
}
