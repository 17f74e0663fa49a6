package from

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// MaxResponseSize caps how much of an upstream response body is read.
const MaxResponseSize = 1 << 20

// JSONResponse decodes the body of a 2xx response into T.
// Non-2xx responses are returned as error, including (a truncated part of) the response body.
func JSONResponse[T any](httpResponse *http.Response) (T, error) {
	var result T
	body := io.LimitReader(httpResponse.Body, MaxResponseSize)
	if httpResponse.StatusCode < 200 || httpResponse.StatusCode >= 300 {
		responseData, _ := io.ReadAll(io.LimitReader(body, 512))
		return result, fmt.Errorf("non-OK status code (status=%s, url=%s): %s", httpResponse.Status, requestURL(httpResponse), strings.TrimSpace(string(responseData)))
	}
	if err := json.NewDecoder(body).Decode(&result); err != nil {
		return result, fmt.Errorf("failed to decode response body (url=%s): %w", requestURL(httpResponse), err)
	}
	return result, nil
}

func requestURL(httpResponse *http.Response) string {
	if httpResponse.Request == nil || httpResponse.Request.URL == nil {
		return ""
	}
	return httpResponse.Request.URL.String()
}
