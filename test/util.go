package test

import (
	"net/http"
	"time"
)

// WaitForHTTPStatus polls the URL until it responds with the given status code.
// The done channel is closed on success, the error channel receives the last error after 10 failed attempts.
func WaitForHTTPStatus(testURL string, statusCode int) (chan struct{}, chan error) {
	done := make(chan struct{})
	errChan := make(chan error, 1)

	go func() {
		var lastErr error
		for i := 0; i < 10; i++ {
			resp, err := http.Get(testURL)
			if err == nil {
				_ = resp.Body.Close()
				if resp.StatusCode == statusCode {
					close(done)
					return
				}
			}
			lastErr = err
			time.Sleep(500 * time.Millisecond)
		}
		errChan <- lastErr
	}()

	return done, errChan
}
