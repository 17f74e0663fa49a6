package harness

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/nuts-foundation/cds-hooks-ice/cmd"
	"github.com/nuts-foundation/cds-hooks-ice/test"
)

// startService starts the service with the given config and waits for it to be ready.
// It returns the base URL of the public interface.
func startService(t *testing.T, config cmd.Config) *url.URL {
	t.Helper()

	var errChan = make(chan error, 1)
	go func() {
		if err := cmd.Start(t.Context(), config); err != nil {
			errChan <- err
		}
	}()

	internalBaseURL := &url.URL{Scheme: "http", Host: config.HTTP.InternalInterface.Listener}
	doneChan, timeoutChan := test.WaitForHTTPStatus(internalBaseURL.JoinPath("status").String(), http.StatusOK)
	select {
	case err := <-errChan:
		t.Fatalf("failed to start service: %v", err)
	case <-doneChan:
		t.Log("Service started successfully")
	case err := <-timeoutChan:
		t.Fatalf("timeout waiting for service to start: %v", err)
	}
	return &url.URL{Scheme: "http", Host: config.HTTP.PublicInterface.Listener}
}
