package tracing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponent(t *testing.T) {
	t.Run("disabled without OTLP endpoint", func(t *testing.T) {
		instance := New(Config{})

		require.NoError(t, instance.Start())
		assert.Nil(t, instance.tracerProvider)
		require.NoError(t, instance.Stop(context.Background()))
	})
	t.Run("default service name", func(t *testing.T) {
		instance := New(Config{})

		assert.Equal(t, "cds-hooks-ice", instance.config.ServiceName)
	})
}

func TestWrapTransport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()
	client := &http.Client{Transport: WrapTransport(nil)}

	httpResponse, err := client.Get(server.URL)

	require.NoError(t, err)
	defer httpResponse.Body.Close()
	assert.Equal(t, http.StatusNoContent, httpResponse.StatusCode)
}
