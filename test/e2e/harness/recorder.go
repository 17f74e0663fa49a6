package harness

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"net/http/httputil"
	"net/url"
	"sync"
	"testing"
)

// RecordedRequest is a request the service made to the FHIR server.
type RecordedRequest struct {
	Method        string
	Path          string
	Query         url.Values
	Authorization string
	StatusCode    int
}

// Recorder proxies requests to the FHIR server and records them, so tests can assert what the service fetched.
type Recorder struct {
	mux      sync.Mutex
	requests []RecordedRequest
}

func (r *Recorder) Requests() []RecordedRequest {
	r.mux.Lock()
	defer r.mux.Unlock()
	return append([]RecordedRequest(nil), r.requests...)
}

func (r *Recorder) Reset() {
	r.mux.Lock()
	defer r.mux.Unlock()
	r.requests = nil
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (s *statusRecorder) WriteHeader(statusCode int) {
	s.statusCode = statusCode
	s.ResponseWriter.WriteHeader(statusCode)
}

// startRecorder starts a proxy in front of the given FHIR server, returning the proxy's FHIR base URL.
func startRecorder(t *testing.T, backend *url.URL) (*Recorder, *url.URL) {
	recorder := &Recorder{}
	proxy := &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(&url.URL{Scheme: backend.Scheme, Host: backend.Host})
			pr.Out.Host = backend.Host
		},
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// POST searches carry their parameters in the body, which must still be forwarded
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))
		query := r.URL.Query()
		if values, err := url.ParseQuery(string(body)); err == nil && r.Method == http.MethodPost {
			for key, value := range values {
				query[key] = append(query[key], value...)
			}
		}
		response := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		proxy.ServeHTTP(response, r)

		recorder.mux.Lock()
		defer recorder.mux.Unlock()
		recorder.requests = append(recorder.requests, RecordedRequest{
			Method:        r.Method,
			Path:          r.URL.Path,
			Query:         query,
			Authorization: r.Header.Get("Authorization"),
			StatusCode:    response.statusCode,
		})
	}))
	t.Cleanup(server.Close)
	baseURL, _ := url.Parse(server.URL)
	return recorder, baseURL.JoinPath(backend.Path)
}
