package vision

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Complete(t *testing.T) {
	t.Run("returns raw body on success", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "POST", r.Method)
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			assert.Contains(t, string(body), `"model"`)

			w.Write([]byte(`{"choices":[{"message":{"content":"{}"}}]}`))
		}))
		defer ts.Close()

		client := NewClient("test-key", ts.URL)
		body, err := client.Complete(context.Background(), BuildRequest("aW1n"))

		require.NoError(t, err)
		assert.Equal(t, `{"choices":[{"message":{"content":"{}"}}]}`, string(body))
	})

	t.Run("non-2xx yields HTTPError with captured body", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":"rate limited"}`))
		}))
		defer ts.Close()

		client := NewClient("test-key", ts.URL)
		_, err := client.Complete(context.Background(), BuildRequest("aW1n"))

		var httpErr *HTTPError
		require.True(t, errors.As(err, &httpErr))
		assert.Equal(t, http.StatusTooManyRequests, httpErr.StatusCode)
		assert.Contains(t, httpErr.Body, "rate limited")
	})

	t.Run("2xx with empty body yields EmptyResponseError", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer ts.Close()

		client := NewClient("test-key", ts.URL)
		_, err := client.Complete(context.Background(), BuildRequest("aW1n"))

		var emptyErr *EmptyResponseError
		assert.True(t, errors.As(err, &emptyErr))
	})

	t.Run("unreachable endpoint yields TransportError", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		ts.Close() // shut down before the call

		client := NewClient("test-key", ts.URL)
		_, err := client.Complete(context.Background(), BuildRequest("aW1n"))

		var transportErr *TransportError
		require.True(t, errors.As(err, &transportErr))
		assert.NotNil(t, transportErr.Unwrap())
	})

	t.Run("exactly one attempt per call", func(t *testing.T) {
		attempts := 0
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			attempts++
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer ts.Close()

		client := NewClient("test-key", ts.URL)
		_, err := client.Complete(context.Background(), BuildRequest("aW1n"))

		assert.Error(t, err)
		assert.Equal(t, 1, attempts)
	})
}
