// Package test provides helpers shared by the test suites.
package test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// TmpFile returns the path to a unique file to be used in tests.
func TmpFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), uuid.New().String())
}

// Request is a helper method to simplify making a HTTP request for tests.
func Request(t *testing.T, handler http.Handler, method, url string, body any, headers ...map[string]string) httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		encoded, err := json.Marshal(b)
		require.NoError(t, err, "request body could not be encoded")
		reader = bytes.NewBuffer(encoded)
	}

	recorder := httptest.NewRecorder()
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	for _, h := range headers {
		for k, v := range h {
			req.Header.Set(k, v)
		}
	}

	handler.ServeHTTP(recorder, req)

	return *recorder
}

// DecodeResponse parses a recorded response body into target.
func DecodeResponse(t *testing.T, r *httptest.ResponseRecorder, target any) {
	t.Helper()

	require.NoError(t, json.NewDecoder(r.Body).Decode(target), "response could not be decoded: %s", r.Body.String())
}
