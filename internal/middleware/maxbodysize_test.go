package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thirddot45/sftrails/internal/middleware"
)

// drainHandler reads the whole body and answers 413 when the read is cut off.
var drainHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	if _, err := io.ReadAll(r.Body); err != nil {
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		return
	}
	w.WriteHeader(http.StatusOK)
})

func TestMaxBodySizeHandler(t *testing.T) {
	const limit = 64

	cases := []struct {
		name          string
		size          int
		contentLength int64 // -1 for a body of unknown length
		reached       bool
		want          int
	}{
		{name: "no body", size: 0, contentLength: 0, reached: true, want: http.StatusOK},
		{name: "within limit", size: limit, contentLength: limit, reached: true, want: http.StatusOK},
		{name: "declared too large", size: limit + 1, contentLength: limit + 1, reached: false, want: http.StatusRequestEntityTooLarge},
		{name: "unknown length within limit", size: limit, contentLength: -1, reached: true, want: http.StatusOK},
		{name: "unknown length too large", size: 4 * limit, contentLength: -1, reached: true, want: http.StatusRequestEntityTooLarge},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reached := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				reached = true
				drainHandler.ServeHTTP(w, r)
			})
			h := middleware.NewMaxBodySizeHandler(limit)(next)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/trails", strings.NewReader(strings.Repeat("x", tc.size)))
			req.ContentLength = tc.contentLength
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tc.want, rec.Code)
			assert.Equal(t, tc.reached, reached)
		})
	}
}
