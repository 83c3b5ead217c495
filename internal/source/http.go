package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/thirddot45/sftrails/internal/domain"
)

// DefaultHTTPTimeout bounds each request made by an HTTPSource.
const DefaultHTTPTimeout = 30 * time.Second

// HTTPStatusError is the cause recorded in a DataFetchError when the remote
// API answers with an unexpected status code.
type HTTPStatusError struct {
	StatusCode int
	URL        string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}

// HTTPSource reads trails from a remote REST API exposing
// GET /trails and GET /trails/{id}.
//
// The underlying *http.Client is created on first use and shared by every
// call on the source. Close releases it; the next call creates a new one.
type HTTPSource struct {
	baseURL   string
	timeout   time.Duration
	transport http.RoundTripper
	limiter   *rate.Limiter

	mu     sync.Mutex
	client *http.Client
}

// HTTPOption configures an HTTPSource.
type HTTPOption func(*HTTPSource)

// WithTimeout sets the per-request timeout. Zero disables the client timeout.
func WithTimeout(d time.Duration) HTTPOption {
	return func(s *HTTPSource) { s.timeout = d }
}

// WithRateLimit caps outbound requests at rps per second with the given burst.
// A non-positive rps leaves requests unthrottled.
func WithRateLimit(rps float64, burst int) HTTPOption {
	return func(s *HTTPSource) {
		if rps <= 0 {
			s.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithTransport sets the RoundTripper used by the lazily created client.
// By default each client gets its own clone of http.DefaultTransport.
func WithTransport(rt http.RoundTripper) HTTPOption {
	return func(s *HTTPSource) { s.transport = rt }
}

// NewHTTPSource constructs an HTTPSource for the API rooted at baseURL.
// No connection is made until the first fetch.
func NewHTTPSource(baseURL string, opts ...HTTPOption) *HTTPSource {
	s := &HTTPSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: DefaultHTTPTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FetchAll issues GET /trails.
func (s *HTTPSource) FetchAll(ctx context.Context) ([]domain.Record, error) {
	resp, err := s.get(ctx, "/trails")
	if err != nil {
		return nil, domain.NewDataFetchError("failed to fetch trails", err)
	}
	defer resp.Body.Close()

	if !successful(resp.StatusCode) {
		return nil, domain.NewDataFetchError("failed to fetch trails", statusError(resp))
	}

	recs, err := decodeRecordList(resp.Body)
	if err != nil {
		return nil, domain.NewDataFetchError("failed to fetch trails", err)
	}
	return recs, nil
}

// FetchOne issues GET /trails/{id}. A 404 reports the trail as absent.
func (s *HTTPSource) FetchOne(ctx context.Context, id string) (domain.Record, bool, error) {
	resp, err := s.get(ctx, "/trails/"+url.PathEscape(id))
	if err != nil {
		return nil, false, domain.NewDataFetchError("failed to fetch trail "+id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, false, nil
	}
	if !successful(resp.StatusCode) {
		return nil, false, domain.NewDataFetchError("failed to fetch trail "+id, statusError(resp))
	}

	rec, err := decodeRecord(resp.Body)
	if err != nil {
		return nil, false, domain.NewDataFetchError("failed to fetch trail "+id, err)
	}
	return rec, true, nil
}

// Close releases the shared client and its idle connections.
// It is safe to call more than once and safe to keep using the source after.
func (s *HTTPSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client == nil {
		return nil
	}
	s.client.CloseIdleConnections()
	s.client = nil
	return nil
}

// httpClient returns the shared client, creating it if needed.
func (s *HTTPSource) httpClient() *http.Client {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client == nil {
		rt := s.transport
		if rt == nil {
			rt = http.DefaultTransport.(*http.Transport).Clone()
		}
		s.client = &http.Client{Transport: rt, Timeout: s.timeout}
	}
	return s.client
}

func (s *HTTPSource) get(ctx context.Context, path string) (*http.Response, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", outboundRequestID(ctx))

	return s.httpClient().Do(req)
}

// outboundRequestID propagates the inbound request ID set by chi's RequestID
// middleware, or generates one when the call did not originate from a request.
func outboundRequestID(ctx context.Context) string {
	if id := chimiddleware.GetReqID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}

func successful(code int) bool {
	return code >= 200 && code < 300
}

func statusError(resp *http.Response) error {
	_, _ = io.Copy(io.Discard, resp.Body)
	return &HTTPStatusError{StatusCode: resp.StatusCode, URL: resp.Request.URL.String()}
}
