package footballdata

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/matchcentre/internal/platform/logging"
	"github.com/riskibarqy/matchcentre/internal/platform/resilience"
	"github.com/riskibarqy/matchcentre/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

const (
	defaultBaseURL      = "https://api.football-data.org/v4"
	authHeader          = "X-Auth-Token"
	maxResponseBytes    = 6 << 20
	maxRetryAfterWait   = 30 * time.Second
	defaultRetryBackoff = time.Second
)

var errTransient = crerr.New("football-data transient failure")

// errUpstreamNotFound marks a 404 so single-entity lookups can report absence.
var errUpstreamNotFound = crerr.New("football-data resource not found")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Token          string
	Timeout        time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads competitions, clubs and matches from the football-data.org v4
// REST API. Identical concurrent requests share one upstream call.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	token        string
	maxRetries   int
	retryBackoff time.Duration
	logger       *logging.Logger
	breaker      *resilience.CircuitBreaker
	flight       resilience.SingleFlight
}

func NewClient(cfg ClientConfig) (*Client, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	rawBaseURL := cfg.BaseURL
	if strings.TrimSpace(rawBaseURL) == "" {
		rawBaseURL = defaultBaseURL
	}
	baseURL, err := validateHTTPBaseURL(rawBaseURL)
	if err != nil {
		return nil, crerr.Wrap(err, "invalid FOOTBALLDATA_BASE_URL")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 15 * time.Second
	}
	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = defaultRetryBackoff
	}

	return &Client{
		httpClient:   httpClient,
		baseURL:      baseURL,
		token:        strings.TrimSpace(cfg.Token),
		maxRetries:   max(cfg.MaxRetries, 0),
		retryBackoff: backoff,
		logger:       logger.With("component", "footballdata"),
		breaker:      resilience.NewCircuitBreakerFromConfig(cfg.CircuitBreaker),
	}, nil
}

// doJSON fetches path with query and decodes the body into target.
func (c *Client) doJSON(ctx context.Context, path string, query url.Values, target any) error {
	if err := c.breaker.Allow(); err != nil {
		c.logger.WarnContext(ctx, "football-data circuit breaker rejected request", "state", c.breaker.State(), "path", path)
		return fmt.Errorf("%w: football data provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}

	requestKey := buildRequestKey(path, query)
	out, err, shared := c.flight.DoContext(ctx, requestKey, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, c.baseURL+requestKey)
		switch {
		case reqErr == nil:
			c.breaker.RecordSuccess()
		case stderrors.Is(reqErr, errTransient):
			c.breaker.RecordFailure()
		default:
			c.breaker.RecordSuccess()
		}
		return raw, reqErr
	})
	if err != nil {
		return classify(err)
	}
	if shared {
		c.logger.DebugContext(ctx, "football-data request shared", "path", path)
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode football-data payload path=%s: %w", path, err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")
		if c.token != "" {
			req.Header.Set(authHeader, c.token)
		}

		wait := time.Duration(attempt+1) * c.retryBackoff
		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = fmt.Errorf("%w: send request: %s", errTransient, sanitizeSensitiveText(err.Error(), c.token))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case resp.StatusCode == http.StatusNotFound:
				return nil, fmt.Errorf("%w: %s", errUpstreamNotFound, abbreviateBody(raw))
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errTransient, resp.StatusCode, abbreviateBody(raw))
				if retryAfter, ok := parseRetryAfter(resp.Header); ok {
					wait = retryAfter
				}
			default:
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		c.logger.DebugContext(ctx, "football-data request retry", "attempt", attempt+1, "wait", wait, "error", lastErr)
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("%w: provider request failed", errTransient)
	}
	c.logger.WarnContext(ctx, "football-data request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

// classify maps transport failures onto the usecase error taxonomy.
func classify(err error) error {
	switch {
	case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		return err
	case stderrors.Is(err, errUpstreamNotFound):
		return fmt.Errorf("%w: %w", usecase.ErrNotFound, err)
	default:
		return fmt.Errorf("%w: %w", usecase.ErrDependencyUnavailable, err)
	}
}

func buildRequestKey(path string, query url.Values) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString("/")
	_, _ = buf.WriteString(strings.TrimLeft(path, "/"))

	keys := make([]string, 0, len(query))
	for key, values := range query {
		if len(values) == 0 || strings.TrimSpace(values[0]) == "" {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for i, key := range keys {
		if i == 0 {
			_ = buf.WriteByte('?')
		} else {
			_ = buf.WriteByte('&')
		}
		_, _ = buf.WriteString(url.QueryEscape(key))
		_ = buf.WriteByte('=')
		_, _ = buf.WriteString(url.QueryEscape(strings.TrimSpace(query.Get(key))))
	}
	return buf.String()
}

func validateHTTPBaseURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", crerr.New("value is empty")
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", crerr.Wrapf(err, "parse %q", candidate)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("%q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", crerr.Newf("%q has empty host", candidate)
	}

	return strings.TrimRight(candidate, "/"), nil
}

// parseRetryAfter reads the provider's throttling hints in seconds.
func parseRetryAfter(header http.Header) (time.Duration, bool) {
	for _, name := range []string{"Retry-After", "X-RequestCounter-Reset"} {
		value := strings.TrimSpace(header.Get(name))
		if value == "" {
			continue
		}
		seconds, err := strconv.Atoi(value)
		if err != nil || seconds < 0 {
			continue
		}
		wait := time.Duration(seconds) * time.Second
		if wait > maxRetryAfterWait {
			wait = maxRetryAfterWait
		}
		return wait, true
	}
	return 0, false
}

func sanitizeSensitiveText(value, token string) string {
	value = strings.TrimSpace(value)
	if value == "" || token == "" {
		return value
	}
	return strings.ReplaceAll(value, token, "REDACTED")
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
