package http

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	charsetpkg "golang.org/x/net/html/charset"
	"golang.org/x/time/rate"
)

const tracerName = "cep-api/pkg/http"

// Client represents an HTTP client with configuration options.
type Client struct {
	baseURL            string
	client             *http.Client
	defaultHeaders     map[string]string
	defaultContentType string
	backoff            *BackoffConfig
	logger             HTTPLogger
	limiter            *rate.Limiter
	tracer             trace.Tracer
}

// ClientOptions represents the configuration options for the HTTP client.
type ClientOptions struct {
	FollowRedirect      bool
	DefaultHeaders      map[string]string
	DefaultContentType  string
	MaxIdleConns        int
	MaxIdleConnsPerHost int
	IdleConnTimeout     time.Duration
	ConnectionTimeout   time.Duration
	ReadTimeout         time.Duration

	// Backoff is used by requests that don't set their own.
	Backoff *BackoffConfig
	Logger  HTTPLogger

	// RequestsPerSecond enables a client side limiter when positive.
	RequestsPerSecond float64
	Burst             int
}

// NewHttpClient creates a new HTTP client with the given base URL and configuration options.
func NewHttpClient(baseURL string, opts ClientOptions) *Client {
	if opts.MaxIdleConns == 0 {
		opts.MaxIdleConns = 200
	}
	if opts.MaxIdleConnsPerHost == 0 {
		opts.MaxIdleConnsPerHost = 20
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 60 * time.Second
	}
	if opts.ConnectionTimeout == 0 {
		opts.ConnectionTimeout = 60 * time.Second
	}
	if opts.DefaultContentType == "" {
		opts.DefaultContentType = "application/json"
	}
	if opts.Logger == nil {
		opts.Logger = noopLogger{}
	}

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        opts.MaxIdleConns,
		MaxIdleConnsPerHost: opts.MaxIdleConnsPerHost,
		IdleConnTimeout:     opts.IdleConnTimeout,
		DialContext: (&net.Dialer{
			Timeout: opts.ConnectionTimeout,
		}).DialContext,
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   opts.ReadTimeout,
	}

	if !opts.FollowRedirect {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}

	return &Client{
		baseURL:            strings.TrimRight(baseURL, "/"),
		client:             client,
		defaultHeaders:     opts.DefaultHeaders,
		defaultContentType: opts.DefaultContentType,
		backoff:            opts.Backoff,
		logger:             opts.Logger,
		limiter:            limiter,
		tracer:             otel.Tracer(tracerName),
	}
}

// Request creates a new Request object for the client.
func (hc *Client) Request() *Request {
	return NewHttpClientRequest(hc)
}

// BaseURL returns the normalized base URL.
func (hc *Client) BaseURL() string {
	return hc.baseURL
}

// doRequestWithBackoff runs the request attempts, retrying transport failures with a linear
// backoff. Non-2xx responses and decode failures are returned right away.
func (hc *Client) doRequestWithBackoff(ctx context.Context, method, path string, queryParams map[string]string, headers map[string]string, body any, successResp any, errorResp any, backoff *BackoffConfig) (any, any, int, error) {
	if backoff == nil {
		backoff = hc.backoff
	}
	cfg := backoff.withDefaults()

	fullURL := hc.buildURL(path)
	if len(queryParams) > 0 {
		fullURL += "?" + buildQueryString(queryParams)
	}

	bodyBytes, contentType, err := hc.encodeBody(body)
	if err != nil {
		return nil, nil, 0, err
	}

	ctx, span := hc.tracer.Start(ctx, "HTTP "+method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.full", fullURL),
			attribute.Int("http.request.max_attempts", cfg.Attempts),
		))
	defer span.End()

	var lastErr error
	for attempt := 1; attempt <= cfg.Attempts; attempt++ {
		if hc.limiter != nil {
			if err := hc.limiter.Wait(ctx); err != nil {
				lastErr = &TransportError{Method: method, URL: fullURL, Err: err}
				break
			}
		}

		start := time.Now()
		succ, errResp, status, err := hc.doAttempt(ctx, cfg.Timeout, method, fullURL, headers, bodyBytes, contentType, successResp, errorResp)
		span.SetAttributes(attribute.Int("http.request.attempts", attempt))

		var transportErr *TransportError
		if err == nil || !errors.As(err, &transportErr) {
			if status > 0 {
				span.SetAttributes(attribute.Int("http.response.status_code", status))
			}
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}
			return succ, errResp, status, err
		}

		lastErr = err
		if attempt == cfg.Attempts {
			break
		}

		hc.logger.LogRequestRetry(method, fullURL, headers, string(bodyBytes), 0, "", time.Since(start).Milliseconds(), err, attempt, cfg.Attempts-1)
		if waitErr := cfg.Wait(ctx, cfg.Delay(attempt)); waitErr != nil {
			break
		}
	}

	span.RecordError(lastErr)
	span.SetStatus(codes.Error, lastErr.Error())
	return nil, nil, 0, lastErr
}

// doAttempt sends a single request bounded by timeout (when positive).
func (hc *Client) doAttempt(ctx context.Context, timeout time.Duration, method, fullURL string, headers map[string]string, body []byte, contentType string, successResp any, errorResp any) (any, any, int, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("failed to build request: %w", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range hc.defaultHeaders {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	hc.logger.LogRequest(method, fullURL, headers, string(body))
	start := time.Now()

	resp, err := hc.client.Do(req)
	if err != nil {
		transportErr := &TransportError{Method: method, URL: fullURL, Err: err}
		hc.logger.LogResponseError(method, fullURL, headers, string(body), 0, "", time.Since(start).Milliseconds(), transportErr)
		return nil, nil, 0, transportErr
	}
	defer func() { _ = resp.Body.Close() }()

	// Read the Response
	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		transportErr := &TransportError{Method: method, URL: fullURL, Err: err}
		hc.logger.LogResponseError(method, fullURL, headers, string(body), resp.StatusCode, "", time.Since(start).Milliseconds(), transportErr)
		return nil, nil, 0, transportErr
	}
	latency := time.Since(start).Milliseconds()

	// Determine response content type
	respContentType := resp.Header.Get("Content-Type")
	if respContentType == "" {
		respContentType = hc.defaultContentType
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		hc.logger.LogResponseSuccess(method, fullURL, headers, string(body), resp.StatusCode, string(respBytes), latency)
		if successResp != nil {
			if err := hc.unmarshalResponse(respBytes, respContentType, successResp); err != nil {
				return nil, nil, resp.StatusCode, fmt.Errorf("failed to decode response body: %w", err)
			}
		}
		return successResp, nil, resp.StatusCode, nil
	}

	statusErr := &StatusError{Method: method, URL: fullURL, StatusCode: resp.StatusCode, Body: string(respBytes)}
	hc.logger.LogResponseError(method, fullURL, headers, string(body), resp.StatusCode, string(respBytes), latency, statusErr)

	if errorResp != nil {
		// the status is what callers act on; an undecodable error body is left empty
		if err := hc.unmarshalResponse(respBytes, respContentType, errorResp); err != nil {
			errorResp = nil
		}
	}

	return nil, errorResp, resp.StatusCode, statusErr
}

// encodeBody serializes the request body once so every attempt can replay it.
func (hc *Client) encodeBody(body any) ([]byte, string, error) {
	if body == nil {
		return nil, "", nil
	}

	switch body := body.(type) {
	case string:
		return []byte(body), "text/plain", nil
	case []byte:
		return body, "application/octet-stream", nil
	}

	switch hc.defaultContentType {
	case "application/xml":
		xmlBody, err := xml.Marshal(body)
		if err != nil {
			return nil, "", fmt.Errorf("failed to marshal request body to XML: %w", err)
		}
		return xmlBody, "application/xml", nil
	case "text/plain":
		return []byte(fmt.Sprintf("%v", body)), "text/plain", nil
	default:
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, "", fmt.Errorf("failed to marshal request body to JSON: %w", err)
		}
		return jsonBody, "application/json", nil
	}
}

// unmarshalResponse unmarshals response body based on content type
func (hc *Client) unmarshalResponse(bodyBytes []byte, contentType string, target any) error {
	// Extract the main content type (remove charset and other parameters)
	mainContentType := strings.TrimSpace(strings.Split(contentType, ";")[0])

	switch mainContentType {
	case "application/xml", "text/xml":
		dec := xml.NewDecoder(bytes.NewReader(bodyBytes))
		dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
			return charsetpkg.NewReaderLabel(charset, input)
		}
		return dec.Decode(target)
	case "text/plain":
		if strPtr, ok := target.(*string); ok {
			*strPtr = string(bodyBytes)
			return nil
		}
		return json.Unmarshal(bodyBytes, target)
	case "application/octet-stream":
		if bytePtr, ok := target.(*[]byte); ok {
			*bytePtr = bodyBytes
			return nil
		}
		return json.Unmarshal(bodyBytes, target)
	default:
		return json.Unmarshal(bodyBytes, target)
	}
}

// buildURL builds a normalized URL by properly handling baseURL and path
func (hc *Client) buildURL(path string) string {
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return hc.baseURL + path
}

// buildQueryString builds a query string sorted by key, escaping values the way
// encodeURIComponent does (spaces become %20)
func buildQueryString(params map[string]string) string {
	if len(params) == 0 {
		return ""
	}

	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, escapeComponent(key)+"="+escapeComponent(params[key]))
	}

	return strings.Join(parts, "&")
}

func escapeComponent(value string) string {
	return strings.ReplaceAll(url.QueryEscape(value), "+", "%20")
}
