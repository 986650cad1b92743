// Package network performs the HTTP requests publisher adapters depend on.
//
// Adapters only see the Transport interface. The HTTP implementation adds the
// configured User-Agent, optional browser TLS impersonation and a polite rate limit.
package network

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/mediathek-cli/mediathek/constant"
	"github.com/mediathek-cli/mediathek/key"
	"github.com/mediathek-cli/mediathek/log"
	"github.com/mediathek-cli/mediathek/source"
	"github.com/spf13/viper"
	"golang.org/x/time/rate"
)

// Response is the outcome of a request that reached the server.
type Response struct {
	StatusCode int
	Body       string
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Transport fetches a URL with extra headers.
type Transport interface {
	Request(ctx context.Context, url string, headers map[string]string) (*Response, error)
}

// Options configure an HTTP transport.
type Options struct {
	Timeout            time.Duration
	UserAgent          string
	RequestsPerSecond  float64
	ImpersonateBrowser bool
}

// HTTP is the production Transport.
type HTTP struct {
	client    *http.Client
	limiter   *rate.Limiter
	userAgent string
}

// New builds an HTTP transport.
func New(opts Options) *HTTP {
	if opts.Timeout <= 0 {
		opts.Timeout = time.Minute
	}
	if opts.UserAgent == "" {
		opts.UserAgent = constant.UserAgent
	}

	var rt http.RoundTripper = newTransport()
	if opts.ImpersonateBrowser {
		rt = newBrowserTransport(opts.Timeout)
	}

	h := &HTTP{
		client:    &http.Client{Timeout: opts.Timeout, Transport: rt},
		userAgent: opts.UserAgent,
	}
	if opts.RequestsPerSecond > 0 {
		h.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}
	return h
}

// FromConfig builds an HTTP transport from the network.* settings.
func FromConfig() *HTTP {
	return New(Options{
		Timeout:            time.Duration(viper.GetInt(key.NetworkTimeout)) * time.Second,
		UserAgent:          viper.GetString(key.NetworkUserAgent),
		RequestsPerSecond:  viper.GetFloat64(key.NetworkRequestsPerSecond),
		ImpersonateBrowser: viper.GetBool(key.NetworkImpersonateBrowser),
	})
}

// Request performs a GET. Any non-nil error is a NetworkError; HTTP error statuses are
// returned as a Response for the caller to classify.
func (h *HTTP) Request(ctx context.Context, url string, headers map[string]string) (*Response, error) {
	if h.limiter != nil {
		if err := h.limiter.Wait(ctx); err != nil {
			return nil, source.Fail(source.NetworkError, url, "rate limit: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, source.Fail(source.NetworkError, url, "create request: %w", err)
	}
	req.Header.Set("User-Agent", h.userAgent)
	for k, v := range headers {
		if k == "Host" {
			req.Host = v
			continue
		}
		req.Header.Set(k, v)
	}

	started := time.Now()
	resp, err := h.client.Do(req)
	if err != nil {
		log.WithFields(log.Fields{"url": url}).Warnf("request failed: %v", err)
		return nil, source.Fail(source.NetworkError, url, "request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, source.Fail(source.NetworkError, url, "read body: %w", err)
	}

	log.WithFields(log.Fields{
		"url":      url,
		"status":   resp.StatusCode,
		"bytes":    len(body),
		"duration": time.Since(started).String(),
	}).Debug("request done")

	return &Response{StatusCode: resp.StatusCode, Body: string(body)}, nil
}

// Get performs a request and fails with a NetworkError unless the status is 2xx.
func Get(ctx context.Context, t Transport, url string, headers map[string]string) (string, error) {
	resp, err := t.Request(ctx, url, headers)
	if err != nil {
		return "", source.Wrap(source.NetworkError, url, err)
	}
	if !resp.OK() {
		return "", source.Fail(source.NetworkError, url, "unexpected status %d", resp.StatusCode)
	}
	return resp.Body, nil
}

// GetJSON is Get followed by decoding the body into v. An undecodable body is a
// ParseError.
func GetJSON(ctx context.Context, t Transport, url string, headers map[string]string, v any) error {
	body, err := Get(ctx, t, url, headers)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(body), v); err != nil {
		return source.Fail(source.ParseError, url, "decode: %w", err)
	}
	return nil
}

// newTransport clones the default transport with pool limits suited to
// sequential API crawling.
func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 10
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	t.ExpectContinueTimeout = 30 * time.Second
	return t
}

var _ Transport = (*HTTP)(nil)
