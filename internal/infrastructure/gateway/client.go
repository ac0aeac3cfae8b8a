// Package gateway is the typed HTTP client of the banking backend. Every
// exported method performs exactly one round trip and reports failures as
// *domain.Failure.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"github.com/99minutos/ebanking-console/internal/core/domain"
)

const (
	defaultTimeout = 15 * time.Second
	maxBodyBytes   = 4 << 20
)

// Options configures a Client.
type Options struct {
	BaseURL       string
	VersionPrefix string
	Timeout       time.Duration
	// Token supplies the bearer token of the current session.
	Token func() string
	// Transport is wrapped by the Authorizer; nil means http.DefaultTransport.
	Transport http.RoundTripper
	// OnFailure observes every classified failure.
	OnFailure func(*domain.Failure)
}

// scope picks the base path of an endpoint family.
type scope int

const (
	unversioned scope = iota
	versioned
)

// Client is shared by all gateways.
type Client struct {
	http      *http.Client
	base      string
	versioned string
	onFailure func(*domain.Failure)
	log       zerolog.Logger
}

func NewClient(opts Options, log zerolog.Logger) (*Client, error) {
	base := strings.TrimRight(opts.BaseURL, "/")
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("gateway: invalid base URL %q", opts.BaseURL)
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	prefix := strings.TrimRight(opts.VersionPrefix, "/")
	if prefix != "" && !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	return &Client{
		http: &http.Client{
			Timeout:   timeout,
			Transport: &Authorizer{Token: opts.Token, Next: opts.Transport},
		},
		base:      base,
		versioned: base + prefix,
		onFailure: opts.OnFailure,
		log:       log.With().Str("component", "gateway").Logger(),
	}, nil
}

// call describes one round trip.
type call struct {
	op     string
	scope  scope
	method string
	path   string
	query  url.Values
	body   any
	out    any
}

func (c *Client) endpoint(s scope, path string, query url.Values) string {
	base := c.base
	if s == versioned {
		base = c.versioned
	}
	u := base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (c *Client) do(ctx context.Context, in call) error {
	var body io.Reader
	if in.body != nil {
		b, err := json.Marshal(in.body)
		if err != nil {
			return c.fail(&domain.Failure{Op: in.op, Kind: domain.KindValidation, Err: fmt.Errorf("encode request: %w", err)})
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, in.method, c.endpoint(in.scope, in.path, in.query), body)
	if err != nil {
		return c.fail(&domain.Failure{Op: in.op, Kind: domain.KindTransport, Err: err})
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return c.fail(&domain.Failure{Op: in.op, Kind: domain.KindTransport, Err: err})
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return c.fail(&domain.Failure{Op: in.op, Kind: domain.KindTransport, Status: resp.StatusCode, Err: err})
	}

	c.log.Debug().
		Str("op", in.op).
		Str("method", in.method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Str("request_id", requestID).
		Msg("backend call")

	if resp.StatusCode >= http.StatusBadRequest {
		return c.fail(&domain.Failure{
			Op:      in.op,
			Kind:    domain.KindForStatus(resp.StatusCode),
			Status:  resp.StatusCode,
			Message: ServerMessage(raw),
		})
	}

	if in.out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, in.out); err != nil {
		return c.fail(&domain.Failure{Op: in.op, Kind: domain.KindDecode, Status: resp.StatusCode, Err: err})
	}
	return nil
}

func (c *Client) fail(f *domain.Failure) error {
	c.log.Warn().
		Str("op", f.Op).
		Str("kind", f.Kind.String()).
		Int("status", f.Status).
		Err(f.Err).
		Msg("backend call failed")
	if c.onFailure != nil {
		c.onFailure(f)
	}
	return f
}

// ServerMessage extracts the human-readable reason from an error body: the
// "message" field, else "error". Non-JSON bodies yield "".
func ServerMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	for _, field := range []string{"message", "error"} {
		v := gjson.GetBytes(body, field)
		if v.Type == gjson.String && strings.TrimSpace(v.Str) != "" {
			return v.Str
		}
	}
	return ""
}

func (c *Client) get(ctx context.Context, op string, s scope, path string, out any) error {
	return c.do(ctx, call{op: op, scope: s, method: http.MethodGet, path: path, out: out})
}

func (c *Client) post(ctx context.Context, op string, s scope, path string, body, out any) error {
	return c.do(ctx, call{op: op, scope: s, method: http.MethodPost, path: path, body: body, out: out})
}

func (c *Client) put(ctx context.Context, op string, s scope, path string, query url.Values, body, out any) error {
	return c.do(ctx, call{op: op, scope: s, method: http.MethodPut, path: path, query: query, body: body, out: out})
}

func (c *Client) delete(ctx context.Context, op string, s scope, path string, out any) error {
	return c.do(ctx, call{op: op, scope: s, method: http.MethodDelete, path: path, out: out})
}

// Ping checks that the backend answers at all; any HTTP status counts.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.base, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("ping backend: %w", err)
	}
	resp.Body.Close()
	return nil
}

func segment(s string) string { return url.PathEscape(s) }
