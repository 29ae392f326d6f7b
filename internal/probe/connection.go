// Package probe opens a single connection to a URL and exposes the response
// headers for diagnostics.
package probe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/elsbrock/dltime/internal/log"
)

// DefaultConnectTimeout bounds how long dialing the server may take
const DefaultConnectTimeout = 5 * time.Second

// State is the lifecycle state of a Connection
type State int32

const (
	StateUnconnected State = iota
	StateConnected
)

// String returns a string representation of the state
func (s State) String() string {
	switch s {
	case StateUnconnected:
		return "Unconnected"
	case StateConnected:
		return "Connected"
	default:
		return "Unknown"
	}
}

// Option configures a Connection
type Option func(*Connection)

// WithConnectTimeout overrides DefaultConnectTimeout
func WithConnectTimeout(d time.Duration) Option {
	return func(c *Connection) {
		c.connectTimeout = d
	}
}

// WithHTTPClient replaces the client used to send the request. The connect
// timeout is not applied to a client supplied this way.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Connection) {
		c.client = client
	}
}

// Connection is a one-shot request to a URL. It starts out unconnected;
// headers can only be read after Connect succeeds.
type Connection struct {
	url            string
	connectTimeout time.Duration
	client         *http.Client

	state         State
	statusCode    int
	contentLength int64
	header        http.Header
}

// New creates an unconnected Connection to rawURL
func New(rawURL string, opts ...Option) *Connection {
	c := &Connection{
		url:            rawURL,
		connectTimeout: DefaultConnectTimeout,
		state:          StateUnconnected,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Dial creates a Connection to rawURL and connects it
func Dial(ctx context.Context, rawURL string, opts ...Option) (*Connection, error) {
	c := New(rawURL, opts...)
	if err := c.Connect(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// URL returns the URL the connection was created for
func (c *Connection) URL() string {
	return c.url
}

// State returns the current lifecycle state
func (c *Connection) State() State {
	return c.state
}

// StatusCode returns the HTTP status of the response, 0 before Connect
func (c *Connection) StatusCode() int {
	return c.statusCode
}

// Connect sends the request and records the response headers. Responses are
// never served from a cache and nothing is retried.
func (c *Connection) Connect(ctx context.Context) error {
	u, err := url.Parse(c.url)
	if err != nil {
		return NewMalformedURLError(c.url, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return NewMalformedURLError(c.url, fmt.Errorf("unsupported protocol %q", u.Scheme))
	}
	if u.Host == "" {
		return NewMalformedURLError(c.url, errors.New("missing host"))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return NewMalformedURLError(c.url, err)
	}
	req.Header.Set("User-Agent", "dltime/1.0")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	log.Debug("probe").
		Str("url", c.url).
		Dur("connect_timeout", c.connectTimeout).
		Msg("Connecting")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return NewIOError(c.url, err)
	}
	// Only the headers are of interest
	resp.Body.Close()

	c.statusCode = resp.StatusCode
	c.contentLength = resp.ContentLength
	c.header = resp.Header.Clone()
	c.state = StateConnected

	log.Debug("probe").
		Str("url", c.url).
		Int("status", resp.StatusCode).
		Int("header_count", len(resp.Header)).
		Msg("Connected")

	return nil
}

// httpClient returns the configured client or builds a single-use one with
// the connect timeout applied to dialing only
func (c *Connection) httpClient() *http.Client {
	if c.client != nil {
		return c.client
	}
	dialer := &net.Dialer{Timeout: c.connectTimeout}
	// Without DisableCompression the transport would ask for gzip and then
	// drop Content-Encoding and Content-Length from the reported headers
	return &http.Client{
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			DialContext:         dialer.DialContext,
			TLSHandshakeTimeout: c.connectTimeout,
			DisableKeepAlives:   true,
			DisableCompression:  true,
		},
	}
}

// Headers returns the response headers, keyed by canonical header name,
// with values in the order the server sent them
func (c *Connection) Headers() (http.Header, error) {
	if c.state != StateConnected {
		return nil, NewNotConnectedError(c.url)
	}
	return c.header, nil
}

// ContentLength returns the Content-Length the server reported, or -1 when
// it did not send a usable one
func (c *Connection) ContentLength() (int64, error) {
	if c.state != StateConnected {
		return 0, NewNotConnectedError(c.url)
	}
	return c.contentLength, nil
}

// PrintHeaders writes headers to w, one name per line followed by its values,
// sorted by name
func PrintHeaders(w io.Writer, headers http.Header) error {
	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}
	sort.Strings(names)

	if _, err := fmt.Fprintln(w, "======Header:======"); err != nil {
		return err
	}
	for _, name := range names {
		if _, err := fmt.Fprintf(w, "-%s\n", name); err != nil {
			return err
		}
		for _, v := range headers[name] {
			if _, err := fmt.Fprintf(w, "  > %s\n", v); err != nil {
				return err
			}
		}
	}
	return nil
}
