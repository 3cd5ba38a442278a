// Package catalog talks to the label endpoint: it reads the label catalog and
// writes a ticket's label selection back.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/thenoetrevino/labelpick/internal/models"
	"golang.org/x/net/publicsuffix"
)

const (
	// DefaultCSRFCookie is the cookie holding the anti-forgery token
	DefaultCSRFCookie = "csrftoken"

	// CSRFHeader carries the token on write requests
	CSRFHeader = "X-CSRFToken"
)

// Config configures a Client
type Config struct {
	URL        string
	CSRFCookie string
	Timeout    time.Duration
	HTTPClient *http.Client // optional; its Jar is replaced when nil
}

// Client reads and writes labels against a single endpoint URL.
// Cookies live in the client's jar, so only cookies scoped to the endpoint's
// origin are ever sent.
type Client struct {
	url        *url.URL
	csrfCookie string
	httpClient *http.Client
}

// StatusError is returned when the catalog read answers with a non-2xx status
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("label catalog error %d: %s", e.StatusCode, e.Body)
}

// NewClient validates the config and builds a Client with a cookie jar.
func NewClient(cfg Config) (*Client, error) {
	raw := strings.TrimSpace(cfg.URL)
	if raw == "" {
		return nil, models.ErrMissingURL
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported url scheme %q", u.Scheme)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = cleanhttp.DefaultPooledClient()
	}
	if cfg.Timeout > 0 {
		httpClient.Timeout = cfg.Timeout
	}
	if httpClient.Jar == nil {
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, fmt.Errorf("create cookie jar: %w", err)
		}
		httpClient.Jar = jar
	}

	cookie := cfg.CSRFCookie
	if cookie == "" {
		cookie = DefaultCSRFCookie
	}

	return &Client{
		url:        u,
		csrfCookie: cookie,
		httpClient: httpClient,
	}, nil
}

// URL returns the endpoint URL.
func (c *Client) URL() string {
	return c.url.String()
}

// SetCSRFToken stores a token in the jar as if the server had set the cookie.
func (c *Client) SetCSRFToken(token string) {
	c.httpClient.Jar.SetCookies(c.url, []*http.Cookie{{
		Name:  c.csrfCookie,
		Value: token,
		Path:  "/",
	}})
}

// CSRFToken returns the token from the jar for the endpoint.
func (c *Client) CSRFToken() (string, error) {
	for _, ck := range c.httpClient.Jar.Cookies(c.url) {
		if ck.Name == c.csrfCookie {
			return ck.Value, nil
		}
	}
	return "", fmt.Errorf("%w: %s", models.ErrCSRFCookieMissing, c.csrfCookie)
}

// FetchLabels performs the catalog read and decodes the label array.
func (c *Client) FetchLabels(ctx context.Context) ([]models.Label, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("perform request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var labels []models.Label
	if err := json.Unmarshal(body, &labels); err != nil {
		return nil, fmt.Errorf("decode labels: %w", err)
	}
	return labels, nil
}

// SaveTicketLabels posts the ticket's label ids. The response status is
// returned as-is and not interpreted; only transport failures are errors.
func (c *Client) SaveTicketLabels(ctx context.Context, ticket int, labels []int) (int, error) {
	token, err := c.CSRFToken()
	if err != nil {
		return 0, err
	}

	if labels == nil {
		labels = []int{}
	}
	b, err := json.Marshal(models.TicketLabels{Ticket: ticket, Labels: labels})
	if err != nil {
		return 0, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url.String(), bytes.NewReader(b))
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(CSRFHeader, token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("perform request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))

	return resp.StatusCode, nil
}
