package patriot

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Fetcher is the remote surface the dashboard consumes. *Client implements it;
// tests substitute their own.
type Fetcher interface {
	FetchValidOptions(ctx context.Context, query OptionsQuery) (ValidOptions, error)
	FetchAggregatedPlayers(ctx context.Context, query PlayersQuery) ([]AggregatedPlayer, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// Client talks to the Patriot Center HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultAPIBase   = "127.0.0.1:8080"
	defaultUserAgent = "patriot/0.1"
	requestTimeout   = 10 * time.Second

	validOptionsPath      = "/valid-options"
	aggregatedPlayersPath = "/aggregated-players"
)

// NewClient builds a Client for the given host:port or URL.
func NewClient(apiBase string) (*Client, error) {
	base, err := parseBaseURL(apiBase)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// OptionsQuery is the partial selection sent to /valid-options. Empty fields
// are left out of the path.
type OptionsQuery struct {
	Year     string
	Week     int
	Manager  string
	Player   string
	Position string
}

// Segments returns the path segments in endpoint order.
func (q OptionsQuery) Segments() []string {
	return segments(q.Year, q.Week, q.Manager, q.Player, q.Position)
}

// PlayersQuery is the partial selection sent to /aggregated-players.
type PlayersQuery struct {
	Year    string
	Week    int
	Manager string
}

// Segments returns the path segments in endpoint order.
func (q PlayersQuery) Segments() []string {
	return segments(q.Year, q.Week, q.Manager, "", "")
}

// FetchValidOptions retrieves the legal filter values for a partial selection.
func (c *Client) FetchValidOptions(ctx context.Context, query OptionsQuery) (ValidOptions, error) {
	if c == nil {
		return ValidOptions{}, fmt.Errorf("client is nil")
	}
	var payload ValidOptions
	if err := c.do(ctx, http.MethodGet, joinPath(validOptionsPath, query.Segments()), &payload); err != nil {
		return ValidOptions{}, err
	}
	return payload, nil
}

// FetchAggregatedPlayers retrieves per-player totals for a partial selection.
func (c *Client) FetchAggregatedPlayers(ctx context.Context, query PlayersQuery) ([]AggregatedPlayer, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []AggregatedPlayer
	if err := c.do(ctx, http.MethodGet, joinPath(aggregatedPlayersPath, query.Segments()), &payload); err != nil {
		return nil, err
	}
	if payload == nil {
		payload = []AggregatedPlayer{}
	}
	return payload, nil
}

func (c *Client) do(ctx context.Context, method, escapedPath string, dest any) error {
	rel := &url.URL{Path: mustUnescape(escapedPath), RawPath: escapedPath}
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("api %s returned status %d", escapedPath, resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func segments(year string, week int, manager, player, position string) []string {
	var out []string
	if y := strings.TrimSpace(year); y != "" {
		out = append(out, y)
	}
	if week > 0 {
		out = append(out, strconv.Itoa(week))
	}
	for _, s := range []string{manager, player, position} {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func joinPath(base string, segs []string) string {
	var b strings.Builder
	b.WriteString(base)
	for _, s := range segs {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

func mustUnescape(escaped string) string {
	p, err := url.PathUnescape(escaped)
	if err != nil {
		return escaped
	}
	return p
}

func parseBaseURL(apiBase string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBase)
	if trimmed == "" {
		trimmed = defaultAPIBase
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api base %q: %w", apiBase, err)
	}
	u.Path = ""
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
