package patriot

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" {
		t.Fatalf("scheme = %q, want http", u.Scheme)
	}
	if u.Host != defaultAPIBase {
		t.Fatalf("host = %q, want %q", u.Host, defaultAPIBase)
	}

	u, err = parseBaseURL("https://example.com:1234/api?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func TestSegments_SkipAbsentParts(t *testing.T) {
	cases := []struct {
		name  string
		query OptionsQuery
		want  string
	}{
		{"empty", OptionsQuery{}, "/valid-options"},
		{"year only", OptionsQuery{Year: "2024"}, "/valid-options/2024"},
		{"year week", OptionsQuery{Year: "2024", Week: 3}, "/valid-options/2024/3"},
		{"manager without year", OptionsQuery{Manager: "Tommy"}, "/valid-options/Tommy"},
		{"everything", OptionsQuery{Year: "2024", Week: 3, Manager: "Tommy", Player: "Tom Brady", Position: "QB"}, "/valid-options/2024/3/Tommy/Tom%20Brady/QB"},
		{"escapes slash", OptionsQuery{Position: "D/ST"}, "/valid-options/D%2FST"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := joinPath(validOptionsPath, tc.query.Segments()); got != tc.want {
				t.Fatalf("path = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestClient_FetchesEndpoints(t *testing.T) {
	t.Parallel()

	var gotPaths []string
	var gotUserAgent string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		gotPaths = append(gotPaths, r.URL.EscapedPath())
		w.Header().Set("Content-Type", "application/json")

		switch {
		case strings.HasPrefix(r.URL.Path, validOptionsPath):
			_, _ = w.Write([]byte(`{"years":["2024",2023,null],"weeks":[1,"2",3.5],"managers":null,"positions":["QB"]}`))
		case strings.HasPrefix(r.URL.Path, aggregatedPlayersPath):
			_, _ = w.Write([]byte(`[{"player":"Tom Brady","position":"QB","total_points":300.5,"num_games_started":10}]`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	opts, err := c.FetchValidOptions(ctx, OptionsQuery{Year: "2024", Position: "D/ST"})
	if err != nil {
		t.Fatalf("FetchValidOptions returned error: %v", err)
	}
	if len(opts.Years) != 2 || opts.Years[0] != "2024" || opts.Years[1] != "2023" {
		t.Fatalf("Years = %#v, want [2024 2023]", opts.Years)
	}
	if len(opts.Weeks) != 3 || opts.Weeks[1] != "2" || opts.Weeks[2] != "3.5" {
		t.Fatalf("Weeks = %#v", opts.Weeks)
	}
	if opts.Managers != nil || opts.Players != nil {
		t.Fatalf("null/missing lists should decode to nil, got %#v %#v", opts.Managers, opts.Players)
	}

	players, err := c.FetchAggregatedPlayers(ctx, PlayersQuery{Year: "2024", Week: 2, Manager: "Tommy"})
	if err != nil {
		t.Fatalf("FetchAggregatedPlayers returned error: %v", err)
	}
	if len(players) != 1 || players[0].Player != "Tom Brady" || players[0].NumStarts != 10 {
		t.Fatalf("players = %#v", players)
	}
	if got := players[0].PointsPerStart(); got != 30.05 {
		t.Fatalf("PointsPerStart = %v, want 30.05", got)
	}

	wantPaths := []string{"/valid-options/2024/D%2FST", "/aggregated-players/2024/2/Tommy"}
	if len(gotPaths) != len(wantPaths) || gotPaths[0] != wantPaths[0] || gotPaths[1] != wantPaths[1] {
		t.Fatalf("paths = %v, want %v", gotPaths, wantPaths)
	}
	if !strings.HasPrefix(gotUserAgent, "patriot/") {
		t.Fatalf("User-Agent = %q, want patriot/*", gotUserAgent)
	}
}

func TestClient_NullPlayersDecodeEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`null`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	players, err := c.FetchAggregatedPlayers(context.Background(), PlayersQuery{})
	if err != nil {
		t.Fatalf("FetchAggregatedPlayers returned error: %v", err)
	}
	if players == nil || len(players) != 0 {
		t.Fatalf("players = %#v, want empty non-nil slice", players)
	}
}

func TestClient_HTTPErrorAndDecodeError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, validOptionsPath):
			_, _ = w.Write([]byte("{not-json"))
		default:
			http.Error(w, "nope", http.StatusInternalServerError)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.FetchValidOptions(context.Background(), OptionsQuery{})
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("FetchValidOptions error = %v, want decode response error", err)
	}

	_, err = c.FetchAggregatedPlayers(context.Background(), PlayersQuery{})
	if err == nil || !strings.Contains(err.Error(), "returned status 500") {
		t.Fatalf("FetchAggregatedPlayers error = %v, want status 500 error", err)
	}
}

func TestNilClient(t *testing.T) {
	var c *Client
	if _, err := c.FetchValidOptions(context.Background(), OptionsQuery{}); err == nil {
		t.Fatalf("nil client returned nil error")
	}
}
