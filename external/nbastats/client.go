package nbastats

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/courtflow/nba-stats-api/internal/domain/player"
	"github.com/courtflow/nba-stats-api/internal/domain/stats"
	"github.com/courtflow/nba-stats-api/internal/platform/logging"
	"github.com/courtflow/nba-stats-api/internal/platform/resilience"
	"github.com/courtflow/nba-stats-api/internal/usecase"
)

const defaultBaseURL = "https://stats-proxy.courtflow.dev/v1"

var errNBAStatsTransient = crerr.New("nba stats transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the upstream stats provider. There are no retries:
// the first transient failure surfaces as ErrUpstreamUnavailable so
// callers fail fast instead of piling latency onto a flaky upstream.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 15 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		apiKey:         strings.TrimSpace(cfg.APIKey),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.Cooldown),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// ListPlayers fetches the league-wide player index.
func (c *Client) ListPlayers(ctx context.Context) ([]player.Identity, error) {
	var envelope playersEnvelope
	if err := c.doJSON(ctx, "/players", nil, &envelope); err != nil {
		return nil, fmt.Errorf("fetch player index: %w", err)
	}

	out := make([]player.Identity, 0, len(envelope.Players))
	for _, item := range envelope.Players {
		if item.ID <= 0 || strings.TrimSpace(item.FullName) == "" {
			continue
		}
		out = append(out, player.Identity{
			ID:       item.ID,
			FullName: strings.TrimSpace(item.FullName),
			IsActive: item.IsActive,
		})
	}

	return out, nil
}

// SeasonTotals fetches per-season box-score totals for one partition.
func (c *Client) SeasonTotals(ctx context.Context, playerID int64, seasonType stats.SeasonType) ([]stats.RawSeasonTotals, error) {
	if err := validateFetchArgs(playerID, seasonType); err != nil {
		return nil, err
	}

	path := "/players/" + strconv.FormatInt(playerID, 10) + "/totals"
	query := map[string]string{"season_type": string(seasonType)}

	var envelope seasonTotalsEnvelope
	if err := c.doJSON(ctx, path, query, &envelope); err != nil {
		return nil, fmt.Errorf("fetch season totals player_id=%d season_type=%s: %w", playerID, seasonType, err)
	}

	out := make([]stats.RawSeasonTotals, 0, len(envelope.Seasons))
	for _, item := range envelope.Seasons {
		out = append(out, mapSeasonTotals(item))
	}
	return out, nil
}

// CareerTotals fetches the accumulated career line for one partition.
// The result is nil when the provider has no career row, which is a
// valid state for players without games in that partition.
func (c *Client) CareerTotals(ctx context.Context, playerID int64, seasonType stats.SeasonType) (*stats.RawTotals, error) {
	if err := validateFetchArgs(playerID, seasonType); err != nil {
		return nil, err
	}

	path := "/players/" + strconv.FormatInt(playerID, 10) + "/career"
	query := map[string]string{"season_type": string(seasonType)}

	var envelope careerEnvelope
	if err := c.doJSON(ctx, path, query, &envelope); err != nil {
		return nil, fmt.Errorf("fetch career totals player_id=%d season_type=%s: %w", playerID, seasonType, err)
	}

	if envelope.Totals == nil {
		return nil, nil
	}
	mapped := mapTotals(*envelope.Totals)
	return &mapped, nil
}

// AdvancedTotals fetches per-season and career advanced lines for one
// partition.
func (c *Client) AdvancedTotals(ctx context.Context, playerID int64, seasonType stats.SeasonType) ([]stats.RawAdvancedSeason, *stats.RawAdvanced, error) {
	if err := validateFetchArgs(playerID, seasonType); err != nil {
		return nil, nil, err
	}

	path := "/players/" + strconv.FormatInt(playerID, 10) + "/advanced"
	query := map[string]string{"season_type": string(seasonType)}

	var envelope advancedEnvelope
	if err := c.doJSON(ctx, path, query, &envelope); err != nil {
		return nil, nil, fmt.Errorf("fetch advanced totals player_id=%d season_type=%s: %w", playerID, seasonType, err)
	}

	seasons := make([]stats.RawAdvancedSeason, 0, len(envelope.Seasons))
	for _, item := range envelope.Seasons {
		seasons = append(seasons, mapAdvancedSeason(item))
	}
	var career *stats.RawAdvanced
	if envelope.Career != nil {
		mapped := mapAdvanced(*envelope.Career)
		career = &mapped
	}
	return seasons, career, nil
}

func validateFetchArgs(playerID int64, seasonType stats.SeasonType) error {
	if playerID <= 0 {
		return fmt.Errorf("player id must be greater than zero")
	}
	if seasonType != stats.SeasonTypeRegular && seasonType != stats.SeasonTypePlayoffs {
		return fmt.Errorf("season type %q is not a fetchable partition", seasonType)
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "nba stats circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: stats provider is temporarily unavailable", usecase.ErrUpstreamUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	// The flight result is shared by every caller waiting on this URL,
	// so the request runs detached from the leader's cancellation; the
	// http client timeout still bounds it.
	flightCtx := context.WithoutCancel(ctx)
	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(flightCtx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errNBAStatsTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		if crerr.Is(err, errNBAStatsTransient) {
			return fmt.Errorf("%w: %v", usecase.ErrUpstreamUnavailable, err)
		}
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}

	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		reqErr := fmt.Errorf("%w: send request: %v", errNBAStatsTransient, err)
		c.logger.WarnContext(ctx, "nba stats request failed", "url", fullURL, "error", reqErr)
		return nil, reqErr
	}

	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	_ = resp.Body.Close()
	if readErr != nil {
		return nil, fmt.Errorf("%w: read response body: %v", errNBAStatsTransient, readErr)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return raw, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: provider has no record for this resource", usecase.ErrPlayerNotFound)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		reqErr := fmt.Errorf("%w: provider status=%d body=%s", errNBAStatsTransient, resp.StatusCode, abbreviateBody(raw))
		c.logger.WarnContext(ctx, "nba stats request failed", "url", fullURL, "status", resp.StatusCode)
		return nil, reqErr
	default:
		return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
	}
}

func abbreviateBody(raw []byte) string {
	const limit = 256
	body := strings.TrimSpace(string(raw))
	if len(body) > limit {
		return body[:limit] + "..."
	}
	return body
}
