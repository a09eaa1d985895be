package igdb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	domaingames "igdb-games-service/internal/domain/games"
	"igdb-games-service/internal/providers"
)

// Config controls how the IGDB client reaches the proxy and the upstream API.
type Config struct {
	ProxyURL   string
	APIURL     string
	Token      string
	ClientID   string
	HTTPClient *http.Client
}

// Client fetches games through the IGDB proxy (search, by id) or the IGDB API (popular)
// and maps them to domain models.
type Client struct {
	proxyURL   string
	apiURL     string
	token      string
	clientID   string
	httpClient httpDoer
	now        func() time.Time
}

// NewClient constructs an IGDB client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		proxyURL:   normalizeBaseURL(cfg.ProxyURL, defaultProxyURL),
		apiURL:     normalizeBaseURL(cfg.APIURL, defaultAPIURL),
		token:      strings.TrimSpace(cfg.Token),
		clientID:   strings.TrimSpace(cfg.ClientID),
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		now:        time.Now,
	}
}

// FetchGames runs q against IGDB. Cancelling ctx aborts the request and skips decoding.
func (c *Client) FetchGames(ctx context.Context, q providers.Query) ([]domaingames.Game, error) {
	req, err := c.buildRequest(ctx, q)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &providers.TransportError{Provider: providerName, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), c.now()),
			Message:    rateLimitMessage(body),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, &providers.TransportError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status: %s", strings.TrimSpace(string(body))),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &providers.TransportError{Provider: providerName, StatusCode: resp.StatusCode, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return DecodeGames(body)
}

func (c *Client) buildRequest(ctx context.Context, q providers.Query) (*http.Request, error) {
	var (
		req *http.Request
		err error
	)

	switch q.Mode {
	case providers.ModeSearch:
		values := url.Values{}
		values.Set("search", q.Term)
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, c.proxyURL+"/games?"+values.Encode(), nil)
	case providers.ModeByID:
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, c.proxyURL+"/games/"+strconv.FormatUint(q.ID, 10), nil)
	case providers.ModePopular:
		req, err = http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, strings.NewReader(popularQuery))
		if err == nil {
			req.Header.Set("Content-Type", "text/plain")
			if c.clientID != "" {
				req.Header.Set("Client-ID", c.clientID)
			}
		}
	default:
		return nil, fmt.Errorf("igdb: unsupported query mode %s", q.Mode)
	}
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

func rateLimitMessage(body []byte) string {
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return "igdb rate limited"
	}
	return msg
}
