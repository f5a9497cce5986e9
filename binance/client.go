// Package binance is a read-only client for the Binance spot REST market-data API.
package binance

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rustyeddy/candlescope/market"
)

const (
	// DefaultBaseURL is Binance TH. Any Binance-compatible spot host works.
	DefaultBaseURL = "https://api.binance.th"

	recvWindow = "10000"
)

// Config binds a Client to one venue and one set of credentials.
type Config struct {
	BaseURL   string
	APIKey    string
	APISecret string

	// HTTP is used for every call; nil means http.DefaultClient.
	HTTP *http.Client
}

// Client talks to one venue. It holds no per-request state.
type Client struct {
	cfg Config
	now func() time.Time
}

// NewClient creates a client. Credentials are trimmed; a missing base URL
// falls back to DefaultBaseURL.
func NewClient(cfg Config) *Client {
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.APISecret = strings.TrimSpace(cfg.APISecret)
	return &Client{cfg: cfg, now: time.Now}
}

// HasCredentials reports whether both key and secret are configured.
func (c *Client) HasCredentials() bool {
	return c.cfg.APIKey != "" && c.cfg.APISecret != ""
}

// apiError is the venue's error payload, e.g. {"code":-1121,"msg":"Invalid symbol."}.
type apiError struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

func (c *Client) httpClient() *http.Client {
	if c.cfg.HTTP != nil {
		return c.cfg.HTTP
	}
	return http.DefaultClient
}

// get performs one GET and returns the body of a 200 response. Failures
// come back wrapped in market.ErrConnection or market.ErrDataUnavailable.
func (c *Client) get(ctx context.Context, path, rawQuery string) ([]byte, error) {
	u, err := url.Parse(c.cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: bad base url: %v", market.ErrConnection, err)
	}
	u.Path = path
	u.RawQuery = rawQuery

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", market.ErrConnection, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("X-MBX-APIKEY", c.cfg.APIKey)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", market.ErrConnection, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", market.ErrConnection, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp.StatusCode, body)
	}
	return body, nil
}

func statusError(status int, body []byte) error {
	msg := strings.TrimSpace(string(body))
	var ae apiError
	if json.Unmarshal(body, &ae) == nil && ae.Msg != "" {
		msg = fmt.Sprintf("code %d: %s", ae.Code, ae.Msg)
	}

	kind := market.ErrDataUnavailable
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		kind = market.ErrConnection
	case status == http.StatusTooManyRequests, status == 418:
		kind = market.ErrConnection
	case status >= 500:
		kind = market.ErrConnection
	}
	return fmt.Errorf("%w: binance http %d: %s", kind, status, msg)
}

// Ping checks the venue is reachable by reading the BTCUSDT ticker.
func (c *Client) Ping(ctx context.Context) error {
	q := url.Values{}
	q.Set("symbol", market.PairCode(market.Symbols[0]))
	body, err := c.get(ctx, "/api/v3/ticker/price", q.Encode())
	if err != nil {
		if errors.Is(err, market.ErrDataUnavailable) {
			return fmt.Errorf("%w: ping: %v", market.ErrConnection, err)
		}
		return fmt.Errorf("ping: %w", err)
	}

	var tick struct {
		Symbol string `json:"symbol"`
		Price  string `json:"price"`
	}
	if err := json.Unmarshal(body, &tick); err != nil || tick.Price == "" {
		return fmt.Errorf("%w: ping: unexpected ticker payload", market.ErrConnection)
	}
	return nil
}

// VerifyCredentials makes a signed read of the account endpoint. It is a
// no-op without both key and secret.
func (c *Client) VerifyCredentials(ctx context.Context) error {
	if !c.HasCredentials() {
		return nil
	}
	if _, err := c.get(ctx, "/api/v3/account", c.sign(url.Values{})); err != nil {
		if errors.Is(err, market.ErrDataUnavailable) {
			return fmt.Errorf("%w: credentials rejected: %v", market.ErrConnection, err)
		}
		return fmt.Errorf("verify credentials: %w", err)
	}
	return nil
}

// sign adds timestamp and recvWindow and appends the HMAC-SHA256
// signature of the encoded query. The signature must be the last parameter.
func (c *Client) sign(q url.Values) string {
	q.Set("timestamp", strconv.FormatInt(c.now().UnixMilli(), 10))
	q.Set("recvWindow", recvWindow)
	payload := q.Encode()
	return payload + "&signature=" + signature(payload, c.cfg.APISecret)
}

func signature(payload, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}
