package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/XurifyTeine/url-shortener/internal/shortlink"
	"go.uber.org/zap"
)

// Client talks to the URL store over HTTP. Responses use the store's
// envelope shape: exactly one of "result" or "error" is present.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a backend client. The base URL is the store's root,
// e.g. "http://127.0.0.1:8080". The API key authorizes page-view reporting.
func NewClient(baseURL, apiKey string, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
		logger:     logger,
	}
}

type envelopeError struct {
	Message   string `json:"message"`
	ErrorCode int    `json:"errorCode"`
}

type envelope struct {
	Result json.RawMessage `json:"result,omitempty"`
	Error  *envelopeError  `json:"error,omitempty"`
}

func (c *Client) GetURL(ctx context.Context, id string) (*shortlink.Record, error) {
	var record shortlink.Record
	if err := c.get(ctx, "/urls/"+url.PathEscape(id), nil, &record); err != nil {
		return nil, err
	}

	return &record, nil
}

func (c *Client) ReportPageView(ctx context.Context, id string) (int64, error) {
	query := url.Values{}
	if c.apiKey != "" {
		query.Set("api_key", c.apiKey)
	}

	var counts struct {
		PageHits int64 `json:"page_hits"`
	}

	if err := c.get(ctx, "/urls/page-views/"+url.PathEscape(id), query, &counts); err != nil {
		return 0, err
	}

	return counts.PageHits, nil
}

func (c *Client) MintSession(ctx context.Context) (string, string, error) {
	var cookie struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	}

	if err := c.get(ctx, "/set-cookie", nil, &cookie); err != nil {
		return "", "", err
	}

	return cookie.Key, cookie.Value, nil
}

func (c *Client) CreateShortURL(ctx context.Context, params CreateParams) (*shortlink.Record, error) {
	query := url.Values{}
	query.Set("url", params.Destination)

	if params.SelfDestruct != "" {
		query.Set("self_destruct", params.SelfDestruct)
	}

	if params.MaxPageHits > 0 {
		query.Set("max_page_hits", strconv.FormatInt(params.MaxPageHits, 10))
	}

	if params.Password != "" {
		query.Set("password", params.Password)
	}

	if params.SessionToken != "" {
		query.Set("session_token", params.SessionToken)
	}

	var record shortlink.Record
	if err := c.do(ctx, http.MethodPost, "/create-short-url", query, &record); err != nil {
		return nil, err
	}

	return &record, nil
}

func (c *Client) DeleteURL(ctx context.Context, id, sessionToken string) error {
	query := url.Values{}
	query.Set("id", id)

	if sessionToken != "" {
		query.Set("session_token", sessionToken)
	}

	return c.do(ctx, http.MethodDelete, "/delete-url", query, nil)
}

func (c *Client) ListURLs(ctx context.Context, sessionToken string) ([]*shortlink.Record, error) {
	query := url.Values{}
	query.Set("session_token", sessionToken)

	var records []*shortlink.Record
	if err := c.get(ctx, "/urls", query, &records); err != nil {
		return nil, err
	}

	return records, nil
}

func (c *Client) Healthz(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: healthz returned %d", ErrUnavailable, resp.StatusCode)
	}

	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, result any) error {
	return c.do(ctx, http.MethodGet, path, query, result)
}

// do performs a request and unmarshals the envelope's result into result.
// Backend errors are normalized to the package sentinels.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, result any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%w: %s %s returned %d", ErrUnavailable, method, path, resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("%w: decoding response: %w", ErrUnavailable, err)
	}

	if env.Error != nil {
		if env.Error.ErrorCode == http.StatusNotFound || resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%w: %s", ErrNotFound, env.Error.Message)
		}

		return fmt.Errorf("%w: %s (code %d)", ErrUnavailable, env.Error.Message, env.Error.ErrorCode)
	}

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}

	if result != nil {
		if err := json.Unmarshal(env.Result, result); err != nil {
			return fmt.Errorf("%w: decoding result: %w", ErrUnavailable, err)
		}
	}

	return nil
}

var _ Service = (*Client)(nil)
