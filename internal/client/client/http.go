package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/gameguesser/internal/client/models"
)

type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
}

type guessRequest struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}

// NewHTTPClient builds a client for baseURL. A zero timeout leaves requests
// bounded only by their context.
func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server url %q: scheme must be http or https", baseURL)
	}
	return &HTTPClient{
		baseURL: u,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// Ping reports whether the server answers at all. Any HTTP response counts
// as reachable, whatever its status; only a transport failure does not.
func (c *HTTPClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL.JoinPath("health").String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}

func (c *HTTPClient) RandomGame(ctx context.Context) (*models.RawGame, error) {
	var g models.RawGame
	if err := c.do(ctx, http.MethodGet, c.baseURL.JoinPath("games", "random"), nil, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (c *HTTPClient) GameByID(ctx context.Context, id string) (*models.RawGame, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	var g models.RawGame
	if err := c.do(ctx, http.MethodGet, c.baseURL.JoinPath("games", id), nil, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// FullCatalog decodes the catalog record by record. Records that cannot be
// decoded are skipped; the rest are returned together with an
// ErrMalformedPayload error describing what was dropped.
func (c *HTTPClient) FullCatalog(ctx context.Context) ([]models.RawGame, error) {
	var items []json.RawMessage
	if err := c.do(ctx, http.MethodGet, c.baseURL.JoinPath("games", "full"), nil, &items); err != nil {
		return nil, err
	}

	gs := make([]models.RawGame, 0, len(items))
	var errs []error
	for i, item := range items {
		var g models.RawGame
		if strings.TrimSpace(string(item)) == "null" {
			errs = append(errs, fmt.Errorf("record %d: null", i))
			continue
		}
		if err := json.Unmarshal(item, &g); err != nil {
			errs = append(errs, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		gs = append(gs, g)
	}

	if len(errs) > 0 {
		return gs, fmt.Errorf("%w: skipped %d of %d records: %w", ErrMalformedPayload, len(errs), len(items), errors.Join(errs...))
	}
	return gs, nil
}

func (c *HTTPClient) SubmitGuess(ctx context.Context, gameID, guess string) (*models.GuessResult, error) {
	var res models.GuessResult
	req := guessRequest{GameID: gameID, Guess: guess}
	if err := c.do(ctx, http.MethodPost, c.baseURL.JoinPath("games", "guess"), req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) Compare(ctx context.Context, req models.CompareRequest) (*models.Comparison, error) {
	var res models.Comparison
	if err := c.do(ctx, http.MethodPost, c.baseURL.JoinPath("games", "compare"), req, &res); err != nil {
		return nil, err
	}
	if res.Matches == nil {
		res.Matches = map[string]models.MatchKind{}
	}
	return &res, nil
}

// do sends one request and decodes the response into out unless out is nil.
func (c *HTTPClient) do(ctx context.Context, method string, u *url.URL, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if err := mapStatus(resp.StatusCode); err != nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%s %s: %w", method, u.Path, err)
	}

	if out == nil {
		return nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return fmt.Errorf("%s %s: %w", method, u.Path, ErrEmptyBody)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return nil
}

func mapStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound, code == http.StatusMethodNotAllowed, code == http.StatusNotImplemented:
		return ErrNotFound
	case code == http.StatusTooManyRequests, code >= 500:
		return ErrUnavailable
	default:
		return fmt.Errorf("unexpected status %d", code)
	}
}
