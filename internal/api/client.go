package api

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

	"github.com/rs/zerolog"

	"github.com/stemsi/quizgo/internal/model"
)

// TokenSource supplies the bearer token attached to authenticated requests.
// An empty string means the request is sent unauthenticated.
type TokenSource func() string

// Client talks to the quiz backend. All methods return *NetworkError for
// transport failures and *ServerError for non-2xx responses, so callers
// can map them onto retryable load/submission conditions.
type Client struct {
	baseURL string
	http    *http.Client
	token   TokenSource
	log     zerolog.Logger
}

// New creates a backend client. timeout bounds every request.
func New(baseURL string, httpClient *http.Client, token TokenSource, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if token == nil {
		token = func() string { return "" }
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		token:   token,
		log:     log.With().Str("component", "api_client").Logger(),
	}
}

// Login exchanges credentials for a JWT.
func (c *Client) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	var resp model.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// FetchLevels lists all levels.
func (c *Client) FetchLevels(ctx context.Context) ([]model.Level, error) {
	var levels []model.Level
	if err := c.do(ctx, http.MethodGet, "/levels", nil, &levels); err != nil {
		return nil, err
	}
	return levels, nil
}

// FetchUnits lists the units of a level.
func (c *Client) FetchUnits(ctx context.Context, levelID string) ([]model.Unit, error) {
	var units []model.Unit
	if err := c.do(ctx, http.MethodGet, "/levels/"+url.PathEscape(levelID)+"/units", nil, &units); err != nil {
		return nil, err
	}
	return units, nil
}

// FetchTests lists the tests of a unit.
func (c *Client) FetchTests(ctx context.Context, unitID string) ([]model.Test, error) {
	var tests []model.Test
	if err := c.do(ctx, http.MethodGet, "/units/"+url.PathEscape(unitID)+"/tests", nil, &tests); err != nil {
		return nil, err
	}
	return tests, nil
}

// FetchQuestions retrieves the raw question list for a test, in the
// author's original order.
func (c *Client) FetchQuestions(ctx context.Context, testID string) ([]model.Question, error) {
	var questions []model.Question
	if err := c.do(ctx, http.MethodGet, "/tests/"+url.PathEscape(testID)+"/questions", nil, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// NotifyTestStart bumps the test's play counter. Fire-and-forget: the
// caller never blocks a session on it, so failures are only logged.
func (c *Client) NotifyTestStart(testID string) {
	go func() {
		timeout := c.http.Timeout
		if timeout == 0 {
			timeout = 10 * time.Second
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := c.do(ctx, http.MethodPost, "/tests/"+url.PathEscape(testID)+"/start", nil, nil); err != nil {
			c.log.Warn().Err(err).Str("test_id", testID).Msg("Play-count notice failed")
		}
	}()
}

// SubmitHistory posts a completed attempt. Success acknowledges
// persistence with the stored record.
func (c *Client) SubmitHistory(ctx context.Context, sub model.HistorySubmission) (*model.HistoryRecord, error) {
	var rec model.HistoryRecord
	if err := c.do(ctx, http.MethodPost, "/history", sub, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// FetchHistory lists the user's completed attempts.
func (c *Client) FetchHistory(ctx context.Context, userID string) ([]model.HistoryRecord, error) {
	var recs []model.HistoryRecord
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(userID)+"/history", nil, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// FetchRankings retrieves the leaderboard of a test.
func (c *Client) FetchRankings(ctx context.Context, testID string) ([]model.RankingEntry, error) {
	var entries []model.RankingEntry
	if err := c.do(ctx, http.MethodGet, "/tests/"+url.PathEscape(testID)+"/rankings", nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// MediaURL resolves a relative asset path from the backend into an
// absolute URL. Already-absolute URLs pass through untouched.
func (c *Client) MediaURL(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

// errorBody is the backend's error payload shape.
type errorBody struct {
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("method", method).Str("path", path).Msg("Transport failure")
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		_ = json.Unmarshal(raw, &eb)
		c.log.Debug().
			Int("status", resp.StatusCode).
			Str("method", method).
			Str("path", path).
			Msg("Server rejected request")
		return &ServerError{StatusCode: resp.StatusCode, Message: eb.Message}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
