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

	"github.com/forgo/skirmish/api/internal/model"
)

var (
	// ErrRequestFailed is wrapped by every non-2xx response
	ErrRequestFailed = errors.New("request failed")
	// ErrMalformedResponse is returned when a 2xx body lacks the data envelope
	ErrMalformedResponse = errors.New("malformed response")
)

// Error describes a non-2xx response. It unwraps to ErrRequestFailed.
type Error struct {
	Method  string
	Path    string
	Status  int
	Problem *model.ProblemDetails
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s %s: status %d", ErrRequestFailed, e.Method, e.Path, e.Status)
	if e.Problem != nil && e.Problem.Detail != "" {
		msg += ": " + e.Problem.Detail
	}
	return msg
}

func (e *Error) Unwrap() error { return ErrRequestFailed }

// Client calls the Skirmish API. Each method issues exactly one request.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a client for the API rooted at baseURL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SettingsReplaced is the acknowledgement of a settings PUT
type SettingsReplaced struct {
	OK     bool          `json:"ok"`
	Groups []model.Group `json:"groups"`
}

// Health is the health endpoint payload
type Health struct {
	Status  string    `json:"status"`
	Message string    `json:"message"`
	TS      time.Time `json:"ts"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

// Health checks the API
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var out Health
	if err := c.do(ctx, http.MethodGet, "/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListFieldMaps lists field maps. fieldType is forwarded as ?type= when set.
func (c *Client) ListFieldMaps(ctx context.Context, fieldType model.FieldMapType) ([]model.FieldMap, error) {
	path := "/field-map"
	if fieldType != "" {
		path += "?type=" + url.QueryEscape(string(fieldType))
	}
	var out []model.FieldMap
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateFieldMap creates a field map
func (c *Client) CreateFieldMap(ctx context.Context, req *model.CreateFieldMapRequest) (*model.FieldMap, error) {
	var out model.FieldMap
	if err := c.do(ctx, http.MethodPost, "/field-map", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetFieldMap fetches one field map
func (c *Client) GetFieldMap(ctx context.Context, id string) (*model.FieldMap, error) {
	var out model.FieldMap
	if err := c.do(ctx, http.MethodGet, "/field-map/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateFieldMap merges the supplied fields into a field map
func (c *Client) UpdateFieldMap(ctx context.Context, id string, req *model.UpdateFieldMapRequest) (*model.FieldMap, error) {
	var out model.FieldMap
	if err := c.do(ctx, http.MethodPatch, "/field-map/"+url.PathEscape(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteFieldMap deletes a field map
func (c *Client) DeleteFieldMap(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/field-map/"+url.PathEscape(id), nil, &okResponse{})
}

// ListPlayers lists players with their derived licence validity
func (c *Client) ListPlayers(ctx context.Context) ([]model.PlayerView, error) {
	var out []model.PlayerView
	if err := c.do(ctx, http.MethodGet, "/players", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreatePlayer registers a player
func (c *Client) CreatePlayer(ctx context.Context, req *model.CreatePlayerRequest) (*model.PlayerView, error) {
	var out model.PlayerView
	if err := c.do(ctx, http.MethodPost, "/players", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetPlayer fetches one player
func (c *Client) GetPlayer(ctx context.Context, id string) (*model.PlayerView, error) {
	var out model.PlayerView
	if err := c.do(ctx, http.MethodGet, "/players/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdatePlayer merges the supplied fields into a player
func (c *Client) UpdatePlayer(ctx context.Context, id string, req *model.UpdatePlayerRequest) (*model.PlayerView, error) {
	var out model.PlayerView
	if err := c.do(ctx, http.MethodPatch, "/players/"+url.PathEscape(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeletePlayer deletes a player
func (c *Client) DeletePlayer(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/players/"+url.PathEscape(id), nil, &okResponse{})
}

// ListGames lists games
func (c *Client) ListGames(ctx context.Context) ([]model.Game, error) {
	var out []model.Game
	if err := c.do(ctx, http.MethodGet, "/games", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateGame schedules a game
func (c *Client) CreateGame(ctx context.Context, req *model.CreateGameRequest) (*model.Game, error) {
	var out model.Game
	if err := c.do(ctx, http.MethodPost, "/games", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetGame fetches one game
func (c *Client) GetGame(ctx context.Context, id string) (*model.Game, error) {
	var out model.Game
	if err := c.do(ctx, http.MethodGet, "/games/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateGame merges the supplied fields into a game
func (c *Client) UpdateGame(ctx context.Context, id string, req *model.UpdateGameRequest) (*model.Game, error) {
	var out model.Game
	if err := c.do(ctx, http.MethodPatch, "/games/"+url.PathEscape(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteGame deletes a game
func (c *Client) DeleteGame(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/games/"+url.PathEscape(id), nil, &okResponse{})
}

// GetGameSettings fetches a game's groups
func (c *Client) GetGameSettings(ctx context.Context, id string) (*model.GameSettings, error) {
	var out model.GameSettings
	if err := c.do(ctx, http.MethodGet, "/games/"+url.PathEscape(id)+"/settings", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ReplaceGameSettings replaces a game's groups
func (c *Client) ReplaceGameSettings(ctx context.Context, id string, req *model.UpdateGameSettingsRequest) (*SettingsReplaced, error) {
	var out SettingsReplaced
	if err := c.do(ctx, http.MethodPut, "/games/"+url.PathEscape(id)+"/settings", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchGames finds the planned games a device is registered to
func (c *Client) SearchGames(ctx context.Context, deviceID string) ([]model.DeviceAssignment, error) {
	var out []model.DeviceAssignment
	body := model.SearchGamesRequest{DeviceID: deviceID}
	if err := c.do(ctx, http.MethodPost, "/games/search", body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// do sends one request and decodes the data envelope into out
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrRequestFailed, method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return fmt.Errorf("%w: %s %s: read body: %w", ErrRequestFailed, method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Method: method, Path: path, Status: resp.StatusCode}
		var pd model.ProblemDetails
		if json.Unmarshal(raw, &pd) == nil && pd.Status != 0 {
			apiErr.Problem = &pd
		}
		return apiErr
	}

	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrMalformedResponse, method, path, err)
	}
	if len(env.Data) == 0 {
		return fmt.Errorf("%w: %s %s: missing data", ErrMalformedResponse, method, path)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrMalformedResponse, method, path, err)
	}
	return nil
}
