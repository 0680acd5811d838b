// Package client talks to a checkers server over its JSON API.
package client

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"checkers/internal/checkers"
	"checkers/internal/server/game"
	httpserver "checkers/internal/server/http"
)

type Client struct {
	client *resty.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &Client{client: rc}
}

// APIError is a non-2xx answer from the server. It unwraps to the matching engine
// sentinel when the code names one.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server %d %s: %s", e.Status, e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	if e.Code == "game_not_found" {
		return game.ErrNotFound
	}
	if err, ok := checkers.ErrorFromCode(e.Code); ok {
		return err
	}
	return nil
}

func (c *Client) NewGame(ctx context.Context, fen string) (*httpserver.GameResponse, error) {
	return c.post(ctx, "/api/new_game", httpserver.NewGameRequest{Position: fen})
}

func (c *Client) State(ctx context.Context, id string) (*httpserver.GameResponse, error) {
	return c.post(ctx, "/api/state", httpserver.GameRequest{GameID: id})
}

func (c *Client) Play(ctx context.Context, id string, from, to int) (*httpserver.GameResponse, error) {
	return c.post(ctx, "/api/play", httpserver.PlayRequest{GameID: id, Move: httpserver.MoveDTO{From: from, To: to}})
}

func (c *Client) Continue(ctx context.Context, id string, landing int) (*httpserver.GameResponse, error) {
	return c.post(ctx, "/api/continue", httpserver.ContinueRequest{GameID: id, Landing: landing})
}

func (c *Client) EndChain(ctx context.Context, id string) (*httpserver.GameResponse, error) {
	return c.post(ctx, "/api/end_chain", httpserver.GameRequest{GameID: id})
}

func (c *Client) Delete(ctx context.Context, id string) error {
	var apiErr httpserver.ErrorResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(httpserver.GameRequest{GameID: id}).
		SetError(&apiErr).
		Post("/api/delete")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return &APIError{Status: resp.StatusCode(), Code: apiErr.Code, Message: apiErr.Error}
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, body any) (*httpserver.GameResponse, error) {
	var out httpserver.GameResponse
	var apiErr httpserver.ErrorResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&out).
		SetError(&apiErr).
		Post(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if resp.IsError() {
		return nil, &APIError{Status: resp.StatusCode(), Code: apiErr.Code, Message: apiErr.Error}
	}
	return &out, nil
}
