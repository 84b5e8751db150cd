// Package orderclient posts orders as JSON to a remote order endpoint.
package orderclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Config holds the order endpoint details.
type Config struct {
	Endpoint string
	Timeout  time.Duration // 0 leaves the transport default in place
}

// StatusError is returned when the endpoint answers with a non-2xx status.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d", e.StatusCode)
}

// Client sends one POST per call; it never retries.
type Client struct {
	endpoint string
	timeout  time.Duration
}

// NewClient creates a new order endpoint client.
func NewClient(cfg Config) *Client {
	return &Client{
		endpoint: cfg.Endpoint,
		timeout:  cfg.Timeout,
	}
}

// Endpoint returns the URL orders are posted to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// PostJSON posts body as application/json and decodes the response body into out.
func (c *Client) PostJSON(ctx context.Context, body any, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	agent := fiber.Post(c.endpoint).JSON(body)
	if c.timeout > 0 {
		agent.Timeout(c.timeout)
	}

	code, respBody, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("failed to send order: %w", errors.Join(errs...))
	}
	if code < fiber.StatusOK || code >= fiber.StatusMultipleChoices {
		return &StatusError{StatusCode: code}
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode order response: %w", err)
	}
	return nil
}
