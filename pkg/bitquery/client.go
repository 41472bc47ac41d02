package bitquery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// Client is a minimal GraphQL-over-HTTP client for the Bitquery streaming API.
// Calls are blocking with a caller-visible timeout; upstream queries are
// expensive, so failures surface to the caller verbatim and are never retried.
type Client struct {
	url    string
	apiKey string
	client *http.Client
}

func New(url, apiKey string, timeout time.Duration) *Client {
	return &Client{
		url:    url,
		apiKey: apiKey,
		client: &http.Client{Timeout: timeout},
	}
}

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []gqlError      `json:"errors"`
}

type gqlError struct {
	Message string `json:"message"`
}

// Do executes a GraphQL query and unmarshals the "data" object into out.
// Cancelling ctx aborts the in-flight HTTP request.
func (c *Client) Do(ctx context.Context, query string, variables map[string]any, out any) error {
	reqBody, _ := json.Marshal(gqlRequest{Query: query, Variables: variables})

	req, err := http.NewRequestWithContext(ctx, "POST", c.url, bytes.NewReader(reqBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("bitquery request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bitquery HTTP %d: %s", resp.StatusCode, truncate(string(body), 300))
	}

	var gresp gqlResponse
	if err := json.Unmarshal(body, &gresp); err != nil {
		return fmt.Errorf("bitquery unmarshal: %w", err)
	}
	if len(gresp.Errors) > 0 {
		log.Warn().Int("count", len(gresp.Errors)).Str("first", gresp.Errors[0].Message).Msg("graphql errors")
		return fmt.Errorf("bitquery graphql: %s", gresp.Errors[0].Message)
	}
	if out != nil && len(gresp.Data) > 0 {
		if err := json.Unmarshal(gresp.Data, out); err != nil {
			return fmt.Errorf("bitquery data unmarshal: %w", err)
		}
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}
