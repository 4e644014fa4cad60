package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"inspire-it-be/internal/pkg/apperrors"
	"inspire-it-be/pkg/rag/retrieval"
)

// Client talks to the hosted search service over its JSON query API
type Client struct {
	BaseURL string
	APIKey  string
	Index   string
	HTTP    *http.Client
}

var _ retrieval.Retriever = &Client{}

func NewClient(baseURL, apiKey, index string) *Client {
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Index:   index,
		HTTP: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// --- Request/Response structs (internal to this package) ---

type queryRequest struct {
	Query   string           `json:"query"`
	Columns []string         `json:"columns"`
	Filter  retrieval.Filter `json:"filter"`
	Limit   int              `json:"limit"`
}

type queryResponse struct {
	Results []map[string]string `json:"results"`
}

// Search executes one query against the configured index. Any transport or
// non-2xx failure surfaces as a retrieval error; the caller decides whether
// to abort the action.
func (c *Client) Search(ctx context.Context, q retrieval.Query) ([]retrieval.Result, error) {
	const op = "retrieval.remote.Search"

	payload, err := json.Marshal(queryRequest{
		Query:   q.Text,
		Columns: q.Columns,
		Filter:  q.Filter,
		Limit:   q.Limit,
	})
	if err != nil {
		return nil, apperrors.Retrieval(op, fmt.Errorf("marshal request: %w", err))
	}

	url := fmt.Sprintf("%s/api/v1/indexes/%s/query", c.BaseURL, c.Index)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payload))
	if err != nil {
		return nil, apperrors.Retrieval(op, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, apperrors.Retrieval(op, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Retrieval(op, fmt.Errorf("read response: %w", err))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.Retrieval(op, fmt.Errorf("search error: status %d, body: %s", resp.StatusCode, string(bodyBytes)))
	}

	var qr queryResponse
	if err := json.Unmarshal(bodyBytes, &qr); err != nil {
		return nil, apperrors.Retrieval(op, fmt.Errorf("unmarshal response: %w", err))
	}

	results := make([]retrieval.Result, 0, len(qr.Results))
	for _, fields := range qr.Results {
		results = append(results, retrieval.Result{Fields: fields})
	}
	return results, nil
}

// Ping verifies the service is reachable with the configured credentials.
// Run once at startup; a failure is fatal, there is no reconnect logic.
func (c *Client) Ping(ctx context.Context) error {
	const op = "retrieval.remote.Ping"

	url := fmt.Sprintf("%s/api/v1/indexes/%s", c.BaseURL, c.Index)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return apperrors.Connection(op, err)
	}
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return apperrors.Connection(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return apperrors.Connection(op, fmt.Errorf("credentials rejected: status %d", resp.StatusCode))
	}
	if resp.StatusCode != http.StatusOK {
		return apperrors.Connection(op, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
	return nil
}
