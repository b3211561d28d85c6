package ml

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/staybook/cancellation-risk/internal/domain/model"
)

const defaultHTTPTimeout = 10 * time.Second

// HTTPClassifier calls a remote model server.
type HTTPClassifier struct {
	client  *http.Client
	baseURL string
	columns []string
}

type predictRequest struct {
	Columns   []string    `json:"columns"`
	Instances [][]float64 `json:"instances"`
}

type predictResponse struct {
	Probabilities [][]float64 `json:"probabilities"`
}

// NewHTTPClassifier creates a client for the model server at baseURL. The
// column names are sent with every request so the server can check the
// feature order.
func NewHTTPClassifier(baseURL string, columns []string) *HTTPClassifier {
	return &HTTPClassifier{
		client:  &http.Client{Timeout: defaultHTTPTimeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		columns: columns,
	}
}

// Ping checks that the model server is up. Any failure wraps
// model.ErrStartupUnavailable.
func (c *HTTPClassifier) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrStartupUnavailable, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: model server unreachable: %v", model.ErrStartupUnavailable, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: model server health returned status %d", model.ErrStartupUnavailable, resp.StatusCode)
	}
	return nil
}

func (c *HTTPClassifier) PredictProba(ctx context.Context, vector []float64) ([]float64, error) {
	body, err := json.Marshal(predictRequest{Columns: c.columns, Instances: [][]float64{vector}})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict_proba", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call model server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("model server returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode model server response: %w", err)
	}
	if len(out.Probabilities) != 1 {
		return nil, fmt.Errorf("model server returned %d rows for 1 instance", len(out.Probabilities))
	}
	return out.Probabilities[0], nil
}
