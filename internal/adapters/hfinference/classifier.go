package hfinference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jobsy/jobmail-analyzer/internal/core"
	"go.uber.org/zap"
)

// Classifier is an implementation of the TextClassifier interface
// backed by the Hugging Face inference HTTP API. There is no Go SDK
// for it, so this speaks plain JSON over net/http.
type Classifier struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClassifier creates a classifier for one hosted model
func NewClassifier(baseURL, apiKey, model string, timeout time.Duration, logger *zap.Logger) *Classifier {
	return &Classifier{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// ModelName identifies the hosted model
func (c *Classifier) ModelName() string {
	return c.model
}

type inferenceRequest struct {
	Inputs string `json:"inputs"`
}

type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// ClassifyText submits the text and returns the top label with its
// score. The API answers either [[{label,score},...]] or
// [{label,score},...] depending on the model.
func (c *Classifier) ClassifyText(ctx context.Context, text string) (*core.ModelPrediction, error) {
	payload, err := json.Marshal(inferenceRequest{Inputs: text})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal inference request: %w", err)
	}

	url := fmt.Sprintf("%s/%s", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build inference request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("inference request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read inference response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("inference API returned status %d: %s", resp.StatusCode, string(body))
	}

	scores, err := parseScores(body)
	if err != nil {
		return nil, err
	}
	if len(scores) == 0 {
		return nil, fmt.Errorf("inference API returned no predictions")
	}

	best := scores[0]
	for _, s := range scores[1:] {
		if s.Score > best.Score {
			best = s
		}
	}

	c.logger.Debug("Model prediction",
		zap.String("model", c.model),
		zap.String("label", best.Label),
		zap.Float64("score", best.Score))

	return &core.ModelPrediction{Label: best.Label, Score: best.Score}, nil
}

func parseScores(body []byte) ([]labelScore, error) {
	var nested [][]labelScore
	if err := json.Unmarshal(body, &nested); err == nil && len(nested) > 0 {
		return nested[0], nil
	}

	var flat []labelScore
	if err := json.Unmarshal(body, &flat); err == nil {
		return flat, nil
	}

	return nil, fmt.Errorf("unexpected inference response shape: %s", string(body))
}
