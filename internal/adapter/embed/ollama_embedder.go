// Package embed provides the VectorEncoder adapter backed by an
// Ollama-compatible embedding endpoint.
package embed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/RodrigoAlexander7/law-copilot/internal/domain"
	"github.com/RodrigoAlexander7/law-copilot/internal/infra/httpclient"
)

// OllamaEmbedder calls the /api/embed endpoint and unit-normalizes every
// vector it returns, so inner product downstream equals cosine similarity.
type OllamaEmbedder struct {
	baseURL   string
	model     string
	batchSize int
	client    *http.Client
	limiter   *rate.Limiter
	logger    *slog.Logger
}

// NewOllamaEmbedder constructs the embedder. batchSize bounds how many
// texts go into one request; requestsPerSecond throttles bulk indexing so
// the embedding service is not flooded (0 disables throttling).
func NewOllamaEmbedder(baseURL, model string, batchSize int, timeout time.Duration, requestsPerSecond float64, logger *slog.Logger) *OllamaEmbedder {
	if batchSize <= 0 {
		batchSize = 32
	}
	var limiter *rate.Limiter
	if requestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), 1)
	}
	return &OllamaEmbedder{
		baseURL:   strings.TrimRight(baseURL, "/"),
		model:     model,
		batchSize: batchSize,
		client:    httpclient.NewPooledClient(timeout),
		limiter:   limiter,
		logger:    logger,
	}
}

type embedRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

// Encode embeds the texts in batches, preserving input order.
func (e *OllamaEmbedder) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	start := time.Now()

	vectors := make([][]float32, 0, len(texts))
	for lo := 0; lo < len(texts); lo += e.batchSize {
		hi := lo + e.batchSize
		if hi > len(texts) {
			hi = len(texts)
		}
		batch, err := e.encodeBatch(ctx, texts[lo:hi])
		if err != nil {
			return nil, err
		}
		vectors = append(vectors, batch...)
	}

	e.logger.Info("embed_completed",
		slog.Int("text_count", len(texts)),
		slog.String("model", e.model),
		slog.Duration("elapsed", time.Since(start)),
	)
	return vectors, nil
}

func (e *OllamaEmbedder) encodeBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter interrupted: %w", err)
		}
	}

	jsonData, err := json.Marshal(embedRequest{Model: e.model, Input: texts})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal embed request: %w", err)
	}

	url := fmt.Sprintf("%s/api/embed", e.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create embed request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		e.logger.Error("embed_failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to call embedding endpoint: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		e.logger.Error("embed_bad_status", slog.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("embedding endpoint returned status %d", resp.StatusCode)
	}

	var respBody embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&respBody); err != nil {
		return nil, fmt.Errorf("failed to decode embed response: %w", err)
	}
	if len(respBody.Embeddings) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(respBody.Embeddings))
	}

	for _, v := range respBody.Embeddings {
		Normalize(v)
	}
	return respBody.Embeddings, nil
}

// Version returns the wrapped model name.
func (e *OllamaEmbedder) Version() string {
	return e.model
}

// Normalize scales v in place to unit L2 norm. Zero vectors stay zero.
func Normalize(v []float32) {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return
	}
	inv := float32(1 / math.Sqrt(sum))
	for i := range v {
		v[i] *= inv
	}
}

var _ domain.VectorEncoder = (*OllamaEmbedder)(nil)
