package usecase_test

import (
	"context"
	"io"
	"log/slog"

	"github.com/stretchr/testify/mock"

	"github.com/RodrigoAlexander7/law-copilot/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// MockLLMClient
type MockLLMClient struct {
	mock.Mock
}

func (m *MockLLMClient) Generate(ctx context.Context, req domain.GenerateRequest) (*domain.LLMResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LLMResponse), args.Error(1)
}

func (m *MockLLMClient) Version() string {
	return "mock-llm"
}

// MockVectorEncoder
type MockVectorEncoder struct {
	mock.Mock
}

func (m *MockVectorEncoder) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	args := m.Called(ctx, texts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]float32), args.Error(1)
}

func (m *MockVectorEncoder) Version() string {
	return "mock-encoder"
}

// MockSearcher
type MockSearcher struct {
	mock.Mock
}

func (m *MockSearcher) Search(query []float32, k int, scoreThreshold float32) []domain.SearchResult {
	args := m.Called(query, k, scoreThreshold)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.SearchResult)
}

func (m *MockSearcher) Len() int {
	args := m.Called()
	return args.Int(0)
}

// stubRewriter returns a fixed rewrite result without touching an LLM.
type stubRewriter struct {
	result domain.RewriteResult
}

func (s stubRewriter) Execute(ctx context.Context, query string) domain.RewriteResult {
	return s.result
}

func sampleResult(id, label, text string, score float32) domain.SearchResult {
	return domain.SearchResult{
		Article: domain.Article{
			ID:       id,
			SourceID: "constitucion_1993",
			Label:    label,
			Text:     text,
			Hierarchy: domain.Hierarchy{
				Level1: "Título I: DE LA PERSONA Y DE LA SOCIEDAD",
				Level2: "Capítulo I: DERECHOS FUNDAMENTALES DE LA PERSONA",
			},
		},
		Score: score,
	}
}
