package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/RodrigoAlexander7/law-copilot/internal/domain"
)

const rewriteSystemPrompt = `Eres un experto en derecho peruano y en recuperación de información legal.
Tu tarea es transformar la consulta coloquial de un ciudadano en términos de búsqueda optimizados.

El corpus disponible contiene: la Constitución Política del Perú (1993), el Código Civil,
el Código de Protección al Consumidor (Ley 29571) y la Ley 30364 sobre violencia contra la mujer.

Responde ÚNICAMENTE con un objeto JSON con esta estructura exacta:
{
  "tema_legal": "área del derecho identificada",
  "conceptos_clave": ["concepto jurídico 1", "concepto jurídico 2"],
  "queries_optimizadas": ["mejor query de búsqueda", "query alternativa"],
  "leyes_relevantes": ["norma probablemente aplicable"]
}

La primera entrada de queries_optimizadas debe ser la mejor reformulación.
No agregues explicaciones ni texto fuera del JSON.`

// RewriteQueryUsecase turns a colloquial query into a structured search
// intent. It never fails: any service or parse error degrades to the
// fallback result, so callers treat rewriting as always succeeding.
type RewriteQueryUsecase interface {
	Execute(ctx context.Context, query string) domain.RewriteResult
}

type rewriteQueryUsecase struct {
	llmClient domain.LLMClient
	maxTokens int
	logger    *slog.Logger
}

// NewRewriteQueryUsecase creates the rewriter on top of the generative
// service client.
func NewRewriteQueryUsecase(llmClient domain.LLMClient, maxTokens int, logger *slog.Logger) RewriteQueryUsecase {
	return &rewriteQueryUsecase{
		llmClient: llmClient,
		maxTokens: maxTokens,
		logger:    logger,
	}
}

func (u *rewriteQueryUsecase) Execute(ctx context.Context, query string) domain.RewriteResult {
	resp, err := u.llmClient.Generate(ctx, domain.GenerateRequest{
		Prompt:       fmt.Sprintf("Consulta del usuario: %s", query),
		SystemPrompt: rewriteSystemPrompt,
		Temperature:  0,
		MaxTokens:    u.maxTokens,
	})
	if err != nil {
		u.logger.Warn("rewrite_service_failed", slog.String("error", err.Error()))
		return domain.FallbackRewrite(query)
	}

	result, err := parseRewrite(resp.Text)
	if err != nil {
		u.logger.Warn("rewrite_parse_failed", slog.String("error", err.Error()))
		return domain.FallbackRewrite(query)
	}
	return result
}

// parseRewrite decides once, at the parse boundary, whether the structured
// output is usable. Past this point no caller branches on field presence.
func parseRewrite(raw string) (domain.RewriteResult, error) {
	trimmed := stripCodeFence(raw)
	if trimmed == "" {
		return domain.RewriteResult{}, fmt.Errorf("empty rewrite response")
	}

	var result domain.RewriteResult
	if err := json.Unmarshal([]byte(trimmed), &result); err != nil {
		return domain.RewriteResult{}, fmt.Errorf("failed to parse rewrite response: %w", err)
	}
	if len(result.OptimizedQueries) == 0 {
		return domain.RewriteResult{}, fmt.Errorf("rewrite response has no optimized queries")
	}
	if result.KeyConcepts == nil {
		result.KeyConcepts = []string{}
	}
	if result.RelevantLaws == nil {
		result.RelevantLaws = []string{}
	}
	return result, nil
}

// stripCodeFence removes a leading/trailing markdown fence if the model
// wrapped its JSON despite instructions.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}

// BuildEnhancedQuery concatenates the original query, up to maxConcepts key
// concepts and the best optimized query (when it differs from the
// original), joined by ". ". The result feeds retrieval only; generation
// always sees the original query.
func BuildEnhancedQuery(rw domain.RewriteResult, originalQuery string, maxConcepts int) string {
	parts := []string{originalQuery}

	if len(rw.KeyConcepts) > 0 && maxConcepts > 0 {
		concepts := rw.KeyConcepts
		if len(concepts) > maxConcepts {
			concepts = concepts[:maxConcepts]
		}
		parts = append(parts, strings.Join(concepts, " "))
	}

	if len(rw.OptimizedQueries) > 0 && rw.OptimizedQueries[0] != originalQuery {
		parts = append(parts, rw.OptimizedQueries[0])
	}

	return strings.Join(parts, ". ")
}
