package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/RodrigoAlexander7/law-copilot/internal/domain"
	"github.com/RodrigoAlexander7/law-copilot/internal/infra/logger"
)

// NoResultsAnswer is returned without calling the generator when retrieval
// committed zero results. Generation over an empty context only produces
// hallucinations.
const NoResultsAnswer = "No encontré artículos relevantes para tu consulta en la base de datos legal. " +
	"Por favor, intenta reformular tu pregunta o consulta con un abogado especializado."

// AnswerUsecase turns a retrieval outcome into a grounded natural-language
// answer for the original question.
type AnswerUsecase interface {
	Execute(ctx context.Context, originalQuery string, outcome *RetrievalOutcome) (string, error)
}

type answerUsecase struct {
	llm         domain.LLMClient
	temperature float32
	maxTokens   int
	logger      *slog.Logger
}

func NewAnswerUsecase(llm domain.LLMClient, temperature float32, maxTokens int, logger *slog.Logger) AnswerUsecase {
	return &answerUsecase{
		llm:         llm,
		temperature: temperature,
		maxTokens:   maxTokens,
		logger:      logger,
	}
}

func (u *answerUsecase) Execute(ctx context.Context, originalQuery string, outcome *RetrievalOutcome) (string, error) {
	log := logger.FromContext(ctx, u.logger)
	if len(outcome.Results) == 0 {
		log.Info("answer_short_circuit", slog.String("reason", "no_results"))
		return NoResultsAnswer, nil
	}

	resp, err := u.llm.Generate(ctx, domain.GenerateRequest{
		Prompt:       BuildAnswerPrompt(outcome.Context, originalQuery),
		SystemPrompt: answerSystemPrompt,
		Temperature:  u.temperature,
		MaxTokens:    u.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("generate answer: %w", err)
	}

	log.Info("answer_generated",
		slog.Int("answer_chars", len(resp.Text)),
		slog.Bool("done", resp.Done),
	)
	return resp.Text, nil
}
