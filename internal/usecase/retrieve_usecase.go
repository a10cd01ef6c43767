package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/RodrigoAlexander7/law-copilot/internal/domain"
	"github.com/RodrigoAlexander7/law-copilot/internal/infra/logger"
)

// RetrievalOutcome carries everything downstream stages need: the committed
// result set, the rendered context, and how the query was rewritten.
type RetrievalOutcome struct {
	Results       []domain.SearchResult
	Context       string
	Rewrite       domain.RewriteResult
	EnhancedQuery string
	// Cascaded reports whether the committed results came from a relaxed
	// secondary variant rather than the primary search.
	Cascaded bool
	// CascadeVariant is the queries_optimizadas entry that produced the
	// committed results when Cascaded is true.
	CascadeVariant string
}

// QueryInput is one retrieval request. The optional fields override the
// configured defaults for this request only.
type QueryInput struct {
	Query          string
	TopK           int      // 0 means use the configured default
	ScoreThreshold *float32 // nil means use the configured default
	UseRewriting   *bool    // nil means use the configured default
}

// RetrieveUsecase runs the full retrieval pipeline for one user query:
// optional rewrite, enhanced-query embedding, primary search, and the
// relaxed cascade over remaining optimized variants.
type RetrieveUsecase interface {
	Execute(ctx context.Context, input QueryInput) (*RetrievalOutcome, error)
}

type retrieveUsecase struct {
	encoder  domain.VectorEncoder
	searcher domain.Searcher
	rewriter RewriteQueryUsecase
	cfg      RetrievalConfig
	logger   *slog.Logger
}

func NewRetrieveUsecase(
	encoder domain.VectorEncoder,
	searcher domain.Searcher,
	rewriter RewriteQueryUsecase,
	cfg RetrievalConfig,
	logger *slog.Logger,
) RetrieveUsecase {
	return &retrieveUsecase{
		encoder:  encoder,
		searcher: searcher,
		rewriter: rewriter,
		cfg:      cfg,
		logger:   logger,
	}
}

func (u *retrieveUsecase) Execute(ctx context.Context, input QueryInput) (*RetrievalOutcome, error) {
	log := logger.FromContext(ctx, u.logger)
	cfg := u.cfg.withOverrides(input)
	query := input.Query

	rewrite := domain.FallbackRewrite(query)
	if cfg.UseRewriting && u.rewriter != nil {
		rewrite = u.rewriter.Execute(ctx, query)
	}

	enhanced := BuildEnhancedQuery(rewrite, query, cfg.MaxConcepts)

	results, err := u.search(ctx, enhanced, cfg.TopK, cfg.ScoreThreshold)
	if err != nil {
		return nil, fmt.Errorf("primary search: %w", err)
	}

	outcome := &RetrievalOutcome{
		Rewrite:       rewrite,
		EnhancedQuery: enhanced,
		Results:       results,
	}

	if len(results) == 0 && len(rewrite.OptimizedQueries) > 1 {
		relaxed := cfg.ScoreThreshold * cfg.RelaxFactor
		for _, variant := range rewrite.OptimizedQueries[1:] {
			cascadeResults, err := u.search(ctx, variant, cfg.TopK, relaxed)
			if err != nil {
				log.Warn("cascade_search_failed",
					slog.String("variant", variant),
					slog.String("error", err.Error()),
				)
				continue
			}
			if len(cascadeResults) > 0 {
				outcome.Results = cascadeResults
				outcome.Cascaded = true
				outcome.CascadeVariant = variant
				log.Info("cascade_committed",
					slog.String("variant", variant),
					slog.Int("results", len(cascadeResults)),
				)
				break
			}
		}
	}

	outcome.Context = FormatContext(outcome.Results)

	log.Info("retrieval_completed",
		slog.Int("results", len(outcome.Results)),
		slog.Bool("cascaded", outcome.Cascaded),
		slog.Bool("rewrite_fallback", rewrite.Fallback),
	)
	return outcome, nil
}

func (u *retrieveUsecase) search(ctx context.Context, text string, k int, threshold float32) ([]domain.SearchResult, error) {
	vectors, err := u.encoder.Encode(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("encoder returned %d vectors for one text", len(vectors))
	}
	return u.searcher.Search(vectors[0], k, threshold), nil
}
