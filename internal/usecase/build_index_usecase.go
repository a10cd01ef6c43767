package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/RodrigoAlexander7/law-copilot/internal/domain"
	"github.com/RodrigoAlexander7/law-copilot/internal/index"
	"github.com/RodrigoAlexander7/law-copilot/internal/infra/logger"
)

// BuildIndexParams controls one index build.
type BuildIndexParams struct {
	// Dir and Name locate the artifact set on disk.
	Dir  string
	Name string
	// BatchSize is how many enriched texts go to the encoder per call.
	BatchSize int
	// Parallelism bounds concurrent encode batches.
	Parallelism int
}

// BuildIndexResult summarizes a completed build.
type BuildIndexResult struct {
	TotalRecords int
	Dimension    int
	Manifest     index.Manifest
}

// BuildIndexUsecase embeds parsed articles and persists the artifact set
// (vector blob, records, manifest) atomically enough that a partial run
// never passes the loader's integrity checks.
type BuildIndexUsecase interface {
	Execute(ctx context.Context, articles []domain.Article, params BuildIndexParams) (*BuildIndexResult, error)
}

type buildIndexUsecase struct {
	encoder domain.VectorEncoder
	logger  *slog.Logger
}

func NewBuildIndexUsecase(encoder domain.VectorEncoder, logger *slog.Logger) BuildIndexUsecase {
	return &buildIndexUsecase{encoder: encoder, logger: logger}
}

func (u *buildIndexUsecase) Execute(ctx context.Context, articles []domain.Article, params BuildIndexParams) (*BuildIndexResult, error) {
	if len(articles) == 0 {
		return nil, fmt.Errorf("no articles to index")
	}
	log := logger.FromContext(ctx, u.logger)
	batchSize := params.BatchSize
	if batchSize <= 0 {
		batchSize = 32
	}
	parallelism := params.Parallelism
	if parallelism <= 0 {
		parallelism = 2
	}

	texts := make([]string, len(articles))
	for i, a := range articles {
		texts[i] = a.EnrichedText()
	}

	// Vectors land at the same offsets as their articles, so positional
	// alignment holds no matter which batch finishes first.
	vectors := make([][]float32, len(articles))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)
	for start := 0; start < len(texts); start += batchSize {
		end := min(start+batchSize, len(texts))
		g.Go(func() error {
			batch, err := u.encoder.Encode(gctx, texts[start:end])
			if err != nil {
				return fmt.Errorf("encode batch [%d:%d]: %w", start, end, err)
			}
			if len(batch) != end-start {
				return fmt.Errorf("encode batch [%d:%d]: got %d vectors", start, end, len(batch))
			}
			copy(vectors[start:end], batch)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	flat, err := index.Build(vectors, articles)
	if err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}

	manifest, err := index.Save(flat, params.Dir, params.Name, u.encoder.Version())
	if err != nil {
		return nil, fmt.Errorf("save index: %w", err)
	}

	log.Info("index_built",
		slog.Int("records", manifest.TotalRecords),
		slog.Int("dimension", manifest.Dimension),
		slog.String("dir", params.Dir),
		slog.String("name", params.Name),
	)

	return &BuildIndexResult{
		TotalRecords: manifest.TotalRecords,
		Dimension:    manifest.Dimension,
		Manifest:     manifest,
	}, nil
}
