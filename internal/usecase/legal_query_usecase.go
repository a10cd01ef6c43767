package usecase

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/RodrigoAlexander7/law-copilot/internal/domain"
	"github.com/RodrigoAlexander7/law-copilot/internal/infra/logger"
)

const tracerName = "law-copilot/legal-query"

// SourceView is the wire projection of a retrieved article: the excerpt is
// truncated so responses stay small even for long articles.
type SourceView struct {
	ID        string   `json:"id"`
	Source    string   `json:"fuente"`
	Label     string   `json:"articulo"`
	Hierarchy string   `json:"jerarquia,omitempty"`
	Excerpt   string   `json:"texto"`
	Score     float32  `json:"relevancia"`
	Tags      []string `json:"tags,omitempty"`
}

// RewriteView summarizes what the rewriter did with the query.
type RewriteView struct {
	Topic            string   `json:"tema_legal"`
	KeyConcepts      []string `json:"conceptos_clave"`
	OptimizedQueries []string `json:"queries_optimizadas"`
	Fallback         bool     `json:"fallback"`
}

// RAGResponse is the full answer payload for one legal question.
type RAGResponse struct {
	Answer            string       `json:"respuesta"`
	Sources           []SourceView `json:"fuentes"`
	Query             string       `json:"consulta"`
	QueryID           string       `json:"query_id"`
	TotalSourcesFound int          `json:"total_fuentes"`
	Cascaded          bool         `json:"busqueda_en_cascada"`
	Rewrite           RewriteView  `json:"reescritura"`
}

// RetrieveResponse is the retrieval-only payload: same sources, no answer.
type RetrieveResponse struct {
	Sources           []SourceView `json:"fuentes"`
	Query             string       `json:"consulta"`
	QueryID           string       `json:"query_id"`
	TotalSourcesFound int          `json:"total_fuentes"`
	Cascaded          bool         `json:"busqueda_en_cascada"`
	Rewrite           RewriteView  `json:"reescritura"`
}

// HealthStatus reports readiness of every pipeline dependency.
type HealthStatus struct {
	Status   string `json:"status"`
	Embedder string `json:"embedder"`
	Index    struct {
		Loaded       bool `json:"loaded"`
		TotalRecords int  `json:"total_records"`
	} `json:"index"`
	GenerationProvider string `json:"generation_provider"`
}

// LegalQueryUsecase is the service facade: full question answering,
// retrieval without generation, and dependency health.
type LegalQueryUsecase interface {
	Query(ctx context.Context, input QueryInput) (*RAGResponse, error)
	RetrieveOnly(ctx context.Context, input QueryInput) (*RetrieveResponse, error)
	HealthCheck(ctx context.Context) HealthStatus
}

type legalQueryUsecase struct {
	retriever RetrieveUsecase
	answerer  AnswerUsecase
	encoder   domain.VectorEncoder
	searcher  domain.Searcher
	llm       domain.LLMClient
	logger    *slog.Logger
	tracer    trace.Tracer
}

func NewLegalQueryUsecase(
	retriever RetrieveUsecase,
	answerer AnswerUsecase,
	encoder domain.VectorEncoder,
	searcher domain.Searcher,
	llm domain.LLMClient,
	log *slog.Logger,
) LegalQueryUsecase {
	return &legalQueryUsecase{
		retriever: retriever,
		answerer:  answerer,
		encoder:   encoder,
		searcher:  searcher,
		llm:       llm,
		logger:    log,
		tracer:    otel.Tracer(tracerName),
	}
}

func (u *legalQueryUsecase) Query(ctx context.Context, input QueryInput) (*RAGResponse, error) {
	queryID := uuid.NewString()
	ctx = logger.WithQueryID(ctx, queryID)

	ctx, span := u.tracer.Start(ctx, "legal_query",
		trace.WithAttributes(attribute.String("query.id", queryID)))
	defer span.End()

	outcome, err := u.retriever.Execute(logger.WithStage(ctx, "retrieve"), input)
	if err != nil {
		u.logger.Error("query_retrieval_failed",
			slog.String("query_id", queryID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	span.SetAttributes(
		attribute.Int("retrieval.results", len(outcome.Results)),
		attribute.Bool("retrieval.cascaded", outcome.Cascaded),
	)

	answer, err := u.answerer.Execute(logger.WithStage(ctx, "generate"), input.Query, outcome)
	if err != nil {
		u.logger.Error("query_generation_failed",
			slog.String("query_id", queryID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	u.logger.Info("query_completed",
		slog.String("query_id", queryID),
		slog.Int("sources", len(outcome.Results)),
	)

	return &RAGResponse{
		Answer:            answer,
		Sources:           projectSources(outcome.Results),
		Query:             input.Query,
		QueryID:           queryID,
		TotalSourcesFound: len(outcome.Results),
		Cascaded:          outcome.Cascaded,
		Rewrite:           projectRewrite(outcome.Rewrite),
	}, nil
}

func (u *legalQueryUsecase) RetrieveOnly(ctx context.Context, input QueryInput) (*RetrieveResponse, error) {
	queryID := uuid.NewString()
	ctx = logger.WithQueryID(ctx, queryID)

	ctx, span := u.tracer.Start(ctx, "legal_retrieve",
		trace.WithAttributes(attribute.String("query.id", queryID)))
	defer span.End()

	outcome, err := u.retriever.Execute(logger.WithStage(ctx, "retrieve"), input)
	if err != nil {
		u.logger.Error("retrieve_failed",
			slog.String("query_id", queryID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	span.SetAttributes(attribute.Int("retrieval.results", len(outcome.Results)))

	return &RetrieveResponse{
		Sources:           projectSources(outcome.Results),
		Query:             input.Query,
		QueryID:           queryID,
		TotalSourcesFound: len(outcome.Results),
		Cascaded:          outcome.Cascaded,
		Rewrite:           projectRewrite(outcome.Rewrite),
	}, nil
}

func (u *legalQueryUsecase) HealthCheck(ctx context.Context) HealthStatus {
	var hs HealthStatus
	hs.Status = "ok"
	hs.Embedder = u.encoder.Version()
	hs.GenerationProvider = u.llm.Version()
	hs.Index.TotalRecords = u.searcher.Len()
	hs.Index.Loaded = hs.Index.TotalRecords > 0
	if !hs.Index.Loaded {
		hs.Status = "degraded"
	}
	return hs
}

const excerptLimit = 500

func projectSources(results []domain.SearchResult) []SourceView {
	views := make([]SourceView, 0, len(results))
	for _, res := range results {
		a := res.Article
		views = append(views, SourceView{
			ID:        a.ID,
			Source:    formatSourceName(a.SourceID),
			Label:     a.Label,
			Hierarchy: a.Hierarchy.Path(),
			Excerpt:   truncateRunes(a.Text, excerptLimit),
			Score:     res.Score,
			Tags:      a.Metadata.Tags,
		})
	}
	return views
}

func projectRewrite(rw domain.RewriteResult) RewriteView {
	return RewriteView{
		Topic:            rw.Topic,
		KeyConcepts:      rw.KeyConcepts,
		OptimizedQueries: rw.OptimizedQueries,
		Fallback:         rw.Fallback,
	}
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
