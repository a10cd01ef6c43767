package httpapi

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/RodrigoAlexander7/law-copilot/internal/usecase"
)

// QueryRequest is the body for both the query and retrieve endpoints. The
// optional fields override the configured retrieval defaults per request.
type QueryRequest struct {
	Query          string   `json:"pregunta"`
	TopK           int      `json:"top_k,omitempty"`
	ScoreThreshold *float32 `json:"score_threshold,omitempty"`
	UseRewriting   *bool    `json:"use_rewriting,omitempty"`
}

func (r QueryRequest) toInput() usecase.QueryInput {
	return usecase.QueryInput{
		Query:          r.Query,
		TopK:           r.TopK,
		ScoreThreshold: r.ScoreThreshold,
		UseRewriting:   r.UseRewriting,
	}
}

type Handler struct {
	legalQuery usecase.LegalQueryUsecase
	logger     *slog.Logger
}

func NewHandler(legalQuery usecase.LegalQueryUsecase, logger *slog.Logger) *Handler {
	return &Handler{legalQuery: legalQuery, logger: logger}
}

// Register mounts the API routes on the echo instance.
func (h *Handler) Register(e *echo.Echo) {
	e.POST("/v1/legal/query", h.Query)
	e.POST("/v1/legal/retrieve", h.Retrieve)
	e.GET("/health", h.Health)
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
}

// Query answers a legal question with generation over retrieved articles.
// (POST /v1/legal/query)
func (h *Handler) Query(ctx echo.Context) error {
	req, ok := bindQuery(ctx)
	if !ok {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "pregunta is required"})
	}

	resp, err := h.legalQuery.Query(ctx.Request().Context(), req.toInput())
	if err != nil {
		h.logger.Error("query_endpoint_failed", slog.String("error", err.Error()))
		return ctx.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	return ctx.JSON(http.StatusOK, resp)
}

// Retrieve returns ranked articles without LLM generation.
// (POST /v1/legal/retrieve)
func (h *Handler) Retrieve(ctx echo.Context) error {
	req, ok := bindQuery(ctx)
	if !ok {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "pregunta is required"})
	}

	resp, err := h.legalQuery.RetrieveOnly(ctx.Request().Context(), req.toInput())
	if err != nil {
		h.logger.Error("retrieve_endpoint_failed", slog.String("error", err.Error()))
		return ctx.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	return ctx.JSON(http.StatusOK, resp)
}

// Health reports pipeline dependency readiness.
// (GET /health)
func (h *Handler) Health(ctx echo.Context) error {
	hs := h.legalQuery.HealthCheck(ctx.Request().Context())
	code := http.StatusOK
	if hs.Status != "ok" {
		code = http.StatusServiceUnavailable
	}
	return ctx.JSON(code, hs)
}

func bindQuery(ctx echo.Context) (QueryRequest, bool) {
	var req QueryRequest
	if err := ctx.Bind(&req); err != nil {
		return req, false
	}
	req.Query = strings.TrimSpace(req.Query)
	return req, req.Query != ""
}
