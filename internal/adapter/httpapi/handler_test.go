package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RodrigoAlexander7/law-copilot/internal/usecase"
)

type stubLegalQuery struct {
	queryResp    *usecase.RAGResponse
	retrieveResp *usecase.RetrieveResponse
	health       usecase.HealthStatus
	err          error
	lastInput    usecase.QueryInput
}

func (s *stubLegalQuery) Query(ctx context.Context, input usecase.QueryInput) (*usecase.RAGResponse, error) {
	s.lastInput = input
	return s.queryResp, s.err
}

func (s *stubLegalQuery) RetrieveOnly(ctx context.Context, input usecase.QueryInput) (*usecase.RetrieveResponse, error) {
	s.lastInput = input
	return s.retrieveResp, s.err
}

func (s *stubLegalQuery) HealthCheck(ctx context.Context) usecase.HealthStatus {
	return s.health
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func doRequest(t *testing.T, h *Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	h.Register(e)

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Query_Success(t *testing.T) {
	stub := &stubLegalQuery{queryResp: &usecase.RAGResponse{
		Answer:            "Según el Artículo 2 de la Constitución, sí.",
		Query:             "¿tengo derecho a la vida?",
		QueryID:           "qid-1",
		TotalSourcesFound: 1,
	}}
	h := NewHandler(stub, discardLogger())

	rec := doRequest(t, h, http.MethodPost, "/v1/legal/query", `{"pregunta": "¿tengo derecho a la vida?"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "¿tengo derecho a la vida?", stub.lastInput.Query)

	var resp usecase.RAGResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Según el Artículo 2 de la Constitución, sí.", resp.Answer)
	assert.Equal(t, 1, resp.TotalSourcesFound)
}

func TestHandler_Query_ForwardsOverrides(t *testing.T) {
	stub := &stubLegalQuery{queryResp: &usecase.RAGResponse{}}
	h := NewHandler(stub, discardLogger())

	body := `{"pregunta": "q", "top_k": 12, "score_threshold": 0.7, "use_rewriting": false}`
	rec := doRequest(t, h, http.MethodPost, "/v1/legal/query", body)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, 12, stub.lastInput.TopK)
	require.NotNil(t, stub.lastInput.ScoreThreshold)
	assert.InDelta(t, 0.7, *stub.lastInput.ScoreThreshold, 1e-6)
	require.NotNil(t, stub.lastInput.UseRewriting)
	assert.False(t, *stub.lastInput.UseRewriting)
}

func TestHandler_Query_MissingQuestionIsBadRequest(t *testing.T) {
	h := NewHandler(&stubLegalQuery{}, discardLogger())

	for _, body := range []string{`{}`, `{"pregunta": "   "}`, `not json`} {
		rec := doRequest(t, h, http.MethodPost, "/v1/legal/query", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body: %s", body)
	}
}

func TestHandler_Query_UsecaseErrorIsInternal(t *testing.T) {
	stub := &stubLegalQuery{err: errors.New("encoder unavailable")}
	h := NewHandler(stub, discardLogger())

	rec := doRequest(t, h, http.MethodPost, "/v1/legal/query", `{"pregunta": "q"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	// Internal details never leak to the client.
	assert.NotContains(t, rec.Body.String(), "encoder unavailable")
}

func TestHandler_Retrieve_Success(t *testing.T) {
	stub := &stubLegalQuery{retrieveResp: &usecase.RetrieveResponse{
		Query:             "despido arbitrario",
		QueryID:           "qid-2",
		TotalSourcesFound: 3,
	}}
	h := NewHandler(stub, discardLogger())

	rec := doRequest(t, h, http.MethodPost, "/v1/legal/retrieve", `{"pregunta": "despido arbitrario"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp usecase.RetrieveResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.TotalSourcesFound)
}

func TestHandler_Health(t *testing.T) {
	healthy := usecase.HealthStatus{Status: "ok", Embedder: "paraphrase-multilingual", GenerationProvider: "gemini-2.0-flash"}
	healthy.Index.Loaded = true
	healthy.Index.TotalRecords = 612

	h := NewHandler(&stubLegalQuery{health: healthy}, discardLogger())
	rec := doRequest(t, h, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_records":612`)

	degraded := usecase.HealthStatus{Status: "degraded"}
	h = NewHandler(&stubLegalQuery{health: degraded}, discardLogger())
	rec = doRequest(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
