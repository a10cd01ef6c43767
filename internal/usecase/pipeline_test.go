package usecase_test

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RodrigoAlexander7/law-copilot/internal/index"
	"github.com/RodrigoAlexander7/law-copilot/internal/ingest"
	"github.com/RodrigoAlexander7/law-copilot/internal/usecase"
)

// keywordEncoder is a deterministic stand-in for the embedding service: one
// dimension per keyword, set when the keyword occurs in the lowercased text,
// unit-normalized. Texts about the same concepts land close together.
type keywordEncoder struct {
	keywords []string
}

func (e keywordEncoder) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		lower := strings.ToLower(text)
		v := make([]float32, len(e.keywords))
		var active float64
		for j, kw := range e.keywords {
			if strings.Contains(lower, kw) {
				v[j] = 1
				active++
			}
		}
		if active > 0 {
			norm := float32(math.Sqrt(active))
			for j := range v {
				v[j] /= norm
			}
		}
		vectors[i] = v
	}
	return vectors, nil
}

func (e keywordEncoder) Version() string { return "keyword-test-encoder" }

const pipelineSample = `TÍTULO I: DE LA PERSONA Y DE LA SOCIEDAD
CAPÍTULO I: DERECHOS FUNDAMENTALES DE LA PERSONA
Artículo 1. La defensa de la persona humana y el respeto de su dignidad son el fin supremo de la sociedad y del Estado.
Artículo 2. Toda persona tiene derecho a la vida, a su identidad y a su integridad moral. Los derechos fundamentales aquí enumerados no excluyen los demás.
TÍTULO II: DEL ESTADO Y LA NACIÓN
Artículo 3. El Estado es uno e indivisible. Su gobierno es unitario y descentralizado.
Artículo 4. El territorio del Estado es inalienable e inviolable.`

// The whole pipeline against one corpus: parse, embed, persist, reload and
// retrieve. A question about fundamental rights to life must surface
// Artículo 2 from Título I first.
func TestPipeline_ParseBuildLoadRetrieve(t *testing.T) {
	spec, ok := ingest.PresetByID("constitucion_1993")
	require.True(t, ok)
	articles := ingest.NewParser(spec).Parse(pipelineSample)
	require.Len(t, articles, 4)

	encoder := keywordEncoder{keywords: []string{
		"derechos fundamentales", "vida", "persona", "estado", "territorio",
	}}

	dir := t.TempDir()
	builder := usecase.NewBuildIndexUsecase(encoder, testLogger())
	built, err := builder.Execute(context.Background(), articles, usecase.BuildIndexParams{
		Dir:         dir,
		Name:        "legal_index",
		BatchSize:   2,
		Parallelism: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, built.TotalRecords)
	assert.Equal(t, 5, built.Dimension)
	assert.Equal(t, "keyword-test-encoder", built.Manifest.Encoder)

	flat, manifest, err := index.Load(dir, "legal_index")
	require.NoError(t, err)
	assert.Equal(t, []string{"constitucion_1993"}, manifest.SourceIDs)

	uc := usecase.NewRetrieveUsecase(encoder, flat, nil, usecase.RetrievalConfig{
		TopK:           5,
		ScoreThreshold: 0.3,
		RelaxFactor:    0.8,
		MaxConcepts:    4,
		UseRewriting:   false,
	}, testLogger())

	outcome, err := uc.Execute(context.Background(), usecase.QueryInput{Query: "derechos fundamentales y derecho a la vida de la persona"})
	require.NoError(t, err)
	require.NotEmpty(t, outcome.Results)

	top := outcome.Results[0]
	assert.Equal(t, "CONST_1993_ART_2", top.Article.ID)
	assert.Equal(t, "Título I: DE LA PERSONA Y DE LA SOCIEDAD", top.Article.Hierarchy.Level1)
	assert.Contains(t, top.Article.Metadata.Tags, "derechos fundamentales")
	assert.InDelta(t, 1.0, float64(top.Score), 1e-5)
	assert.Contains(t, outcome.Context, "Constitución Política del Perú (1993)")
}
