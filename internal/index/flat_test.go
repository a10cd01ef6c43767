package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RodrigoAlexander7/law-copilot/internal/domain"
)

func testArticles(ids ...string) []domain.Article {
	articles := make([]domain.Article, 0, len(ids))
	for _, id := range ids {
		articles = append(articles, domain.Article{
			ID:       id,
			SourceID: "constitucion_1993",
			Label:    "Artículo " + id,
			Text:     "cuerpo del artículo " + id,
		})
	}
	return articles
}

func TestBuild_RejectsMisalignedInputs(t *testing.T) {
	_, err := Build([][]float32{{1, 0}}, testArticles("1", "2"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCorruptIndex)

	_, err = Build(nil, nil)
	assert.Error(t, err)

	_, err = Build([][]float32{{1, 0}, {1, 0, 0}}, testArticles("1", "2"))
	assert.Error(t, err)
}

func TestFlat_SearchSelfQueryScoresNearOne(t *testing.T) {
	vectors := [][]float32{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
	f, err := Build(vectors, testArticles("1", "2", "3"))
	require.NoError(t, err)

	results := f.Search([]float32{0, 1, 0}, 3, 0.3)
	require.Len(t, results, 1)
	assert.Equal(t, "2", results[0].Article.ID)
	assert.InDelta(t, 1.0, float64(results[0].Score), 1e-6)
}

func TestFlat_SearchThresholdExcludesLowScores(t *testing.T) {
	vectors := [][]float32{
		{1, 0},
		{0.6, 0.8},
		{0, 1},
	}
	f, err := Build(vectors, testArticles("1", "2", "3"))
	require.NoError(t, err)

	results := f.Search([]float32{1, 0}, 5, 0.5)
	require.Len(t, results, 2)
	assert.Equal(t, "1", results[0].Article.ID)
	assert.Equal(t, "2", results[1].Article.ID)

	// A candidate exactly at the threshold survives; below it is excluded.
	results = f.Search([]float32{1, 0}, 5, 0.6)
	require.Len(t, results, 2)
	results = f.Search([]float32{1, 0}, 5, 0.61)
	require.Len(t, results, 1)
}

func TestFlat_SearchKLargerThanCorpus(t *testing.T) {
	vectors := [][]float32{{1, 0}, {0.9, 0.1}}
	f, err := Build(vectors, testArticles("1", "2"))
	require.NoError(t, err)

	results := f.Search([]float32{1, 0}, 100, -1)
	assert.Len(t, results, 2)
}

func TestFlat_SearchTiesKeepInsertionOrder(t *testing.T) {
	v := []float32{0.6, 0.8}
	f, err := Build([][]float32{v, v, v}, testArticles("1", "2", "3"))
	require.NoError(t, err)

	results := f.Search([]float32{0.6, 0.8}, 3, 0)
	require.Len(t, results, 3)
	assert.Equal(t, "1", results[0].Article.ID)
	assert.Equal(t, "2", results[1].Article.ID)
	assert.Equal(t, "3", results[2].Article.ID)
}

func TestFlat_SearchNonPositiveK(t *testing.T) {
	f, err := Build([][]float32{{1, 0}}, testArticles("1"))
	require.NoError(t, err)

	assert.Nil(t, f.Search([]float32{1, 0}, 0, 0))
	assert.Nil(t, f.Search([]float32{1, 0}, -1, 0))
}
