package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText_RejoinsHyphenatedWords(t *testing.T) {
	got := NormalizeText("toda persona tiene derecho a la liber-\ntad de conciencia")
	assert.Equal(t, "toda persona tiene derecho a la libertad de conciencia", got)
}

func TestNormalizeText_StripsPageArtifacts(t *testing.T) {
	input := "fin del artículo primero\n - 12 - \nArtículo 2. Toda persona"
	got := NormalizeText(input)
	assert.NotContains(t, got, "12")
	assert.Contains(t, got, "fin del artículo primero\nArtículo 2. Toda persona")

	input = "fin de página\nPágina 34\nsigue el texto"
	got = NormalizeText(input)
	assert.NotContains(t, got, "Página")
	assert.Contains(t, got, "fin de página\nsigue el texto")
}

func TestNormalizeText_CollapsesWhitespace(t *testing.T) {
	input := "Artículo \t 1.\r\nLa defensa de la persona\n\n\n\n\nTÍTULO II"
	got := NormalizeText(input)
	assert.Equal(t, "Artículo 1.\nLa defensa de la persona\n\nTÍTULO II", got)
}

func TestCleanArticleBody_FlattensToOneLine(t *testing.T) {
	got := cleanArticleBody("  La defensa de la persona humana\ny el respeto de su dignidad\n  son el fin supremo ")
	assert.Equal(t, "La defensa de la persona humana y el respeto de su dignidad son el fin supremo", got)
}
