package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RodrigoAlexander7/law-copilot/internal/domain"
)

const sampleConstitution = `TÍTULO I: DE LA PERSONA Y DE LA SOCIEDAD
CAPÍTULO I: DERECHOS FUNDAMENTALES DE LA PERSONA
Artículo 1. La defensa de la persona humana y el respeto de su dignidad son el fin supremo de la sociedad y del Estado.
Artículo 2. Toda persona tiene derecho a la vida, a su identidad y a su libertad de conciencia. Los derechos fundamentales reconocidos no excluyen los demás que la norma garantiza.
TÍTULO II: DEL ESTADO Y LA NACIÓN
Artículo 3. El Estado es uno e indivisible. Su gobierno es unitario, representativo y descentralizado.
CAPÍTULO I: DEL TERRITORIO
Artículo 4. El territorio del Estado es inalienable e inviolable.
Artículo 2. Texto repetido que no debe producir un registro nuevo.
DISPOSICIONES FINALES Y TRANSITORIAS
PRIMERA. La renovación de los miembros se inicia con los elegidos en el proceso electoral.
SEGUNDA. El Estado garantiza el pago y reajuste oportuno de las pensiones que administra.`

func constitutionSpec() SourceSpec {
	spec, ok := PresetByID("constitucion_1993")
	if !ok {
		panic("missing constitucion_1993 preset")
	}
	return spec
}

func TestParser_ParseEmitsOneRecordPerMarker(t *testing.T) {
	articles := NewParser(constitutionSpec()).Parse(sampleConstitution)

	// 4 unique articles + 2 dispositions; the repeated "Artículo 2" is noise.
	require.Len(t, articles, 6)

	ids := make([]string, 0, len(articles))
	for _, a := range articles {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []string{
		"CONST_1993_ART_1",
		"CONST_1993_ART_2",
		"CONST_1993_ART_3",
		"CONST_1993_ART_4",
		"CONST_1993_DISP_1",
		"CONST_1993_DISP_2",
	}, ids)
}

func TestParser_ArticleBodiesEndAtNextBoundary(t *testing.T) {
	articles := NewParser(constitutionSpec()).Parse(sampleConstitution)

	byID := indexByID(articles)
	assert.Equal(t, "La defensa de la persona humana y el respeto de su dignidad son el fin supremo de la sociedad y del Estado.",
		byID["CONST_1993_ART_1"].Text)
	// Article 3 stops at the CAPÍTULO heading that follows it.
	assert.Equal(t, "El Estado es uno e indivisible. Su gobierno es unitario, representativo y descentralizado.",
		byID["CONST_1993_ART_3"].Text)
	// Article 4 stops at the repeated article marker.
	assert.Equal(t, "El territorio del Estado es inalienable e inviolable.",
		byID["CONST_1993_ART_4"].Text)
}

func TestParser_HigherLevelHeadingResetsLowerLevels(t *testing.T) {
	articles := NewParser(constitutionSpec()).Parse(sampleConstitution)
	byID := indexByID(articles)

	a2 := byID["CONST_1993_ART_2"]
	assert.Equal(t, "Título I: DE LA PERSONA Y DE LA SOCIEDAD", a2.Hierarchy.Level1)
	assert.Equal(t, "Capítulo I: DERECHOS FUNDAMENTALES DE LA PERSONA", a2.Hierarchy.Level2)

	// Article 3 sits after TÍTULO II but before any of its chapters: the
	// chapter from TÍTULO I must not leak through.
	a3 := byID["CONST_1993_ART_3"]
	assert.Equal(t, "Título II: DEL ESTADO Y LA NACIÓN", a3.Hierarchy.Level1)
	assert.Empty(t, a3.Hierarchy.Level2)

	a4 := byID["CONST_1993_ART_4"]
	assert.Equal(t, "Título II: DEL ESTADO Y LA NACIÓN", a4.Hierarchy.Level1)
	assert.Equal(t, "Capítulo I: DEL TERRITORIO", a4.Hierarchy.Level2)
}

func TestParser_DispositionsGetOrdinalIDs(t *testing.T) {
	articles := NewParser(constitutionSpec()).Parse(sampleConstitution)
	byID := indexByID(articles)

	d1 := byID["CONST_1993_DISP_1"]
	assert.Equal(t, "Disposición Primera", d1.Label)
	assert.Equal(t, "Disposiciones Finales y Transitorias", d1.Hierarchy.Level1)
	assert.Equal(t, "La renovación de los miembros se inicia con los elegidos en el proceso electoral.", d1.Text)

	d2 := byID["CONST_1993_DISP_2"]
	assert.Equal(t, "Disposición Segunda", d2.Label)
}

func TestParser_RecordsCarrySourceMetadata(t *testing.T) {
	articles := NewParser(constitutionSpec()).Parse(sampleConstitution)
	byID := indexByID(articles)

	a2 := byID["CONST_1993_ART_2"]
	assert.Equal(t, "constitucion_1993", a2.SourceID)
	assert.Equal(t, domain.SourceConstitution, a2.SourceType)
	assert.Equal(t, "Artículo 2", a2.Label)
	assert.True(t, a2.Metadata.IsActive)
	if assert.NotNil(t, a2.Metadata.DatePromulgated) {
		assert.Equal(t, time.Date(1993, time.December, 29, 0, 0, 0, 0, time.UTC), *a2.Metadata.DatePromulgated)
	}
	// Vocabulary order, capped at five.
	assert.Equal(t, []string{"derechos fundamentales", "libertad", "vida"}, a2.Metadata.Tags)
}

func TestParser_EnrichedTextCarriesStructuralContext(t *testing.T) {
	articles := NewParser(constitutionSpec()).Parse(sampleConstitution)
	byID := indexByID(articles)

	enriched := byID["CONST_1993_ART_2"].EnrichedText()
	assert.True(t, len(enriched) > len(byID["CONST_1993_ART_2"].Text))
	assert.Contains(t, enriched, "Constitucion. ")
	assert.Contains(t, enriched, "Título I: DE LA PERSONA Y DE LA SOCIEDAD. ")
	assert.Contains(t, enriched, "Artículo 2. Toda persona")
}

func TestExtractTags_NoMatchesYieldsEmptySet(t *testing.T) {
	tags := ExtractTags("texto sin ninguna palabra del vocabulario jurídico")
	assert.Empty(t, tags)
	assert.NotNil(t, tags)
}

func indexByID(articles []domain.Article) map[string]domain.Article {
	m := make(map[string]domain.Article, len(articles))
	for _, a := range articles {
		m[a.ID] = a
	}
	return m
}
