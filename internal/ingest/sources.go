package ingest

import (
	"time"

	"github.com/RodrigoAlexander7/law-copilot/internal/domain"
)

// SourceSpec configures the parser for one legal source: its identity,
// deterministic ID prefix and promulgation date.
type SourceSpec struct {
	ID          string
	Type        domain.SourceType
	Name        string
	IDPrefix    string
	Promulgated time.Time
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Presets returns the source specs the ingestion CLI knows how to process.
func Presets() []SourceSpec {
	return []SourceSpec{
		{
			ID:          "constitucion_1993",
			Type:        domain.SourceConstitution,
			Name:        "Constitución Política del Perú (1993)",
			IDPrefix:    "CONST_1993",
			Promulgated: date(1993, time.December, 29),
		},
		{
			ID:          "codigo_civil",
			Type:        domain.SourceCode,
			Name:        "Código Civil del Perú",
			IDPrefix:    "CODCIV_1984",
			Promulgated: date(1984, time.July, 24),
		},
		{
			ID:          "codigo_proteccion_consumidor_29571",
			Type:        domain.SourceCode,
			Name:        "Código de Protección al Consumidor (Ley 29571)",
			IDPrefix:    "CODCONS_29571",
			Promulgated: date(2010, time.September, 1),
		},
		{
			ID:          "ley_30364_violencia_mujer",
			Type:        domain.SourceStatute,
			Name:        "Ley 30364 - Violencia contra la Mujer",
			IDPrefix:    "LEY_30364",
			Promulgated: date(2015, time.November, 23),
		},
	}
}

// PresetByID looks up a source spec by its source identifier.
func PresetByID(id string) (SourceSpec, bool) {
	for _, s := range Presets() {
		if s.ID == id {
			return s, true
		}
	}
	return SourceSpec{}, false
}
