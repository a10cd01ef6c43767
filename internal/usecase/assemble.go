package usecase

import (
	"fmt"
	"strings"

	"github.com/RodrigoAlexander7/law-copilot/internal/domain"
)

// EmptyContextSentinel is the fixed context used when no record clears the
// threshold after the cascade. It is informational, not an error.
const EmptyContextSentinel = "No se encontraron artículos relevantes."

var sourceDisplayNames = map[string]string{
	"constitucion_1993":                  "Constitución Política del Perú (1993)",
	"codigo_civil":                       "Código Civil del Perú",
	"codigo_proteccion_consumidor_29571": "Código de Protección al Consumidor (Ley 29571)",
	"ley_30364_violencia_mujer":          "Ley 30364 - Violencia contra la Mujer",
}

// FormatContext renders the committed result set as the ranked context
// string handed to the generator: source name, hierarchy path, label,
// excerpt and relevance percentage per entry.
func FormatContext(results []domain.SearchResult) string {
	if len(results) == 0 {
		return EmptyContextSentinel
	}

	entries := make([]string, 0, len(results))
	for i, res := range results {
		a := res.Article
		var sb strings.Builder
		fmt.Fprintf(&sb, "[%d] %s\n", i+1, formatSourceName(a.SourceID))
		if path := a.Hierarchy.Path(); path != "" {
			fmt.Fprintf(&sb, "    %s\n", path)
		}
		fmt.Fprintf(&sb, "    %s: %s\n", a.Label, a.Text)
		fmt.Fprintf(&sb, "    (Relevancia: %.2f%%)", res.Score*100)
		entries = append(entries, sb.String())
	}
	return strings.Join(entries, "\n\n")
}

// formatSourceName maps a source identifier to a readable display name,
// falling back to title-casing the identifier.
func formatSourceName(sourceID string) string {
	if name, ok := sourceDisplayNames[sourceID]; ok {
		return name
	}
	words := strings.Split(strings.ReplaceAll(sourceID, "_", " "), " ")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
