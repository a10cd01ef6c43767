package domain

import (
	"strings"
	"time"
)

// SourceType classifies the kind of legal source an article belongs to.
type SourceType string

const (
	SourceConstitution SourceType = "constitucion"
	SourceCode         SourceType = "codigo"
	SourceStatute      SourceType = "ley"
	SourceRegulation   SourceType = "reglamento"
	SourceDecree       SourceType = "decreto"
)

// Hierarchy locates an article inside the table-of-contents structure of
// its source document. Levels are optional: a statute without chapters
// simply leaves Level2/Level3 empty.
type Hierarchy struct {
	Level1 string `json:"level_1,omitempty"`
	Level2 string `json:"level_2,omitempty"`
	Level3 string `json:"level_3,omitempty"`
}

// Path renders the hierarchy as a readable breadcrumb ("Título I > Capítulo II").
func (h Hierarchy) Path() string {
	var parts []string
	for _, level := range []string{h.Level1, h.Level2, h.Level3} {
		if level != "" {
			parts = append(parts, level)
		}
	}
	return strings.Join(parts, " > ")
}

// Metadata carries legal status information for an article.
type Metadata struct {
	IsActive        bool       `json:"is_active"`
	DatePromulgated *time.Time `json:"date_promulgated,omitempty"`
	Tags            []string   `json:"tags"`
}

// Article is the canonical structured unit produced by ingestion: one
// statute article or final disposition with its hierarchy and metadata.
// Articles are immutable after creation and serve as the parallel
// metadata store of the vector index.
type Article struct {
	ID         string     `json:"id"`
	SourceID   string     `json:"source_id"`
	SourceType SourceType `json:"source_type"`
	Label      string     `json:"label"`
	Text       string     `json:"text_content"`
	Hierarchy  Hierarchy  `json:"hierarchy"`
	Metadata   Metadata   `json:"metadata"`
}

// EnrichedText concatenates source type, hierarchy headings, label and body
// so the embedding carries structural context. Empty parts are skipped.
// Queries are never enriched; this applies at index-build time only.
func (a Article) EnrichedText() string {
	parts := []string{
		capitalize(string(a.SourceType)),
		a.Hierarchy.Level1,
		a.Hierarchy.Level2,
		a.Label,
		a.Text,
	}
	var kept []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ". ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// SearchResult pairs an article with its similarity score in [-1, 1].
type SearchResult struct {
	Article Article
	Score   float32
}
