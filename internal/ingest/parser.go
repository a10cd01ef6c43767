package ingest

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/RodrigoAlexander7/law-copilot/internal/domain"
)

var (
	articleHeadRe     = regexp.MustCompile(`(?i)Art[íi]culo\s+(\d+)[°º]?\s*[:.\-]?\s*`)
	dispositionsRe    = regexp.MustCompile(`(?i)DISPOSICIONES?\s+FINALES?(?:\s+Y\s+TRANSITORIAS?)?`)
	dispositionHeadRe = regexp.MustCompile(`(?i)(PRIMERA|SEGUNDA|TERCERA|CUARTA|QUINTA|SEXTA|S[ÉE]PTIMA|OCTAVA|NOVENA|D[ÉE]CIMA|UND[ÉE]CIMA|DUOD[ÉE]CIMA|DECIMOTERCERA|DECIMOCUARTA|DECIMOQUINTA|DECIMOSEXTA)[:.\-]?\s*`)
)

var ordinalNumbers = map[string]string{
	"PRIMERA": "1", "SEGUNDA": "2", "TERCERA": "3", "CUARTA": "4",
	"QUINTA": "5", "SEXTA": "6", "SÉPTIMA": "7", "SEPTIMA": "7",
	"OCTAVA": "8", "NOVENA": "9", "DÉCIMA": "10", "DECIMA": "10",
	"UNDÉCIMA": "11", "UNDECIMA": "11", "DUODÉCIMA": "12", "DUODECIMA": "12",
	"DECIMOTERCERA": "13", "DECIMOCUARTA": "14", "DECIMOQUINTA": "15",
	"DECIMOSEXTA": "16",
}

// Parser recovers hierarchy and article boundaries from normalized legal
// text, emitting deduplicated article records for one source. Parsers hold
// no mutable scan state; Parse may be called concurrently.
type Parser struct {
	spec SourceSpec
}

// NewParser builds a structural parser for the given source.
func NewParser(spec SourceSpec) *Parser {
	return &Parser{spec: spec}
}

// Parse returns one record per detected article or final disposition,
// deduplicated by deterministic ID (first occurrence wins).
func (p *Parser) Parse(text string) []domain.Article {
	text = NormalizeText(text)
	resolver := newHierarchyResolver(text)

	stops := resolver.allOffsets()
	if loc := dispositionsRe.FindStringIndex(text); loc != nil {
		stops = append(stops, loc[0])
	}
	heads := articleHeadRe.FindAllStringSubmatchIndex(text, -1)
	for _, m := range heads {
		stops = append(stops, m[0])
	}
	sort.Ints(stops)

	seen := make(map[string]struct{})
	var articles []domain.Article

	for _, m := range heads {
		num := text[m[2]:m[3]]
		id := fmt.Sprintf("%s_ART_%s", p.spec.IDPrefix, num)
		if _, dup := seen[id]; dup {
			// A repeated article number is citation noise, not a merge.
			continue
		}
		seen[id] = struct{}{}

		body := cleanArticleBody(text[m[1]:nextStop(stops, m[0], len(text))])
		articles = append(articles, p.record(id, fmt.Sprintf("Artículo %s", num), body, resolver.At(m[0])))
	}

	articles = append(articles, p.parseDispositions(text, seen)...)
	return articles
}

// parseDispositions extracts the final/transitional disposition block, one
// record per ordinal heading.
func (p *Parser) parseDispositions(text string, seen map[string]struct{}) []domain.Article {
	loc := dispositionsRe.FindStringIndex(text)
	if loc == nil {
		return nil
	}
	tail := text[loc[1]:]

	heads := dispositionHeadRe.FindAllStringSubmatchIndex(tail, -1)
	var articles []domain.Article
	for i, m := range heads {
		ordinal := strings.ToUpper(tail[m[2]:m[3]])
		num, ok := ordinalNumbers[ordinal]
		if !ok {
			num = ordinal
		}
		id := fmt.Sprintf("%s_DISP_%s", p.spec.IDPrefix, num)
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		end := len(tail)
		if i+1 < len(heads) {
			end = heads[i+1][0]
		}
		body := cleanArticleBody(tail[m[1]:end])

		articles = append(articles, p.record(
			id,
			fmt.Sprintf("Disposición %s", titleCase(ordinal)),
			body,
			domain.Hierarchy{Level1: "Disposiciones Finales y Transitorias"},
		))
	}
	return articles
}

func (p *Parser) record(id, label, body string, h domain.Hierarchy) domain.Article {
	promulgated := p.spec.Promulgated
	return domain.Article{
		ID:         id,
		SourceID:   p.spec.ID,
		SourceType: p.spec.Type,
		Label:      label,
		Text:       body,
		Hierarchy:  h,
		Metadata: domain.Metadata{
			IsActive:        true,
			DatePromulgated: &promulgated,
			Tags:            ExtractTags(body),
		},
	}
}

// nextStop returns the first stop offset strictly after pos, or end.
func nextStop(stops []int, pos, end int) int {
	i := sort.Search(len(stops), func(i int) bool { return stops[i] > pos })
	if i == len(stops) {
		return end
	}
	return stops[i]
}

func titleCase(s string) string {
	lower := strings.ToLower(s)
	if lower == "" {
		return lower
	}
	return strings.ToUpper(lower[:1]) + lower[1:]
}
