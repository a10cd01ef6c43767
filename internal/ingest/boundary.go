package ingest

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/RodrigoAlexander7/law-copilot/internal/domain"
)

// boundary is a transient structural marker found while scanning: where a
// heading starts and the display label it contributes. Boundaries are never
// persisted; they exist only to resolve the hierarchy of article spans.
type boundary struct {
	offset int
	label  string
}

var (
	level1Re = regexp.MustCompile(`(?i)T[ÍI]TULO\s+([IVXLCDM]+)\s*[:.\-]?\s*([^\n]*)`)
	level2Re = regexp.MustCompile(`(?i)CAP[ÍI]TULO\s+([IVXLCDM]+)\s*[:.\-]?\s*([^\n]*)`)
	level3Re = regexp.MustCompile(`(?i)SECCI[ÓO]N\s+([IVXLCDM]+|\p{L}+)\s*[:.\-]?\s*([^\n]*)`)
)

// scanLevel runs one ordered pattern scan and returns position-sorted
// boundaries labeled "<prefix> <numeral>: <heading>".
func scanLevel(text string, re *regexp.Regexp, prefix string) []boundary {
	matches := re.FindAllStringSubmatchIndex(text, -1)
	bounds := make([]boundary, 0, len(matches))
	for _, m := range matches {
		numeral := strings.TrimSpace(text[m[2]:m[3]])
		name := strings.TrimSpace(text[m[4]:m[5]])
		label := fmt.Sprintf("%s %s", prefix, strings.ToUpper(numeral))
		if name != "" {
			label = fmt.Sprintf("%s: %s", label, name)
		}
		bounds = append(bounds, boundary{offset: m[0], label: label})
	}
	return bounds
}

// hierarchyResolver answers "which headings govern position p" with a
// binary search per level over immutable sorted boundary lists. A heading
// at a higher level resets everything below it: a Capítulo seen before the
// governing Título no longer applies.
type hierarchyResolver struct {
	levels [][]boundary // index 0 = level_1, 1 = level_2, 2 = level_3
}

func newHierarchyResolver(text string) hierarchyResolver {
	return hierarchyResolver{levels: [][]boundary{
		scanLevel(text, level1Re, "Título"),
		scanLevel(text, level2Re, "Capítulo"),
		scanLevel(text, level3Re, "Sección"),
	}}
}

// lastBefore returns the last boundary starting in [floor, pos), or nil.
func lastBefore(bounds []boundary, pos, floor int) *boundary {
	i := sort.Search(len(bounds), func(i int) bool { return bounds[i].offset >= pos })
	if i == 0 {
		return nil
	}
	b := bounds[i-1]
	if b.offset < floor {
		return nil
	}
	return &b
}

// At resolves the hierarchy in force at position pos. Each level takes the
// last boundary before pos that also starts after the governing boundary of
// the level above; absence of a level is not an error.
func (r hierarchyResolver) At(pos int) domain.Hierarchy {
	var h domain.Hierarchy
	floor := 0

	if b := lastBefore(r.levels[0], pos, floor); b != nil {
		h.Level1 = b.label
		floor = b.offset
	}
	if b := lastBefore(r.levels[1], pos, floor); b != nil {
		h.Level2 = b.label
		floor = b.offset
	}
	if b := lastBefore(r.levels[2], pos, floor); b != nil {
		h.Level3 = b.label
	}
	return h
}

// allOffsets merges every boundary start across levels into one sorted
// list. Article spans terminate at the next boundary of any kind.
func (r hierarchyResolver) allOffsets() []int {
	var offsets []int
	for _, level := range r.levels {
		for _, b := range level {
			offsets = append(offsets, b.offset)
		}
	}
	sort.Ints(offsets)
	return offsets
}
