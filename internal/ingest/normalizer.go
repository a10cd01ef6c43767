package ingest

import (
	"regexp"
	"strings"
)

var (
	hyphenBreakRe   = regexp.MustCompile(`(\p{L}+)-\n(\p{L}+)`)
	pageNumberRe    = regexp.MustCompile(`\n\s*-?\s*\d+\s*-?\s*\n`)
	pageWordRe      = regexp.MustCompile(`\n\s*[Pp]ágina\s+\d+\s*\n`)
	spaceRunRe      = regexp.MustCompile(`[ \t]+`)
	blankLineRunRe  = regexp.MustCompile(`\n{3,}`)
	innerSpaceRunRe = regexp.MustCompile(`\s+`)
)

// NormalizeText cleans raw extracted legal text before structural parsing:
// rejoins words hyphenated across line breaks, strips page-number artifacts
// and collapses whitespace runs.
func NormalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = hyphenBreakRe.ReplaceAllString(text, "$1$2")
	text = pageNumberRe.ReplaceAllString(text, "\n")
	text = pageWordRe.ReplaceAllString(text, "\n")
	text = spaceRunRe.ReplaceAllString(text, " ")
	text = blankLineRunRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// cleanArticleBody flattens an article span into a single line of prose.
// Statutes carry hard line wraps from the source layout that have no
// semantic meaning inside one article.
func cleanArticleBody(text string) string {
	return strings.TrimSpace(innerSpaceRunRe.ReplaceAllString(text, " "))
}
