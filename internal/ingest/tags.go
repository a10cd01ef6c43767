package ingest

import "strings"

// maxTags caps how many keywords attach to one article.
const maxTags = 5

// tagVocabulary is the fixed keyword set used to tag articles. Membership
// is a plain substring test over the cleaned lowercase text; no stemming.
var tagVocabulary = []string{
	"derechos humanos", "derechos fundamentales", "libertad", "igualdad",
	"vida", "trabajo", "educación", "salud", "propiedad", "familia",
	"debido proceso", "medio ambiente", "seguridad", "ciudadanía",
	"nacionalidad", "elecciones", "poder ejecutivo", "poder legislativo",
	"poder judicial", "tribunal constitucional", "defensoría", "contraloría",
	"gobierno regional", "gobierno local", "municipalidad",
	"estado de emergencia", "fuerzas armadas", "policía nacional",
	"violencia", "consumidor", "contrato", "matrimonio", "herencia",
}

// ExtractTags returns the vocabulary keywords present in the text, in
// vocabulary order, capped at maxTags. No matches yields an empty set.
func ExtractTags(text string) []string {
	lower := strings.ToLower(text)
	tags := make([]string, 0, maxTags)
	for _, kw := range tagVocabulary {
		if strings.Contains(lower, kw) {
			tags = append(tags, kw)
			if len(tags) == maxTags {
				break
			}
		}
	}
	return tags
}
