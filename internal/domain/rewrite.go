package domain

// RewriteResult is the structured search intent extracted from a colloquial
// user query. It is decided once at the parse boundary: either the LLM
// produced a usable object, or Fallback is set and OptimizedQueries holds
// exactly the original query. Downstream code never checks field presence.
type RewriteResult struct {
	Topic            string   `json:"tema_legal"`
	KeyConcepts      []string `json:"conceptos_clave"`
	OptimizedQueries []string `json:"queries_optimizadas"`
	RelevantLaws     []string `json:"leyes_relevantes"`
	Fallback         bool     `json:"-"`
}

// FallbackRewrite builds the fail-soft result used whenever the rewriting
// service errors or returns something unparseable.
func FallbackRewrite(originalQuery string) RewriteResult {
	return RewriteResult{
		Topic:            "no identificado",
		KeyConcepts:      []string{},
		OptimizedQueries: []string{originalQuery},
		RelevantLaws:     []string{},
		Fallback:         true,
	}
}
