package usecase

import "fmt"

// RetrievalConfig holds the search parameters for the retrieval pipeline.
// The relaxation factor and concept limit were inherited from manual
// tuning; they stay configurable rather than trusted as optimal.
type RetrievalConfig struct {
	// TopK is the number of records to retrieve per search.
	TopK int
	// ScoreThreshold is the minimum similarity for a primary-search hit.
	ScoreThreshold float32
	// RelaxFactor scales ScoreThreshold down for cascade variant searches.
	RelaxFactor float32
	// MaxConcepts caps how many key concepts feed the enhanced query.
	MaxConcepts int
	// UseRewriting toggles the query-rewrite stage.
	UseRewriting bool
}

// DefaultRetrievalConfig returns the serving defaults.
func DefaultRetrievalConfig() RetrievalConfig {
	return RetrievalConfig{
		TopK:           5,
		ScoreThreshold: 0.3,
		RelaxFactor:    0.8,
		MaxConcepts:    4,
		UseRewriting:   true,
	}
}

// withOverrides applies the per-request knobs a caller may set on one
// QueryInput, leaving the configured defaults for everything else.
func (c RetrievalConfig) withOverrides(input QueryInput) RetrievalConfig {
	if input.TopK > 0 {
		c.TopK = input.TopK
	}
	if input.ScoreThreshold != nil {
		c.ScoreThreshold = *input.ScoreThreshold
	}
	if input.UseRewriting != nil {
		c.UseRewriting = *input.UseRewriting
	}
	return c
}

// Validate checks the configuration is usable.
func (c RetrievalConfig) Validate() error {
	if c.TopK <= 0 {
		return fmt.Errorf("topK must be positive, got %d", c.TopK)
	}
	if c.ScoreThreshold < -1 || c.ScoreThreshold > 1 {
		return fmt.Errorf("score threshold must be in [-1, 1], got %f", c.ScoreThreshold)
	}
	if c.RelaxFactor <= 0 || c.RelaxFactor > 1 {
		return fmt.Errorf("relax factor must be in (0, 1], got %f", c.RelaxFactor)
	}
	if c.MaxConcepts < 0 {
		return fmt.Errorf("max concepts must be non-negative, got %d", c.MaxConcepts)
	}
	return nil
}
