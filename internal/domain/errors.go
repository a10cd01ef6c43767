package domain

import "errors"

// Index artifact errors. Both are fatal at load time: the serving process
// must never start against a partial or inconsistent index.
var (
	// ErrMissingArtifact indicates the vector blob, the article records or
	// the manifest sidecar is absent on disk.
	ErrMissingArtifact = errors.New("index artifact missing")

	// ErrCorruptIndex indicates the artifacts exist but disagree: vector
	// count vs record count vs manifest, or a malformed vector blob.
	ErrCorruptIndex = errors.New("index artifacts corrupt or misaligned")
)
