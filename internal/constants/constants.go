package constants

const (
	// DefaultHTTPAddr is the listen address for the HTTP API server.
	DefaultHTTPAddr = ":8080"

	// DefaultTopK is the result limit for searches when none is given.
	DefaultTopK = 5

	// DefaultDuplicationThreshold marks a top match as a duplicate.
	DefaultDuplicationThreshold = 0.7

	// DefaultPatternThreshold marks a top match as pattern-similar, the
	// floor for inconsistency checks.
	DefaultPatternThreshold = 0.5

	// MinChunkLines is the smallest chunk considered for similarity
	// analysis. Shorter chunks are still produced by the chunker but are
	// skipped by indexing and by the analyzer.
	MinChunkLines = 3

	// SimilarityEpsilon filters all-zero-vector noise out of search results.
	SimilarityEpsilon = 1e-6

	// MaxWalkDepth bounds directory recursion during project indexing.
	MaxWalkDepth = 12
)
