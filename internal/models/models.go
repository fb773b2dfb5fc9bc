package models

import "time"

// ChunkType classifies a code chunk by the construct that opened it.
type ChunkType string

const (
	ChunkImport   ChunkType = "import"
	ChunkTypeDecl ChunkType = "type"
	ChunkClass    ChunkType = "class"
	ChunkFunction ChunkType = "function"
	ChunkExport   ChunkType = "export"
	ChunkBlock    ChunkType = "block"
)

func (t ChunkType) Valid() bool {
	switch t {
	case ChunkImport, ChunkTypeDecl, ChunkClass, ChunkFunction, ChunkExport, ChunkBlock:
		return true
	}
	return false
}

func StringToChunkType(s string) ChunkType {
	t := ChunkType(s)
	if !t.Valid() {
		return ChunkBlock
	}
	return t
}

// CodeChunk is a transient chunk produced by the chunker from one file's
// text. Lines are 1-based and inclusive. Name is empty for unnamed chunks.
type CodeChunk struct {
	Content   string
	Type      ChunkType
	StartLine int
	EndLine   int
	Name      string
}

func (c CodeChunk) LineCount() int { return c.EndLine - c.StartLine + 1 }

// StoredChunk is a code chunk persisted with its embedding at index time.
// FilePath is relative to ProjectRoot. Never mutated after insert.
type StoredChunk struct {
	ID          string    `json:"id"`
	ProjectRoot string    `json:"project_root"`
	FilePath    string    `json:"file_path"`
	Type        ChunkType `json:"type"`
	StartLine   int       `json:"start_line"`
	EndLine     int       `json:"end_line"`
	Name        string    `json:"name,omitempty"`
	Content     string    `json:"content"`
	Embedding   []float64 `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}

// SearchResult pairs a stored chunk with its cosine similarity to a query.
// The chunk's embedding is omitted from the returned view.
type SearchResult struct {
	Chunk      StoredChunk `json:"chunk"`
	Similarity float64     `json:"similarity"`
}

// IndexSummary reports the outcome of a full project index.
type IndexSummary struct {
	FilesIndexed int `json:"files_indexed"`
	ChunksStored int `json:"chunks_stored"`
}

// StoreStats summarizes the persisted chunk table.
type StoreStats struct {
	TotalChunks  int `json:"total_chunks"`
	TotalFiles   int `json:"total_files"`
	ProjectRoots int `json:"project_roots"`
}

// Severity is a closed set of finding severities.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

func (s Severity) Valid() bool {
	switch s {
	case SeverityInfo, SeverityWarning, SeverityError:
		return true
	}
	return false
}

// RelatedChunk summarizes the stored chunk a finding refers to.
type RelatedChunk struct {
	File       string  `json:"file"`
	StartLine  int     `json:"start_line"`
	EndLine    int     `json:"end_line"`
	Preview    string  `json:"preview"`
	Similarity float64 `json:"similarity"`
}

// Finding is a single analysis result: a rule violation, a duplication, or
// an inconsistency.
type Finding struct {
	Severity   Severity      `json:"severity"`
	Rule       string        `json:"rule"`
	Message    string        `json:"message"`
	File       string        `json:"file"`
	Line       int           `json:"line"`
	Suggestion string        `json:"suggestion,omitempty"`
	Related    *RelatedChunk `json:"related,omitempty"`
}
