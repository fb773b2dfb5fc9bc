package storage

import "github.com/codesense/codesense/internal/models"

// ChunkStore persists indexed chunks. ReplaceProject atomically swaps all
// chunks stored for a project root with a new batch.
type ChunkStore interface {
	ReplaceProject(root string, chunks []models.StoredChunk) error
	ChunksByProject(root string) ([]models.StoredChunk, error)
	AllChunks() ([]models.StoredChunk, error)
	Stats() (models.StoreStats, error)
	Clear() error
}

// CorpusStateStore persists the vectorizer's serialized corpus state as a
// single versioned record, overwritten wholesale on save. Load returns nil
// when no state has been saved.
type CorpusStateStore interface {
	SaveCorpusState(state []byte) error
	LoadCorpusState() ([]byte, error)
}

// Store combines both persisted structures of one database.
type Store interface {
	ChunkStore
	CorpusStateStore
	Close() error
}
