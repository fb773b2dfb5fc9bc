// Package memory provides an in-memory Store for tests and ephemeral runs.
package memory

import (
	"sync"
	"time"

	"github.com/codesense/codesense/internal/models"
	"github.com/codesense/codesense/internal/storage"
	"github.com/codesense/codesense/internal/util"
)

type Store struct {
	mu     sync.RWMutex
	chunks map[string][]models.StoredChunk // project root -> chunks
	state  []byte
}

var _ storage.Store = (*Store)(nil)

func New() *Store {
	return &Store{chunks: make(map[string][]models.StoredChunk)}
}

func (s *Store) ReplaceProject(root string, chunks []models.StoredChunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	stored := make([]models.StoredChunk, len(chunks))
	for i, ch := range chunks {
		if ch.ID == "" {
			ch.ID = util.ChunkID(ch.FilePath, ch.StartLine, ch.EndLine, string(ch.Type), ch.Name)
		}
		if ch.CreatedAt.IsZero() {
			ch.CreatedAt = now
		}
		ch.ProjectRoot = root
		stored[i] = ch
	}
	s.chunks[root] = stored
	return nil
}

func (s *Store) ChunksByProject(root string) ([]models.StoredChunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.StoredChunk, len(s.chunks[root]))
	copy(out, s.chunks[root])
	return out, nil
}

func (s *Store) AllChunks() ([]models.StoredChunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.StoredChunk
	for _, chunks := range s.chunks {
		out = append(out, chunks...)
	}
	return out, nil
}

func (s *Store) Stats() (models.StoreStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	files := make(map[string]struct{})
	var st models.StoreStats
	for _, chunks := range s.chunks {
		if len(chunks) == 0 {
			continue
		}
		st.ProjectRoots++
		st.TotalChunks += len(chunks)
		for _, ch := range chunks {
			files[ch.FilePath] = struct{}{}
		}
	}
	st.TotalFiles = len(files)
	return st, nil
}

func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks = make(map[string][]models.StoredChunk)
	s.state = nil
	return nil
}

func (s *Store) SaveCorpusState(state []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = append([]byte(nil), state...)
	return nil
}

func (s *Store) LoadCorpusState() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state == nil {
		return nil, nil
	}
	return append([]byte(nil), s.state...), nil
}

func (s *Store) Close() error { return nil }
