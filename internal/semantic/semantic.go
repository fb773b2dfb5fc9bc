// Package semantic indexes project source into searchable chunks and
// answers similarity queries over their TF-IDF embeddings.
package semantic

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/codesense/codesense/internal/chunker"
	"github.com/codesense/codesense/internal/constants"
	"github.com/codesense/codesense/internal/models"
	"github.com/codesense/codesense/internal/storage"
	"github.com/codesense/codesense/internal/vectorizer"
	"go.uber.org/zap"
)

var sourceExtensions = map[string]bool{
	".js":  true,
	".jsx": true,
	".ts":  true,
	".tsx": true,
	".mjs": true,
	".cjs": true,
}

var skipDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	"out":          true,
	"coverage":     true,
}

// Store owns the vectorizer and the persisted chunk dataset. The vectorizer
// grows incrementally across indexing runs; a project re-index replaces the
// project's chunks but keeps the corpus statistics unless ResetCorpus is
// called first.
type Store struct {
	vec    *vectorizer.Vectorizer
	chunks storage.ChunkStore
	state  storage.CorpusStateStore
	log    *zap.Logger
}

// New restores the vectorizer from persisted corpus state. Missing or
// corrupt state starts an empty corpus rather than failing.
func New(chunks storage.ChunkStore, state storage.CorpusStateStore, log *zap.Logger) (*Store, error) {
	blob, err := state.LoadCorpusState()
	if err != nil {
		return nil, err
	}
	vec := vectorizer.New()
	if blob != nil {
		restored, derr := vectorizer.Deserialize(blob)
		if derr != nil {
			log.Warn("corrupt corpus state, starting with empty vocabulary", zap.Error(derr))
		} else {
			vec = restored
		}
	}
	return &Store{vec: vec, chunks: chunks, state: state, log: log}, nil
}

// Vectorizer exposes the owned vectorizer for embedding inspection tooling.
func (s *Store) Vectorizer() *vectorizer.Vectorizer { return s.vec }

// IndexProject chunks every source file under root, trains the vectorizer
// on the whole batch of chunk contents so document frequencies reflect the
// project consistently, embeds the chunks under the updated vocabulary, and
// atomically replaces the root's stored chunk set. Unreadable and binary
// files are skipped. The updated corpus state is persisted afterward.
func (s *Store) IndexProject(ctx context.Context, root string) (models.IndexSummary, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return models.IndexSummary{}, err
	}
	files, err := listSourceFiles(absRoot)
	if err != nil {
		return models.IndexSummary{}, err
	}

	type fileChunks struct {
		rel    string
		chunks []models.CodeChunk
	}
	var parsed []fileChunks
	var docs []string
	filesIndexed := 0
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return models.IndexSummary{}, err
		}
		content, ok := readSourceFile(path)
		if !ok {
			s.log.Debug("skipping unreadable file", zap.String("file", path))
			continue
		}
		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			rel = path
		}
		chunks := chunker.Chunk(content)
		for _, ch := range chunks {
			docs = append(docs, ch.Content)
		}
		parsed = append(parsed, fileChunks{rel: rel, chunks: chunks})
		filesIndexed++
	}

	// One training batch across all files keeps document frequencies
	// consistent for the whole project.
	s.vec.Train(docs)

	var stored []models.StoredChunk
	for _, fc := range parsed {
		for _, ch := range fc.chunks {
			if ch.LineCount() < constants.MinChunkLines {
				continue
			}
			stored = append(stored, models.StoredChunk{
				ProjectRoot: absRoot,
				FilePath:    fc.rel,
				Type:        ch.Type,
				StartLine:   ch.StartLine,
				EndLine:     ch.EndLine,
				Name:        ch.Name,
				Content:     ch.Content,
				Embedding:   s.vec.Embed(ch.Content),
			})
		}
	}

	if err := s.chunks.ReplaceProject(absRoot, stored); err != nil {
		return models.IndexSummary{}, err
	}
	if err := s.persistCorpusState(); err != nil {
		return models.IndexSummary{}, err
	}

	s.log.Info("project indexed",
		zap.String("root", absRoot),
		zap.Int("files", filesIndexed),
		zap.Int("chunks", len(stored)),
		zap.Int("vocabulary", s.vec.VocabSize()),
	)
	return models.IndexSummary{FilesIndexed: filesIndexed, ChunksStored: len(stored)}, nil
}

// Search ranks stored chunks by similarity to query, descending, truncated
// to limit. Results below the similarity floor are dropped, so a query with
// no known tokens yields an empty set. An empty scope searches all roots.
func (s *Store) Search(ctx context.Context, query string, limit int, scope string) ([]models.SearchResult, error) {
	if limit <= 0 {
		limit = constants.DefaultTopK
	}
	qvec := s.vec.Embed(query)
	if len(qvec) == 0 {
		return nil, nil
	}
	candidates, err := s.loadCandidates(scope)
	if err != nil {
		return nil, err
	}

	var results []models.SearchResult
	for _, ch := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sim := vectorizer.CosineSimilarity(qvec, ch.Embedding)
		if sim < constants.SimilarityEpsilon {
			continue
		}
		ch.Embedding = nil
		results = append(results, models.SearchResult{Chunk: ch, Similarity: sim})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// FindSimilarTo returns stored chunks whose similarity to content is at
// least threshold, excluding chunks from excludeFile, ranked descending.
// Used for duplication and inconsistency detection.
func (s *Store) FindSimilarTo(content string, threshold float64, excludeFile string) ([]models.SearchResult, error) {
	qvec := s.vec.Embed(content)
	if len(qvec) == 0 {
		return nil, nil
	}
	candidates, err := s.chunks.AllChunks()
	if err != nil {
		return nil, err
	}

	var results []models.SearchResult
	for _, ch := range candidates {
		if sameFile(ch, excludeFile) {
			continue
		}
		sim := vectorizer.CosineSimilarity(qvec, ch.Embedding)
		if sim < threshold || sim < constants.SimilarityEpsilon {
			continue
		}
		ch.Embedding = nil
		results = append(results, models.SearchResult{Chunk: ch, Similarity: sim})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})
	return results, nil
}

// Stats reports the size of the persisted dataset.
func (s *Store) Stats() (models.StoreStats, error) {
	return s.chunks.Stats()
}

// ResetCorpus discards the trained vocabulary and document frequencies and
// persists the empty state. Stored embeddings become stale; callers should
// re-index afterward.
func (s *Store) ResetCorpus() error {
	s.vec.ResetCorpus()
	return s.persistCorpusState()
}

// Clear removes all stored chunks and corpus state.
func (s *Store) Clear() error {
	s.vec.ResetCorpus()
	return s.chunks.Clear()
}

func (s *Store) persistCorpusState() error {
	blob, err := s.vec.Serialize()
	if err != nil {
		return err
	}
	return s.state.SaveCorpusState(blob)
}

func (s *Store) loadCandidates(scope string) ([]models.StoredChunk, error) {
	if scope == "" {
		return s.chunks.AllChunks()
	}
	abs, err := filepath.Abs(scope)
	if err != nil {
		abs = scope
	}
	return s.chunks.ChunksByProject(abs)
}

func sameFile(ch models.StoredChunk, excludeFile string) bool {
	if excludeFile == "" {
		return false
	}
	if ch.FilePath == excludeFile {
		return true
	}
	return filepath.Join(ch.ProjectRoot, ch.FilePath) == excludeFile
}

// IsSourceFile reports whether path has an indexable source extension.
func IsSourceFile(path string) bool {
	return sourceExtensions[strings.ToLower(filepath.Ext(path))]
}

func listSourceFiles(root string) ([]string, error) {
	var files []string
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// unreadable entries lower filesIndexed, never abort the batch
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || skipDirs[name]) {
				return filepath.SkipDir
			}
			if depth(root, path) > constants.MaxWalkDepth {
				return filepath.SkipDir
			}
			return nil
		}
		if IsSourceFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return files, nil
}

func depth(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}

// readSourceFile reads a file, rejecting unreadable or binary content.
func readSourceFile(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return "", false
	}
	return string(data), true
}
