// Package sqlite persists chunks and corpus state in a single SQLite
// database file.
package sqlite

import (
	"database/sql"
	"errors"
	"time"

	"github.com/codesense/codesense/internal/models"
	"github.com/codesense/codesense/internal/storage"
	"github.com/codesense/codesense/internal/util"
	_ "modernc.org/sqlite"
)

const stateRowVersion = 1

type Store struct {
	db *sql.DB
}

var _ storage.Store = (*Store)(nil)

func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS chunks (
		id TEXT PRIMARY KEY,
		project_root TEXT NOT NULL,
		file_path TEXT NOT NULL,
		chunk_type TEXT NOT NULL,
		start_line INTEGER NOT NULL,
		end_line INTEGER NOT NULL,
		name TEXT,
		content TEXT NOT NULL,
		embedding BLOB,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_chunks_project ON chunks(project_root);
	CREATE INDEX IF NOT EXISTS idx_chunks_file ON chunks(file_path);
	CREATE TABLE IF NOT EXISTS corpus_state (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		version INTEGER NOT NULL,
		state BLOB NOT NULL
	);`)
	return err
}

func (s *Store) Close() error { return s.db.Close() }

// ReplaceProject deletes every chunk stored for root and inserts the new
// batch in one transaction. IDs and creation timestamps are assigned here
// when the caller leaves them empty.
func (s *Store) ReplaceProject(root string, chunks []models.StoredChunk) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM chunks WHERE project_root = ?`, root); err != nil {
		_ = tx.Rollback()
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO chunks(
		id, project_root, file_path, chunk_type, start_line, end_line, name, content, embedding, created_at
	) VALUES(?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now()
	for _, ch := range chunks {
		id := ch.ID
		if id == "" {
			id = util.ChunkID(ch.FilePath, ch.StartLine, ch.EndLine, string(ch.Type), ch.Name)
		}
		createdAt := ch.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}
		if _, err := stmt.Exec(
			id, root, ch.FilePath, string(ch.Type), ch.StartLine, ch.EndLine,
			ch.Name, ch.Content, storage.EncodeEmbedding(ch.Embedding), createdAt.Unix(),
		); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (s *Store) ChunksByProject(root string) ([]models.StoredChunk, error) {
	return s.queryChunks(`SELECT id, project_root, file_path, chunk_type, start_line, end_line,
		name, content, embedding, created_at FROM chunks WHERE project_root = ?`, root)
}

func (s *Store) AllChunks() ([]models.StoredChunk, error) {
	return s.queryChunks(`SELECT id, project_root, file_path, chunk_type, start_line, end_line,
		name, content, embedding, created_at FROM chunks`)
}

func (s *Store) queryChunks(query string, args ...any) ([]models.StoredChunk, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []models.StoredChunk
	for rows.Next() {
		var ch models.StoredChunk
		var chunkType string
		var name sql.NullString
		var blob []byte
		var createdAt int64
		if err := rows.Scan(
			&ch.ID, &ch.ProjectRoot, &ch.FilePath, &chunkType, &ch.StartLine, &ch.EndLine,
			&name, &ch.Content, &blob, &createdAt,
		); err != nil {
			return nil, err
		}
		ch.Type = models.StringToChunkType(chunkType)
		ch.Name = name.String
		ch.CreatedAt = time.Unix(createdAt, 0)
		vec, err := storage.DecodeEmbedding(blob)
		if err != nil {
			return nil, err
		}
		ch.Embedding = vec
		out = append(out, ch)
	}
	return out, rows.Err()
}

func (s *Store) Stats() (models.StoreStats, error) {
	var st models.StoreStats
	row := s.db.QueryRow(
		`SELECT COUNT(*), COUNT(DISTINCT file_path), COUNT(DISTINCT project_root) FROM chunks`,
	)
	if err := row.Scan(&st.TotalChunks, &st.TotalFiles, &st.ProjectRoots); err != nil {
		return models.StoreStats{}, err
	}
	return st, nil
}

func (s *Store) Clear() error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM chunks`); err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.Exec(`DELETE FROM corpus_state`); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// SaveCorpusState overwrites the single persisted vectorizer state record.
func (s *Store) SaveCorpusState(state []byte) error {
	_, err := s.db.Exec(`INSERT INTO corpus_state(id, version, state) VALUES(1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET version=excluded.version, state=excluded.state`,
		stateRowVersion, state)
	return err
}

// LoadCorpusState returns the persisted vectorizer state, or nil when none
// has been saved yet.
func (s *Store) LoadCorpusState() ([]byte, error) {
	var state []byte
	err := s.db.QueryRow(`SELECT state FROM corpus_state WHERE id = 1`).Scan(&state)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return state, nil
}
