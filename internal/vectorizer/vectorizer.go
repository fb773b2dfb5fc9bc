// Package vectorizer builds and compares normalized TF-IDF embeddings over
// an incrementally growing code vocabulary.
package vectorizer

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/codesense/codesense/internal/tokenizer"
)

const stateVersion = 1

// Vectorizer holds the trainable corpus state: a vocabulary mapping tokens
// to dense indices, per-token document frequencies, and the total trained
// document count. Indices are assigned in first-seen order and never
// reassigned or removed.
type Vectorizer struct {
	vocab     map[string]int
	docFreq   map[string]int
	totalDocs int
}

func New() *Vectorizer {
	return &Vectorizer{
		vocab:   make(map[string]int),
		docFreq: make(map[string]int),
	}
}

// Train folds documents into the corpus state. Each document counts once
// toward totalDocs and once toward the document frequency of every distinct
// token it contains; never-seen tokens get the next free vocabulary index.
// Training the same documents again double-counts them, so callers must not
// retrain on unchanged data.
func (v *Vectorizer) Train(documents []string) {
	for _, doc := range documents {
		tokens := tokenizer.Tokenize(doc)
		v.totalDocs++
		seen := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			if _, dup := seen[tok]; dup {
				continue
			}
			seen[tok] = struct{}{}
			v.docFreq[tok]++
			if _, ok := v.vocab[tok]; !ok {
				v.vocab[tok] = len(v.vocab)
			}
		}
	}
}

// Embed converts text into an L2-normalized TF-IDF vector of the current
// vocabulary dimension. Tokens outside the vocabulary are ignored. With an
// empty vocabulary the result has dimension zero; with no known tokens it is
// the all-zero vector.
func (v *Vectorizer) Embed(text string) []float64 {
	vec := make([]float64, len(v.vocab))
	if len(v.vocab) == 0 {
		return vec
	}
	tokens := tokenizer.Tokenize(text)
	if len(tokens) == 0 {
		return vec
	}

	counts := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		counts[tok]++
	}
	total := float64(len(tokens))
	for tok, n := range counts {
		idx, ok := v.vocab[tok]
		if !ok {
			continue
		}
		df := v.docFreq[tok]
		if df < 1 {
			df = 1
		}
		idf := math.Log(1 + float64(v.totalDocs)/float64(df))
		vec[idx] = (float64(n) / total) * idf
	}

	var sum float64
	for _, w := range vec {
		sum += w * w
	}
	if sum > 0 {
		norm := math.Sqrt(sum)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

// VocabSize reports the current embedding dimension.
func (v *Vectorizer) VocabSize() int { return len(v.vocab) }

// TotalDocs reports how many documents have been trained.
func (v *Vectorizer) TotalDocs() int { return v.totalDocs }

// ResetCorpus discards all trained state. Existing stored embeddings become
// incomparable and must be re-indexed.
func (v *Vectorizer) ResetCorpus() {
	v.vocab = make(map[string]int)
	v.docFreq = make(map[string]int)
	v.totalDocs = 0
}

// CosineSimilarity computes the dot product of two pre-normalized vectors
// over their shared prefix. Vectors embedded under a smaller vocabulary are
// compared against the matching prefix of newer, longer vectors. Returns 0
// when either vector has dimension zero.
func CosineSimilarity(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n == 0 {
		return 0
	}
	var dot float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
	}
	return dot
}

type corpusState struct {
	Version    int            `json:"version"`
	Vocabulary map[string]int `json:"vocabulary"`
	DocFreq    map[string]int `json:"doc_freq"`
	TotalDocs  int            `json:"total_docs"`
}

// Serialize encodes the full corpus state. The format is opaque to callers
// and guaranteed to round-trip only within the same version.
func (v *Vectorizer) Serialize() ([]byte, error) {
	return json.Marshal(corpusState{
		Version:    stateVersion,
		Vocabulary: v.vocab,
		DocFreq:    v.docFreq,
		TotalDocs:  v.totalDocs,
	})
}

// Deserialize reconstructs a vectorizer whose Embed output is identical to
// that of the serialized instance.
func Deserialize(data []byte) (*Vectorizer, error) {
	var st corpusState
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("decode corpus state: %w", err)
	}
	if st.Version != stateVersion {
		return nil, fmt.Errorf("unsupported corpus state version %d", st.Version)
	}
	v := New()
	if st.Vocabulary != nil {
		v.vocab = st.Vocabulary
	}
	if st.DocFreq != nil {
		v.docFreq = st.DocFreq
	}
	v.totalDocs = st.TotalDocs
	for tok, idx := range v.vocab {
		if idx < 0 || idx >= len(v.vocab) {
			return nil, fmt.Errorf("corpus state: token %q has out-of-range index %d", tok, idx)
		}
	}
	return v, nil
}
