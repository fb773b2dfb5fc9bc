// Package analyzer classifies code against the indexed corpus: chunks that
// near-duplicate stored code and chunks that follow a shared pattern but
// diverge from it structurally.
package analyzer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/codesense/codesense/internal/chunker"
	"github.com/codesense/codesense/internal/constants"
	"github.com/codesense/codesense/internal/models"
	"github.com/codesense/codesense/internal/rules"
	"go.uber.org/zap"
)

const previewLen = 120

// Searcher is the slice of the semantic store the engine needs.
type Searcher interface {
	FindSimilarTo(content string, threshold float64, excludeFile string) ([]models.SearchResult, error)
}

// Engine classifies each candidate chunk independently as duplicate,
// pattern-inconsistent, or novel.
type Engine struct {
	store                Searcher
	duplicationThreshold float64
	patternThreshold     float64
	log                  *zap.Logger
}

func NewEngine(store Searcher, duplicationThreshold, patternThreshold float64, log *zap.Logger) *Engine {
	if duplicationThreshold <= 0 {
		duplicationThreshold = constants.DefaultDuplicationThreshold
	}
	if patternThreshold <= 0 {
		patternThreshold = constants.DefaultPatternThreshold
	}
	return &Engine{
		store:                store,
		duplicationThreshold: duplicationThreshold,
		patternThreshold:     patternThreshold,
		log:                  log,
	}
}

// AnalyzeFile chunks content and emits at most one finding per chunk: a
// duplication when the top match clears the duplication threshold, else an
// inconsistency when a same-type match clears the pattern threshold and the
// first paired heuristic differs.
func (e *Engine) AnalyzeFile(content, filePath string) ([]models.Finding, error) {
	var findings []models.Finding
	for _, ch := range chunker.Chunk(content) {
		if ch.LineCount() < constants.MinChunkLines {
			continue
		}
		results, err := e.store.FindSimilarTo(ch.Content, e.patternThreshold, filePath)
		if err != nil {
			return nil, err
		}
		if len(results) == 0 {
			continue
		}
		top := results[0]
		switch {
		case top.Similarity >= e.duplicationThreshold:
			findings = append(findings, duplicationFinding(ch, top, filePath))
		case top.Chunk.Type == ch.Type:
			if f, ok := inconsistencyFinding(ch, top, filePath); ok {
				findings = append(findings, f)
			}
		}
	}
	if len(findings) > 0 {
		e.log.Debug("semantic findings",
			zap.String("file", filePath), zap.Int("count", len(findings)))
	}
	return findings, nil
}

func duplicationFinding(ch models.CodeChunk, top models.SearchResult, filePath string) models.Finding {
	return models.Finding{
		Severity: models.SeverityWarning,
		Rule:     rules.RuleDuplication,
		Message: fmt.Sprintf("%s duplicates %s:%d-%d (similarity %.2f)",
			describeChunk(ch), top.Chunk.FilePath, top.Chunk.StartLine, top.Chunk.EndLine,
			top.Similarity),
		File:       filePath,
		Line:       ch.StartLine,
		Suggestion: "extract the shared logic into one reusable function",
		Related:    relatedChunk(top),
	}
}

// pairedHeuristics are checked in order; the first trait that differs
// between the candidate and its match produces the finding, and the rest
// are not checked.
var pairedHeuristics = []struct {
	name  string
	trait string
	has   func(string) bool
}{
	{"error-handling", "a try/catch block", hasTryCatch},
	{"async", "asynchronous calls", hasAsyncCall},
	{"return", "a return statement", hasReturn},
}

func inconsistencyFinding(ch models.CodeChunk, top models.SearchResult, filePath string) (models.Finding, bool) {
	for _, h := range pairedHeuristics {
		mine, theirs := h.has(ch.Content), h.has(top.Chunk.Content)
		if mine == theirs {
			continue
		}
		subject, lacking := describeChunk(ch), "similar code at "+matchLocation(top)
		if !mine {
			subject, lacking = "similar code at "+matchLocation(top), describeChunk(ch)
		}
		return models.Finding{
			Severity: models.SeverityInfo,
			Rule:     rules.RuleInconsistency,
			Message: fmt.Sprintf("%s inconsistency: %s has %s but %s does not",
				h.name, subject, h.trait, lacking),
			File:       filePath,
			Line:       ch.StartLine,
			Suggestion: fmt.Sprintf("align %s handling with the established pattern", h.name),
			Related:    relatedChunk(top),
		}, true
	}
	return models.Finding{}, false
}

func relatedChunk(top models.SearchResult) *models.RelatedChunk {
	return &models.RelatedChunk{
		File:       top.Chunk.FilePath,
		StartLine:  top.Chunk.StartLine,
		EndLine:    top.Chunk.EndLine,
		Preview:    preview(top.Chunk.Content),
		Similarity: top.Similarity,
	}
}

func describeChunk(ch models.CodeChunk) string {
	if ch.Name != "" {
		return fmt.Sprintf("%s %q", ch.Type, ch.Name)
	}
	return string(ch.Type) + " chunk"
}

func matchLocation(top models.SearchResult) string {
	return fmt.Sprintf("%s:%d", top.Chunk.FilePath, top.Chunk.StartLine)
}

func preview(content string) string {
	flat := strings.Join(strings.Fields(content), " ")
	if len(flat) > previewLen {
		return flat[:previewLen] + "..."
	}
	return flat
}

var (
	tryCatchRe  = regexp.MustCompile(`\btry\b[\s\S]*?\bcatch\b`)
	asyncCallRe = regexp.MustCompile(`\bawait\b|\basync\b|\.then\s*\(`)
	returnRe    = regexp.MustCompile(`\breturn\b`)
)

func hasTryCatch(content string) bool  { return tryCatchRe.MatchString(content) }
func hasAsyncCall(content string) bool { return asyncCallRe.MatchString(content) }
func hasReturn(content string) bool    { return returnRe.MatchString(content) }
