package analyzer_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/codesense/codesense/internal/analyzer"
	"github.com/codesense/codesense/internal/models"
	"github.com/codesense/codesense/internal/rules"
	"github.com/codesense/codesense/internal/semantic"
	"github.com/codesense/codesense/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubSearcher returns canned results above the given threshold.
type stubSearcher struct {
	results []models.SearchResult
}

func (s *stubSearcher) FindSimilarTo(content string, threshold float64, excludeFile string) ([]models.SearchResult, error) {
	var out []models.SearchResult
	for _, r := range s.results {
		if r.Similarity >= threshold {
			out = append(out, r)
		}
	}
	return out, nil
}

func match(sim float64, chunkType models.ChunkType, content string) models.SearchResult {
	return models.SearchResult{
		Chunk: models.StoredChunk{
			FilePath:  "indexed/a.js",
			Type:      chunkType,
			StartLine: 1,
			EndLine:   3,
			Name:      "stored",
			Content:   content,
		},
		Similarity: sim,
	}
}

const candidate = `function process(items) {
  const out = items.map(fn);
  return out;
}`

func Test_Engine_Duplication(t *testing.T) {
	store := &stubSearcher{results: []models.SearchResult{
		match(0.91, models.ChunkFunction, "function process(list) {\n  return list.map(fn);\n}"),
	}}
	e := analyzer.NewEngine(store, 0.7, 0.5, zap.NewNop())

	findings, err := e.AnalyzeFile(candidate, "b.js")
	require.NoError(t, err)
	require.Len(t, findings, 1)
	f := findings[0]
	assert.Equal(t, rules.RuleDuplication, f.Rule)
	assert.Equal(t, models.SeverityWarning, f.Severity)
	assert.Equal(t, "b.js", f.File)
	assert.Equal(t, 1, f.Line)
	require.NotNil(t, f.Related)
	assert.Equal(t, "indexed/a.js", f.Related.File)
	assert.NotEmpty(t, f.Related.Preview)
}

func Test_Engine_Inconsistency_ErrorHandling(t *testing.T) {
	stored := `async function process(items) {
  try {
    return await db.save(items);
  } catch (err) {
    log(err);
  }
}`
	store := &stubSearcher{results: []models.SearchResult{
		match(0.6, models.ChunkFunction, stored),
	}}
	e := analyzer.NewEngine(store, 0.7, 0.5, zap.NewNop())

	findings, err := e.AnalyzeFile(candidate, "b.js")
	require.NoError(t, err)
	require.Len(t, findings, 1, "exactly one inconsistency per candidate chunk")
	f := findings[0]
	assert.Equal(t, rules.RuleInconsistency, f.Rule)
	assert.Equal(t, models.SeverityInfo, f.Severity)
	assert.Contains(t, f.Message, "error-handling")
}

func Test_Engine_Inconsistency_TypeMismatchSkipped(t *testing.T) {
	store := &stubSearcher{results: []models.SearchResult{
		match(0.6, models.ChunkClass, "class Thing {\n  try { run() } catch (e) {}\n}"),
	}}
	e := analyzer.NewEngine(store, 0.7, 0.5, zap.NewNop())

	findings, err := e.AnalyzeFile(candidate, "b.js")
	require.NoError(t, err)
	assert.Empty(t, findings, "inconsistency requires matching structural type")
}

func Test_Engine_NoMatch(t *testing.T) {
	e := analyzer.NewEngine(&stubSearcher{}, 0.7, 0.5, zap.NewNop())
	findings, err := e.AnalyzeFile(candidate, "b.js")
	require.NoError(t, err)
	assert.Empty(t, findings)
}

func Test_Engine_SkipsShortChunks(t *testing.T) {
	store := &stubSearcher{results: []models.SearchResult{
		match(0.99, models.ChunkBlock, "const x = 1;"),
	}}
	e := analyzer.NewEngine(store, 0.7, 0.5, zap.NewNop())

	findings, err := e.AnalyzeFile("const x = 1;\n", "b.js")
	require.NoError(t, err)
	assert.Empty(t, findings, "chunks under 3 lines are not analyzed")
}

func Test_Engine_Duplication_EndToEnd(t *testing.T) {
	sem, err := semantic.New(memory.New(), memory.New(), zap.NewNop())
	require.NoError(t, err)

	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "a.js"), []byte(
		"function checkPassword(pw) {\n  return pw.length > 8;\n}\n",
	), 0o644))
	_, err = sem.IndexProject(context.Background(), tmp)
	require.NoError(t, err)

	e := analyzer.NewEngine(sem, 0.7, 0.5, zap.NewNop())
	findings, err := e.AnalyzeFile(
		"function validatePassword(p) {\n  return p.length > 8;\n}\n", "b.js",
	)
	require.NoError(t, err)
	require.Len(t, findings, 1)
	assert.Equal(t, rules.RuleDuplication, findings[0].Rule)
	assert.Equal(t, "a.js", findings[0].Related.File)
	assert.GreaterOrEqual(t, findings[0].Related.Similarity, 0.7)
}

func Test_Service_CombinesRuleAndSemanticFindings(t *testing.T) {
	scanner, err := rules.NewScanner(rules.BuiltinRules())
	require.NoError(t, err)
	store := &stubSearcher{results: []models.SearchResult{
		match(0.95, models.ChunkFunction, "function process(list) {\n  return list.map(fn);\n}"),
	}}
	svc := analyzer.NewService(scanner, analyzer.NewEngine(store, 0.7, 0.5, zap.NewNop()))

	content := "function process(items) {\n  console.log(items);\n  return items.map(fn);\n}"
	findings, err := svc.AnalyzeFile(content, "b.js")
	require.NoError(t, err)

	gotRules := map[string]bool{}
	for _, f := range findings {
		gotRules[f.Rule] = true
	}
	assert.True(t, gotRules["style/debug-log"])
	assert.True(t, gotRules[rules.RuleDuplication])
}
