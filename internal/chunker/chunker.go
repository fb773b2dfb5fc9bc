// Package chunker splits source text into semantically meaningful chunks
// using heuristic line scanning and brace counting. It is deliberately not a
// parser: brace characters inside strings or comments can fool it, which is
// an accepted limitation of the design.
package chunker

import (
	"regexp"
	"strings"

	"github.com/codesense/codesense/internal/models"
)

// statementLookahead bounds the scan for a statement terminator and for the
// opening brace of a block, so unbalanced input never causes an unbounded
// scan.
const statementLookahead = 30

var (
	importLine = regexp.MustCompile(
		`^\s*(?:import\b|(?:const|let|var)\s+[\w$]+\s*=\s*require\s*\()`,
	)
	typeDecl = regexp.MustCompile(
		`^(?:export\s+)?(?:declare\s+)?(?:type|interface)\s+([A-Za-z_$][\w$]*)`,
	)
	classDecl = regexp.MustCompile(
		`^(?:export\s+)?(?:default\s+)?(?:abstract\s+)?class\s+([A-Za-z_$][\w$]*)`,
	)
	funcDecl = regexp.MustCompile(
		`^(?:export\s+)?(?:default\s+)?(?:async\s+)?function\s*\*?\s*([A-Za-z_$][\w$]*)`,
	)
	varFuncDecl = regexp.MustCompile(
		`^(?:export\s+)?(?:const|let|var)\s+([A-Za-z_$][\w$]*)\s*(?::[^=]*)?=\s*(?:async\s+)?(?:function\b|\()`,
	)
	exportStmt = regexp.MustCompile(`^export\s+(?:default\b|\{)`)
	varDecl    = regexp.MustCompile(`^(?:export\s+)?(?:const|let|var)\s+([A-Za-z_$][\w$]*)`)
)

// Chunk scans source left to right and returns its chunks in file order,
// non-overlapping, with 1-based inclusive line ranges. Text matched by no
// rule (blank lines, comments, stray braces) is skipped, so the union of
// chunks need not cover the whole file. Pure function of its input.
func Chunk(source string) []models.CodeChunk {
	lines := strings.Split(source, "\n")
	var chunks []models.CodeChunk

	i := 0
	if imp, next, ok := scanImportBlock(lines); ok {
		chunks = append(chunks, imp)
		i = next
	}

	for i < len(lines) {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" {
			i++
			continue
		}

		chunkType, name, matched := classify(trimmed)
		if !matched {
			i++
			continue
		}

		end := findChunkEnd(lines, i)
		chunks = append(chunks, models.CodeChunk{
			Content:   strings.Join(lines[i:end+1], "\n"),
			Type:      chunkType,
			StartLine: i + 1,
			EndLine:   end + 1,
			Name:      name,
		})
		i = end + 1
	}
	return chunks
}

// classify tests a trimmed line against the chunk rules in priority order:
// type/interface, class, named function, function-valued variable, export
// statement, then any other variable declaration. First match wins.
func classify(trimmed string) (models.ChunkType, string, bool) {
	if m := typeDecl.FindStringSubmatch(trimmed); m != nil {
		return models.ChunkTypeDecl, m[1], true
	}
	if m := classDecl.FindStringSubmatch(trimmed); m != nil {
		return models.ChunkClass, m[1], true
	}
	if m := funcDecl.FindStringSubmatch(trimmed); m != nil {
		return models.ChunkFunction, m[1], true
	}
	if m := varFuncDecl.FindStringSubmatch(trimmed); m != nil {
		return models.ChunkFunction, m[1], true
	}
	if m := varDecl.FindStringSubmatch(trimmed); m != nil && strings.Contains(trimmed, "=>") {
		// arrow function without a leading paren, e.g. `const f = x => x + 1`
		return models.ChunkFunction, m[1], true
	}
	if exportStmt.MatchString(trimmed) {
		return models.ChunkExport, "", true
	}
	if m := varDecl.FindStringSubmatch(trimmed); m != nil {
		return models.ChunkBlock, m[1], true
	}
	return "", "", false
}

// scanImportBlock detects a contiguous run of import statements at the top
// of the file, including continuation lines of multi-line import lists, and
// returns it as a single chunk.
func scanImportBlock(lines []string) (models.CodeChunk, int, bool) {
	first, last := -1, -1
	depth := 0
scan:
	for i := 0; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if depth > 0 {
			// inside a multi-line import list
			depth += strings.Count(trimmed, "{") - strings.Count(trimmed, "}")
			last = i
			continue
		}
		switch {
		case trimmed == "" || strings.HasPrefix(trimmed, "//"):
			if first == -1 {
				continue
			}
			// a blank or comment line after imports ends the block only if
			// the next import-ish line doesn't resume it; keep scanning.
			continue
		case importLine.MatchString(trimmed):
			if first == -1 {
				first = i
			}
			last = i
			depth = strings.Count(trimmed, "{") - strings.Count(trimmed, "}")
			if depth < 0 {
				depth = 0
			}
		default:
			if first == -1 {
				// non-import content before any import: no import block
				return models.CodeChunk{}, 0, false
			}
			break scan
		}
	}
	if first == -1 {
		return models.CodeChunk{}, 0, false
	}
	return models.CodeChunk{
		Content:   strings.Join(lines[first:last+1], "\n"),
		Type:      models.ChunkImport,
		StartLine: first + 1,
		EndLine:   last + 1,
		Name:      "",
	}, last + 1, true
}

// findChunkEnd locates the last line of the chunk starting at start. Brace
// delimited constructs end where the running depth returns to zero after
// having been positive; everything else falls back to statement scanning.
func findChunkEnd(lines []string, start int) int {
	if end, ok := braceEnd(lines, start); ok {
		return end
	}
	return statementEnd(lines, start)
}

// braceEnd counts braces from start until the depth returns to zero after
// having opened. Reports false when no brace opens within the lookahead
// window or the braces never balance before the end of input.
func braceEnd(lines []string, start int) (int, bool) {
	depth := 0
	opened := false
	for j := start; j < len(lines); j++ {
		if !opened && j-start > statementLookahead {
			return 0, false
		}
		for _, r := range lines[j] {
			switch r {
			case '{':
				depth++
				opened = true
			case '}':
				depth--
				if opened && depth == 0 {
					return j, true
				}
			}
		}
		if !opened {
			// the statement ended before any block opened
			trimmed := strings.TrimSpace(lines[j])
			if strings.HasSuffix(trimmed, ";") || (j > start && trimmed == "") {
				return 0, false
			}
		}
	}
	return 0, false
}

// statementEnd finds the first line terminating in a semicolon within the
// lookahead window, or stops at a blank line, or falls back to the start
// line itself.
func statementEnd(lines []string, start int) int {
	limit := start + statementLookahead
	if limit > len(lines)-1 {
		limit = len(lines) - 1
	}
	for j := start; j <= limit; j++ {
		trimmed := strings.TrimSpace(lines[j])
		if j > start && trimmed == "" {
			return j - 1
		}
		if strings.HasSuffix(trimmed, ";") {
			return j
		}
	}
	return start
}
