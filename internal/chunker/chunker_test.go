package chunker_test

import (
	"testing"

	"github.com/codesense/codesense/internal/chunker"
	"github.com/codesense/codesense/internal/models"
)

func Test_Chunk_FunctionBoundary(t *testing.T) {
	src := "function foo() {\n  if (x) {\n    bar();\n  }\n}\n"
	chunks := chunker.Chunk(src)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d: %+v", len(chunks), chunks)
	}
	c := chunks[0]
	if c.Type != models.ChunkFunction {
		t.Fatalf("expected function chunk, got %s", c.Type)
	}
	if c.Name != "foo" {
		t.Fatalf("expected name foo, got %q", c.Name)
	}
	if c.StartLine != 1 || c.EndLine != 5 {
		t.Fatalf("expected lines 1-5, got %d-%d", c.StartLine, c.EndLine)
	}
}

func Test_Chunk_ImportBlock(t *testing.T) {
	src := `import fs from 'fs';
import {
  join,
  resolve,
} from 'path';
const util = require('util');

function main() {
  run();
}
`
	chunks := chunker.Chunk(src)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d: %+v", len(chunks), chunks)
	}
	imp := chunks[0]
	if imp.Type != models.ChunkImport {
		t.Fatalf("expected import chunk first, got %s", imp.Type)
	}
	if imp.StartLine != 1 || imp.EndLine != 6 {
		t.Fatalf("expected import lines 1-6, got %d-%d", imp.StartLine, imp.EndLine)
	}
	if chunks[1].Type != models.ChunkFunction || chunks[1].Name != "main" {
		t.Fatalf("expected function main, got %+v", chunks[1])
	}
}

func Test_Chunk_ArrowFunctions(t *testing.T) {
	src := `const add = (a, b) => {
  return a + b;
};

const double = x => x * 2;

let handler = async function () {
  await work();
};
`
	chunks := chunker.Chunk(src)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d: %+v", len(chunks), chunks)
	}
	names := []string{"add", "double", "handler"}
	for i, want := range names {
		if chunks[i].Type != models.ChunkFunction {
			t.Fatalf("chunk %d: expected function, got %s", i, chunks[i].Type)
		}
		if chunks[i].Name != want {
			t.Fatalf("chunk %d: expected name %s, got %q", i, want, chunks[i].Name)
		}
	}
}

func Test_Chunk_PriorityOrder(t *testing.T) {
	src := `export interface Config {
  name: string;
}

export class Server {
  start() {}
}

export default app;

export const VERSION = "strval";
`
	chunks := chunker.Chunk(src)
	if len(chunks) != 4 {
		t.Fatalf("expected 4 chunks, got %d: %+v", len(chunks), chunks)
	}
	wantTypes := []models.ChunkType{
		models.ChunkTypeDecl, models.ChunkClass, models.ChunkExport, models.ChunkBlock,
	}
	for i, want := range wantTypes {
		if chunks[i].Type != want {
			t.Fatalf("chunk %d: expected %s, got %s", i, want, chunks[i].Type)
		}
	}
	if chunks[0].Name != "Config" || chunks[1].Name != "Server" {
		t.Fatalf("unexpected names: %+v", chunks)
	}
}

func Test_Chunk_StatementFallback(t *testing.T) {
	src := `const title = "strval" +
  " more";

const alias = other;
`
	chunks := chunker.Chunk(src)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d: %+v", len(chunks), chunks)
	}
	if chunks[0].StartLine != 1 || chunks[0].EndLine != 2 {
		t.Fatalf("expected statement lines 1-2, got %d-%d", chunks[0].StartLine, chunks[0].EndLine)
	}
	if chunks[1].StartLine != 4 || chunks[1].EndLine != 4 {
		t.Fatalf("expected statement line 4, got %d-%d", chunks[1].StartLine, chunks[1].EndLine)
	}
}

func Test_Chunk_UnbalancedBraces(t *testing.T) {
	src := "function broken() {\n  if (x) {\n    never closed\n"
	chunks := chunker.Chunk(src)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	// falls back to a statement-style chunk bounded at the start line
	if chunks[0].StartLine != 1 {
		t.Fatalf("expected start line 1, got %d", chunks[0].StartLine)
	}
	if chunks[0].EndLine > 3 {
		t.Fatalf("end line out of range: %d", chunks[0].EndLine)
	}
}

func Test_Chunk_SkipsUnmatchedText(t *testing.T) {
	src := `// just a comment

}

function real() {
  work();
}
`
	chunks := chunker.Chunk(src)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d: %+v", len(chunks), chunks)
	}
	if chunks[0].Name != "real" {
		t.Fatalf("expected function real, got %+v", chunks[0])
	}
}

func Test_Chunk_Deterministic(t *testing.T) {
	src := "import a from 'a';\n\nfunction f() {\n  g();\n}\n"
	a := chunker.Chunk(src)
	b := chunker.Chunk(src)
	if len(a) != len(b) {
		t.Fatalf("chunk counts differ")
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("chunks differ at %d", i)
		}
	}
}

func Test_Chunk_Empty(t *testing.T) {
	if got := chunker.Chunk(""); len(got) != 0 {
		t.Fatalf("expected no chunks, got %+v", got)
	}
}
