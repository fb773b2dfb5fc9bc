package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/codesense/codesense/internal/analyzer"
	"github.com/codesense/codesense/internal/rules"
	"github.com/codesense/codesense/internal/semantic"
	"github.com/codesense/codesense/internal/storage/memory"
	"go.uber.org/zap"
)

func Test_Watcher_AnalyzesChangedFile(t *testing.T) {
	tmp := t.TempDir()

	sem, err := semantic.New(memory.New(), memory.New(), zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	scanner, err := rules.NewScanner(rules.BuiltinRules())
	if err != nil {
		t.Fatal(err)
	}
	svc := analyzer.NewService(scanner, analyzer.NewEngine(sem, 0, 0, zap.NewNop()))

	analyzed := make(chan int, 1)
	w := New(tmp, svc, zap.NewNop())
	w.findings = func(path string, count int) {
		select {
		case analyzed <- count:
		default:
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// give the watcher a moment to register before writing
	time.Sleep(200 * time.Millisecond)
	content := "function f() {\n  console.log(x);\n  return x;\n}\n"
	if err := os.WriteFile(filepath.Join(tmp, "changed.js"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case count := <-analyzed:
		if count == 0 {
			t.Fatalf("expected at least the debug-log finding")
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for analysis")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("watcher did not stop on cancel")
	}
}

func Test_Watcher_IgnoresNonSourceFiles(t *testing.T) {
	if semantic.IsSourceFile("notes.txt") {
		t.Fatalf("txt must not be a source file")
	}
	if !semantic.IsSourceFile("app.ts") {
		t.Fatalf("ts must be a source file")
	}
}
