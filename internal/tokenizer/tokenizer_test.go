package tokenizer_test

import (
	"testing"

	"github.com/codesense/codesense/internal/tokenizer"
)

func Test_Tokenize_Deterministic(t *testing.T) {
	src := `function getUserName(id) { return cache[id] || "anon"; }`
	a := tokenizer.Tokenize(src)
	b := tokenizer.Tokenize(src)
	if len(a) == 0 {
		t.Fatalf("expected tokens")
	}
	if len(a) != len(b) {
		t.Fatalf("token counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("tokens differ at %d: %q vs %q", i, a[i], b[i])
		}
	}
}

func Test_Tokenize_SplitsCamelCase(t *testing.T) {
	tokens := tokenizer.Tokenize("getUserName")
	want := []string{"get", "user", "name"}
	if len(tokens) != len(want) {
		t.Fatalf("got %v, want %v", tokens, want)
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Fatalf("got %v, want %v", tokens, want)
		}
	}
}

func Test_Tokenize_SplitsAcronymBoundary(t *testing.T) {
	tokens := tokenizer.Tokenize("HTTPServer")
	if len(tokens) != 2 || tokens[0] != "http" || tokens[1] != "server" {
		t.Fatalf("got %v, want [http server]", tokens)
	}
}

func Test_Tokenize_ReplacesLiterals(t *testing.T) {
	tokens := tokenizer.Tokenize(`const key = "sEcReT-VaLuE with spaces"; const n = 42.5;`)
	for _, tok := range tokens {
		if tok == "secret" || tok == "value" || tok == "42" || tok == "spaces" {
			t.Fatalf("literal content leaked into tokens: %v", tokens)
		}
	}
	hasStr, hasNum := false, false
	for _, tok := range tokens {
		if tok == "strlit" {
			hasStr = true
		}
		if tok == "numlit" {
			hasNum = true
		}
	}
	if !hasStr || !hasNum {
		t.Fatalf("expected literal sentinels in %v", tokens)
	}
}

func Test_Tokenize_EscapedQuotes(t *testing.T) {
	tokens := tokenizer.Tokenize(`say("he said \"hi\"") done`)
	for _, tok := range tokens {
		if tok == "hi" || tok == "said" {
			t.Fatalf("escaped string content leaked: %v", tokens)
		}
	}
}

func Test_Tokenize_DropsShortTokens(t *testing.T) {
	tokens := tokenizer.Tokenize("a + b == c ? x : fn")
	for _, tok := range tokens {
		if len(tok) < 2 {
			t.Fatalf("short token %q survived: %v", tok, tokens)
		}
	}
}

func Test_Tokenize_Empty(t *testing.T) {
	if got := tokenizer.Tokenize(""); len(got) != 0 {
		t.Fatalf("expected no tokens, got %v", got)
	}
}
