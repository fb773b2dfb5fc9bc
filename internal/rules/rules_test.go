package rules_test

import (
	"regexp"
	"testing"

	"github.com/codesense/codesense/internal/models"
	"github.com/codesense/codesense/internal/rules"
)

func Test_Scanner_Builtins(t *testing.T) {
	s, err := rules.NewScanner(rules.BuiltinRules())
	if err != nil {
		t.Fatalf("new scanner: %v", err)
	}

	content := `const apiKey = "sk-1234567890";
if (a == b) {
  eval(payload);
}
try { run(); } catch (e) {}
console.log(state);
`
	findings := s.Scan(content, "src/app.js")
	got := map[string]int{}
	for _, f := range findings {
		if f.File != "src/app.js" {
			t.Fatalf("wrong file: %q", f.File)
		}
		if f.Line < 1 {
			t.Fatalf("line must be 1-based: %d", f.Line)
		}
		got[f.Rule]++
	}

	for _, want := range []string{
		"security/hardcoded-secret",
		"style/loose-equality",
		"security/eval",
		"quality/empty-catch",
		"style/debug-log",
	} {
		if got[want] == 0 {
			t.Fatalf("expected a %s finding, got %v", want, got)
		}
	}
}

func Test_Scanner_CleanContent(t *testing.T) {
	s, err := rules.NewScanner(rules.BuiltinRules())
	if err != nil {
		t.Fatal(err)
	}
	findings := s.Scan("function add(a, b) {\n  return a + b;\n}\n", "ok.js")
	if len(findings) != 0 {
		t.Fatalf("expected no findings, got %+v", findings)
	}
}

func Test_NewScanner_RejectsDuplicateIDs(t *testing.T) {
	dup := rules.Rule{
		ID:       "style/debug-log",
		Severity: models.SeverityInfo,
		Pattern:  regexp.MustCompile(`x`),
	}
	_, err := rules.NewScanner(append(rules.BuiltinRules(), dup))
	if err == nil {
		t.Fatalf("expected duplicate id error")
	}
}

func Test_NewScanner_RejectsInvalidSeverity(t *testing.T) {
	bad := rules.Rule{
		ID:       "custom/bad",
		Severity: models.Severity("critical"),
		Pattern:  regexp.MustCompile(`x`),
	}
	_, err := rules.NewScanner([]rules.Rule{bad})
	if err == nil {
		t.Fatalf("expected invalid severity error")
	}
}

func Test_NewScanner_ReservesSemanticIDs(t *testing.T) {
	clash := rules.Rule{
		ID:       rules.RuleDuplication,
		Severity: models.SeverityWarning,
		Pattern:  regexp.MustCompile(`x`),
	}
	_, err := rules.NewScanner([]rules.Rule{clash})
	if err == nil {
		t.Fatalf("expected reserved id error")
	}

	s, err := rules.NewScanner(nil)
	if err != nil {
		t.Fatal(err)
	}
	if !s.Registry().Known(rules.RuleInconsistency) {
		t.Fatalf("semantic rule ids must be pre-registered")
	}
}
