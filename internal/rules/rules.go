// Package rules holds the rule-identifier registry and the built-in
// regex-based scanner for security, quality, and style issues.
package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/codesense/codesense/internal/models"
)

// Identifiers of the semantic analysis rules, registered alongside the
// regex rules so every finding carries a known rule id.
const (
	RuleDuplication   = "semantic/duplication"
	RuleInconsistency = "semantic/inconsistency"
)

// Rule is a single line-oriented regex check.
type Rule struct {
	ID         string
	Severity   models.Severity
	Pattern    *regexp.Regexp
	Message    string
	Suggestion string
}

// Registry validates rule identifiers at construction time: identifiers
// must be non-empty and unique.
type Registry struct {
	ids map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{ids: make(map[string]struct{})}
}

func (r *Registry) Register(id string) error {
	if id == "" {
		return fmt.Errorf("rule identifier must not be empty")
	}
	if _, dup := r.ids[id]; dup {
		return fmt.Errorf("duplicate rule identifier %q", id)
	}
	r.ids[id] = struct{}{}
	return nil
}

func (r *Registry) Known(id string) bool {
	_, ok := r.ids[id]
	return ok
}

// Scanner applies regex rules line by line.
type Scanner struct {
	rules    []Rule
	registry *Registry
}

// NewScanner validates every rule against a fresh registry, pre-registering
// the semantic rule identifiers so they cannot be shadowed.
func NewScanner(ruleSet []Rule) (*Scanner, error) {
	registry := NewRegistry()
	for _, id := range []string{RuleDuplication, RuleInconsistency} {
		if err := registry.Register(id); err != nil {
			return nil, err
		}
	}
	for _, r := range ruleSet {
		if err := registry.Register(r.ID); err != nil {
			return nil, err
		}
		if !r.Severity.Valid() {
			return nil, fmt.Errorf("rule %q has invalid severity %q", r.ID, r.Severity)
		}
		if r.Pattern == nil {
			return nil, fmt.Errorf("rule %q has no pattern", r.ID)
		}
	}
	return &Scanner{rules: ruleSet, registry: registry}, nil
}

func (s *Scanner) Registry() *Registry { return s.registry }

// Scan reports one finding per rule match per line.
func (s *Scanner) Scan(content, filePath string) []models.Finding {
	var findings []models.Finding
	for i, line := range strings.Split(content, "\n") {
		for _, r := range s.rules {
			if !r.Pattern.MatchString(line) {
				continue
			}
			findings = append(findings, models.Finding{
				Severity:   r.Severity,
				Rule:       r.ID,
				Message:    r.Message,
				File:       filePath,
				Line:       i + 1,
				Suggestion: r.Suggestion,
			})
		}
	}
	return findings
}

// BuiltinRules returns the default regex rule set.
func BuiltinRules() []Rule {
	return []Rule{
		{
			ID:         "security/eval",
			Severity:   models.SeverityError,
			Pattern:    regexp.MustCompile(`\beval\s*\(|new\s+Function\s*\(`),
			Message:    "dynamic code evaluation",
			Suggestion: "avoid eval; parse or dispatch explicitly",
		},
		{
			ID:         "security/hardcoded-secret",
			Severity:   models.SeverityError,
			Pattern:    regexp.MustCompile(`(?i)\b(password|secret|api_?key|token)\b\s*[:=]\s*["'][^"']{4,}["']`),
			Message:    "possible hardcoded credential",
			Suggestion: "read credentials from the environment or a secret store",
		},
		{
			ID:         "quality/empty-catch",
			Severity:   models.SeverityWarning,
			Pattern:    regexp.MustCompile(`catch\s*(\([^)]*\))?\s*\{\s*\}`),
			Message:    "empty catch block swallows errors",
			Suggestion: "handle or rethrow the error",
		},
		{
			ID:         "style/loose-equality",
			Severity:   models.SeverityInfo,
			Pattern:    regexp.MustCompile(`[^=!<>]==[^=]|[^=!<>]!=[^=]`),
			Message:    "loose equality comparison",
			Suggestion: "use === or !== to avoid coercion",
		},
		{
			ID:         "style/debug-log",
			Severity:   models.SeverityInfo,
			Pattern:    regexp.MustCompile(`\bconsole\.(log|debug)\s*\(`),
			Message:    "leftover debug logging",
			Suggestion: "remove or route through the project logger",
		},
	}
}
