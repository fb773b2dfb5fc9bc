package analyzer

import (
	"github.com/codesense/codesense/internal/models"
	"github.com/codesense/codesense/internal/rules"
)

// Service is the single analysis entry point consumed by the CLI, the
// watcher, and the HTTP layer: regex rules plus semantic classification.
type Service struct {
	Scanner *rules.Scanner
	Engine  *Engine
}

func NewService(scanner *rules.Scanner, engine *Engine) *Service {
	return &Service{Scanner: scanner, Engine: engine}
}

func (s *Service) AnalyzeFile(content, filePath string) ([]models.Finding, error) {
	findings := s.Scanner.Scan(content, filePath)
	semantic, err := s.Engine.AnalyzeFile(content, filePath)
	if err != nil {
		return nil, err
	}
	return append(findings, semantic...), nil
}
