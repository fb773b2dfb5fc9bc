package analyzerfx

import (
	"github.com/codesense/codesense/internal/analyzer"
	"github.com/codesense/codesense/internal/config/configfx"
	"github.com/codesense/codesense/internal/rules"
	"github.com/codesense/codesense/internal/semantic"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Params represents dependencies for analysis components
type Params struct {
	fx.In

	Config   *configfx.Config
	Semantic *semantic.Store
	Logger   *zap.Logger
}

// NewScanner creates the regex rule scanner with the builtin rule set
func NewScanner() (*rules.Scanner, error) {
	return rules.NewScanner(rules.BuiltinRules())
}

// NewEngine creates the similarity analysis engine
func NewEngine(params Params) *analyzer.Engine {
	return analyzer.NewEngine(
		params.Semantic,
		params.Config.DuplicationThreshold,
		params.Config.PatternThreshold,
		params.Logger,
	)
}

// NewService combines the scanner and the engine into the analysis service
func NewService(scanner *rules.Scanner, engine *analyzer.Engine) *analyzer.Service {
	return analyzer.NewService(scanner, engine)
}

// Module provides analysis components
var Module = fx.Module("analyzer",
	fx.Provide(
		NewScanner,
		NewEngine,
		NewService,
	),
)
