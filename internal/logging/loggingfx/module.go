package loggingfx

import (
	"os"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// NewLogger builds the application logger. CODESENSE_DEBUG switches to the
// human-oriented development config.
func NewLogger() (*zap.Logger, error) {
	if os.Getenv("CODESENSE_DEBUG") != "" {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

// Module provides the logger
var Module = fx.Module("logging",
	fx.Provide(NewLogger),
)
