package configfx

import (
	"os"
	"path/filepath"

	"github.com/codesense/codesense/internal/constants"
	"go.uber.org/fx"
)

// Config holds the application configuration
type Config struct {
	DBPath               string
	Project              string // Optional project path for pre-indexing
	HTTPAddr             string
	TopK                 int
	DuplicationThreshold float64
	PatternThreshold     float64
}

// Params represents the parameters needed to create configuration
type Params struct {
	fx.In

	DBPath   string `name:"dbPath"   optional:"true"`
	Project  string `name:"project"  optional:"true"`
	HTTPAddr string `name:"httpAddr" optional:"true"`
}

// DefaultDBPath is where the index database lives when no --db flag is given.
func DefaultDBPath() string {
	return filepath.Join(os.TempDir(), "codesense.db")
}

// NewConfig creates a new configuration with defaults
func NewConfig(params Params) *Config {
	config := &Config{
		DBPath:               params.DBPath,
		Project:              params.Project,
		HTTPAddr:             params.HTTPAddr,
		TopK:                 constants.DefaultTopK,
		DuplicationThreshold: constants.DefaultDuplicationThreshold,
		PatternThreshold:     constants.DefaultPatternThreshold,
	}

	if config.DBPath == "" {
		config.DBPath = DefaultDBPath()
	}
	if config.HTTPAddr == "" {
		config.HTTPAddr = constants.DefaultHTTPAddr
	}

	return config
}

// Module provides configuration for the application
var Module = fx.Module("config",
	fx.Provide(NewConfig),
)
