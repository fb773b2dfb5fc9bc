package semanticfx

import (
	"github.com/codesense/codesense/internal/semantic"
	"github.com/codesense/codesense/internal/storage"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Params represents dependencies for the semantic store
type Params struct {
	fx.In

	Store  storage.Store
	Logger *zap.Logger
}

// NewSemanticStore creates the semantic store backed by the chunk store
func NewSemanticStore(params Params) (*semantic.Store, error) {
	return semantic.New(params.Store, params.Store, params.Logger)
}

// Module provides the semantic store
var Module = fx.Module("semantic",
	fx.Provide(NewSemanticStore),
)
