package apifx

import (
	"github.com/codesense/codesense/internal/analyzer"
	"github.com/codesense/codesense/internal/api"
	"github.com/codesense/codesense/internal/semantic"
	"github.com/gorilla/mux"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Params represents dependencies for the HTTP API
type Params struct {
	fx.In

	Semantic *semantic.Store
	Service  *analyzer.Service
	Logger   *zap.Logger
}

// NewHandler creates the HTTP handler set
func NewHandler(params Params) *api.Handler {
	return api.NewHandler(params.Semantic, params.Service)
}

// NewRouter creates the HTTP router
func NewRouter(handler *api.Handler, log *zap.Logger) *mux.Router {
	return api.NewRouter(handler, log)
}

// Module provides HTTP API components
var Module = fx.Module("api",
	fx.Provide(
		NewHandler,
		NewRouter,
	),
)
