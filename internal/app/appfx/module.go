package appfx

import (
	"github.com/codesense/codesense/cmd/cmdsfx"
	"github.com/codesense/codesense/internal/analyzer/analyzerfx"
	"github.com/codesense/codesense/internal/api/apifx"
	"github.com/codesense/codesense/internal/config/configfx"
	"github.com/codesense/codesense/internal/logging/loggingfx"
	"github.com/codesense/codesense/internal/mcp/mcpfx"
	"github.com/codesense/codesense/internal/semantic/semanticfx"
	"github.com/codesense/codesense/internal/storage/storagefx"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// Module combines all application modules
var Module = fx.Options(
	configfx.Module,
	loggingfx.Module,
	storagefx.Module,
	semanticfx.Module,
	analyzerfx.Module,
	apifx.Module,
	mcpfx.Module,
	cmdsfx.Module,
	fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
		return &fxevent.ZapLogger{Logger: log.Named("fx")}
	}),
)

// NewAppWithConfig creates an Fx app with the given configuration values
func NewAppWithConfig(dbPath, project, httpAddr string) *fx.App {
	return fx.New(
		Module,
		fx.Supply(
			fx.Annotate(dbPath, fx.ResultTags(`name:"dbPath"`)),
			fx.Annotate(project, fx.ResultTags(`name:"project"`)),
			fx.Annotate(httpAddr, fx.ResultTags(`name:"httpAddr"`)),
		),
		fx.Invoke(func(lc fx.Lifecycle, mcpLifecycle *mcpfx.Lifecycle) {
			lc.Append(fx.Hook{
				OnStart: mcpLifecycle.Start,
				OnStop:  mcpLifecycle.Stop,
			})
		}),
	)
}

// NewApp creates an Fx app with default configuration
func NewApp() *fx.App {
	return fx.New(Module)
}
