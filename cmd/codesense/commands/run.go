package commands

import (
	"context"
	"fmt"

	"github.com/codesense/codesense/cmd/cmdsfx"
	"github.com/codesense/codesense/internal/app/appfx"
	"github.com/codesense/codesense/internal/mcp/mcpfx"
	"go.uber.org/fx"
)

// runWithApp builds the Fx app, starts it, runs fn with the command runner
// and stops the app afterwards.
func runWithApp(
	ctx context.Context,
	dbPath, project, httpAddr string,
	fn func(ctx context.Context, runner *cmdsfx.CommandRunner) error,
) error {
	var runner *cmdsfx.CommandRunner

	app := fx.New(
		appfx.Module,
		fx.Supply(
			fx.Annotate(dbPath, fx.ResultTags(`name:"dbPath"`)),
			fx.Annotate(project, fx.ResultTags(`name:"project"`)),
			fx.Annotate(httpAddr, fx.ResultTags(`name:"httpAddr"`)),
		),
		fx.Populate(&runner),
		fx.Invoke(func(lc fx.Lifecycle, mcpLifecycle *mcpfx.Lifecycle) {
			lc.Append(fx.Hook{
				OnStart: mcpLifecycle.Start,
				OnStop:  mcpLifecycle.Stop,
			})
		}),
	)

	startCtx, cancel := context.WithTimeout(ctx, fx.DefaultTimeout)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return fmt.Errorf("failed to start application: %w", err)
	}

	runErr := fn(ctx, runner)

	stopCtx, cancel := context.WithTimeout(context.Background(), fx.DefaultTimeout)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		if runErr != nil {
			return runErr
		}
		return fmt.Errorf("failed to stop application: %w", err)
	}

	return runErr
}
