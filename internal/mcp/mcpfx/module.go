package mcpfx

import (
	"context"
	"fmt"

	"github.com/codesense/codesense/internal/analyzer"
	"github.com/codesense/codesense/internal/config/configfx"
	appmcp "github.com/codesense/codesense/internal/mcp"
	"github.com/codesense/codesense/internal/semantic"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/fx"
)

// Params represents dependencies for MCP server
type Params struct {
	fx.In

	Semantic *semantic.Store
	Service  *analyzer.Service
	Config   *configfx.Config
}

// NewMCPServer creates a new MCP server instance
func NewMCPServer(params Params) *server.MCPServer {
	return appmcp.New(params.Semantic, params.Service)
}

// Lifecycle manages MCP server lifecycle
type Lifecycle struct {
	server   *server.MCPServer
	semantic *semantic.Store
	config   *configfx.Config
}

// NewLifecycle creates a new MCP lifecycle manager
func NewLifecycle(
	srv *server.MCPServer,
	sem *semantic.Store,
	config *configfx.Config,
) *Lifecycle {
	return &Lifecycle{
		server:   srv,
		semantic: sem,
		config:   config,
	}
}

// Start pre-indexes the configured project, if any
func (m *Lifecycle) Start(ctx context.Context) error {
	if m.config.Project != "" {
		if _, err := m.semantic.IndexProject(ctx, m.config.Project); err != nil {
			return fmt.Errorf("pre-index project failed: %w", err)
		}
	}
	return nil
}

// Stop handles graceful shutdown
func (m *Lifecycle) Stop(ctx context.Context) error {
	return nil
}

// Module provides MCP server components
var Module = fx.Module("mcp",
	fx.Provide(
		NewMCPServer,
		NewLifecycle,
	),
)
