// Package mcp exposes the indexing and analysis services as MCP tools.
package mcp

import (
	"context"
	"fmt"
	"os"

	"github.com/codesense/codesense/internal/analyzer"
	"github.com/codesense/codesense/internal/constants"
	"github.com/codesense/codesense/internal/semantic"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server wraps an MCP server with its backing services
type Server struct {
	semantic *semantic.Store
	service  *analyzer.Service
	server   *server.MCPServer
}

// New returns an MCP server exposing search, analysis and indexing tools.
func New(sem *semantic.Store, service *analyzer.Service) *server.MCPServer {
	srv := &Server{
		semantic: sem,
		service:  service,
		server: server.NewMCPServer(
			"codesense/mcp",
			"0.1.0",
			server.WithToolCapabilities(true),
		),
	}

	srv.server.AddTool(newSearchCodeTool(), srv.handleSearchCode)
	srv.server.AddTool(newAnalyzeFileTool(), srv.handleAnalyzeFile)
	srv.server.AddTool(newIndexProjectTool(), srv.handleIndexProject)
	srv.server.AddTool(newIndexStatsTool(), srv.handleIndexStats)

	return srv.server
}

// Tool definitions
func newSearchCodeTool() mcp.Tool {
	return mcp.NewTool(
		"search_code",
		mcp.WithDescription("Semantic code search by natural language query"),
		mcp.WithString("query", mcp.Description("Natural language query"), mcp.Required()),
		mcp.WithNumber(
			"top_k",
			mcp.Description("Top K results"),
			mcp.DefaultNumber(constants.DefaultTopK),
		),
		mcp.WithString("scope", mcp.Description("Optional project root to search within")),
	)
}

func newAnalyzeFileTool() mcp.Tool {
	return mcp.NewTool(
		"analyze_file",
		mcp.WithDescription("Analyze a source file for security, quality and duplication findings"),
		mcp.WithString("file", mcp.Description("File path"), mcp.Required()),
	)
}

func newIndexProjectTool() mcp.Tool {
	return mcp.NewTool(
		"index_project",
		mcp.WithDescription("Index a project directory into the semantic store"),
		mcp.WithString("path", mcp.Description("Project root path"), mcp.Required()),
	)
}

func newIndexStatsTool() mcp.Tool {
	return mcp.NewTool(
		"index_stats",
		mcp.WithDescription("Show semantic index statistics"),
	)
}

// Handlers
func (srv *Server) handleSearchCode(
	ctx context.Context,
	req mcp.CallToolRequest,
) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	topK := req.GetInt("top_k", constants.DefaultTopK)
	scope := req.GetString("scope", "")

	hits, err := srv.semantic.Search(ctx, query, topK, scope)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultStructuredOnly(hits), nil
}

func (srv *Server) handleAnalyzeFile(
	_ context.Context,
	req mcp.CallToolRequest,
) (*mcp.CallToolResult, error) {
	file, err := req.RequireString("file")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("read file failed: %v", err)), nil
	}

	findings, err := srv.service.AnalyzeFile(string(data), file)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultStructuredOnly(findings), nil
}

func (srv *Server) handleIndexProject(
	ctx context.Context,
	req mcp.CallToolRequest,
) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	summary, err := srv.semantic.IndexProject(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("index project failed: %v", err)), nil
	}
	return mcp.NewToolResultStructuredOnly(summary), nil
}

func (srv *Server) handleIndexStats(
	_ context.Context,
	_ mcp.CallToolRequest,
) (*mcp.CallToolResult, error) {
	stats, err := srv.semantic.Stats()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultStructuredOnly(stats), nil
}
