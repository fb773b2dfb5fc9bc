package cmdsfx

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/codesense/codesense/internal/analyzer"
	"github.com/codesense/codesense/internal/config/configfx"
	"github.com/codesense/codesense/internal/semantic"
	"github.com/codesense/codesense/internal/watcher"
	"github.com/gorilla/mux"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// CommandRunner provides methods to run different application commands
type CommandRunner struct {
	config    *configfx.Config
	semantic  *semantic.Store
	service   *analyzer.Service
	router    *mux.Router
	mcpServer *server.MCPServer
	logger    *zap.Logger
}

// Params represents dependencies for command runner
type Params struct {
	fx.In

	Config    *configfx.Config
	Semantic  *semantic.Store   `optional:"true"`
	Service   *analyzer.Service `optional:"true"`
	Router    *mux.Router       `optional:"true"`
	MCPServer *server.MCPServer `optional:"true"`
	Logger    *zap.Logger
}

// NewCommandRunner creates a new command runner
func NewCommandRunner(params Params) *CommandRunner {
	return &CommandRunner{
		config:    params.Config,
		semantic:  params.Semantic,
		service:   params.Service,
		router:    params.Router,
		mcpServer: params.MCPServer,
		logger:    params.Logger,
	}
}

// RunIndex executes the index command
func (r *CommandRunner) RunIndex(ctx context.Context, projectPath string, resetCorpus bool) error {
	if r.semantic == nil {
		return fmt.Errorf("semantic store not available")
	}

	if resetCorpus {
		if err := r.semantic.ResetCorpus(); err != nil {
			return fmt.Errorf("reset corpus failed: %w", err)
		}
		fmt.Println("corpus statistics reset")
	}

	summary, err := r.semantic.IndexProject(ctx, projectPath)
	if err != nil {
		return err
	}
	fmt.Printf("indexed %d files, stored %d chunks\n", summary.FilesIndexed, summary.ChunksStored)
	return nil
}

// RunSearch executes semantic search
func (r *CommandRunner) RunSearch(ctx context.Context, query string, topK int, scope string) error {
	if r.semantic == nil {
		return fmt.Errorf("semantic store not available")
	}

	hits, err := r.semantic.Search(ctx, query, topK, scope)
	if err != nil {
		return err
	}
	if len(hits) == 0 {
		fmt.Println("no results")
		return nil
	}

	for i, hit := range hits {
		fmt.Printf("Result %d (score: %.4f):\n", i+1, hit.Similarity)
		fmt.Printf("File: %s\n", hit.Chunk.FilePath)
		fmt.Printf("Lines: %d-%d\n", hit.Chunk.StartLine, hit.Chunk.EndLine)
		fmt.Printf("Content: %s\n\n", hit.Chunk.Content)
	}
	return nil
}

// RunAnalyze analyzes a single file and prints findings
func (r *CommandRunner) RunAnalyze(ctx context.Context, filePath string) error {
	if r.service == nil {
		return fmt.Errorf("analysis service not available")
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	findings, err := r.service.AnalyzeFile(string(data), filePath)
	if err != nil {
		return err
	}
	if len(findings) == 0 {
		fmt.Println("no findings")
		return nil
	}

	for _, f := range findings {
		fmt.Printf("[%s] %s:%d %s: %s\n", f.Severity, f.File, f.Line, f.Rule, f.Message)
		if f.Suggestion != "" {
			fmt.Printf("  suggestion: %s\n", f.Suggestion)
		}
		if f.Related != nil {
			fmt.Printf("  related: %s:%d-%d (%.4f)\n",
				f.Related.File, f.Related.StartLine, f.Related.EndLine, f.Related.Similarity)
		}
	}
	return nil
}

// RunStats prints semantic index statistics
func (r *CommandRunner) RunStats(ctx context.Context) error {
	if r.semantic == nil {
		return fmt.Errorf("semantic store not available")
	}

	stats, err := r.semantic.Stats()
	if err != nil {
		return err
	}
	fmt.Printf("chunks: %d\n", stats.TotalChunks)
	fmt.Printf("files: %d\n", stats.TotalFiles)
	fmt.Printf("projects: %d\n", stats.ProjectRoots)
	return nil
}

// RunWatch watches a project directory and analyzes changed files
func (r *CommandRunner) RunWatch(ctx context.Context, projectPath string) error {
	if r.service == nil {
		return fmt.Errorf("analysis service not available")
	}

	w := watcher.New(projectPath, r.service, r.logger)
	fmt.Printf("watching %s\n", projectPath)
	return w.Run(ctx)
}

// RunServe starts the HTTP API server
func (r *CommandRunner) RunServe(ctx context.Context, addr string) error {
	if r.router == nil {
		return fmt.Errorf("HTTP router not available")
	}
	if addr == "" {
		addr = r.config.HTTPAddr
	}

	srv := &http.Server{Addr: addr, Handler: r.router}
	errCh := make(chan error, 1)
	go func() {
		r.logger.Info("http server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		return srv.Shutdown(context.Background())
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

// RunMCPServer executes the MCP server
func (r *CommandRunner) RunMCPServer(transport, address string) error {
	if r.mcpServer == nil {
		return fmt.Errorf("MCP server not available")
	}

	switch transport {
	case "stdio":
		return server.ServeStdio(r.mcpServer)
	case "http":
		addr := address
		if addr == "" {
			addr = r.config.HTTPAddr
		}
		httpSrv := server.NewStreamableHTTPServer(r.mcpServer)
		return httpSrv.Start(addr)
	case "sse":
		addr := address
		if addr == "" {
			addr = r.config.HTTPAddr
		}
		sseSrv := server.NewSSEServer(r.mcpServer,
			server.WithBaseURL(""),
			server.WithStaticBasePath("/mcp"),
		)
		return sseSrv.Start(addr)
	default:
		return fmt.Errorf(
			"unsupported transport: %s (supported: stdio, http, sse)",
			transport,
		)
	}
}

// Module provides command runner
var Module = fx.Module("commands",
	fx.Provide(NewCommandRunner),
)
