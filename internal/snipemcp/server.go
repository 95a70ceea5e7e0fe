// Package snipemcp assembles the Snipe-IT MCP server: it builds the filtered
// tool registry, installs the dependency-injection middleware and runs the
// stdio transport.
package snipemcp

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/snipeit-community/snipeit-mcp-server/pkg/snipeit"
	"github.com/snipeit-community/snipeit-mcp-server/pkg/snipeitapi"
	"github.com/snipeit-community/snipeit-mcp-server/pkg/translations"
)

// MCPServerConfig holds everything needed to build a server instance.
type MCPServerConfig struct {
	// Version of the server, reported in the MCP handshake.
	Version string

	// URL is the root of the Snipe-IT instance, e.g. https://snipe.example.com.
	URL string

	// Token is the Snipe-IT API bearer token.
	Token string

	// EnabledToolsets is a list of toolset IDs to enable. nil means the
	// default toolsets; an empty slice disables all toolsets.
	EnabledToolsets []string

	// EnabledTools is an allow-list of individual tools enabled regardless
	// of their toolset.
	EnabledTools []string

	// ReadOnly limits the server to tools that do not modify the instance.
	ReadOnly bool

	// Translator provides translated tool descriptions.
	Translator translations.TranslationHelperFunc

	// Logger receives structured logs. Defaults to slog.Default().
	Logger *slog.Logger
}

// NewMCPServer creates an MCP server with all enabled tools and resources
// registered. Configuration problems with the Snipe-IT credentials do not fail
// server creation; tools report them per-call so hosts get a usable error
// instead of a dead server.
func NewMCPServer(cfg MCPServerConfig) (*mcp.Server, error) {
	translator := cfg.Translator
	if translator == nil {
		translator = translations.NullTranslationHelper
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var deps snipeit.BaseDeps
	deps.Logger = logger
	deps.T = translator
	client, err := snipeitapi.NewClient(snipeitapi.Config{
		BaseURL: cfg.URL,
		Token:   cfg.Token,
	}, snipeitapi.WithLogger(logger))
	if err != nil {
		deps.ClientErr = err
	} else {
		deps.Client = client
	}

	server := snipeit.NewServer(cfg.Version, nil)

	// Every request sees the same immutable deps, injected here rather than
	// captured in per-tool closures at registration time.
	server.AddReceivingMiddleware(func(next mcp.MethodHandler) mcp.MethodHandler {
		return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
			return next(snipeit.ContextWithDeps(ctx, deps), method, req)
		}
	})

	registry := snipeit.NewToolsets(translator).
		WithReadOnly(cfg.ReadOnly).
		WithToolsets(resolveEnabledToolsets(cfg)).
		WithTools(cfg.EnabledTools).
		Build()

	for _, unknown := range registry.UnrecognizedToolsets() {
		logger.Warn("unrecognized toolset", "toolset", unknown)
	}

	registry.RegisterAll(server)
	return server, nil
}

// resolveEnabledToolsets decides the toolset filter passed to the registry.
// When individual tools are allow-listed without any explicit toolsets, no
// toolset is enabled so only the listed tools appear.
func resolveEnabledToolsets(cfg MCPServerConfig) []string {
	if cfg.EnabledToolsets == nil && len(cfg.EnabledTools) > 0 {
		return []string{}
	}
	return cfg.EnabledToolsets
}

// StdioServerConfig is MCPServerConfig plus stdio-specific options.
type StdioServerConfig struct {
	MCPServerConfig

	// LogFilePath routes logs to a file instead of stderr. Logging to stdout
	// would corrupt the protocol stream.
	LogFilePath string
}

// RunStdioServer builds the server and serves MCP over stdin/stdout until the
// context is cancelled or the client disconnects.
func RunStdioServer(cfg StdioServerConfig) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, closeLogger, err := newLogger(cfg.LogFilePath)
	if err != nil {
		return err
	}
	defer closeLogger()
	cfg.Logger = logger

	server, err := NewMCPServer(cfg.MCPServerConfig)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	logger.Info("starting server", "version", cfg.Version, "read_only", cfg.ReadOnly)
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		return fmt.Errorf("error running server: %w", err)
	}
	return nil
}

func newLogger(path string) (*slog.Logger, func(), error) {
	var w io.Writer = os.Stderr
	closeLogger := func() {}
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w = f
		closeLogger = func() { _ = f.Close() }
	}
	return slog.New(slog.NewTextHandler(w, nil)), closeLogger, nil
}
