package snipeit

import (
	"context"
	"errors"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/snipeit-community/snipeit-mcp-server/pkg/snipeitapi"
	"github.com/snipeit-community/snipeit-mcp-server/pkg/toolsets"
	"github.com/snipeit-community/snipeit-mcp-server/pkg/translations"
)

// depsContextKey is the context key for ToolDependencies.
// Using a private type prevents collisions with other packages.
type depsContextKey struct{}

// ErrDepsNotInContext is returned when ToolDependencies is not found in context.
var ErrDepsNotInContext = errors.New("ToolDependencies not found in context; use ContextWithDeps to inject")

// ContextWithDeps returns a new context with the ToolDependencies stored in it.
// Dependencies are injected at request time rather than captured in closures
// at registration time.
func ContextWithDeps(ctx context.Context, deps ToolDependencies) context.Context {
	return context.WithValue(ctx, depsContextKey{}, deps)
}

// DepsFromContext retrieves ToolDependencies from the context.
func DepsFromContext(ctx context.Context) (ToolDependencies, bool) {
	deps, ok := ctx.Value(depsContextKey{}).(ToolDependencies)
	return deps, ok
}

// MustDepsFromContext retrieves ToolDependencies from the context.
// Panics if deps are not found - use this in handlers where deps are required.
func MustDepsFromContext(ctx context.Context) ToolDependencies {
	deps, ok := DepsFromContext(ctx)
	if !ok {
		panic(ErrDepsNotInContext)
	}
	return deps
}

// ToolDependencies defines what tool handlers need to run.
type ToolDependencies interface {
	// GetClient returns the Snipe-IT API client. It returns
	// snipeitapi.ErrNotConfigured when the server was started without a
	// base URL or token, so tools fail fast before any network call.
	GetClient(ctx context.Context) (*snipeitapi.Client, error)

	// GetLogger returns the logger for unexpected-error reporting.
	GetLogger() *slog.Logger

	// GetT returns the translation helper function.
	GetT() translations.TranslationHelperFunc
}

// BaseDeps is the standard implementation of ToolDependencies for the stdio
// server: one pre-created client shared (read-only) by all invocations.
type BaseDeps struct {
	// Client is the configured API client, nil when configuration failed.
	Client *snipeitapi.Client
	// ClientErr records why the client could not be created.
	ClientErr error

	Logger *slog.Logger
	T      translations.TranslationHelperFunc
}

// GetClient implements ToolDependencies.
func (d BaseDeps) GetClient(_ context.Context) (*snipeitapi.Client, error) {
	if d.ClientErr != nil {
		return nil, d.ClientErr
	}
	if d.Client == nil {
		return nil, snipeitapi.ErrNotConfigured
	}
	return d.Client, nil
}

// GetLogger implements ToolDependencies.
func (d BaseDeps) GetLogger() *slog.Logger {
	if d.Logger == nil {
		return slog.Default()
	}
	return d.Logger
}

// GetT implements ToolDependencies.
func (d BaseDeps) GetT() translations.TranslationHelperFunc {
	if d.T == nil {
		return translations.NullTranslationHelper
	}
	return d.T
}

// NewTool creates a ServerTool whose handler retrieves ToolDependencies from
// context at call time. Ensure ContextWithDeps is called before any tool
// handlers are invoked.
func NewTool(toolset toolsets.ToolsetMetadata, tool mcp.Tool, handler func(ctx context.Context, deps ToolDependencies, req *mcp.CallToolRequest, args map[string]any) (*mcp.CallToolResult, any, error)) toolsets.ServerTool {
	return toolsets.NewServerTool(tool, toolset, func(ctx context.Context, req *mcp.CallToolRequest, args map[string]any) (*mcp.CallToolResult, any, error) {
		deps := MustDepsFromContext(ctx)
		return handler(ctx, deps, req, args)
	})
}
