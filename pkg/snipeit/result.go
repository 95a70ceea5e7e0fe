package snipeit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/snipeit-community/snipeit-mcp-server/pkg/snipeitapi"
	"github.com/snipeit-community/snipeit-mcp-server/pkg/utils"
)

// Every tool returns a JSON envelope of the form {"success": bool, ...}.
// success=false always carries an "error" string; success=true carries
// action-specific fields. Failures additionally set IsError on the MCP
// result so hosts that inspect it see the same signal.

func envelopeResult(env map[string]any) *mcp.CallToolResult {
	data, err := json.Marshal(env)
	if err != nil {
		return utils.NewToolResultErrorFromErr("failed to marshal result", err)
	}
	result := utils.NewToolResultText(string(data))
	if success, ok := env["success"].(bool); ok && !success {
		result.IsError = true
	}
	return result
}

// successResult builds a success envelope. The action field records which
// branch of the tool ran; extra fields are merged in as-is.
func successResult(action string, fields map[string]any) *mcp.CallToolResult {
	env := map[string]any{"success": true}
	if action != "" {
		env["action"] = action
	}
	for k, v := range fields {
		env[k] = v
	}
	return envelopeResult(env)
}

// errorResult builds a {"success": false, "error": ...} envelope.
func errorResult(format string, a ...any) *mcp.CallToolResult {
	return envelopeResult(map[string]any{
		"success": false,
		"error":   fmt.Sprintf(format, a...),
	})
}

// apiErrorResult collapses a facade error into the envelope. The error kinds
// are mutually exclusive by construction; the order here only fixes the
// message prefix each kind receives. Transport and programming errors fall
// through to the catch-all and are logged, since they indicate infrastructure
// trouble rather than a usage error.
func apiErrorResult(ctx context.Context, deps ToolDependencies, err error) *mcp.CallToolResult {
	var (
		notFoundErr   *snipeitapi.NotFoundError
		authErr       *snipeitapi.AuthenticationError
		validationErr *snipeitapi.ValidationError
		apiErr        *snipeitapi.APIError
	)
	switch {
	case errors.Is(err, snipeitapi.ErrNotConfigured):
		return errorResult("Configuration error: %s", err)
	case errors.As(err, &notFoundErr):
		return errorResult("Not found: %s", err)
	case errors.As(err, &authErr):
		return errorResult("Authentication failed: %s", err)
	case errors.As(err, &validationErr):
		return errorResult("Validation error: %s", err)
	case errors.As(err, &apiErr):
		return errorResult("Snipe-IT error: %s", err)
	default:
		deps.GetLogger().ErrorContext(ctx, "unexpected tool error", "error", err)
		return errorResult("Unexpected error: %s", err)
	}
}
