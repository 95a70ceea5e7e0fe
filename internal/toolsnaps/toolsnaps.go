// Package toolsnaps provides snapshot testing of tool schemas: a tool's JSON
// definition is compared against a checked-in __toolsnaps__/<name>.snap file
// so schema changes show up in review rather than surprising MCP hosts.
//
// Run UPDATE_TOOLSNAPS=true go test ./... to refresh the snapshots after an
// intentional change.
package toolsnaps

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	jd "github.com/josephburnett/jd/lib"
)

// Test checks the tool definition against its snapshot. A missing snapshot is
// written and accepted locally but fails in CI, where a missing file means the
// snapshot was never committed.
func Test(toolName string, tool any) error {
	toolJSON, err := json.Marshal(tool)
	if err != nil {
		return fmt.Errorf("failed to marshal tool %s: %w", toolName, err)
	}
	sorted, err := sortJSONKeys(toolJSON)
	if err != nil {
		return fmt.Errorf("failed to normalize tool JSON for %s: %w", toolName, err)
	}

	snapPath := filepath.Join("__toolsnaps__", toolName+".snap")

	if os.Getenv("UPDATE_TOOLSNAPS") == "true" {
		return writeSnap(snapPath, sorted)
	}

	snapData, err := os.ReadFile(snapPath) //nolint:gosec // path is test-controlled
	if os.IsNotExist(err) {
		if os.Getenv("GITHUB_ACTIONS") == "true" {
			return fmt.Errorf("tool snapshot does not exist for %s, run UPDATE_TOOLSNAPS=true go test ./... and commit the result", toolName)
		}
		return writeSnap(snapPath, sorted)
	}
	if err != nil {
		return fmt.Errorf("failed to read snapshot for %s: %w", toolName, err)
	}

	snapNode, err := jd.ReadJsonString(string(snapData))
	if err != nil {
		return fmt.Errorf("failed to parse snapshot JSON for %s: %w", toolName, err)
	}
	toolNode, err := jd.ReadJsonString(string(sorted))
	if err != nil {
		return fmt.Errorf("failed to parse tool JSON for %s: %w", toolName, err)
	}

	if diff := snapNode.Diff(toolNode); len(diff) > 0 {
		return fmt.Errorf("tool schema for %s has changed unexpectedly:\n%s", toolName, diff.Render())
	}
	return nil
}

func writeSnap(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// sortJSONKeys re-marshals JSON with object keys in sorted order at every
// nesting level, so snapshot content does not depend on struct field order.
func sortJSONKeys(data []byte) ([]byte, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return json.MarshalIndent(v, "", "  ")
}
