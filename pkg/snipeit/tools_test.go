package snipeit

import (
	"testing"

	"github.com/snipeit-community/snipeit-mcp-server/internal/toolsnaps"
	"github.com/snipeit-community/snipeit-mcp-server/pkg/translations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllToolsHaveUniqueNames(t *testing.T) {
	t.Parallel()

	seen := map[string]bool{}
	for _, tool := range AllTools(translations.NullTranslationHelper) {
		require.NotEmpty(t, tool.Tool.Name)
		assert.False(t, seen[tool.Tool.Name], "duplicate tool name %s", tool.Tool.Name)
		seen[tool.Tool.Name] = true
	}
}

func TestAllToolsAreComplete(t *testing.T) {
	t.Parallel()

	for _, tool := range AllTools(translations.NullTranslationHelper) {
		assert.NotEmpty(t, tool.Tool.Description, "tool %s has no description", tool.Tool.Name)
		require.NotNil(t, tool.Tool.Annotations, "tool %s has no annotations", tool.Tool.Name)
		assert.NotEmpty(t, tool.Tool.Annotations.Title, "tool %s has no title", tool.Tool.Name)
		assert.NotNil(t, tool.Tool.InputSchema, "tool %s has no input schema", tool.Tool.Name)
		assert.NotEmpty(t, tool.Toolset.ID, "tool %s has no toolset", tool.Tool.Name)
		require.NotNil(t, tool.Handler, "tool %s has no handler", tool.Tool.Name)
	}
}

func TestToolSchemasMatchSnapshots(t *testing.T) {
	for _, tool := range AllTools(translations.NullTranslationHelper) {
		t.Run(tool.Tool.Name, func(t *testing.T) {
			require.NoError(t, toolsnaps.Test(tool.Tool.Name, tool.Tool))
		})
	}
}

func TestReadOnlyHintsMatchToolsetIntent(t *testing.T) {
	t.Parallel()

	// Report tools never mutate, so all of them must carry the hint.
	for _, tool := range AllTools(translations.NullTranslationHelper) {
		if tool.Toolset.ID == ToolsetMetadataReports.ID {
			assert.True(t, tool.Tool.Annotations.ReadOnlyHint, "report tool %s should be read-only", tool.Tool.Name)
		}
	}
}

func TestAllResourcesHaveHandlers(t *testing.T) {
	t.Parallel()

	for _, resource := range AllResources(translations.NullTranslationHelper) {
		assert.NotEmpty(t, resource.Template.Name)
		assert.NotEmpty(t, resource.Template.URITemplate)
		require.NotNil(t, resource.Handler)
	}
}
