package toolsets

import (
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testToolsetAlpha = ToolsetMetadata{ID: "alpha", Description: "Alpha toolset", Default: true}
	testToolsetBeta  = ToolsetMetadata{ID: "beta", Description: "Beta toolset", Default: false}
)

func testTool(name string, toolset ToolsetMetadata, readOnly bool) ServerTool {
	return ServerTool{
		Tool: mcp.Tool{
			Name:        name,
			Description: name + " description",
			Annotations: &mcp.ToolAnnotations{ReadOnlyHint: readOnly},
		},
		Toolset: toolset,
	}
}

func toolNames(tools []ServerTool) []string {
	names := make([]string, 0, len(tools))
	for i := range tools {
		names = append(names, tools[i].Tool.Name)
	}
	return names
}

func TestBuilderDefaultsToDefaultToolsets(t *testing.T) {
	t.Parallel()

	reg := NewBuilder().
		SetTools([]ServerTool{
			testTool("alpha_read", testToolsetAlpha, true),
			testTool("beta_read", testToolsetBeta, true),
		}).
		Build()

	assert.Equal(t, []string{"alpha_read"}, toolNames(reg.AvailableTools()))
}

func TestBuilderAllKeyword(t *testing.T) {
	t.Parallel()

	reg := NewBuilder().
		SetTools([]ServerTool{
			testTool("alpha_read", testToolsetAlpha, true),
			testTool("beta_read", testToolsetBeta, true),
		}).
		WithToolsets([]string{"all"}).
		Build()

	assert.Equal(t, []string{"alpha_read", "beta_read"}, toolNames(reg.AvailableTools()))
	assert.Empty(t, reg.UnrecognizedToolsets())
}

func TestBuilderDefaultKeywordExpands(t *testing.T) {
	t.Parallel()

	reg := NewBuilder().
		SetTools([]ServerTool{
			testTool("alpha_read", testToolsetAlpha, true),
			testTool("beta_read", testToolsetBeta, true),
		}).
		WithToolsets([]string{"default", "beta"}).
		Build()

	assert.Equal(t, []string{"alpha_read", "beta_read"}, toolNames(reg.AvailableTools()))
}

func TestBuilderEmptySliceDisablesAll(t *testing.T) {
	t.Parallel()

	reg := NewBuilder().
		SetTools([]ServerTool{
			testTool("alpha_read", testToolsetAlpha, true),
		}).
		WithToolsets([]string{}).
		Build()

	assert.Empty(t, reg.AvailableTools())
}

func TestBuilderReadOnlyFiltersWriteTools(t *testing.T) {
	t.Parallel()

	reg := NewBuilder().
		SetTools([]ServerTool{
			testTool("alpha_read", testToolsetAlpha, true),
			testTool("alpha_write", testToolsetAlpha, false),
		}).
		WithReadOnly(true).
		Build()

	assert.Equal(t, []string{"alpha_read"}, toolNames(reg.AvailableTools()))
}

func TestBuilderAdditionalToolsBypassToolsetFilter(t *testing.T) {
	t.Parallel()

	reg := NewBuilder().
		SetTools([]ServerTool{
			testTool("alpha_read", testToolsetAlpha, true),
			testTool("beta_write", testToolsetBeta, false),
		}).
		WithToolsets([]string{"alpha"}).
		WithTools([]string{"beta_write"}).
		Build()

	assert.Equal(t, []string{"alpha_read", "beta_write"}, toolNames(reg.AvailableTools()))
}

func TestBuilderReadOnlyAppliesToAdditionalTools(t *testing.T) {
	t.Parallel()

	reg := NewBuilder().
		SetTools([]ServerTool{
			testTool("alpha_read", testToolsetAlpha, true),
			testTool("beta_write", testToolsetBeta, false),
		}).
		WithToolsets([]string{"alpha"}).
		WithTools([]string{"beta_write"}).
		WithReadOnly(true).
		Build()

	assert.Equal(t, []string{"alpha_read"}, toolNames(reg.AvailableTools()))
}

func TestBuilderReportsUnrecognizedToolsets(t *testing.T) {
	t.Parallel()

	reg := NewBuilder().
		SetTools([]ServerTool{
			testTool("alpha_read", testToolsetAlpha, true),
		}).
		WithToolsets([]string{"alpha", "tyops", "alpha"}).
		Build()

	assert.Equal(t, []string{"tyops"}, reg.UnrecognizedToolsets())
	assert.Equal(t, []string{"alpha_read"}, toolNames(reg.AvailableTools()))
}

func TestToolsetMetadataCollectedFromResources(t *testing.T) {
	t.Parallel()

	reg := NewBuilder().
		SetTools([]ServerTool{testTool("alpha_read", testToolsetAlpha, true)}).
		SetResources([]ServerResourceTemplate{
			{Template: mcp.ResourceTemplate{Name: "thing"}, Toolset: testToolsetBeta},
		}).
		WithToolsets([]string{"all"}).
		Build()

	assert.Equal(t, []ToolsetID{"alpha", "beta"}, reg.ToolsetIDs())
	assert.Equal(t, []ToolsetID{"alpha"}, reg.DefaultToolsetIDs())
	assert.Equal(t, "Beta toolset", reg.ToolsetDescriptions()["beta"])
}

func TestAvailableResourceTemplatesFollowToolsets(t *testing.T) {
	t.Parallel()

	reg := NewBuilder().
		SetResources([]ServerResourceTemplate{
			{Template: mcp.ResourceTemplate{Name: "alpha_thing"}, Toolset: testToolsetAlpha},
			{Template: mcp.ResourceTemplate{Name: "beta_thing"}, Toolset: testToolsetBeta},
		}).
		WithToolsets([]string{"beta"}).
		Build()

	templates := reg.AvailableResourceTemplates()
	require.Len(t, templates, 1)
	assert.Equal(t, "beta_thing", templates[0].Template.Name)
}

func TestFindToolByName(t *testing.T) {
	t.Parallel()

	reg := NewBuilder().
		SetTools([]ServerTool{
			testTool("alpha_read", testToolsetAlpha, true),
		}).
		WithToolsets([]string{}).
		Build()

	// Find ignores filters.
	tool, err := reg.FindToolByName("alpha_read")
	require.NoError(t, err)
	assert.Equal(t, "alpha_read", tool.Tool.Name)

	_, err = reg.FindToolByName("missing")
	require.Error(t, err)
	var notExist *ToolDoesNotExistError
	require.ErrorAs(t, err, &notExist)
	assert.Equal(t, "missing", notExist.Name)
}

func TestAllToolsSortedDeterministically(t *testing.T) {
	t.Parallel()

	reg := NewBuilder().
		SetTools([]ServerTool{
			testTool("beta_b", testToolsetBeta, true),
			testTool("alpha_z", testToolsetAlpha, true),
			testTool("alpha_a", testToolsetAlpha, true),
		}).
		Build()

	assert.Equal(t, []string{"alpha_a", "alpha_z", "beta_b"}, toolNames(reg.AllTools()))
}

func TestIsReadOnlyNilAnnotations(t *testing.T) {
	t.Parallel()

	tool := ServerTool{Tool: mcp.Tool{Name: "bare"}}
	assert.False(t, tool.IsReadOnly())
}
