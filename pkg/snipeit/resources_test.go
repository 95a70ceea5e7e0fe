package snipeit

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/snipeit-community/snipeit-mcp-server/pkg/translations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readResource(t *testing.T, deps BaseDeps, handler mcp.ResourceHandler, uri string) (*mcp.ReadResourceResult, error) {
	t.Helper()
	ctx := ContextWithDeps(context.Background(), deps)
	return handler(ctx, &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{URI: uri},
	})
}

func TestAssetResourceReadsByID(t *testing.T) {
	t.Parallel()

	transport := NewMockRoundTripper().
		OnRequest("GET", "/hardware/5", mockResponse(t, http.StatusOK, map[string]any{
			"id": 5, "asset_tag": "A-005", "name": "laptop-005",
		}))

	resource := AssetResource(translations.NullTranslationHelper)
	result, err := readResource(t, stubDeps(t, transport), resource.Handler, "snipeit://hardware/5")
	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Equal(t, "snipeit://hardware/5", result.Contents[0].URI)
	assert.Equal(t, "application/json", result.Contents[0].MIMEType)

	var asset map[string]any
	require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &asset))
	assert.Equal(t, "A-005", asset["asset_tag"])
}

func TestAssetResourceRejectsBadID(t *testing.T) {
	t.Parallel()

	resource := AssetResource(translations.NullTranslationHelper)
	_, err := readResource(t, stubDeps(t, NewMockRoundTripper()), resource.Handler, "snipeit://hardware/not-a-number")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid asset ID")
}

func TestAssetByTagResource(t *testing.T) {
	t.Parallel()

	transport := NewMockRoundTripper().
		OnRequest("GET", "/hardware/bytag/A-005", mockResponse(t, http.StatusOK, map[string]any{
			"id": 5, "asset_tag": "A-005",
		}))

	resource := AssetByTagResource(translations.NullTranslationHelper)
	result, err := readResource(t, stubDeps(t, transport), resource.Handler, "snipeit://hardware/bytag/A-005")
	require.NoError(t, err)
	require.Len(t, result.Contents, 1)

	var asset map[string]any
	require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &asset))
	assert.Equal(t, float64(5), asset["id"])
}

func TestAssetResourceMissingAsset(t *testing.T) {
	t.Parallel()

	resource := AssetResource(translations.NullTranslationHelper)
	_, err := readResource(t, stubDeps(t, NewMockRoundTripper()), resource.Handler, "snipeit://hardware/999")
	require.Error(t, err)
}
