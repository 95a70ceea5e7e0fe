package snipeit

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/snipeit-community/snipeit-mcp-server/pkg/translations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The descriptor-built manage tools share one handler, so the generic verbs
// are tested once through manage_categories and the per-resource tests focus
// on what differs.

func TestManageToolActionEnumOrder(t *testing.T) {
	t.Parallel()

	// Generic verbs first, then resource-specific actions in sorted order,
	// so the schema is stable across runs.
	fields := ManageFields(translations.NullTranslationHelper)
	fieldsSchema, ok := fields.Tool.InputSchema.(*jsonschema.Schema)
	require.True(t, ok)
	assert.Equal(t,
		[]any{"create", "get", "list", "update", "delete", "associate", "disassociate"},
		fieldsSchema.Properties["action"].Enum)

	locations := ManageLocations(translations.NullTranslationHelper)
	locationsSchema, ok := locations.Tool.InputSchema.(*jsonschema.Schema)
	require.True(t, ok)
	assert.Equal(t,
		[]any{"create", "get", "list", "update", "delete", "assets", "users"},
		locationsSchema.Properties["action"].Enum)
}

func TestManageCategoriesCreateRequiresFields(t *testing.T) {
	t.Parallel()

	tool := ManageCategories(translations.NullTranslationHelper)
	deps := stubDeps(t, NewMockRoundTripper())

	env := invokeTool(t, deps, tool.Handler, map[string]any{
		"action":        "create",
		"category_data": map[string]any{"eula_text": "terms"},
	})
	assert.Equal(t, false, env["success"])
	assert.Equal(t, "name and category_type required to create a category", env["error"])
}

func TestManageCategoriesCreateMissingData(t *testing.T) {
	t.Parallel()

	tool := ManageCategories(translations.NullTranslationHelper)
	env := invokeTool(t, stubDeps(t, NewMockRoundTripper()), tool.Handler, map[string]any{
		"action": "create",
	})
	assert.Equal(t, false, env["success"])
	assert.Equal(t, "category_data is required for create action", env["error"])
}

func TestManageCategoriesCreateSummarizes(t *testing.T) {
	t.Parallel()

	transport := NewMockRoundTripper().
		OnRequest("POST", "/categories", mockResponse(t, http.StatusOK, map[string]any{
			"status": "success",
			"payload": map[string]any{
				"id": 4, "name": "Laptops", "category_type": "asset",
				"item_count": 0, "eula_text": "terms",
			},
		}))
	tool := ManageCategories(translations.NullTranslationHelper)

	env := invokeTool(t, stubDeps(t, transport), tool.Handler, map[string]any{
		"action":        "create",
		"category_data": map[string]any{"name": "Laptops", "category_type": "asset"},
	})
	require.Equal(t, true, env["success"])
	category := env["category"].(map[string]any)
	assert.Equal(t, "Laptops", category["name"])
	// Summary fields only; the rest of the record is trimmed.
	assert.NotContains(t, category, "eula_text")
}

func TestManageCategoriesGetSanitizesText(t *testing.T) {
	t.Parallel()

	transport := NewMockRoundTripper().
		OnRequest("GET", "/categories/4", mockResponse(t, http.StatusOK, map[string]any{
			"id":   4,
			"name": "<script>alert(1)</script>Laptops",
		}))
	tool := ManageCategories(translations.NullTranslationHelper)

	env := invokeTool(t, stubDeps(t, transport), tool.Handler, map[string]any{
		"action":      "get",
		"category_id": float64(4),
	})
	require.Equal(t, true, env["success"])
	category := env["category"].(map[string]any)
	assert.Equal(t, "Laptops", category["name"])
}

func TestManageCategoriesList(t *testing.T) {
	t.Parallel()

	transport := NewMockRoundTripper().
		OnRequest("GET", "/categories", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "10", r.URL.Query().Get("limit"))
			assert.Equal(t, "laptop", r.URL.Query().Get("search"))
			mockResponse(t, http.StatusOK, map[string]any{
				"total": 25,
				"rows": []map[string]any{
					{"id": 1, "name": "Laptops", "category_type": "asset", "item_count": 12},
					{"id": 2, "name": "Phones", "category_type": "asset", "item_count": 3},
				},
			})(w, r)
		})
	tool := ManageCategories(translations.NullTranslationHelper)

	env := invokeTool(t, stubDeps(t, transport), tool.Handler, map[string]any{
		"action": "list",
		"limit":  float64(10),
		"search": "laptop",
	})
	require.Equal(t, true, env["success"])
	assert.Equal(t, float64(2), env["count"])
	assert.Equal(t, float64(25), env["total"])
	assert.Len(t, env["categories"], 2)
}

func TestManageCategoriesUpdateSendsOnlyPresentFields(t *testing.T) {
	t.Parallel()

	transport := NewMockRoundTripper().
		OnRequest("PATCH", "/categories/4", func(w http.ResponseWriter, r *http.Request) {
			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			var payload map[string]any
			require.NoError(t, json.Unmarshal(body, &payload))
			assert.Equal(t, map[string]any{"name": "Notebooks"}, payload)
			mockResponse(t, http.StatusOK, map[string]any{
				"payload": map[string]any{"id": 4, "name": "Notebooks"},
			})(w, r)
		})
	tool := ManageCategories(translations.NullTranslationHelper)

	env := invokeTool(t, stubDeps(t, transport), tool.Handler, map[string]any{
		"action":        "update",
		"category_id":   float64(4),
		"category_data": map[string]any{"name": "Notebooks", "eula_text": nil},
	})
	require.Equal(t, true, env["success"])
}

func TestManageCategoriesDelete(t *testing.T) {
	t.Parallel()

	transport := NewMockRoundTripper().
		OnRequest("DELETE", "/categories/4", mockResponse(t, http.StatusOK, map[string]any{"status": "success"}))
	tool := ManageCategories(translations.NullTranslationHelper)

	env := invokeTool(t, stubDeps(t, transport), tool.Handler, map[string]any{
		"action":      "delete",
		"category_id": float64(4),
	})
	require.Equal(t, true, env["success"])
	assert.Equal(t, "category deleted successfully", env["message"])
	assert.Equal(t, float64(4), env["category_id"])
}

func TestManageCategoriesDeleteTwice(t *testing.T) {
	t.Parallel()

	// Second delete: the record is gone, the transport answers 404.
	tool := ManageCategories(translations.NullTranslationHelper)
	env := invokeTool(t, stubDeps(t, NewMockRoundTripper()), tool.Handler, map[string]any{
		"action":      "delete",
		"category_id": float64(4),
	})
	assert.Equal(t, false, env["success"])
	assert.Contains(t, env["error"], "Not found:")
}

func TestManageModelsAssetsAction(t *testing.T) {
	t.Parallel()

	transport := NewMockRoundTripper().
		OnRequest("GET", "/models/3/assets", mockResponse(t, http.StatusOK, map[string]any{
			"total": 1,
			"rows":  []map[string]any{{"id": 10, "asset_tag": "A-010"}},
		}))
	tool := ManageModels(translations.NullTranslationHelper)

	env := invokeTool(t, stubDeps(t, transport), tool.Handler, map[string]any{
		"action":   "assets",
		"model_id": float64(3),
	})
	require.Equal(t, true, env["success"])
	assert.Equal(t, float64(1), env["count"])
	assert.Len(t, env["assets"], 1)
}

func TestManageLocationsUsersActionRequiresID(t *testing.T) {
	t.Parallel()

	tool := ManageLocations(translations.NullTranslationHelper)
	env := invokeTool(t, stubDeps(t, NewMockRoundTripper()), tool.Handler, map[string]any{
		"action": "users",
	})
	assert.Equal(t, false, env["success"])
	assert.Equal(t, "location_id is required for users action", env["error"])
}
