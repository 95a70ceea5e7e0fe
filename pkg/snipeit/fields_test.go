package snipeit

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/snipeit-community/snipeit-mcp-server/pkg/translations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManageFieldsCreateRequiresElement(t *testing.T) {
	t.Parallel()

	tool := ManageFields(translations.NullTranslationHelper)
	env := invokeTool(t, stubDeps(t, NewMockRoundTripper()), tool.Handler, map[string]any{
		"action":     "create",
		"field_data": map[string]any{"name": "MAC Address"},
	})
	assert.Equal(t, false, env["success"])
	assert.Equal(t, "element required to create a field", env["error"])
}

func TestManageFieldsAssociate(t *testing.T) {
	t.Parallel()

	transport := NewMockRoundTripper().
		OnRequest("POST", "/fields/2/associate/1", func(w http.ResponseWriter, r *http.Request) {
			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			var payload map[string]any
			require.NoError(t, json.Unmarshal(body, &payload))
			assert.Equal(t, true, payload["required"])
			assert.Equal(t, float64(3), payload["order"])
			mockResponse(t, http.StatusOK, map[string]any{"status": "success"})(w, r)
		})
	tool := ManageFields(translations.NullTranslationHelper)

	env := invokeTool(t, stubDeps(t, transport), tool.Handler, map[string]any{
		"action":      "associate",
		"field_id":    float64(2),
		"fieldset_id": float64(1),
		"required":    true,
		"field_order": float64(3),
	})
	require.Equal(t, true, env["success"])
	assert.Equal(t, "Field associated with fieldset successfully", env["message"])
}

func TestManageFieldsAssociateRequiresBothIDs(t *testing.T) {
	t.Parallel()

	tool := ManageFields(translations.NullTranslationHelper)
	env := invokeTool(t, stubDeps(t, NewMockRoundTripper()), tool.Handler, map[string]any{
		"action":   "associate",
		"field_id": float64(2),
	})
	assert.Equal(t, false, env["success"])
	assert.Equal(t, "field_id and fieldset_id are required for associate action", env["error"])
}

func TestManageFieldsDisassociate(t *testing.T) {
	t.Parallel()

	transport := NewMockRoundTripper().
		OnRequest("POST", "/fields/2/disassociate/1", mockResponse(t, http.StatusOK, map[string]any{"status": "success"}))
	tool := ManageFields(translations.NullTranslationHelper)

	env := invokeTool(t, stubDeps(t, transport), tool.Handler, map[string]any{
		"action":      "disassociate",
		"field_id":    float64(2),
		"fieldset_id": float64(1),
	})
	require.Equal(t, true, env["success"])
	assert.Equal(t, "Field disassociated from fieldset successfully", env["message"])
}

func TestManageFieldsetsFields(t *testing.T) {
	t.Parallel()

	transport := NewMockRoundTripper().
		OnRequest("GET", "/fieldsets/1/fields", mockResponse(t, http.StatusOK, map[string]any{
			"rows": []map[string]any{
				{"id": 2, "name": "MAC Address"},
				{"id": 3, "name": "IMEI"},
			},
		}))
	tool := ManageFieldsets(translations.NullTranslationHelper)

	env := invokeTool(t, stubDeps(t, transport), tool.Handler, map[string]any{
		"action":      "fields",
		"fieldset_id": float64(1),
	})
	require.Equal(t, true, env["success"])
	assert.Len(t, env["fields"], 2)
}

func TestManageFieldsetsReorder(t *testing.T) {
	t.Parallel()

	transport := NewMockRoundTripper().
		OnRequest("POST", "/fields/fieldsets/1/order", func(w http.ResponseWriter, r *http.Request) {
			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			assert.JSONEq(t, `{"item":[3,2]}`, string(body))
			mockResponse(t, http.StatusOK, map[string]any{"status": "success"})(w, r)
		})
	tool := ManageFieldsets(translations.NullTranslationHelper)

	env := invokeTool(t, stubDeps(t, transport), tool.Handler, map[string]any{
		"action":      "reorder",
		"fieldset_id": float64(1),
		"field_order": []any{float64(3), float64(2)},
	})
	require.Equal(t, true, env["success"])
	assert.Equal(t, "Field order updated successfully", env["message"])
}

func TestManageFieldsetsReorderRequiresOrder(t *testing.T) {
	t.Parallel()

	tool := ManageFieldsets(translations.NullTranslationHelper)
	env := invokeTool(t, stubDeps(t, NewMockRoundTripper()), tool.Handler, map[string]any{
		"action":      "reorder",
		"fieldset_id": float64(1),
	})
	assert.Equal(t, false, env["success"])
	assert.Equal(t, "field_order is required for reorder action", env["error"])
}
