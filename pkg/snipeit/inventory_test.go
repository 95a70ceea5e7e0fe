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

func TestManageConsumablesCreateRequiresFields(t *testing.T) {
	t.Parallel()

	tool := ManageConsumables(translations.NullTranslationHelper)
	env := invokeTool(t, stubDeps(t, NewMockRoundTripper()), tool.Handler, map[string]any{
		"action":          "create",
		"consumable_data": map[string]any{"name": "Toner"},
	})
	assert.Equal(t, false, env["success"])
	assert.Equal(t, "qty and category_id required to create a consumable", env["error"])
}

func TestComponentOperationsCheckoutDefaultsQuantity(t *testing.T) {
	t.Parallel()

	transport := NewMockRoundTripper().
		OnRequest("POST", "/components/3/checkout", func(w http.ResponseWriter, r *http.Request) {
			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			var payload map[string]any
			require.NoError(t, json.Unmarshal(body, &payload))
			assert.Equal(t, float64(55), payload["assigned_to"])
			assert.Equal(t, float64(1), payload["assigned_qty"])
			mockResponse(t, http.StatusOK, map[string]any{"status": "success"})(w, r)
		})
	tool := ComponentOperations(translations.NullTranslationHelper)

	env := invokeTool(t, stubDeps(t, transport), tool.Handler, map[string]any{
		"action":        "checkout",
		"component_id":  float64(3),
		"checkout_data": map[string]any{"assigned_to": float64(55)},
	})
	require.Equal(t, true, env["success"])
	assert.Equal(t, "Component checked out to asset 55", env["message"])
}

func TestComponentOperationsCheckoutRequiresAsset(t *testing.T) {
	t.Parallel()

	tool := ComponentOperations(translations.NullTranslationHelper)
	env := invokeTool(t, stubDeps(t, NewMockRoundTripper()), tool.Handler, map[string]any{
		"action":        "checkout",
		"component_id":  float64(3),
		"checkout_data": map[string]any{"note": "spare RAM"},
	})
	assert.Equal(t, false, env["success"])
	assert.Equal(t, "assigned_to (asset ID) is required for checkout", env["error"])
}

func TestComponentOperationsCheckinAddressesRecord(t *testing.T) {
	t.Parallel()

	transport := NewMockRoundTripper().
		OnRequest("POST", "/components/3/checkin/77", mockResponse(t, http.StatusOK, map[string]any{"status": "success"}))
	tool := ComponentOperations(translations.NullTranslationHelper)

	env := invokeTool(t, stubDeps(t, transport), tool.Handler, map[string]any{
		"action":       "checkin",
		"component_id": float64(3),
		"checkout_id":  float64(77),
	})
	require.Equal(t, true, env["success"])
	assert.Equal(t, "Component checked in successfully", env["message"])
}

func TestComponentOperationsListAssets(t *testing.T) {
	t.Parallel()

	transport := NewMockRoundTripper().
		OnRequest("GET", "/components/3/assets", mockResponse(t, http.StatusOK, map[string]any{
			"rows": []map[string]any{{"id": 55, "name": "laptop-042"}},
		}))
	tool := ComponentOperations(translations.NullTranslationHelper)

	env := invokeTool(t, stubDeps(t, transport), tool.Handler, map[string]any{
		"action":       "list_assets",
		"component_id": float64(3),
	})
	require.Equal(t, true, env["success"])
	assert.Equal(t, float64(1), env["count"])
	assert.Len(t, env["assets"], 1)
}

func TestAccessoryOperationsCheckoutToUser(t *testing.T) {
	t.Parallel()

	transport := NewMockRoundTripper().
		OnRequest("POST", "/accessories/8/checkout", func(w http.ResponseWriter, r *http.Request) {
			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			assert.JSONEq(t, `{"assigned_to":12,"note":"desk setup"}`, string(body))
			mockResponse(t, http.StatusOK, map[string]any{"status": "success"})(w, r)
		})
	tool := AccessoryOperations(translations.NullTranslationHelper)

	env := invokeTool(t, stubDeps(t, transport), tool.Handler, map[string]any{
		"action":       "checkout",
		"accessory_id": float64(8),
		"checkout_data": map[string]any{
			"assigned_to": float64(12),
			"note":        "desk setup",
		},
	})
	require.Equal(t, true, env["success"])
	assert.Equal(t, "Accessory checked out to user 12", env["message"])
}

func TestAccessoryOperationsCheckinSendsRecordID(t *testing.T) {
	t.Parallel()

	transport := NewMockRoundTripper().
		OnRequest("POST", "/accessories/8/checkin", func(w http.ResponseWriter, r *http.Request) {
			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			assert.JSONEq(t, `{"accessory_user_id":91}`, string(body))
			mockResponse(t, http.StatusOK, map[string]any{"status": "success"})(w, r)
		})
	tool := AccessoryOperations(translations.NullTranslationHelper)

	env := invokeTool(t, stubDeps(t, transport), tool.Handler, map[string]any{
		"action":       "checkin",
		"accessory_id": float64(8),
		"checkout_id":  float64(91),
	})
	require.Equal(t, true, env["success"])
	assert.Equal(t, "Accessory checked in successfully", env["message"])
}

func TestAccessoryOperationsListCheckouts(t *testing.T) {
	t.Parallel()

	transport := NewMockRoundTripper().
		OnRequest("GET", "/accessories/8/checkedout", mockResponse(t, http.StatusOK, map[string]any{
			"rows": []map[string]any{
				{"id": 91, "assigned_to": map[string]any{"id": 12, "name": "Ada Lovelace"}, "created_at": "2026-08-01", "note": "desk setup"},
			},
		}))
	tool := AccessoryOperations(translations.NullTranslationHelper)

	env := invokeTool(t, stubDeps(t, transport), tool.Handler, map[string]any{
		"action":       "list_checkouts",
		"accessory_id": float64(8),
	})
	require.Equal(t, true, env["success"])
	assert.Equal(t, float64(1), env["count"])
	checkouts := env["checkouts"].([]any)
	record := checkouts[0].(map[string]any)
	assert.Equal(t, "2026-08-01", record["checkout_at"])
	assert.Equal(t, "desk setup", record["note"])
}
