package snipeit

import (
	"net/http"
	"testing"

	"github.com/snipeit-community/snipeit-mcp-server/pkg/translations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManageUsersCreateRequiresCredentials(t *testing.T) {
	t.Parallel()

	tool := ManageUsers(translations.NullTranslationHelper)
	env := invokeTool(t, stubDeps(t, NewMockRoundTripper()), tool.Handler, map[string]any{
		"action":    "create",
		"user_data": map[string]any{"first_name": "Ada"},
	})
	assert.Equal(t, false, env["success"])
	assert.Equal(t, "username, password, and first_name are required to create a user", env["error"])
}

func TestManageUsersCreateJoinsName(t *testing.T) {
	t.Parallel()

	transport := NewMockRoundTripper().
		OnRequest("POST", "/users", mockResponse(t, http.StatusOK, map[string]any{
			"status":  "success",
			"payload": map[string]any{"id": 12},
		}))
	tool := ManageUsers(translations.NullTranslationHelper)

	env := invokeTool(t, stubDeps(t, transport), tool.Handler, map[string]any{
		"action": "create",
		"user_data": map[string]any{
			"username":   "alovelace",
			"password":   "s3cret",
			"first_name": "Ada",
			"last_name":  "Lovelace",
		},
	})
	require.Equal(t, true, env["success"])
	user := env["user"].(map[string]any)
	assert.Equal(t, float64(12), user["id"])
	assert.Equal(t, "alovelace", user["username"])
	assert.Equal(t, "Ada Lovelace", user["name"])
}

func TestManageUsersCreateNoLastName(t *testing.T) {
	t.Parallel()

	transport := NewMockRoundTripper().
		OnRequest("POST", "/users", mockResponse(t, http.StatusOK, map[string]any{
			"payload": map[string]any{"id": 13},
		}))
	tool := ManageUsers(translations.NullTranslationHelper)

	env := invokeTool(t, stubDeps(t, transport), tool.Handler, map[string]any{
		"action": "create",
		"user_data": map[string]any{
			"username":   "madonna",
			"password":   "s3cret",
			"first_name": "Madonna",
		},
	})
	require.Equal(t, true, env["success"])
	user := env["user"].(map[string]any)
	assert.Equal(t, "Madonna", user["name"])
}

func TestManageUsersListWithUsernameFilter(t *testing.T) {
	t.Parallel()

	transport := NewMockRoundTripper().
		OnRequest("GET", "/users", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "alovelace", r.URL.Query().Get("username"))
			mockResponse(t, http.StatusOK, map[string]any{
				"total": 1,
				"rows": []map[string]any{
					{"id": 12, "username": "alovelace", "name": "Ada Lovelace", "email": "ada@example.com", "activated": true, "jobtitle": "Engineer"},
				},
			})(w, r)
		})
	tool := ManageUsers(translations.NullTranslationHelper)

	env := invokeTool(t, stubDeps(t, transport), tool.Handler, map[string]any{
		"action":   "list",
		"username": "alovelace",
	})
	require.Equal(t, true, env["success"])
	assert.Equal(t, float64(1), env["count"])
	users := env["users"].([]any)
	require.Len(t, users, 1)
	row := users[0].(map[string]any)
	assert.Equal(t, "alovelace", row["username"])
	// Rows are trimmed to the summary fields.
	assert.NotContains(t, row, "jobtitle")
}

func TestManageUsersRestore(t *testing.T) {
	t.Parallel()

	transport := NewMockRoundTripper().
		OnRequest("POST", "/users/12/restore", mockResponse(t, http.StatusOK, map[string]any{"status": "success"}))
	tool := ManageUsers(translations.NullTranslationHelper)

	env := invokeTool(t, stubDeps(t, transport), tool.Handler, map[string]any{
		"action":  "restore",
		"user_id": float64(12),
	})
	require.Equal(t, true, env["success"])
	assert.Equal(t, "User restored successfully", env["message"])
}

func TestManageUsersMe(t *testing.T) {
	t.Parallel()

	transport := NewMockRoundTripper().
		OnRequest("GET", "/users/me", mockResponse(t, http.StatusOK, map[string]any{
			"id": 1, "username": "admin",
		}))
	tool := ManageUsers(translations.NullTranslationHelper)

	env := invokeTool(t, stubDeps(t, transport), tool.Handler, map[string]any{"action": "me"})
	require.Equal(t, true, env["success"])
	user := env["user"].(map[string]any)
	assert.Equal(t, "admin", user["username"])
}

func TestUserAssetsAllKinds(t *testing.T) {
	t.Parallel()

	transport := NewMockRoundTripper().
		OnRequest("GET", "/users/12/assets", mockResponse(t, http.StatusOK, map[string]any{
			"rows": []map[string]any{{"id": 1, "asset_tag": "A-001"}},
		})).
		OnRequest("GET", "/users/12/accessories", mockResponse(t, http.StatusOK, map[string]any{
			"rows": []map[string]any{{"id": 2, "name": "Mouse"}},
		})).
		OnRequest("GET", "/users/12/licenses", mockResponse(t, http.StatusOK, map[string]any{
			"rows": []map[string]any{},
		})).
		OnRequest("GET", "/users/12/consumables", mockResponse(t, http.StatusOK, map[string]any{
			"rows": []map[string]any{},
		}))
	tool := UserAssets(translations.NullTranslationHelper)

	env := invokeTool(t, stubDeps(t, transport), tool.Handler, map[string]any{
		"user_id": float64(12),
	})
	require.Equal(t, true, env["success"])
	assert.Len(t, env["assets"], 1)
	assert.Len(t, env["accessories"], 1)
	assert.Empty(t, env["licenses"])
	assert.Empty(t, env["consumables"])
}

func TestUserAssetsSingleKind(t *testing.T) {
	t.Parallel()

	transport := NewMockRoundTripper().
		OnRequest("GET", "/users/12/eulas", mockResponse(t, http.StatusOK, map[string]any{
			"rows": []map[string]any{{"id": 9, "name": "Laptop EULA"}},
		}))
	tool := UserAssets(translations.NullTranslationHelper)

	env := invokeTool(t, stubDeps(t, transport), tool.Handler, map[string]any{
		"user_id":    float64(12),
		"asset_type": "eulas",
	})
	require.Equal(t, true, env["success"])
	assert.Len(t, env["eulas"], 1)
	assert.NotContains(t, env, "assets")
}

func TestUserTwoFactorReset(t *testing.T) {
	t.Parallel()

	transport := NewMockRoundTripper().
		OnRequest("POST", "/users/12/two_factor_reset", mockResponse(t, http.StatusOK, map[string]any{
			"status": "success",
		}))
	tool := UserTwoFactor(translations.NullTranslationHelper)

	env := invokeTool(t, stubDeps(t, transport), tool.Handler, map[string]any{
		"action":  "reset",
		"user_id": float64(12),
	})
	require.Equal(t, true, env["success"])
	assert.Equal(t, "Two-factor authentication reset successfully. User will need to re-enroll.", env["message"])
}

func TestUserTwoFactorUnknownAction(t *testing.T) {
	t.Parallel()

	tool := UserTwoFactor(translations.NullTranslationHelper)
	env := invokeTool(t, stubDeps(t, NewMockRoundTripper()), tool.Handler, map[string]any{
		"action":  "disable",
		"user_id": float64(12),
	})
	assert.Equal(t, false, env["success"])
	assert.Equal(t, "unknown action: disable", env["error"])
}
