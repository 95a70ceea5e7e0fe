package toolsnaps

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleTool struct {
	Name  string `json:"name"`
	Seats int    `json:"seats"`
}

// inTempWorkingDir runs the test from a throwaway directory so snapshot files
// never land in the repo, restoring the original working dir on cleanup.
func inTempWorkingDir(t *testing.T) {
	t.Helper()
	orig, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, os.Chdir(orig)) })
	require.NoError(t, os.Chdir(t.TempDir()))
}

func snapshotPath(name string) string {
	return filepath.Join("__toolsnaps__", name+".snap")
}

func TestMissingSnapshotWrittenLocally(t *testing.T) {
	inTempWorkingDir(t)

	// Force the local path even when this suite itself runs in CI.
	t.Setenv("GITHUB_ACTIONS", "false")

	require.NoError(t, Test("manage_licenses", sampleTool{Name: "manage_licenses", Seats: 5}))

	_, err := os.Stat(snapshotPath("manage_licenses"))
	assert.NoError(t, err, "first run should write the snapshot")
}

func TestMissingSnapshotFailsInCI(t *testing.T) {
	inTempWorkingDir(t)

	// The update flag may be set in the developer's shell; neutralize it.
	t.Setenv("UPDATE_TOOLSNAPS", "false")
	t.Setenv("GITHUB_ACTIONS", "true")

	err := Test("manage_licenses", sampleTool{Name: "manage_licenses", Seats: 5})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "tool snapshot does not exist", "CI must not invent snapshots")
}

func TestMatchingSnapshotPasses(t *testing.T) {
	inTempWorkingDir(t)

	tool := sampleTool{Name: "manage_licenses", Seats: 5}
	b, err := json.MarshalIndent(tool, "", "  ")
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll("__toolsnaps__", 0700))
	require.NoError(t, os.WriteFile(snapshotPath("manage_licenses"), b, 0600))

	require.NoError(t, Test("manage_licenses", tool))
}

func TestChangedSchemaFailsWithDiff(t *testing.T) {
	inTempWorkingDir(t)

	t.Setenv("UPDATE_TOOLSNAPS", "false")
	require.NoError(t, os.MkdirAll("__toolsnaps__", 0700))
	require.NoError(t, os.WriteFile(snapshotPath("manage_licenses"), []byte(`{"name":"manage_licenses","seats":5}`), 0600))

	err := Test("manage_licenses", sampleTool{Name: "manage_licenses", Seats: 10})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "tool schema for manage_licenses has changed unexpectedly")
}

func TestUpdateFlagRewritesSnapshot(t *testing.T) {
	inTempWorkingDir(t)

	t.Setenv("UPDATE_TOOLSNAPS", "true")
	require.NoError(t, os.MkdirAll("__toolsnaps__", 0700))
	require.NoError(t, os.WriteFile(snapshotPath("manage_licenses"), []byte(`{"name":"manage_licenses","seats":5}`), 0600))

	require.NoError(t, Test("manage_licenses", sampleTool{Name: "manage_licenses", Seats: 10}))

	data, err := os.ReadFile(snapshotPath("manage_licenses"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"seats": 10`, "update flag should overwrite the stale snapshot")
}

func TestMalformedSnapshotReported(t *testing.T) {
	inTempWorkingDir(t)

	t.Setenv("UPDATE_TOOLSNAPS", "false")
	require.NoError(t, os.MkdirAll("__toolsnaps__", 0700))
	require.NoError(t, os.WriteFile(snapshotPath("manage_licenses"), []byte(`not-json`), 0600))

	err := Test("manage_licenses", sampleTool{Name: "manage_licenses", Seats: 5})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse snapshot JSON for manage_licenses")
}

func TestSortJSONKeys(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "flat object",
			input:    `{"serial": "XJ-42", "asset_tag": "A-001", "notes": ""}`,
			expected: "{\n  \"asset_tag\": \"A-001\",\n  \"notes\": \"\",\n  \"serial\": \"XJ-42\"\n}",
		},
		{
			name:     "nested object",
			input:    `{"status": {"name": "Ready to Deploy", "id": 2}, "id": 7}`,
			expected: "{\n  \"id\": 7,\n  \"status\": {\n    \"id\": 2,\n    \"name\": \"Ready to Deploy\"\n  }\n}",
		},
		{
			name:     "objects inside arrays",
			input:    `{"rows": [{"serial": "XJ-42", "asset_tag": "A-001"}]}`,
			expected: "{\n  \"rows\": [\n    {\n      \"asset_tag\": \"A-001\",\n      \"serial\": \"XJ-42\"\n    }\n  ]\n}",
		},
		{
			name:     "schema properties",
			input:    `{"name": "manage_assets", "properties": {"serial": {"type": "string"}, "asset_tag": {"type": "string"}, "limit": {"type": "number"}}}`,
			expected: "{\n  \"name\": \"manage_assets\",\n  \"properties\": {\n    \"asset_tag\": {\n      \"type\": \"string\"\n    },\n    \"limit\": {\n      \"type\": \"number\"\n    },\n    \"serial\": {\n      \"type\": \"string\"\n    }\n  }\n}",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sorted, err := sortJSONKeys([]byte(tc.input))
			require.NoError(t, err)
			assert.Equal(t, tc.expected, string(sorted))
		})
	}
}

func TestSortJSONKeysIdempotent(t *testing.T) {
	input := `{"asset_tag": "A-001", "custom_fields": {"ram": "32GB", "cpu": "M3"}, "rows": [{"id": 1, "name": "x"}]}`

	once, err := sortJSONKeys([]byte(input))
	require.NoError(t, err)
	twice, err := sortJSONKeys(once)
	require.NoError(t, err)

	assert.Equal(t, string(once), string(twice))
}

func TestSnapshotIgnoresStructFieldOrder(t *testing.T) {
	inTempWorkingDir(t)

	// Field declaration order must not leak into the snapshot, or reordering
	// a struct would churn every .snap file.
	type outOfOrderTool struct {
		Serial   string `json:"serial"`
		AssetTag string `json:"asset_tag"`
		Notes    string `json:"notes"`
	}
	tool := outOfOrderTool{Serial: "XJ-42", AssetTag: "A-001", Notes: "loaner"}

	t.Setenv("UPDATE_TOOLSNAPS", "true")
	require.NoError(t, Test("asset_fixture", tool))

	snap, err := os.ReadFile(snapshotPath("asset_fixture"))
	require.NoError(t, err)
	text := string(snap)

	tagAt := strings.Index(text, `"asset_tag"`)
	notesAt := strings.Index(text, `"notes"`)
	serialAt := strings.Index(text, `"serial"`)
	require.NotEqual(t, -1, tagAt)
	require.NotEqual(t, -1, notesAt)
	require.NotEqual(t, -1, serialAt)
	assert.Less(t, tagAt, notesAt)
	assert.Less(t, notesAt, serialAt)

	// A second run over the same tool must leave the file byte-identical.
	require.NoError(t, Test("asset_fixture", tool))
	again, err := os.ReadFile(snapshotPath("asset_fixture"))
	require.NoError(t, err)
	assert.Equal(t, text, string(again))
}
