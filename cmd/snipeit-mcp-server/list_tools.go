package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/snipeit-community/snipeit-mcp-server/pkg/snipeit"
	"github.com/snipeit-community/snipeit-mcp-server/pkg/toolsets"
	"github.com/snipeit-community/snipeit-mcp-server/pkg/translations"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ToolInfo describes one tool in the list-tools output.
type ToolInfo struct {
	Name     string `json:"name"`
	Toolset  string `json:"toolset"`
	ReadOnly bool   `json:"read_only"`
}

var listToolsCmd = &cobra.Command{
	Use:   "list-tools",
	Short: "List tools enabled by the current flags",
	Long: `List the tools the server would expose with the current flags.

The same --toolsets, --tools and --read-only flags as the stdio command apply,
so this shows exactly what an MCP host would see.

Examples:
  # List tools for default toolsets
  snipeit-mcp-server list-tools

  # List read-only tools for specific toolsets
  snipeit-mcp-server list-tools --toolsets=assets,licensing --read-only

  # JSON output
  snipeit-mcp-server list-tools --toolsets=all --output=json`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		output, err := cmd.Flags().GetString("output")
		if err != nil {
			return err
		}
		return listTools(output)
	},
}

func init() {
	listToolsCmd.Flags().String("output", "text", "Output format: text or json")
	rootCmd.AddCommand(listToolsCmd)
}

func listTools(output string) error {
	var enabledToolsets []string
	if err := viper.UnmarshalKey("toolsets", &enabledToolsets); err != nil {
		return fmt.Errorf("failed to unmarshal toolsets: %w", err)
	}
	var enabledTools []string
	if err := viper.UnmarshalKey("tools", &enabledTools); err != nil {
		return fmt.Errorf("failed to unmarshal tools: %w", err)
	}

	registry := snipeit.NewToolsets(translations.NullTranslationHelper).
		WithReadOnly(viper.GetBool("read-only")).
		WithToolsets(enabledToolsets).
		WithTools(enabledTools).
		Build()

	available := registry.AvailableTools()
	infos := make([]ToolInfo, 0, len(available))
	for i := range available {
		infos = append(infos, ToolInfo{
			Name:     available[i].Tool.Name,
			Toolset:  string(available[i].Toolset.ID),
			ReadOnly: available[i].IsReadOnly(),
		})
	}

	switch output {
	case "json":
		data, err := json.MarshalIndent(infos, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal tool list: %w", err)
		}
		fmt.Println(string(data))
	case "text":
		printToolsText(registry, infos)
	default:
		return fmt.Errorf("unknown output format: %s", output)
	}
	return nil
}

func printToolsText(registry *toolsets.Toolsets, infos []ToolInfo) {
	byToolset := make(map[string][]ToolInfo)
	for _, info := range infos {
		byToolset[info.Toolset] = append(byToolset[info.Toolset], info)
	}
	ids := make([]string, 0, len(byToolset))
	for id := range byToolset {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	descriptions := registry.ToolsetDescriptions()
	for _, id := range ids {
		fmt.Printf("%s", formatToolsetName(id))
		if desc := descriptions[toolsets.ToolsetID(id)]; desc != "" {
			fmt.Printf(" - %s", desc)
		}
		fmt.Println()
		for _, info := range byToolset[id] {
			marker := "read/write"
			if info.ReadOnly {
				marker = "read-only"
			}
			fmt.Printf("  %-28s %s\n", info.Name, marker)
		}
		fmt.Println()
	}
	fmt.Printf("%d tools enabled\n", len(infos))
}
