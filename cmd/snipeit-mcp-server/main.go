package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/snipeit-community/snipeit-mcp-server/internal/snipemcp"
	"github.com/snipeit-community/snipeit-mcp-server/pkg/translations"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// These variables are set by the build process using ldflags.
var version = "version"
var commit = "commit"
var date = "date"

var (
	rootCmd = &cobra.Command{
		Use:     "snipeit-mcp-server",
		Short:   "Snipe-IT MCP Server",
		Long:    `A Snipe-IT MCP server that exposes inventory management tools to MCP hosts.`,
		Version: fmt.Sprintf("Version: %s\nCommit: %s\nBuild Date: %s", version, commit, date),
	}

	stdioCmd = &cobra.Command{
		Use:   "stdio",
		Short: "Start stdio server",
		Long:  `Start a server that communicates via standard input/output streams using JSON-RPC messages.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			url := viper.GetString("url")
			if url == "" {
				return errors.New("SNIPEIT_URL not set")
			}
			token := viper.GetString("api_token")
			if token == "" {
				return errors.New("SNIPEIT_API_TOKEN not set")
			}

			// A nil slice means default toolsets; an explicit empty flag
			// disables them all, so the distinction matters.
			var enabledToolsets []string
			if err := viper.UnmarshalKey("toolsets", &enabledToolsets); err != nil {
				return fmt.Errorf("failed to unmarshal toolsets: %w", err)
			}
			var enabledTools []string
			if err := viper.UnmarshalKey("tools", &enabledTools); err != nil {
				return fmt.Errorf("failed to unmarshal tools: %w", err)
			}

			t, dumpTranslations := translations.TranslationHelper()
			defer dumpTranslations()

			return snipemcp.RunStdioServer(snipemcp.StdioServerConfig{
				MCPServerConfig: snipemcp.MCPServerConfig{
					Version:         version,
					URL:             url,
					Token:           token,
					EnabledToolsets: enabledToolsets,
					EnabledTools:    enabledTools,
					ReadOnly:        viper.GetBool("read-only"),
					Translator:      t,
				},
				LogFilePath: viper.GetString("log-file"),
			})
		},
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.SetVersionTemplate("{{.Short}}\n{{.Version}}\n")

	bindServerFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(stdioCmd)
}

// bindServerFlags declares the flags shared by every subcommand and binds each
// one to its viper key so SNIPEIT_* environment variables can stand in.
func bindServerFlags(flags *pflag.FlagSet) {
	flags.StringSlice("toolsets", nil, "Comma-separated list of toolsets to enable (use 'all' for everything, 'default' for the default set)")
	flags.StringSlice("tools", nil, "Comma-separated list of individual tools to enable regardless of toolset")
	flags.Bool("read-only", false, "Restrict the server to read-only tools")
	flags.String("log-file", "", "Path to log file (defaults to stderr)")

	_ = viper.BindPFlag("toolsets", flags.Lookup("toolsets"))
	_ = viper.BindPFlag("tools", flags.Lookup("tools"))
	_ = viper.BindPFlag("read-only", flags.Lookup("read-only"))
	_ = viper.BindPFlag("log-file", flags.Lookup("log-file"))
}

func initConfig() {
	viper.SetEnvPrefix("snipeit")
	viper.AutomaticEnv()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
