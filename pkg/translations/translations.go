package translations

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// TranslationHelperFunc returns the override for a description key, or the
// default when no override is configured.
type TranslationHelperFunc func(key string, defaultValue string) string

func NullTranslationHelper(_ string, defaultValue string) string {
	return defaultValue
}

// TranslationHelper loads description overrides from environment variables
// (prefix SNIPEIT_MCP_) and from snipeit-mcp-server-config.json in the working
// directory. The returned dump function writes the collected key/value map
// back out, which is how the override file is seeded in the first place.
func TranslationHelper() (TranslationHelperFunc, func()) {
	translationKeyMap := map[string]string{}
	v := viper.New()

	v.SetEnvPrefix("SNIPEIT_MCP_")
	v.AutomaticEnv()

	v.SetConfigName("snipeit-mcp-server-config")
	v.SetConfigType("json")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("Could not read translation config file: %v", err)
		}
	}

	return func(key string, defaultValue string) string {
			key = strings.ToUpper(key)
			if value, ok := translationKeyMap[key]; ok {
				return value
			}

			value := v.GetString(key)
			if value == "" {
				v.Set(key, defaultValue)
				value = defaultValue
			}

			translationKeyMap[key] = value
			return value
		}, func() {
			DumpTranslationKeyMap(translationKeyMap)
		}
}

// DumpTranslationKeyMap writes the key map to snipeit-mcp-server-config.json
// so users can edit the descriptions.
func DumpTranslationKeyMap(translationKeyMap map[string]string) {
	file, err := os.Create("snipeit-mcp-server-config.json")
	if err != nil {
		log.Fatalf("Error creating translation config file: %v", err)
	}
	defer func() { _ = file.Close() }()

	data, err := json.MarshalIndent(translationKeyMap, "", "  ")
	if err != nil {
		log.Fatalf("Error marshaling translation config: %v", err)
	}

	if _, err := file.Write(data); err != nil {
		log.Fatalf("Error writing translation config file: %v", err)
	}
	fmt.Println("Translation config dumped to snipeit-mcp-server-config.json")
}
