package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docsift/internal/core/services"
	"github.com/custodia-labs/docsift/internal/logger"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Read and change settings",
	Long: `Settings are stored in config.toml in the config directory.

Keys:
  storage.backend          sqlite, json or memory
  storage.data_dir         library data directory
  upload.max_file_size     upload limit in bytes
  search.context_radius    characters shown either side of a match
  search.page_window       characters per estimated PDF page
  search.delay_ms          pause before interactive searches
  search.literal_highlight treat the query literally when highlighting
  library.sort             default sort: name, date or size
  library.locale           collation locale for name sorting
  watch.debounce_ms        minimum gap between files ingested by watch`,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print a setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print every setting",
	Args:  cobra.NoArgs,
	RunE:  runConfigList,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if configStore == nil {
			return errors.New("config store not configured")
		}
		cmd.Println(configStore.Path())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}
	key := args[0]
	if !isSettingKey(key) {
		return fmt.Errorf("unknown setting %q", key)
	}
	if v, ok := configStore.Get(key); ok {
		cmd.Println(v)
		return nil
	}
	cmd.Println(defaultValue(key))
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if configStore == nil || settingsService == nil {
		return errors.New("settings service not configured")
	}
	key, raw := args[0], args[1]
	if !isSettingKey(key) {
		return fmt.Errorf("unknown setting %q", key)
	}

	previous, hadPrevious := configStore.Get(key)
	if err := configStore.Set(key, parseValue(raw)); err != nil {
		return fmt.Errorf("failed to save setting: %w", err)
	}
	if err := settingsService.Validate(); err != nil {
		// The store has no delete, so an unset key goes back to its default.
		if !hadPrevious {
			previous = defaultValue(key)
		}
		if rerr := configStore.Set(key, previous); rerr != nil {
			logger.Warn("restoring %s: %v", key, rerr)
		}
		return err
	}

	cmd.Printf("%s = %s\n", key, raw)
	return nil
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}
	for _, key := range services.SettingKeys() {
		if v, ok := configStore.Get(key); ok {
			cmd.Printf("%s = %v\n", key, v)
		} else {
			cmd.Printf("%s = %v (default)\n", key, defaultValue(key))
		}
	}
	return nil
}

func isSettingKey(key string) bool {
	for _, k := range services.SettingKeys() {
		if k == key {
			return true
		}
	}
	return false
}

// parseValue stores booleans and integers with their TOML types.
// Only "true" and "false" are booleans, so "1" stays an integer.
func parseValue(raw string) any {
	switch strings.ToLower(raw) {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}
	return raw
}

// defaultValue returns the value used when key is not set.
func defaultValue(key string) any {
	return services.DefaultSettingValue(key)
}
