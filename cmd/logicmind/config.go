package main

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/logicmind/logicmind/cmd/logicmind/internal"
	"github.com/logicmind/logicmind/internal/config"
)

const redactedValue = "********"

var configShowSecrets bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage LogicMind configuration",
	Long: `The config command provides subcommands for viewing, getting, setting,
and validating LogicMind configuration settings.

Configuration is stored in YAML format at ~/.logicmind/config.yaml by default.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display full configuration",
	Long: `Display the effective configuration: file values over defaults, with
environment variables and connection flags applied. Secrets are masked
unless --show-secrets is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if !configShowSecrets {
			cfg = maskSecrets(cfg)
		}

		if globalFlags.GetOutputFormat() == internal.FormatJSON {
			return internal.NewJSONFormatter(cmd.OutOrStdout()).PrintJSON(cfg)
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config to YAML: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a specific configuration value",
	Long: `Get the value of a specific configuration key.

Keys use dot notation to access nested values:
  logicmind config get llm.provider
  logicmind config get graph.uri
  logicmind config get graph.max_connections`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		value, err := getConfigValue(cfg, args[0])
		if err != nil {
			return internal.WrapError(internal.ExitConfigError, "cannot read key", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), value)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set the value of a specific configuration key.

Keys use dot notation to access nested values:
  logicmind config set llm.provider google
  logicmind config set graph.uri neo4j+s://example.databases.neo4j.io
  logicmind config set graph.connection_timeout 10s

The new configuration is validated before saving.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath()

		loader := config.NewConfigLoader(config.NewValidator())
		cfg, err := loader.LoadWithDefaults(path)
		if err != nil {
			return internal.WrapError(internal.ExitConfigError, "failed to load config", err)
		}

		key, value := args[0], args[1]
		if err := setConfigValue(cfg, key, value); err != nil {
			return internal.WrapError(internal.ExitConfigError, "cannot set key", err)
		}

		if err := config.NewValidator().Validate(cfg); err != nil {
			return internal.WrapError(internal.ExitConfigError, "validation failed after setting value", err)
		}

		if err := config.Save(cfg, path); err != nil {
			return internal.WrapError(internal.ExitError, "failed to save config", err)
		}

		internal.NewFormatter(globalFlags.GetOutputFormat(), cmd.OutOrStdout()).
			PrintSuccess(fmt.Sprintf("Set %s", key))
		return nil
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration file",
	Long: `Validate the LogicMind configuration file for correctness.

This checks:
  - YAML syntax is valid
  - Values are within acceptable ranges
  - Provider names and graph URIs are recognized`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath()

		if _, err := os.Stat(path); os.IsNotExist(err) {
			return internal.NewCLIError(internal.ExitConfigError,
				fmt.Sprintf("config file does not exist: %s\nRun 'logicmind init' to create one", path))
		}

		loader := config.NewConfigLoader(config.NewValidator())
		if _, err := loader.Load(path); err != nil {
			return internal.WrapError(internal.ExitConfigError, "configuration validation failed", err)
		}

		internal.NewFormatter(globalFlags.GetOutputFormat(), cmd.OutOrStdout()).
			PrintSuccess("Configuration is valid")
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configValidateCmd)

	configShowCmd.Flags().BoolVar(&configShowSecrets, "show-secrets", false, "Print API keys and passwords in clear text")
}

func maskSecrets(cfg *config.Config) *config.Config {
	masked := *cfg
	if masked.LLM.APIKey != "" {
		masked.LLM.APIKey = redactedValue
	}
	if masked.Graph.Password != "" {
		masked.Graph.Password = redactedValue
	}
	return &masked
}

// configField walks cfg along a dotted key, matching each part against the
// mapstructure tags.
func configField(cfg *config.Config, key string) (reflect.Value, error) {
	parts := strings.Split(key, ".")
	v := reflect.ValueOf(cfg).Elem()

	for i, part := range parts {
		field, ok := fieldByTag(v, part)
		if !ok {
			return reflect.Value{}, fmt.Errorf("invalid configuration key: %s (at position: %s)", key, part)
		}
		if i == len(parts)-1 {
			if field.Kind() == reflect.Struct {
				return reflect.Value{}, fmt.Errorf("%s is a section, not a value", key)
			}
			return field, nil
		}
		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("cannot traverse into non-struct field: %s", part)
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

func fieldByTag(v reflect.Value, name string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		tag, _, _ := strings.Cut(t.Field(i).Tag.Get("mapstructure"), ",")
		if tag == name {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

// getConfigValue retrieves a value from the config using dot notation
func getConfigValue(cfg *config.Config, key string) (string, error) {
	field, err := configField(cfg, key)
	if err != nil {
		return "", err
	}
	return formatValue(field), nil
}

// setConfigValue sets a value in the config using dot notation
func setConfigValue(cfg *config.Config, key, value string) error {
	field, err := configField(cfg, key)
	if err != nil {
		return err
	}
	return setFieldValue(field, value)
}

var durationType = reflect.TypeOf(time.Duration(0))

func formatValue(v reflect.Value) string {
	switch {
	case v.Type() == durationType:
		return time.Duration(v.Int()).String()
	case v.Kind() == reflect.String:
		return v.String()
	case v.Kind() == reflect.Int:
		return strconv.FormatInt(v.Int(), 10)
	case v.Kind() == reflect.Bool:
		return strconv.FormatBool(v.Bool())
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}

func setFieldValue(field reflect.Value, value string) error {
	switch {
	case field.Type() == durationType:
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration value: %s (use a duration such as 30s or 1m)", value)
		}
		field.SetInt(int64(d))
	case field.Kind() == reflect.String:
		field.SetString(value)
	case field.Kind() == reflect.Int:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value: %s", value)
		}
		field.SetInt(int64(n))
	case field.Kind() == reflect.Bool:
		switch strings.ToLower(value) {
		case "true", "yes", "1":
			field.SetBool(true)
		case "false", "no", "0":
			field.SetBool(false)
		default:
			return fmt.Errorf("invalid boolean value: %s", value)
		}
	default:
		return fmt.Errorf("unsupported field type: %s", field.Type())
	}
	return nil
}
