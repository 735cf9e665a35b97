package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/logicmind/logicmind/cmd/logicmind/internal"
	"github.com/logicmind/logicmind/internal/config"
)

// GlobalFlags holds global flags available to all commands
type GlobalFlags struct {
	Verbose      bool
	Quiet        bool
	OutputFormat string
	ConfigFile   string
	HomeDir      string

	// Connection overrides applied on top of the loaded configuration.
	Provider      string
	Model         string
	APIKey        string
	GraphURI      string
	GraphUser     string
	GraphPassword string
	GraphDatabase string
}

var globalFlags = &GlobalFlags{}

// RegisterGlobalFlags registers persistent flags on the root command
func RegisterGlobalFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.BoolVarP(&globalFlags.Verbose, "verbose", "v", false, "Enable verbose output")
	pf.BoolVarP(&globalFlags.Quiet, "quiet", "q", false, "Suppress non-essential output")
	pf.StringVarP(&globalFlags.OutputFormat, "output", "o", "text", "Output format (text|json)")
	pf.StringVar(&globalFlags.ConfigFile, "config", "", "Path to config file (default: $LOGICMIND_HOME/config.yaml)")
	pf.StringVar(&globalFlags.HomeDir, "home", "", "LogicMind home directory (default: ~/.logicmind)")

	pf.StringVar(&globalFlags.Provider, "provider", "", "Language model provider (openai|google)")
	pf.StringVar(&globalFlags.Model, "model", "", "Language model id")
	pf.StringVar(&globalFlags.APIKey, "api-key", "", "Language model API key")
	pf.StringVar(&globalFlags.GraphURI, "graph-uri", "", "Neo4j URI, e.g. bolt://localhost:7687")
	pf.StringVar(&globalFlags.GraphUser, "graph-user", "", "Neo4j username")
	pf.StringVar(&globalFlags.GraphPassword, "graph-password", "", "Neo4j password")
	pf.StringVar(&globalFlags.GraphDatabase, "graph-database", "", "Neo4j database name")
}

// ParseGlobalFlags validates the global flags.
func ParseGlobalFlags(cmd *cobra.Command) (*GlobalFlags, error) {
	format := globalFlags.OutputFormat
	if format != string(internal.FormatText) && format != string(internal.FormatJSON) {
		return nil, internal.NewCLIError(internal.ExitConfigError,
			fmt.Sprintf("invalid output format %q (use text or json)", format))
	}

	if globalFlags.Verbose && globalFlags.Quiet {
		return nil, internal.NewCLIError(internal.ExitConfigError, "--verbose and --quiet cannot be used together")
	}

	return globalFlags, nil
}

// GetOutputFormat returns the parsed OutputFormat enum
func (f *GlobalFlags) GetOutputFormat() internal.OutputFormat {
	if f.OutputFormat == string(internal.FormatJSON) {
		return internal.FormatJSON
	}
	return internal.FormatText
}

// IsVerbose returns true if verbose mode is enabled
func (f *GlobalFlags) IsVerbose() bool {
	return f.Verbose && !f.Quiet
}

// IsQuiet returns true if quiet mode is enabled
func (f *GlobalFlags) IsQuiet() bool {
	return f.Quiet
}

// ApplyOverrides copies every connection flag that was set onto cfg.
func (f *GlobalFlags) ApplyOverrides(cfg *config.Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.LLM.Provider, f.Provider)
	set(&cfg.LLM.Model, f.Model)
	set(&cfg.LLM.APIKey, f.APIKey)
	set(&cfg.Graph.URI, f.GraphURI)
	set(&cfg.Graph.Username, f.GraphUser)
	set(&cfg.Graph.Password, f.GraphPassword)
	set(&cfg.Graph.Database, f.GraphDatabase)

	if f.IsVerbose() {
		cfg.Logging.Level = "debug"
	} else if f.IsQuiet() {
		cfg.Logging.Level = "error"
	}
}
