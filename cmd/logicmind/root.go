package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/logicmind/logicmind/cmd/logicmind/internal"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "logicmind",
	Short: "LogicMind - ask your employee graph in plain English",
	Long: `LogicMind answers natural-language questions about an employee
knowledge graph. Questions are translated to Cypher by a language model,
run against Neo4j, and the rows are narrated back.

When run without a subcommand in an interactive terminal, LogicMind
starts the chat.`,
	PersistentPreRunE: validateGlobalFlags,
	SilenceUsage:      true,
	SilenceErrors:     true,
	RunE:              runRootCmd,
}

// Execute runs the root command with signal handling
func Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return rootCmd.ExecuteContext(ctx)
}

func validateGlobalFlags(cmd *cobra.Command, args []string) error {
	_, err := ParseGlobalFlags(cmd)
	return err
}

func init() {
	RegisterGlobalFlags(rootCmd)

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(versionCmd)
}

// runRootCmd starts the chat in an interactive terminal and prints help
// otherwise.
func runRootCmd(cmd *cobra.Command, args []string) error {
	if internal.IsTerminal(cmd.InOrStdin()) && internal.IsTerminal(cmd.OutOrStdout()) {
		return runChat(cmd, args)
	}
	return cmd.Help()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println("LogicMind " + Version)
	},
}
