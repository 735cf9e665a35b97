package main

import (
	"github.com/spf13/cobra"

	"github.com/logicmind/logicmind/cmd/logicmind/internal"
)

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test the graph database and language model connections",
	Long: `Probe Neo4j and the configured language model concurrently and report
whether each answered. Exits non-zero when either probe fails.`,
	Args: cobra.NoArgs,
	RunE: runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	rt, err := buildRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	status := rt.testConnections(cmd.Context())

	if globalFlags.GetOutputFormat() == internal.FormatJSON {
		if err := rt.out.PrintJSON(status); err != nil {
			return err
		}
	} else {
		report := func(name string, ok bool) {
			if ok {
				rt.out.PrintSuccess(name + ": connected")
			} else {
				rt.out.PrintError(name + ": unreachable")
			}
		}
		report("Graph database ("+rt.cfg.Graph.URI+")", status.Graph)
		report("Language model ("+rt.cfg.LLM.Provider+")", status.Model)
	}

	if !status.Graph || !status.Model {
		return internal.NewCLIError(internal.ExitBackendError, "connection test failed")
	}
	return nil
}
