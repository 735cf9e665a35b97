package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/logicmind/logicmind/cmd/logicmind/internal"
	"github.com/logicmind/logicmind/internal/pipeline"
)

var askShowQuery bool

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Answer a single question",
	Long: `Translate a question into Cypher, run it and print the narrated answer.

Each invocation opens a fresh session, so no history is carried between calls.

Examples:
  logicmind ask "Who reports to Jane Doe?"
  logicmind ask --show-query "Which skills does the data team have?"
  logicmind ask -o json "How many employees are there?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askShowQuery, "show-query", false, "Print the full turn including the executed Cypher query")
}

func runAsk(cmd *cobra.Command, args []string) error {
	rt, err := buildRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	question := strings.Join(args, " ")
	turn := rt.pipeline.Ask(cmd.Context(), rt.newSession(), question)

	if globalFlags.GetOutputFormat() == internal.FormatJSON {
		if err := rt.out.PrintJSON(turn); err != nil {
			return err
		}
	} else {
		printTurn(cmd.OutOrStdout(), turn, askShowQuery, rt.cfg.Chat.ShowSuggestions && !globalFlags.IsQuiet())
	}

	return requireKind(turn.Kind, turn.Error)
}

// printTurn writes an assistant turn as plain text. Without showQuery,
// answered turns print only the answer.
func printTurn(w io.Writer, turn pipeline.Turn, showQuery, showSuggestions bool) {
	body := turn.Content
	if !showQuery && turn.Answer != "" {
		body = turn.Answer
	}
	fmt.Fprintln(w, body)

	if showSuggestions && len(turn.Suggestions) > 0 {
		fmt.Fprintln(w, "\nYou might also ask:")
		for _, s := range turn.Suggestions {
			fmt.Fprintf(w, "  - %s\n", s)
		}
	}
}
