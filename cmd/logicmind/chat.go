package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/logicmind/logicmind/cmd/logicmind/internal"
	"github.com/logicmind/logicmind/internal/pipeline"
	"github.com/logicmind/logicmind/internal/tui"
)

var chatPlain bool

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat",
	Long: `Start a chat session over the employee graph.

The session keeps its history until you quit or clear it.

Commands:
  /clear  - clear the chat history
  /test   - test the graph and language model connections
  /help   - show help
  /quit   - exit (also /exit, Ctrl+C)

In a terminal the chat runs full screen; Ctrl+Y copies the last executed
query. When input is piped, or with --plain, questions are read line by
line and answers printed as they arrive.`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().BoolVar(&chatPlain, "plain", false, "Use line-by-line mode instead of the full screen chat")
}

func runChat(cmd *cobra.Command, args []string) error {
	rt, err := buildRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	session := rt.newSession()
	interactive := internal.IsTerminal(cmd.InOrStdin()) && internal.IsTerminal(cmd.OutOrStdout())

	if interactive && !chatPlain && globalFlags.GetOutputFormat() == internal.FormatText {
		return tui.Run(cmd.Context(), tui.Config{
			Asker:           rt.pipeline,
			Session:         session,
			TestConnection:  rt.testConnections,
			ShowQuery:       rt.cfg.Chat.ShowQuery,
			ShowSuggestions: rt.cfg.Chat.ShowSuggestions,
		})
	}

	return runLineChat(cmd.Context(), rt, session, cmd.InOrStdin(), cmd.OutOrStdout(), interactive)
}

// runLineChat answers one question per input line until EOF or /quit.
func runLineChat(ctx context.Context, rt *runtime, session *pipeline.Session, in io.Reader, out io.Writer, prompt bool) error {
	scanner := bufio.NewScanner(in)
	jsonOut := globalFlags.GetOutputFormat() == internal.FormatJSON
	formatter := internal.NewFormatter(globalFlags.GetOutputFormat(), out)

	for {
		if prompt {
			fmt.Fprint(out, "ask> ")
		}
		if !scanner.Scan() {
			break
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		case "/clear":
			session.ClearHistory()
			if !jsonOut {
				fmt.Fprintln(out, "Chat history cleared")
			}
			continue
		case "/test":
			status := rt.testConnections(ctx)
			if jsonOut {
				if err := formatter.PrintJSON(status); err != nil {
					return err
				}
			} else {
				fmt.Fprintf(out, "Graph database: %s | Language model: %s\n",
					connectionWord(status.Graph), connectionWord(status.Model))
			}
			continue
		case "/help":
			if !jsonOut {
				fmt.Fprintln(out, "Type a question, or /clear /test /help /quit")
			}
			continue
		}

		turn := rt.pipeline.Ask(ctx, session, line)
		if jsonOut {
			if err := formatter.PrintJSON(turn); err != nil {
				return err
			}
			continue
		}
		printTurn(out, turn, rt.cfg.Chat.ShowQuery, rt.cfg.Chat.ShowSuggestions)
		fmt.Fprintln(out)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}

func connectionWord(ok bool) string {
	if ok {
		return "connected"
	}
	return "unreachable"
}
