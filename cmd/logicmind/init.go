package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/logicmind/logicmind/cmd/logicmind/internal"
	"github.com/logicmind/logicmind/internal/config"
)

var (
	initNonInteractive bool
	initForce          bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the LogicMind configuration",
	Long: `Create ~/.logicmind/config.yaml (or the file named by --config).

Interactively asks for the language model provider, model and API key and
for the Neo4j connection. Connection flags such as --provider and
--graph-uri are used as the proposed answers; with --non-interactive they
are written as is.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initNonInteractive, "non-interactive", false, "Run without prompts (for CI/CD)")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite existing configuration")
}

func runInit(cmd *cobra.Command, args []string) error {
	path := configPath()
	out := internal.NewFormatter(globalFlags.GetOutputFormat(), cmd.OutOrStdout())

	if _, err := os.Stat(path); err == nil && !initForce {
		return internal.NewCLIError(internal.ExitConfigError,
			fmt.Sprintf("config file already exists: %s (use --force to overwrite)", path))
	}

	cfg := config.DefaultConfig()
	globalFlags.ApplyOverrides(cfg)

	if !initNonInteractive {
		p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
		if err := promptConfig(p, cfg); err != nil {
			return internal.WrapError(internal.ExitConfigError, "failed to read answers", err)
		}
	}

	if err := config.NewValidator().Validate(cfg); err != nil {
		return internal.WrapError(internal.ExitConfigError, "invalid configuration", err)
	}
	if err := config.Save(cfg, path); err != nil {
		return internal.WrapError(internal.ExitError, "failed to save config", err)
	}

	out.PrintSuccess("Configuration written to " + path)
	if globalFlags.GetOutputFormat() == internal.FormatText {
		out.PrintInfo("Run 'logicmind test' to check the connections.")
	}
	return nil
}

func promptConfig(p *prompter, cfg *config.Config) error {
	steps := []struct {
		label  string
		dst    *string
		secret bool
	}{
		{"Language model provider (openai, google)", &cfg.LLM.Provider, false},
		{"Model", &cfg.LLM.Model, false},
		{"API key", &cfg.LLM.APIKey, true},
		{"Neo4j URI", &cfg.Graph.URI, false},
		{"Neo4j username", &cfg.Graph.Username, false},
		{"Neo4j password", &cfg.Graph.Password, true},
	}

	for _, s := range steps {
		var (
			answer string
			err    error
		)
		if s.secret {
			answer, err = p.secret(s.label, *s.dst != "")
		} else {
			answer, err = p.ask(s.label, *s.dst)
		}
		if err != nil {
			return err
		}
		if answer != "" {
			*s.dst = answer
		}
	}
	return nil
}

// prompter reads answers line by line. Secrets are read without echo when
// the input is a terminal.
type prompter struct {
	in     io.Reader
	reader *bufio.Reader
	out    io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: in, reader: bufio.NewReader(in), out: out}
}

func (p *prompter) ask(label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(p.out, "%s: ", label)
	}
	return p.line()
}

func (p *prompter) secret(label string, isSet bool) (string, error) {
	if isSet {
		fmt.Fprintf(p.out, "%s [keep current]: ", label)
	} else {
		fmt.Fprintf(p.out, "%s: ", label)
	}

	if f, ok := p.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(p.out)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}
	return p.line()
}

func (p *prompter) line() (string, error) {
	s, err := p.reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(s), nil
}
