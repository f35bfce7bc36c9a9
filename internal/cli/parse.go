package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/cluesolver/internal/clue"
)

// ParseResult describes a parsed clue.
type ParseResult struct {
	Clue   string   `json:"clue"`
	Tree   string   `json:"tree"`
	Leaves []string `json:"leaves"`
	ID     string   `json:"id"`
}

// NewParseCommand creates the parse command.
func NewParseCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <clue>",
		Short: "Check the syntax of a clue",
		Long: `Parse a clue and print its tree, leaves and content ID without
touching any board.

Exit codes:
  0 - The clue is well formed
  1 - The clue was rejected

Examples:
  cluesolver parse "w1 | l3 | p5"
  cluesolver parse "w1 |" --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runParse(opts *RootOptions, raw string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	c, err := clue.Parse(raw)
	if err != nil {
		code := ErrCodeGeneric
		var pe *clue.ParseError
		if errors.As(err, &pe) {
			code = string(pe.Code)
		}
		_ = formatter.Error(code, err.Error(), nil)
		return WrapExitError(ExitFailure, "invalid clue", err)
	}

	result := ParseResult{Clue: c.String(), Tree: c.Key(), ID: c.ID()}
	for _, id := range c.Leaves() {
		result.Leaves = append(result.Leaves, id.String())
	}

	return formatter.Report(result, nil, func(w io.Writer) error {
		fmt.Fprintf(w, "clue:   %s\n", result.Clue)
		fmt.Fprintf(w, "tree:   %s\n", result.Tree)
		fmt.Fprintf(w, "leaves: %s\n", strings.Join(result.Leaves, " "))
		fmt.Fprintf(w, "id:     %s\n", result.ID)
		return nil
	})
}
