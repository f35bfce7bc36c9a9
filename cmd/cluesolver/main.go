// Command cluesolver tracks a game of Clue and reports what recorded clues force.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/cluesolver/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()

	// Commands report their own ExitErrors; anything else comes from cobra.
	var exitErr *cli.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(cli.GetExitCode(err))
}
