package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// Command is a cobra command with a Runner attached
type Command struct {
	*cobra.Command
	runner Runner
}

// Runner executes a command. Errors are rendered by the Command
type Runner interface {
	RunE(cmd *cobra.Command, args []string) error
}

// exit is replaced in tests
var exit = os.Exit

// New wraps cmd so that errors returned by run are rendered as an error box.
// The process exits with 1 after an error
func New(cmd *cobra.Command, run Runner) *Command {
	build := &Command{
		cmd,
		run,
	}
	build.Command.Run = func(cmd *cobra.Command, args []string) {
		err := run.RunE(cmd, args)
		if err != nil {
			Report(cmd.OutOrStdout(), err)
			exit(1)
		}
	}

	return build
}

// Report writes err to w. CliErrors are rendered with their suggestions
func Report(w io.Writer, err error) {
	var asCliErr *CliError
	if errors.As(err, &asCliErr) {
		fmt.Fprintln(w, asCliErr.RichError()+"\n")
		return
	}
	fmt.Fprintln(w, ErrorBox(err.Error(), ""))
}
