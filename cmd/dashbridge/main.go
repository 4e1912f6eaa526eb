package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dashbridge/internal/cli"
	"github.com/matzehuels/dashbridge/pkg/errors"
)

// Exit codes. Reference violations get their own code so that scripts can
// tell a broken dashboard from a broken invocation.
const (
	exitOK          = 0
	exitError       = 1
	exitInvalid     = 2
	exitInterrupted = 130 // Standard shell convention for SIGINT
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := exitCode(run(ctx))
	cancel()
	os.Exit(code)
}

func run(ctx context.Context) error {
	var verbose bool

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	// The level is only known after flag parsing.
	configure := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		if configure != nil {
			return configure(cmd, args)
		}
		return nil
	}

	return root.ExecuteContext(ctx)
}

// exitCode reports err on stderr and maps it to a process exit code.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	if stderrors.Is(err, context.Canceled) {
		return exitInterrupted
	}
	fmt.Fprintln(os.Stderr, errorLine(err))

	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidDataSourceReference,
		errors.ErrCodeInvalidDataSourceChain,
		errors.ErrCodeInvalidLayoutReference,
		errors.ErrCodeDataSourceCycle:
		return exitInvalid
	}
	return exitError
}

// errorLine renders err for the terminal, with its code when it has one.
func errorLine(err error) string {
	msg := errors.UserMessage(err)
	if code := errors.GetCode(err); code != "" {
		return fmt.Sprintf("Error [%s]: %s", code, msg)
	}
	return "Error: " + msg
}
