package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dashbridge/pkg/convert"
	"github.com/matzehuels/dashbridge/pkg/errors"
	dashio "github.com/matzehuels/dashbridge/pkg/io"
	"github.com/matzehuels/dashbridge/pkg/pipeline"
)

// validateOpts holds the command-line flags for the validate command.
type validateOpts struct {
	from   string // input format (detected if empty)
	strict bool   // add the data source cycle check
}

// validateCommand creates the validate command. Legacy markup is validated
// in its converted modern form.
func (c *CLI) validateCommand() *cobra.Command {
	var opts validateOpts

	cmd := &cobra.Command{
		Use:   "validate <file>...",
		Short: "Check the references of one or more dashboards",
		Long: `Check that every visualization names an existing data source, every
chained data source extends an existing one, and every layout item names an
existing visualization or input.

Validation stops at the first violation in each file. --strict also rejects
cycles of chained data sources. The default for --strict comes from
[validate] strict in the config file.`,
		Example: `  dashbridge validate ops.json
  dashbridge validate --strict dashboards/*.xml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("strict") {
				opts.strict = c.Config.Validation.Strict
			}
			return c.runValidate(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.from, "from", "", "input format: studio, envelope, simplexml (detected if empty)")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "also reject data source cycles")
	return cmd
}

func (c *CLI) runValidate(ctx context.Context, paths []string, opts validateOpts) error {
	from, err := formatFlag(opts.from)
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(nil, nil, c.Logger)
	failed := 0
	var first error
	for _, path := range paths {
		if err := c.validateFile(ctx, runner, path, from, opts.strict); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			printError("%s: %s", path, err)
			if first == nil {
				first = err
			}
			failed++
			continue
		}
		printSuccess("%s", path)
	}

	if failed == 0 {
		return nil
	}
	// The first failure decides the code.
	code := errors.GetCode(first)
	if code == "" {
		code = errors.ErrCodeInvalidInput
	}
	return errors.New(code, "%d of %d dashboards failed validation", failed, len(paths))
}

func (c *CLI) validateFile(ctx context.Context, runner *pipeline.Runner, path string, from dashio.Format, strict bool) error {
	data, err := readInput(path)
	if err != nil {
		return err
	}
	doc, err := runner.Parse(ctx, data, from)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	d := doc.Studio
	if d == nil {
		d = convert.ToStudio(doc.SimpleXML)
	}
	return runner.Validate(ctx, d, strict)
}
