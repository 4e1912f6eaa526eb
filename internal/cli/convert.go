package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dashbridge/pkg/pipeline"
)

// convertOpts holds the command-line flags for the convert command.
type convertOpts struct {
	from       string // input format (detected if empty)
	to         string // output format (opposite family if empty)
	output     string // output file path (stdout if empty)
	validate   bool   // check references before writing
	strict     bool   // add the data source cycle check
	envelopeID string // id for envelope output
	refresh    bool   // bypass cached output
	noCache    bool   // disable the cache entirely
}

// convertCommand creates the convert command, which runs the full
// parse → validate → convert pipeline.
func (c *CLI) convertCommand() *cobra.Command {
	var opts convertOpts

	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Convert a dashboard to another format",
		Long: `Convert a dashboard between legacy markup, Studio JSON and the deployment
envelope.

Without --to, legacy markup converts to Studio JSON and Studio input
(plain or enveloped) converts to legacy markup. Outputs are cached by input
content and options; --refresh recomputes, --no-cache bypasses the cache.`,
		Example: `  dashbridge convert ops.xml --to studio -o ops.json
  dashbridge convert ops.json --to envelope --envelope-id ops_overview
  dashbridge convert --validate --strict ops.json --to simplexml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("strict") {
				opts.strict = opts.validate && c.Config.Validation.Strict
			}
			return c.runConvert(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.from, "from", "", "input format: studio, envelope, simplexml (detected if empty)")
	cmd.Flags().StringVarP(&opts.to, "to", "t", "", "output format: studio, envelope, simplexml")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.validate, "validate", false, "check references before writing")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "also reject data source cycles (implies --validate)")
	cmd.Flags().StringVar(&opts.envelopeID, "envelope-id", "", "id for envelope output (derived if empty)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if cached")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	_ = cmd.RegisterFlagCompletionFunc("to", formatCompletion)
	_ = cmd.RegisterFlagCompletionFunc("from", formatCompletion)
	return cmd
}

func (c *CLI) runConvert(ctx context.Context, path string, opts convertOpts) error {
	from, err := formatFlag(opts.from)
	if err != nil {
		return err
	}
	to, err := formatFlag(opts.to)
	if err != nil {
		return err
	}
	data, err := readInput(path)
	if err != nil {
		return err
	}

	runner, closeRunner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer closeRunner()

	envelopeID := opts.envelopeID
	if envelopeID == "" {
		envelopeID = c.envelopeIDFor(path)
	}

	prog := newProgress(c.Logger)
	result, err := runner.Execute(ctx, data, pipeline.Options{
		From:       from,
		To:         to,
		Validate:   opts.validate,
		Strict:     opts.strict,
		EnvelopeID: envelopeID,
		Refresh:    opts.refresh,
		TTL:        c.Config.Cache.TTL.Duration,
		Logger:     c.Logger,
	})
	if err != nil {
		return err
	}

	if err := writeOutput(opts.output, result.Output); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if toStdout(opts.output) {
		prog.done(fmt.Sprintf("Converted %s to %s", result.From, result.To))
		return nil
	}

	printSuccess("Converted %s to %s", result.From, result.To)
	printFile(opts.output)
	printStats(result.Stats.Items, len(result.Output), result.CacheHit)
	return nil
}

// formatCompletion completes --from and --to values.
func formatCompletion(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return []string{"studio", "envelope", "simplexml"}, cobra.ShellCompDirectiveNoFileComp
}
