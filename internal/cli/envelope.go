package cli

import (
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dashbridge/pkg/errors"
	"github.com/matzehuels/dashbridge/pkg/studio"
)

// envelopeCommand creates the envelope command for wrapping and unwrapping
// Studio JSON without converting it.
func (c *CLI) envelopeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "envelope",
		Short: "Wrap or unwrap Studio JSON in the deployment envelope",
	}

	cmd.AddCommand(c.envelopeWrapCommand())
	cmd.AddCommand(c.envelopeUnwrapCommand())

	return cmd
}

// envelopeWrapCommand creates the "envelope wrap" subcommand. The JSON text
// is embedded verbatim, so its formatting is preserved.
func (c *CLI) envelopeWrapCommand() *cobra.Command {
	var id, output string

	cmd := &cobra.Command{
		Use:   "wrap <file>",
		Short: "Embed Studio JSON in an envelope",
		Long: `Embed Studio JSON text verbatim in a <dashboard version="2"> envelope.

The JSON is parsed first so that broken definitions are not deployed.
Definitions containing "]]>" cannot be wrapped safely and are rejected.
Without --id, the id is built from [envelope] id_prefix and the file name,
or a random UUID when no prefix is configured.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(args[0])
			if err != nil {
				return err
			}
			if _, err := studio.Parse(data); err != nil {
				return err
			}
			text := strings.TrimSpace(string(data))
			if !studio.EnvelopeSafe(text) {
				return errors.New(errors.ErrCodeInvalidInput, "definition contains %q and cannot be wrapped", "]]>")
			}

			if id == "" {
				id = c.envelopeIDFor(args[0])
			}
			if id == "" {
				id = uuid.NewString()
			}
			if err := errors.ValidateEnvelopeID(id); err != nil {
				return err
			}

			if err := writeOutput(output, []byte(studio.WrapEnvelope(text, id))); err != nil {
				return err
			}
			if !toStdout(output) {
				printSuccess("Wrapped %s", args[0])
				printFile(output)
				printDetail("id: %s", id)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "envelope id")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}

// envelopeUnwrapCommand creates the "envelope unwrap" subcommand.
func (c *CLI) envelopeUnwrapCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "unwrap <file>",
		Short: "Extract the Studio JSON from an envelope",
		Long: `Extract the JSON text of the first CDATA section of an envelope, unchanged
apart from surrounding whitespace. The text must parse as a Studio dashboard.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(args[0])
			if err != nil {
				return err
			}
			body, err := studio.ExtractEnvelope(data)
			if err != nil {
				return err
			}
			if _, err := studio.Parse(body); err != nil {
				return err
			}

			text := strings.TrimSpace(string(body)) + "\n"
			if err := writeOutput(output, []byte(text)); err != nil {
				return err
			}
			if !toStdout(output) {
				printSuccess("Unwrapped %s", args[0])
				printFile(output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}
