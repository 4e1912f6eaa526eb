package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	dashio "github.com/matzehuels/dashbridge/pkg/io"
	"github.com/matzehuels/dashbridge/pkg/pipeline"
	"github.com/matzehuels/dashbridge/pkg/simplexml"
	"github.com/matzehuels/dashbridge/pkg/studio"
)

// parseOpts holds the command-line flags for the parse command.
type parseOpts struct {
	from  string // input format (detected if empty)
	items bool   // list every item in a table
}

// parseCommand creates the parse command, which decodes a dashboard and
// prints a summary of its contents.
func (c *CLI) parseCommand() *cobra.Command {
	var opts parseOpts

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a dashboard and summarize its contents",
		Long: `Parse a dashboard in any supported format and print a summary.

The format is detected from the content unless --from is given. Use "-" to
read from stdin.`,
		Example: `  dashbridge parse ops.xml
  dashbridge parse --items ops.json
  cat ops.xml | dashbridge parse -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runParse(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.from, "from", "", "input format: studio, envelope, simplexml (detected if empty)")
	cmd.Flags().BoolVar(&opts.items, "items", false, "list every item in a table")
	return cmd
}

func (c *CLI) runParse(cmd *cobra.Command, path string, opts parseOpts) error {
	from, err := formatFlag(opts.from)
	if err != nil {
		return err
	}
	data, err := readInput(path)
	if err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	runner := pipeline.NewRunner(nil, nil, c.Logger)
	doc, err := runner.Parse(cmd.Context(), data, from)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Parsed %s", path))

	switch {
	case doc.Studio != nil:
		printStudioSummary(doc, opts.items)
		printNewline()
		printNextStep("Convert to legacy markup", "dashbridge convert "+path+" --to simplexml")
	case doc.SimpleXML != nil:
		printLegacySummary(doc.SimpleXML, opts.items)
		printNewline()
		printNextStep("Convert to Studio JSON", "dashbridge convert "+path+" --to studio")
	}
	return nil
}

func printStudioSummary(doc *dashio.Document, items bool) {
	d := doc.Studio
	fmt.Println(StyleTitle.Render(d.Title))
	printKeyValue("Format", doc.Format.String())
	if doc.EnvelopeID != "" {
		printKeyValue("Envelope id", doc.EnvelopeID)
	}
	printKeyValue("Layout", string(d.Layout.Kind))
	printKeyValue("Visualizations", StyleNumber.Render(strconv.Itoa(len(d.Visualizations))))
	printKeyValue("Data sources", StyleNumber.Render(strconv.Itoa(len(d.DataSources))))
	printKeyValue("Inputs", StyleNumber.Render(strconv.Itoa(len(d.Inputs))))
	printKeyValue("Layout items", StyleNumber.Render(strconv.Itoa(len(d.Layout.Structure))))

	if items {
		fmt.Println(renderTable([]string{"Id", "Kind", "Type", "Refers to"}, studioRows(d)))
	}
}

func studioRows(d *studio.Dashboard) [][]string {
	var rows [][]string
	for _, id := range d.VisualizationIDs() {
		v := d.Visualizations[id]
		ref := ""
		if v.DataSourceRefs != nil {
			ref = v.DataSourceRefs.Primary
		}
		rows = append(rows, []string{id, "visualization", v.Type, ref})
	}
	for _, id := range d.DataSourceIDs() {
		ds := d.DataSources[id]
		rows = append(rows, []string{id, "data source", ds.Type, ds.Extends})
	}
	for _, id := range d.InputIDs() {
		rows = append(rows, []string{id, "input", d.Inputs[id].Type, ""})
	}
	return rows
}

func printLegacySummary(d *simplexml.Dashboard, items bool) {
	title := d.Label
	if title == "" {
		title = "(untitled)"
	}
	fmt.Println(StyleTitle.Render(title))
	printKeyValue("Format", dashio.FormatSimpleXML.String())
	printKeyValue("Rows", StyleNumber.Render(strconv.Itoa(len(d.Rows))))
	printKeyValue("Panels", StyleNumber.Render(strconv.Itoa(len(d.Panels()))))
	printKeyValue("Base searches", StyleNumber.Render(strconv.Itoa(len(d.Searches))))
	printKeyValue("Inputs", StyleNumber.Render(strconv.Itoa(len(d.Inputs()))))

	if items {
		fmt.Println(renderTable([]string{"Row", "Panel", "Kind", "Options"}, legacyRows(d)))
	}
}

func legacyRows(d *simplexml.Dashboard) [][]string {
	var rows [][]string
	for r, row := range d.Rows {
		for _, p := range row.Panels {
			keys := make([]string, 0, len(p.Visualization.Options))
			for k := range p.Visualization.Options {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			rows = append(rows, []string{strconv.Itoa(r), p.Title, string(p.Visualization.Kind), strings.Join(keys, ", ")})
		}
	}
	return rows
}

// formatFlag converts an optional --from/--to value.
func formatFlag(name string) (dashio.Format, error) {
	if name == "" {
		return "", nil
	}
	return dashio.ParseFormat(name)
}
