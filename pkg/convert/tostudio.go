package convert

import (
	"fmt"

	"github.com/matzehuels/dashbridge/pkg/simplexml"
	"github.com/matzehuels/dashbridge/pkg/studio"
	"github.com/matzehuels/dashbridge/pkg/value"
)

// Layout constants for legacy to modern conversion, in absolute layout units.
const (
	CanvasWidth = 1200

	InputHeight = 50
	InputStride = 60

	RowHeight = 300
	RowStride = 310
)

// ToStudio converts a legacy dashboard to the modern format.
//
// Ids are synthesized in encounter order: inputs input_0, input_1, …;
// global searches ds_base_0, ds_base_1, …; then, rows top to bottom and
// panels left to right, visualizations viz_0, viz_1, … and data sources
// ds_0, ds_1, … for panels with a search.
//
// The layout is always absolute. Inputs are stacked as full-width items
// from the top; each row below them gets a band of [RowStride] units with
// its panels splitting [CanvasWidth] evenly. Panel option strings are
// re-typed with [value.Infer].
//
// ToStudio never fails and does not modify d.
func ToStudio(d *simplexml.Dashboard) *studio.Dashboard {
	out := &studio.Dashboard{
		Title:          d.Label,
		Description:    cloneString(d.Description),
		Visualizations: map[string]studio.Visualization{},
		DataSources:    map[string]studio.DataSource{},
		Layout:         studio.Layout{Kind: studio.LayoutAbsolute, Structure: []studio.LayoutItem{}},
	}

	inputs := d.Inputs()
	if len(inputs) > 0 {
		out.Inputs = make(map[string]studio.Input, len(inputs))
	}
	for k, in := range inputs {
		id := fmt.Sprintf("input_%d", k)
		out.Inputs[id] = modernInput(in)
		out.Layout.Structure = append(out.Layout.Structure, studio.LayoutItem{
			Item:     id,
			Kind:     studio.ItemInput,
			Position: studio.At(0, k*InputStride, CanvasWidth, InputHeight),
		})
	}

	bases := make(map[string]string, len(d.Searches))
	for k, s := range d.Searches {
		id := fmt.Sprintf("ds_base_%d", k)
		out.DataSources[id] = studio.DataSource{
			Type:    "ds.search",
			Name:    s.ID,
			Options: dataSourceOptions(s),
		}
		if s.ID != "" {
			if _, dup := bases[s.ID]; !dup {
				bases[s.ID] = id
			}
		}
	}

	y0 := len(inputs) * InputStride
	var nviz, nds, nrow int
	for _, row := range d.Rows {
		if len(row.Panels) == 0 {
			continue
		}
		w := CanvasWidth / len(row.Panels)
		y := y0 + nrow*RowStride
		nrow++

		for k, p := range row.Panels {
			vizID := fmt.Sprintf("viz_%d", nviz)
			nviz++

			viz := studio.Visualization{
				Type:    VizType(p.Visualization.Kind),
				Title:   p.Title,
				Options: inferOptions(p.Visualization.Options),
			}
			if p.Search != nil {
				dsID := fmt.Sprintf("ds_%d", nds)
				nds++
				out.DataSources[dsID] = panelDataSource(*p.Search, bases)
				viz.DataSourceRefs = &studio.DataSourceRefs{Primary: dsID}
			}
			out.Visualizations[vizID] = viz

			out.Layout.Structure = append(out.Layout.Structure, studio.LayoutItem{
				Item:     vizID,
				Kind:     studio.ItemBlock,
				Position: studio.At(k*w, y, w, RowHeight),
			})
		}
	}
	return out
}

// panelDataSource chains a post-process search onto its base. A base that
// names no global search is dropped.
func panelDataSource(s simplexml.Search, bases map[string]string) studio.DataSource {
	if base, ok := bases[s.Base]; ok && s.Base != "" {
		return studio.DataSource{Type: "ds.chain", Extends: base, Options: dataSourceOptions(s)}
	}
	return studio.DataSource{Type: "ds.search", Options: dataSourceOptions(s)}
}

func dataSourceOptions(s simplexml.Search) *studio.DataSourceOptions {
	opts := &studio.DataSourceOptions{
		Query:       s.Query,
		Refresh:     s.Refresh,
		RefreshType: s.RefreshType,
	}
	if s.Earliest != "" || s.Latest != "" {
		opts.QueryParameters = &studio.QueryParameters{Earliest: s.Earliest, Latest: s.Latest}
	}
	return opts
}

func modernInput(in simplexml.Input) studio.Input {
	out := studio.Input{
		Type:         InputType(in.Kind),
		Title:        in.Label,
		Token:        in.Token,
		DefaultValue: in.Default,
	}

	opts := map[string]value.Value{}
	if !in.SearchWhenChanged {
		opts["searchWhenChanged"] = value.Bool(false)
	}
	if len(in.Choices) > 0 {
		items := make([]value.Value, len(in.Choices))
		for i, c := range in.Choices {
			items[i] = value.Map(map[string]value.Value{
				"label": value.String(c.Label),
				"value": value.String(c.Value),
			})
		}
		opts["items"] = value.Seq(items...)
	}
	if len(opts) > 0 {
		out.Options = opts
	}
	return out
}

func inferOptions(opts map[string]string) map[string]value.Value {
	if len(opts) == 0 {
		return nil
	}
	out := make(map[string]value.Value, len(opts))
	for k, v := range opts {
		out[k] = value.Infer(v)
	}
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
