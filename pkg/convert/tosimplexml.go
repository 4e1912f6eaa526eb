package convert

import (
	"sort"

	"github.com/matzehuels/dashbridge/pkg/simplexml"
	"github.com/matzehuels/dashbridge/pkg/studio"
	"github.com/matzehuels/dashbridge/pkg/value"
)

// ToSimpleXML converts a modern dashboard to the legacy format. The
// conversion is lossy.
//
// Block items are grouped into rows by their y coordinate, one row per
// distinct y in ascending order, with panels ordered by x. Blocks that name
// no visualization are skipped; visualizations no block places are appended
// as a final row in id order. Each panel takes its search from the
// visualization's primary data source. Data sources that other data
// sources extend become global searches, and chained searches refer to
// them as their base.
//
// Inputs go into a single fieldset: first those placed in the layout, then
// the global inputs, then the rest in id order.
//
// ToSimpleXML never fails and does not modify d.
func ToSimpleXML(d *studio.Dashboard) *simplexml.Dashboard {
	out := &simplexml.Dashboard{
		Label:       d.Title,
		Description: cloneString(d.Description),
	}

	globals := baseSearches(d)
	for _, id := range d.DataSourceIDs() {
		if name, ok := globals[id]; ok {
			s := legacySearch(d.DataSources[id], nil)
			s.ID = name
			out.Searches = append(out.Searches, s)
		}
	}

	for _, ids := range rowsByY(d) {
		row := simplexml.Row{Panels: make([]simplexml.Panel, 0, len(ids))}
		for _, id := range ids {
			row.Panels = append(row.Panels, legacyPanel(d, d.Visualizations[id], globals))
		}
		out.Rows = append(out.Rows, row)
	}

	if ids := inputOrder(d); len(ids) > 0 {
		fs := simplexml.Fieldset{SubmitButton: false, AutoRun: true}
		for _, id := range ids {
			fs.Inputs = append(fs.Inputs, legacyInput(id, d.Inputs[id]))
		}
		out.Fieldsets = []simplexml.Fieldset{fs}
	}
	return out
}

// baseSearches names the data sources extended by another data source,
// keyed by modern id. The legacy id is the data source name, or its modern
// id when the name is empty or already taken.
func baseSearches(d *studio.Dashboard) map[string]string {
	extended := map[string]bool{}
	for _, ds := range d.DataSources {
		if _, ok := d.DataSources[ds.Extends]; ok && ds.Extends != "" {
			extended[ds.Extends] = true
		}
	}

	names := make(map[string]string, len(extended))
	used := map[string]bool{}
	for _, id := range d.DataSourceIDs() {
		if !extended[id] {
			continue
		}
		name := d.DataSources[id].Name
		if name == "" || used[name] {
			name = id
		}
		used[name] = true
		names[id] = name
	}
	return names
}

type placed struct {
	id string
	x  int
}

// rowsByY returns visualization ids grouped into rows.
func rowsByY(d *studio.Dashboard) [][]string {
	byY := map[int][]placed{}
	seen := map[string]bool{}
	for _, item := range d.Layout.Structure {
		if item.Kind != studio.ItemBlock {
			continue
		}
		if _, ok := d.Visualizations[item.Item]; !ok {
			continue
		}
		y := studio.Coord(item.Position.Y)
		byY[y] = append(byY[y], placed{id: item.Item, x: studio.Coord(item.Position.X)})
		seen[item.Item] = true
	}

	ys := make([]int, 0, len(byY))
	for y := range byY {
		ys = append(ys, y)
	}
	sort.Ints(ys)

	rows := make([][]string, 0, len(ys)+1)
	for _, y := range ys {
		cells := byY[y]
		sort.SliceStable(cells, func(i, j int) bool { return cells[i].x < cells[j].x })
		ids := make([]string, len(cells))
		for i, c := range cells {
			ids[i] = c.id
		}
		rows = append(rows, ids)
	}

	var unplaced []string
	for _, id := range d.VisualizationIDs() {
		if !seen[id] {
			unplaced = append(unplaced, id)
		}
	}
	if len(unplaced) > 0 {
		rows = append(rows, unplaced)
	}
	return rows
}

func legacyPanel(d *studio.Dashboard, viz studio.Visualization, globals map[string]string) simplexml.Panel {
	p := simplexml.Panel{
		Title: viz.Title,
		Visualization: simplexml.Visualization{
			Kind:    VizKind(viz.Type),
			Options: textOptions(viz.Options),
		},
	}
	if viz.DataSourceRefs == nil {
		return p
	}
	if ds, ok := d.DataSources[viz.DataSourceRefs.Primary]; ok {
		s := legacySearch(ds, globals)
		p.Search = &s
	}
	return p
}

// legacySearch copies the query fields of ds. With globals set, a chained
// data source gets the legacy id of its base.
func legacySearch(ds studio.DataSource, globals map[string]string) simplexml.Search {
	var s simplexml.Search
	if o := ds.Options; o != nil {
		s.Query = o.Query
		s.Refresh = o.Refresh
		s.RefreshType = o.RefreshType
		if qp := o.QueryParameters; qp != nil {
			s.Earliest = qp.Earliest
			s.Latest = qp.Latest
		}
	}
	if base, ok := globals[ds.Extends]; ok && ds.Extends != "" {
		s.Base = base
	}
	return s
}

func textOptions(opts map[string]value.Value) map[string]string {
	out := make(map[string]string, len(opts))
	for k, v := range opts {
		if v.IsNull() {
			continue
		}
		out[k] = v.Text()
	}
	return out
}

// inputOrder lists the input ids to emit, each once.
func inputOrder(d *studio.Dashboard) []string {
	var ids []string
	seen := map[string]bool{}
	add := func(id string) {
		if _, ok := d.Inputs[id]; ok && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for _, item := range d.Layout.Structure {
		if item.Kind == studio.ItemInput {
			add(item.Item)
		}
	}
	for _, id := range d.Layout.GlobalInputs {
		add(id)
	}
	for _, id := range d.InputIDs() {
		add(id)
	}
	return ids
}

func legacyInput(id string, in studio.Input) simplexml.Input {
	out := simplexml.Input{
		Kind:              InputKind(in.Type),
		Token:             in.Token,
		Label:             in.Title,
		Default:           in.DefaultValue,
		SearchWhenChanged: true,
	}
	if out.Token == "" {
		out.Token = id
	}
	if b, ok := in.Options["searchWhenChanged"].AsBool(); ok && !b {
		out.SearchWhenChanged = false
	}
	if items, ok := in.Options["items"]; ok {
		for _, item := range items.Items() {
			label, _ := item.Get("label")
			val, _ := item.Get("value")
			out.Choices = append(out.Choices, simplexml.Choice{Value: val.Text(), Label: label.Text()})
		}
	}
	return out
}
