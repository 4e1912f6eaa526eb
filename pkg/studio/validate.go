package studio

import (
	"github.com/matzehuels/dashbridge/pkg/errors"
)

// Validate checks referential integrity across visualizations, data sources,
// layout entries and inputs.
//
// It walks visualizations, then data sources (both in id order), then the
// layout structure in stored order, and returns the first violation found:
//   - [*errors.DataSourceReferenceError] when a visualization's primary or
//     secondary data source does not exist
//   - [*errors.DataSourceChainError] when a data source extends an unknown id
//   - [*errors.LayoutReferenceError] when a block names a missing
//     visualization or an input item names a missing input
//
// Validate stops at the first violation; it never aggregates. It does not
// check the extends chain for cycles, see [ValidateStrict].
func Validate(d *Dashboard) error {
	for _, id := range d.VisualizationIDs() {
		refs := d.Visualizations[id].DataSourceRefs
		if refs == nil {
			continue
		}
		for _, ds := range []string{refs.Primary, refs.Secondary} {
			if ds == "" {
				continue
			}
			if _, ok := d.DataSources[ds]; !ok {
				return &errors.DataSourceReferenceError{Visualization: id, DataSource: ds}
			}
		}
	}

	for _, id := range d.DataSourceIDs() {
		ext := d.DataSources[id].Extends
		if ext == "" {
			continue
		}
		if _, ok := d.DataSources[ext]; !ok {
			return &errors.DataSourceChainError{DataSource: id, Extends: ext}
		}
	}

	for _, item := range d.Layout.Structure {
		switch item.Kind {
		case ItemBlock:
			if _, ok := d.Visualizations[item.Item]; !ok {
				return &errors.LayoutReferenceError{ItemKind: "visualization", Item: item.Item}
			}
		case ItemInput:
			if _, ok := d.Inputs[item.Item]; !ok {
				return &errors.LayoutReferenceError{ItemKind: "input", Item: item.Item}
			}
		}
	}
	return nil
}

// ValidateStrict runs [Validate] and then rejects extends chains that loop
// back on themselves with [*errors.DataSourceCycleError]. It is opt-in;
// Validate alone accepts cyclic chains.
func ValidateStrict(d *Dashboard) error {
	if err := Validate(d); err != nil {
		return err
	}
	return checkChainCycles(d)
}

func checkChainCycles(d *Dashboard) error {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(d.DataSources))

	for _, start := range d.DataSourceIDs() {
		if state[start] == done {
			continue
		}
		var path []string
		for id := start; id != ""; id = d.DataSources[id].Extends {
			if state[id] == done {
				break
			}
			if state[id] == visiting {
				return &errors.DataSourceCycleError{Chain: append(cycleFrom(path, id), id)}
			}
			state[id] = visiting
			path = append(path, id)
		}
		for _, id := range path {
			state[id] = done
		}
	}
	return nil
}

// cycleFrom trims path to the part starting at id.
func cycleFrom(path []string, id string) []string {
	for i, p := range path {
		if p == id {
			return append([]string(nil), path[i:]...)
		}
	}
	return path
}
