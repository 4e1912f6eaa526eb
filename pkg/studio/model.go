package studio

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/matzehuels/dashbridge/pkg/value"
)

// Dashboard is the modern JSON dashboard definition: a flat graph of
// visualizations, data sources and inputs keyed by id, plus a layout that
// positions them.
type Dashboard struct {
	Title          string                   `json:"title"`
	Description    *string                  `json:"description,omitempty"`
	Visualizations map[string]Visualization `json:"visualizations"`
	DataSources    map[string]DataSource    `json:"dataSources"`
	Layout         Layout                   `json:"layout"`
	Inputs         map[string]Input         `json:"inputs,omitempty"`
	Defaults       *Defaults                `json:"defaults,omitempty"`
}

// Visualization is one rendered element, e.g. "splunk.singlevalue".
type Visualization struct {
	Type           string                 `json:"type"`
	Title          string                 `json:"title,omitempty"`
	DataSourceRefs *DataSourceRefs        `json:"dataSources,omitempty"`
	Options        map[string]value.Value `json:"options,omitempty"`
	Context        map[string]value.Value `json:"context,omitempty"`
}

// DataSourceRefs names the data sources feeding a visualization.
type DataSourceRefs struct {
	Primary     string   `json:"primary,omitempty"`
	Secondary   string   `json:"secondary,omitempty"`
	Annotations []string `json:"annotations,omitempty"`
}

// DataSource is a search definition. Extends names a base data source for
// chained (post-process) searches.
type DataSource struct {
	Type    string             `json:"type"`
	Name    string             `json:"name,omitempty"`
	Options *DataSourceOptions `json:"options,omitempty"`
	Extends string             `json:"extends,omitempty"`
}

// DataSourceOptions holds the modeled data source options. The query is
// carried raw; $token$ placeholders are substituted by the query executor.
type DataSourceOptions struct {
	Query              string           `json:"query,omitempty"`
	QueryParameters    *QueryParameters `json:"queryParameters,omitempty"`
	Refresh            string           `json:"refresh,omitempty"`
	RefreshType        string           `json:"refreshType,omitempty"`
	EnableSmartSources *bool            `json:"enableSmartSources,omitempty"`
}

// QueryParameters is the search time range.
type QueryParameters struct {
	Earliest string `json:"earliest,omitempty"`
	Latest   string `json:"latest,omitempty"`
}

// LayoutKind selects how layout positions are interpreted.
type LayoutKind string

// Layout kinds.
const (
	LayoutAbsolute  LayoutKind = "absolute"
	LayoutGrid      LayoutKind = "grid"
	LayoutBootstrap LayoutKind = "bootstrap"
)

// UnmarshalJSON rejects unknown layout kinds.
func (k *LayoutKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch LayoutKind(s) {
	case LayoutAbsolute, LayoutGrid, LayoutBootstrap:
		*k = LayoutKind(s)
		return nil
	}
	return fmt.Errorf("unknown layout type %q", s)
}

// Layout positions visualizations and inputs.
type Layout struct {
	Kind         LayoutKind             `json:"type"`
	Options      map[string]value.Value `json:"options,omitempty"`
	Structure    []LayoutItem           `json:"structure"`
	GlobalInputs []string               `json:"globalInputs,omitempty"`
}

// ItemKind is the kind of a layout item.
type ItemKind string

// Layout item kinds. Blocks reference visualizations, inputs reference
// inputs, lines reference nothing.
const (
	ItemBlock ItemKind = "block"
	ItemInput ItemKind = "input"
	ItemLine  ItemKind = "line"
)

// UnmarshalJSON rejects unknown item kinds.
func (k *ItemKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch ItemKind(s) {
	case ItemBlock, ItemInput, ItemLine:
		*k = ItemKind(s)
		return nil
	}
	return fmt.Errorf("unknown layout item type %q", s)
}

// LayoutItem is one positioned reference in the layout structure.
type LayoutItem struct {
	Item     string   `json:"item"`
	Kind     ItemKind `json:"type"`
	Position Position `json:"position"`
}

// Position holds the optional coordinates of a layout item.
// BootstrapWidth is a column span between 1 and 12.
type Position struct {
	X              *int `json:"x,omitempty"`
	Y              *int `json:"y,omitempty"`
	W              *int `json:"w,omitempty"`
	H              *int `json:"h,omitempty"`
	BootstrapWidth *int `json:"bootstrapWidth,omitempty"`
	Order          *int `json:"order,omitempty"`
}

// At returns an absolute position with all four coordinates set.
func At(x, y, w, h int) Position {
	return Position{X: &x, Y: &y, W: &w, H: &h}
}

// Coord returns the value of an optional coordinate, or 0 when unset.
func Coord(c *int) int {
	if c == nil {
		return 0
	}
	return *c
}

// Input is a dashboard input control bound to a token.
type Input struct {
	Type         string                 `json:"type"`
	Title        string                 `json:"title,omitempty"`
	Token        string                 `json:"token,omitempty"`
	DefaultValue string                 `json:"defaultValue,omitempty"`
	Options      map[string]value.Value `json:"options,omitempty"`
}

// Defaults holds dashboard-wide default options.
type Defaults struct {
	DataSources map[string]value.Value `json:"dataSources,omitempty"`
}

// VisualizationIDs returns the visualization ids in lexical order.
func (d *Dashboard) VisualizationIDs() []string { return sortedKeys(d.Visualizations) }

// DataSourceIDs returns the data source ids in lexical order.
func (d *Dashboard) DataSourceIDs() []string { return sortedKeys(d.DataSources) }

// InputIDs returns the input ids in lexical order.
func (d *Dashboard) InputIDs() []string { return sortedKeys(d.Inputs) }

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
