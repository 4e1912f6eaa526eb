package studio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/matzehuels/dashbridge/pkg/errors"
)

var utf8BOM = []byte("\xef\xbb\xbf")

// Parse decodes a modern JSON dashboard definition.
//
// Parse returns an error with code [errors.ErrCodeInvalidEncoding] if data is
// not valid UTF-8, and [errors.ErrCodeInvalidJSON] if the JSON is malformed,
// a field has the wrong type, or a required field is absent. Required fields
// are the dashboard title, the layout type and structure, and the type of
// every visualization, data source, input and layout item. No partial
// dashboard is returned on failure.
//
// The returned dashboard always has non-nil Visualizations and DataSources
// maps. Parse is safe for concurrent use.
func Parse(data []byte) (*Dashboard, error) {
	if !utf8.Valid(data) {
		return nil, errors.New(errors.ErrCodeInvalidEncoding, "dashboard definition is not valid UTF-8")
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	var d Dashboard
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidJSON, err, "decode dashboard")
	}

	var p presence
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidJSON, err, "decode dashboard")
	}
	if err := p.check(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidJSON, err, "decode dashboard")
	}
	if err := checkPositions(d.Layout.Structure); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidJSON, err, "decode dashboard")
	}

	if d.Visualizations == nil {
		d.Visualizations = map[string]Visualization{}
	}
	if d.DataSources == nil {
		d.DataSources = map[string]DataSource{}
	}
	return &d, nil
}

// presence mirrors the required fields with pointers so that an absent
// field can be told apart from a zero value.
type presence struct {
	Title  *string `json:"title"`
	Layout *struct {
		Type      *string `json:"type"`
		Structure *[]struct {
			Item *string `json:"item"`
			Type *string `json:"type"`
		} `json:"structure"`
	} `json:"layout"`
	Visualizations map[string]typed `json:"visualizations"`
	DataSources    map[string]typed `json:"dataSources"`
	Inputs         map[string]typed `json:"inputs"`
}

type typed struct {
	Type *string `json:"type"`
}

func (p *presence) check() error {
	if p.Title == nil {
		return fmt.Errorf("missing required field %q", "title")
	}
	if p.Layout == nil {
		return fmt.Errorf("missing required field %q", "layout")
	}
	if p.Layout.Type == nil {
		return fmt.Errorf("missing required field %q", "layout.type")
	}
	if p.Layout.Structure == nil {
		return fmt.Errorf("missing required field %q", "layout.structure")
	}
	for i, item := range *p.Layout.Structure {
		if item.Item == nil {
			return fmt.Errorf("missing required field %q", fmt.Sprintf("layout.structure[%d].item", i))
		}
		if item.Type == nil {
			return fmt.Errorf("missing required field %q", fmt.Sprintf("layout.structure[%d].type", i))
		}
	}
	if err := checkTyped("visualizations", p.Visualizations); err != nil {
		return err
	}
	if err := checkTyped("dataSources", p.DataSources); err != nil {
		return err
	}
	return checkTyped("inputs", p.Inputs)
}

func checkTyped(section string, m map[string]typed) error {
	for _, id := range sortedKeys(m) {
		if m[id].Type == nil {
			return fmt.Errorf("missing required field %q", section+"."+id+".type")
		}
	}
	return nil
}

func checkPositions(items []LayoutItem) error {
	for i, item := range items {
		if bw := item.Position.BootstrapWidth; bw != nil && (*bw < 1 || *bw > 12) {
			return fmt.Errorf("layout.structure[%d].position.bootstrapWidth %d out of range 1..12", i, *bw)
		}
	}
	return nil
}
