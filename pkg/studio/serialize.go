package studio

import (
	"bytes"
	"encoding/json"

	"github.com/matzehuels/dashbridge/pkg/errors"
	"github.com/matzehuels/dashbridge/pkg/value"
)

// Serialize encodes d as canonical JSON: every object has its keys in
// lexical order, and the output is indented with two spaces.
//
// Serialize is the left inverse of [Parse]: for any dashboard d returned by
// Parse, Parse(Serialize(d)) is structurally equal to d (see [Equal]). The
// output is not byte-equal to the text d was parsed from.
//
// Serialize fails with [errors.ErrCodeSerializationFailed] when a value
// cannot be represented, e.g. a NaN float in an option bag.
func Serialize(d *Dashboard) (string, error) {
	raw, err := json.Marshal(normalized(d))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeSerializationFailed, err, "encode dashboard")
	}

	// Round-trip through value.Value to sort struct fields along with map keys.
	tree, err := value.Parse(raw)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeSerializationFailed, err, "canonicalize dashboard")
	}
	canon, err := tree.MarshalJSON()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeSerializationFailed, err, "canonicalize dashboard")
	}

	var out bytes.Buffer
	if err := json.Indent(&out, canon, "", "  "); err != nil {
		return "", errors.Wrap(errors.ErrCodeSerializationFailed, err, "indent dashboard")
	}
	return out.String(), nil
}

// normalized returns a shallow copy of d whose required collections encode
// as empty objects and arrays instead of null.
func normalized(d *Dashboard) *Dashboard {
	cp := *d
	if cp.Visualizations == nil {
		cp.Visualizations = map[string]Visualization{}
	}
	if cp.DataSources == nil {
		cp.DataSources = map[string]DataSource{}
	}
	if cp.Layout.Kind == "" {
		cp.Layout.Kind = LayoutAbsolute
	}
	if cp.Layout.Structure == nil {
		cp.Layout.Structure = []LayoutItem{}
	}
	return &cp
}
