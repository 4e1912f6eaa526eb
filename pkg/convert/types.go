package convert

import (
	"strings"

	"github.com/matzehuels/dashbridge/pkg/simplexml"
)

// vizTypes maps legacy visualization kinds to modern visualization types.
var vizTypes = map[simplexml.VizKind]string{
	simplexml.VizChart:  "splunk.line",
	simplexml.VizTable:  "splunk.table",
	simplexml.VizSingle: "splunk.singlevalue",
	simplexml.VizEvent:  "splunk.events",
	simplexml.VizMap:    "splunk.map",
	simplexml.VizCustom: "splunk.markdown",
}

// inputTypes maps legacy input kinds to modern input types.
var inputTypes = map[simplexml.InputKind]string{
	simplexml.InputTime:        "input.timerange",
	simplexml.InputDropdown:    "input.dropdown",
	simplexml.InputRadio:       "input.radio",
	simplexml.InputMultiselect: "input.multiselect",
	simplexml.InputText:        "input.text",
	simplexml.InputCheckbox:    "input.checkbox",
}

// chartWords identify the chart family among modern visualization types.
var chartWords = []string{"line", "bar", "column", "pie", "area", "scatter", "bubble", "chart"}

// VizType returns the modern type for a legacy visualization kind.
// Unknown kinds map like custom.
func VizType(k simplexml.VizKind) string {
	if t, ok := vizTypes[k]; ok {
		return t
	}
	return vizTypes[simplexml.VizCustom]
}

// InputType returns the modern type for a legacy input kind. Unknown kinds
// map like text.
func InputType(k simplexml.InputKind) string {
	if t, ok := inputTypes[k]; ok {
		return t
	}
	return inputTypes[simplexml.InputText]
}

// VizKind recovers a legacy visualization kind from a modern type by
// substring match. It is not a strict inverse of [VizType]: any type
// containing "table" is a table, any chart-like type is a chart, and the
// rest are custom.
func VizKind(modernType string) simplexml.VizKind {
	t := strings.ToLower(modernType)
	switch {
	case strings.Contains(t, "table"):
		return simplexml.VizTable
	case strings.Contains(t, "single"):
		return simplexml.VizSingle
	case strings.Contains(t, "event"):
		return simplexml.VizEvent
	case strings.Contains(t, "map"):
		return simplexml.VizMap
	}
	for _, w := range chartWords {
		if strings.Contains(t, w) {
			return simplexml.VizChart
		}
	}
	return simplexml.VizCustom
}

// InputKind recovers a legacy input kind from a modern type by substring
// match, defaulting to text.
func InputKind(modernType string) simplexml.InputKind {
	t := strings.ToLower(modernType)
	for _, k := range []simplexml.InputKind{
		simplexml.InputTime,
		simplexml.InputDropdown,
		simplexml.InputRadio,
		simplexml.InputMultiselect,
		simplexml.InputCheckbox,
	} {
		if strings.Contains(t, string(k)) {
			return k
		}
	}
	return simplexml.InputText
}
