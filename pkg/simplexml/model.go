package simplexml

// Dashboard is a legacy markup dashboard: a label, optional description,
// rows of panels and fieldsets of inputs. Searches holds the global base
// searches declared directly under the root element.
type Dashboard struct {
	Label       string
	Description *string
	Rows        []Row
	Fieldsets   []Fieldset
	Searches    []Search
}

// Row is a horizontal band of panels.
type Row struct {
	Panels []Panel
}

// Panel holds one visualization and the search feeding it.
type Panel struct {
	Title         string
	Visualization Visualization
	Search        *Search
}

// VizKind is the legacy visualization element name.
type VizKind string

// Visualization kinds. Elements without a dedicated kind parse as
// VizCustom.
const (
	VizChart  VizKind = "chart"
	VizTable  VizKind = "table"
	VizSingle VizKind = "single"
	VizEvent  VizKind = "event"
	VizMap    VizKind = "map"
	VizCustom VizKind = "custom"
)

// Visualization is a panel's visualization element with its
// <option name=".."> values.
type Visualization struct {
	Kind    VizKind
	Options map[string]string
}

// Search is a legacy search. Empty strings mean the field was not given.
// ID is set on global base searches; Base names the global search a
// post-process search builds on.
type Search struct {
	ID          string
	Base        string
	Query       string
	Earliest    string
	Latest      string
	Refresh     string
	RefreshType string
}

// Fieldset groups the form inputs.
type Fieldset struct {
	SubmitButton bool
	AutoRun      bool
	Inputs       []Input
}

// InputKind is the legacy input type attribute.
type InputKind string

// Input kinds. Absent or unrecognized types parse as InputText.
const (
	InputTime        InputKind = "time"
	InputDropdown    InputKind = "dropdown"
	InputRadio       InputKind = "radio"
	InputMultiselect InputKind = "multiselect"
	InputText        InputKind = "text"
	InputCheckbox    InputKind = "checkbox"
)

// Input is a form input bound to a token.
type Input struct {
	Kind              InputKind
	Token             string
	Label             string
	Default           string
	SearchWhenChanged bool
	Choices           []Choice
}

// Choice is a static option of a dropdown, radio, multiselect or checkbox
// input.
type Choice struct {
	Value string
	Label string
}

// Panels returns all panels in row order.
func (d *Dashboard) Panels() []Panel {
	var out []Panel
	for _, r := range d.Rows {
		out = append(out, r.Panels...)
	}
	return out
}

// Inputs returns all inputs in fieldset order.
func (d *Dashboard) Inputs() []Input {
	var out []Input
	for _, fs := range d.Fieldsets {
		out = append(out, fs.Inputs...)
	}
	return out
}

// SearchByID returns the global search with the given id.
func (d *Dashboard) SearchByID(id string) (Search, bool) {
	for _, s := range d.Searches {
		if s.ID == id {
			return s, true
		}
	}
	return Search{}, false
}

func vizKind(name string) VizKind {
	switch k := VizKind(name); k {
	case VizChart, VizTable, VizSingle, VizEvent, VizMap:
		return k
	}
	return VizCustom
}

func inputKind(attr string) InputKind {
	switch k := InputKind(attr); k {
	case InputTime, InputDropdown, InputRadio, InputMultiselect, InputText, InputCheckbox:
		return k
	}
	return InputText
}
