package simplexml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/matzehuels/dashbridge/pkg/errors"
)

// Parse reads a legacy markup dashboard. See [Decode].
func Parse(data []byte) (*Dashboard, error) {
	return Decode(bytes.NewReader(data))
}

// Decode scans legacy markup from r and builds the dashboard in a single
// pass over the token stream.
//
// Any tokenizer error, a missing root element or content after the root
// element fails with [errors.ErrCodeMarkupParsing]; no partial dashboard is
// returned. Unknown elements are skipped. Each call uses its own scan state,
// so Decode is safe for concurrent use.
func Decode(r io.Reader) (*Dashboard, error) {
	s := &scanner{}
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeMarkupParsing, err, "scan markup")
		}
		if err := s.handle(tok); err != nil {
			return nil, errors.Wrap(errors.ErrCodeMarkupParsing, err, "scan markup")
		}
	}

	if !s.closed {
		if len(s.stack) > 0 {
			return nil, errors.New(errors.ErrCodeMarkupParsing, "unclosed element <%s>", s.top())
		}
		return nil, errors.New(errors.ErrCodeMarkupParsing, "no root element")
	}
	return &s.doc, nil
}

// scanner holds the state carried between tokens. Depth is len(stack); the
// root element sits at depth 1.
type scanner struct {
	stack  []string
	attrs  map[string]string
	text   strings.Builder
	closed bool

	doc      Dashboard
	row      *Row
	panel    *panelState
	viz      *vizState
	search   *searchState
	fieldset *Fieldset
	input    *Input
	choice   *Choice
	option   string
}

type panelState struct {
	title    string
	hasTitle bool
	viz      *vizState
	search   *Search
}

type vizState struct {
	name      string
	depth     int
	kind      VizKind
	titleAttr string
	title     *string
	options   map[string]string
}

type searchState struct {
	Search
	depth    int
	global   bool
	hasQuery bool
	nested   bool
}

// notViz lists panel children that never start a visualization.
var notViz = map[string]bool{
	"title":       true,
	"search":      true,
	"description": true,
	"option":      true,
	"input":       true,
	"fieldset":    true,
	"label":       true,
	"panel":       true,
}

func (s *scanner) handle(tok xml.Token) error {
	switch t := tok.(type) {
	case xml.StartElement:
		return s.start(t)
	case xml.EndElement:
		s.end(t.Name.Local)
	case xml.CharData:
		s.text.Write(t)
	}
	return nil
}

func (s *scanner) top() string {
	if len(s.stack) == 0 {
		return ""
	}
	return s.stack[len(s.stack)-1]
}

func (s *scanner) start(t xml.StartElement) error {
	if s.closed {
		return fmt.Errorf("element <%s> after root element", t.Name.Local)
	}

	name := t.Name.Local
	parent := s.top()
	s.stack = append(s.stack, name)
	s.attrs = attrMap(t.Attr)
	s.text.Reset()
	depth := len(s.stack)

	if s.search != nil && depth == s.search.depth+1 {
		s.search.nested = true
	}

	switch {
	case name == "row" && depth == 2:
		s.row = &Row{}
	case name == "panel" && s.row != nil && parent == "row":
		s.panel = &panelState{}
	case name == "search":
		s.startSearch(parent, depth)
	case name == "fieldset" && depth == 2:
		s.fieldset = &Fieldset{
			SubmitButton: s.attrs["submitButton"] == "true",
			AutoRun:      s.attrs["autoRun"] != "false",
		}
	case name == "input" && s.fieldset != nil && parent == "fieldset":
		s.input = &Input{
			Kind:              inputKind(s.attrs["type"]),
			Token:             s.attrs["token"],
			Label:             s.attrs["label"],
			Default:           s.attrs["default"],
			SearchWhenChanged: s.attrs["searchWhenChanged"] != "false",
		}
	case name == "choice" && s.input != nil && parent == "input":
		s.choice = &Choice{Value: s.attrs["value"]}
	case name == "option" && s.viz != nil && depth == s.viz.depth+1:
		s.option = s.attrs["name"]
	case s.panel != nil && parent == "panel" && s.panel.viz == nil && s.viz == nil && !notViz[name]:
		s.viz = &vizState{
			name:      name,
			depth:     depth,
			kind:      vizKind(name),
			titleAttr: s.attrs["title"],
			options:   map[string]string{},
		}
	}
	return nil
}

// startSearch opens a panel search (direct child of the panel or of its
// visualization element) or a global search (direct child of the root).
// Searches anywhere else, e.g. input-populating searches, are skipped.
func (s *scanner) startSearch(parent string, depth int) {
	inPanel := s.panel != nil && (parent == "panel" || (s.viz != nil && depth == s.viz.depth+1))
	if !inPanel && depth != 2 {
		return
	}
	s.search = &searchState{
		Search: Search{
			ID:          s.attrs["id"],
			Base:        s.attrs["base"],
			Earliest:    s.attrs["earliest"],
			Latest:      s.attrs["latest"],
			Refresh:     s.attrs["refresh"],
			RefreshType: s.attrs["refreshType"],
		},
		depth:  depth,
		global: !inPanel,
	}
}

func (s *scanner) end(name string) {
	depth := len(s.stack)
	var parent string
	if depth >= 2 {
		parent = s.stack[depth-2]
	}
	text := strings.TrimSpace(s.text.String())

	switch name {
	case "label":
		if depth == 2 {
			s.doc.Label = text
		} else if s.input != nil && parent == "input" {
			s.input.Label = text
		}
	case "description":
		if depth == 2 {
			s.doc.Description = &text
		}
	case "title":
		if s.viz != nil && depth == s.viz.depth+1 {
			s.viz.title = &text
		} else if s.panel != nil && parent == "panel" {
			s.panel.title, s.panel.hasTitle = text, true
		}
	case "query", "earliest", "latest", "refresh", "refreshType":
		if s.search != nil && depth == s.search.depth+1 {
			s.search.set(name, text)
		}
	case "search":
		if s.search != nil && depth == s.search.depth {
			s.endSearch(text)
		}
	case "option":
		if s.viz != nil && depth == s.viz.depth+1 && s.option != "" {
			s.viz.options[s.option] = text
		}
		s.option = ""
	case "default":
		if s.input != nil && parent == "input" {
			s.input.Default = text
		}
	case "choice":
		if s.choice != nil && parent == "input" {
			s.choice.Label = text
			s.input.Choices = append(s.input.Choices, *s.choice)
			s.choice = nil
		}
	case "input":
		if s.input != nil && parent == "fieldset" {
			s.fieldset.Inputs = append(s.fieldset.Inputs, *s.input)
			s.input = nil
		}
	case "fieldset":
		if s.fieldset != nil && depth == 2 {
			s.doc.Fieldsets = append(s.doc.Fieldsets, *s.fieldset)
			s.fieldset = nil
		}
	case "panel":
		if s.panel != nil && parent == "row" {
			s.endPanel()
		}
	case "row":
		if s.row != nil && depth == 2 {
			if len(s.row.Panels) > 0 {
				s.doc.Rows = append(s.doc.Rows, *s.row)
			}
			s.row = nil
		}
	}

	if s.viz != nil && depth == s.viz.depth && name == s.viz.name {
		s.panel.viz = s.viz
		s.viz = nil
	}

	s.stack = s.stack[:depth-1]
	if len(s.stack) == 0 {
		s.closed = true
	}
}

func (ss *searchState) set(field, text string) {
	switch field {
	case "query":
		ss.Query, ss.hasQuery = text, true
	case "earliest":
		ss.Earliest = text
	case "latest":
		ss.Latest = text
	case "refresh":
		ss.Refresh = text
	case "refreshType":
		ss.RefreshType = text
	}
}

// endSearch takes the element text as the query body when the search has
// no child elements. The first search closed in a panel is kept.
func (s *scanner) endSearch(text string) {
	sr := s.search.Search
	if !s.search.hasQuery && !s.search.nested {
		sr.Query = text
	}
	if s.search.global {
		s.doc.Searches = append(s.doc.Searches, sr)
	} else if s.panel != nil && s.panel.search == nil {
		s.panel.search = &sr
	}
	s.search = nil
}

// endPanel appends the panel to the current row. Panels without a
// visualization element are dropped.
func (s *scanner) endPanel() {
	p := s.panel
	s.panel = nil
	if p.viz == nil {
		return
	}

	title := p.viz.titleAttr
	switch {
	case p.hasTitle:
		title = p.title
	case p.viz.title != nil:
		title = *p.viz.title
	}

	s.row.Panels = append(s.row.Panels, Panel{
		Title:         title,
		Visualization: Visualization{Kind: p.viz.kind, Options: p.viz.options},
		Search:        p.search,
	})
}

func attrMap(attrs []xml.Attr) map[string]string {
	m := make(map[string]string, len(attrs))
	for _, a := range attrs {
		m[a.Name.Local] = a.Value
	}
	return m
}
