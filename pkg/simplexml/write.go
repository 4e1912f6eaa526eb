package simplexml

import (
	"bytes"
	"encoding/xml"
	"io"
	"sort"
	"strconv"

	"github.com/matzehuels/dashbridge/pkg/errors"
)

// Marshal renders d as legacy markup indented with two spaces. The root is
// <form> when d has fieldsets and <dashboard> otherwise.
//
// Searches are written inside the visualization element; custom
// visualizations are written as <viz>. Parse(Marshal(d)) reproduces d as
// long as its strings carry no leading or trailing whitespace.
func Marshal(d *Dashboard) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode writes the markup for d to w. See [Marshal].
func Encode(w io.Writer, d *Dashboard) error {
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	mw := &markupWriter{enc: enc}

	root := "dashboard"
	if len(d.Fieldsets) > 0 {
		root = "form"
	}

	mw.start(root)
	mw.leaf("label", d.Label)
	if d.Description != nil {
		mw.leaf("description", *d.Description)
	}
	for _, s := range d.Searches {
		mw.search(s)
	}
	for _, fs := range d.Fieldsets {
		mw.fieldset(fs)
	}
	for _, r := range d.Rows {
		mw.start("row")
		for _, p := range r.Panels {
			mw.panel(p)
		}
		mw.end("row")
	}
	mw.end(root)

	if mw.err == nil {
		mw.err = enc.Flush()
	}
	if mw.err != nil {
		return errors.Wrap(errors.ErrCodeSerializationFailed, mw.err, "encode markup")
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// markupWriter emits tokens until the first error, which it keeps.
type markupWriter struct {
	enc *xml.Encoder
	err error
}

func (w *markupWriter) token(t xml.Token) {
	if w.err == nil {
		w.err = w.enc.EncodeToken(t)
	}
}

func (w *markupWriter) start(name string, attrs ...xml.Attr) {
	w.token(xml.StartElement{Name: xml.Name{Local: name}, Attr: attrs})
}

func (w *markupWriter) end(name string) {
	w.token(xml.EndElement{Name: xml.Name{Local: name}})
}

func (w *markupWriter) leaf(name, text string, attrs ...xml.Attr) {
	w.start(name, attrs...)
	if text != "" {
		w.token(xml.CharData(text))
	}
	w.end(name)
}

// optLeaf writes the element only when text is set.
func (w *markupWriter) optLeaf(name, text string) {
	if text != "" {
		w.leaf(name, text)
	}
}

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

func (w *markupWriter) search(s Search) {
	var attrs []xml.Attr
	if s.ID != "" {
		attrs = append(attrs, attr("id", s.ID))
	}
	if s.Base != "" {
		attrs = append(attrs, attr("base", s.Base))
	}
	w.start("search", attrs...)
	w.optLeaf("query", s.Query)
	w.optLeaf("earliest", s.Earliest)
	w.optLeaf("latest", s.Latest)
	w.optLeaf("refresh", s.Refresh)
	w.optLeaf("refreshType", s.RefreshType)
	w.end("search")
}

func (w *markupWriter) fieldset(fs Fieldset) {
	w.start("fieldset",
		attr("submitButton", strconv.FormatBool(fs.SubmitButton)),
		attr("autoRun", strconv.FormatBool(fs.AutoRun)))
	for _, in := range fs.Inputs {
		w.input(in)
	}
	w.end("fieldset")
}

func (w *markupWriter) input(in Input) {
	kind := in.Kind
	if kind == "" {
		kind = InputText
	}
	w.start("input",
		attr("type", string(kind)),
		attr("token", in.Token),
		attr("searchWhenChanged", strconv.FormatBool(in.SearchWhenChanged)))
	w.optLeaf("label", in.Label)
	for _, c := range in.Choices {
		w.leaf("choice", c.Label, attr("value", c.Value))
	}
	w.optLeaf("default", in.Default)
	w.end("input")
}

func (w *markupWriter) panel(p Panel) {
	w.start("panel")
	w.optLeaf("title", p.Title)

	elem := string(p.Visualization.Kind)
	if p.Visualization.Kind == VizCustom || elem == "" {
		elem = "viz"
	}
	w.start(elem)
	if p.Search != nil {
		w.search(*p.Search)
	}
	keys := make([]string, 0, len(p.Visualization.Options))
	for k := range p.Visualization.Options {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		w.leaf("option", p.Visualization.Options[k], attr("name", k))
	}
	w.end(elem)

	w.end("panel")
}
