package simplexml

import (
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/matzehuels/dashbridge/pkg/errors"
)

func TestParseMinimalForm(t *testing.T) {
	markup := `<form><label>Test</label><row><panel><title>T</title><single><search><query>Q</query></search></single></panel></row></form>`

	d, err := Parse([]byte(markup))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if d.Label != "Test" {
		t.Errorf("Label = %q, want Test", d.Label)
	}
	if len(d.Rows) != 1 {
		t.Fatalf("len(Rows) = %d, want 1", len(d.Rows))
	}
	if len(d.Rows[0].Panels) != 1 {
		t.Fatalf("len(Panels) = %d, want 1", len(d.Rows[0].Panels))
	}

	p := d.Rows[0].Panels[0]
	if p.Title != "T" {
		t.Errorf("Title = %q, want T", p.Title)
	}
	if p.Visualization.Kind != VizSingle {
		t.Errorf("Kind = %v, want %v", p.Visualization.Kind, VizSingle)
	}
	if p.Search == nil || p.Search.Query != "Q" {
		t.Errorf("Search = %+v, want query Q", p.Search)
	}
}

const fullMarkup = `<?xml version="1.0" encoding="UTF-8"?>
<form>
  <label> Web Overview </label>
  <description>Traffic &amp; errors</description>
  <search id="base_web">
    <query>index=web</query>
    <earliest>-24h</earliest>
    <latest>now</latest>
  </search>
  <fieldset submitButton="true" autoRun="false">
    <input type="dropdown" token="host" searchWhenChanged="false">
      <label>Host</label>
      <choice value="*">All</choice>
      <choice value="web01">Web 01</choice>
      <default>*</default>
      <search><query>| inputlookup hosts</query></search>
    </input>
    <input type="time" token="range" label="Range" default="-4h"/>
    <input token="q"/>
    <input type="slider" token="s"/>
  </fieldset>
  <row>
    <panel>
      <title>Requests</title>
      <chart>
        <search base="base_web" refresh="30s" refreshType="delay">
          <query>| timechart count</query>
        </search>
        <option name="charting.chart">line</option>
        <option name="height">300</option>
        <description>ignored</description>
      </chart>
    </panel>
    <panel>
      <table title="Top hosts">
        <search earliest="-1h">index=web | top host</search>
      </table>
    </panel>
  </row>
  <row>
    <panel>
      <title>Nothing to show</title>
    </panel>
  </row>
  <row>
    <panel>
      <search><query>index=_internal</query></search>
      <event>
        <title>Raw events</title>
        <label>not the dashboard label</label>
      </event>
    </panel>
    <panel>
      <html><p>hello</p></html>
    </panel>
  </row>
</form>`

func TestParseFullForm(t *testing.T) {
	d, err := Parse([]byte(fullMarkup))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	if d.Label != "Web Overview" {
		t.Errorf("Label = %q, want %q", d.Label, "Web Overview")
	}
	if d.Description == nil || *d.Description != "Traffic & errors" {
		t.Errorf("Description = %v, want %q", d.Description, "Traffic & errors")
	}

	wantSearches := []Search{{ID: "base_web", Query: "index=web", Earliest: "-24h", Latest: "now"}}
	if !reflect.DeepEqual(d.Searches, wantSearches) {
		t.Errorf("Searches = %+v, want %+v", d.Searches, wantSearches)
	}

	// The panel-less row is dropped.
	if len(d.Rows) != 2 {
		t.Fatalf("len(Rows) = %d, want 2", len(d.Rows))
	}

	chart := d.Rows[0].Panels[0]
	if chart.Title != "Requests" || chart.Visualization.Kind != VizChart {
		t.Errorf("chart panel = %+v", chart)
	}
	wantOpts := map[string]string{"charting.chart": "line", "height": "300"}
	if !reflect.DeepEqual(chart.Visualization.Options, wantOpts) {
		t.Errorf("Options = %v, want %v", chart.Visualization.Options, wantOpts)
	}
	wantSearch := &Search{Base: "base_web", Query: "| timechart count", Refresh: "30s", RefreshType: "delay"}
	if !reflect.DeepEqual(chart.Search, wantSearch) {
		t.Errorf("Search = %+v, want %+v", chart.Search, wantSearch)
	}

	table := d.Rows[0].Panels[1]
	if table.Title != "Top hosts" || table.Visualization.Kind != VizTable {
		t.Errorf("table panel = %+v", table)
	}
	if table.Search == nil || table.Search.Query != "index=web | top host" || table.Search.Earliest != "-1h" {
		t.Errorf("table search = %+v", table.Search)
	}

	event := d.Rows[1].Panels[0]
	if event.Title != "Raw events" || event.Visualization.Kind != VizEvent {
		t.Errorf("event panel = %+v", event)
	}
	if event.Search == nil || event.Search.Query != "index=_internal" {
		t.Errorf("event search = %+v", event.Search)
	}

	custom := d.Rows[1].Panels[1]
	if custom.Visualization.Kind != VizCustom || custom.Search != nil {
		t.Errorf("custom panel = %+v", custom)
	}
}

func TestParseFieldsets(t *testing.T) {
	d, err := Parse([]byte(fullMarkup))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(d.Fieldsets) != 1 {
		t.Fatalf("len(Fieldsets) = %d, want 1", len(d.Fieldsets))
	}

	fs := d.Fieldsets[0]
	if !fs.SubmitButton || fs.AutoRun {
		t.Errorf("SubmitButton = %v, AutoRun = %v, want true, false", fs.SubmitButton, fs.AutoRun)
	}

	want := []Input{
		{
			Kind: InputDropdown, Token: "host", Label: "Host", Default: "*", SearchWhenChanged: false,
			Choices: []Choice{{Value: "*", Label: "All"}, {Value: "web01", Label: "Web 01"}},
		},
		{Kind: InputTime, Token: "range", Label: "Range", Default: "-4h", SearchWhenChanged: true},
		{Kind: InputText, Token: "q", SearchWhenChanged: true},
		{Kind: InputText, Token: "s", SearchWhenChanged: true},
	}
	if !reflect.DeepEqual(fs.Inputs, want) {
		t.Errorf("Inputs =\n%+v\nwant\n%+v", fs.Inputs, want)
	}
}

func TestParseFieldsetDefaults(t *testing.T) {
	tests := []struct {
		attrs      string
		submit     bool
		autoRun    bool
		searchWhen bool
	}{
		{``, false, true, true},
		{`submitButton="false" autoRun="true"`, false, true, true},
		{`submitButton="TRUE" autoRun="no"`, false, true, true},
		{`submitButton="true" autoRun="false"`, true, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.attrs, func(t *testing.T) {
			markup := `<form><label>x</label><fieldset ` + tt.attrs + `><input token="t"/></fieldset></form>`
			d, err := Parse([]byte(markup))
			if err != nil {
				t.Fatalf("Parse error: %v", err)
			}
			fs := d.Fieldsets[0]
			if fs.SubmitButton != tt.submit || fs.AutoRun != tt.autoRun {
				t.Errorf("submit = %v, autoRun = %v, want %v, %v", fs.SubmitButton, fs.AutoRun, tt.submit, tt.autoRun)
			}
			if fs.Inputs[0].SearchWhenChanged != tt.searchWhen {
				t.Errorf("SearchWhenChanged = %v, want %v", fs.Inputs[0].SearchWhenChanged, tt.searchWhen)
			}
		})
	}
}

func TestParseLabelDepth(t *testing.T) {
	markup := `<dashboard>
	  <row><panel><label>row label</label><table><label>viz label</label></table></panel></row>
	  <label>Top</label>
	  <fieldset><input token="x"><label>input label</label></input></fieldset>
	  <row><description>nested</description><panel><table/></panel></row>
	</dashboard>`

	d, err := Parse([]byte(markup))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if d.Label != "Top" {
		t.Errorf("Label = %q, want Top", d.Label)
	}
	if d.Description != nil {
		t.Errorf("Description = %q, want nil", *d.Description)
	}
	if got := d.Fieldsets[0].Inputs[0].Label; got != "input label" {
		t.Errorf("input Label = %q, want %q", got, "input label")
	}
}

func TestParseInputsOutsideFieldsetIgnored(t *testing.T) {
	markup := `<form><label>x</label><row><panel><input type="text" token="p"/><table/></panel></row></form>`

	d, err := Parse([]byte(markup))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(d.Fieldsets) != 0 {
		t.Errorf("len(Fieldsets) = %d, want 0", len(d.Fieldsets))
	}
	if len(d.Rows) != 1 || d.Rows[0].Panels[0].Visualization.Kind != VizTable {
		t.Errorf("Rows = %+v, want one table panel", d.Rows)
	}
}

func TestParseFirstVisualizationWins(t *testing.T) {
	markup := `<dashboard><label>x</label><row><panel><chart title="A"/><table title="B"/></panel></row></dashboard>`

	d, err := Parse([]byte(markup))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	p := d.Rows[0].Panels[0]
	if p.Visualization.Kind != VizChart || p.Title != "A" {
		t.Errorf("panel = %+v, want chart titled A", p)
	}
}

func TestParseFirstSearchWins(t *testing.T) {
	tests := []struct {
		name   string
		markup string
	}{
		{"panel then visualization", `<panel><search><query>FIRST</query></search><chart><search><query>SECOND</query></search></chart></panel>`},
		{"visualization then panel", `<panel><chart><search><query>FIRST</query></search></chart><search><query>SECOND</query></search></panel>`},
		{"two in visualization", `<panel><chart><search><query>FIRST</query></search><search><query>SECOND</query></search></chart></panel>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Parse([]byte(`<dashboard><label>x</label><row>` + tt.markup + `</row></dashboard>`))
			if err != nil {
				t.Fatalf("Parse error: %v", err)
			}
			p := d.Rows[0].Panels[0]
			if p.Search == nil || p.Search.Query != "FIRST" {
				t.Errorf("panel search = %+v, want query FIRST", p.Search)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		markup string
	}{
		{"empty", ``},
		{"whitespace only", "  \n "},
		{"unclosed", `<form><label>x</label>`},
		{"mismatched", `<form><row></panel></form>`},
		{"bad entity", `<form><label>&nope;</label></form>`},
		{"invalid utf8", "<form><label>\xff</label></form>"},
		{"two roots", `<form></form><form></form>`},
		{"not markup", `{"title": "json"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Parse([]byte(tt.markup))
			if err == nil {
				t.Fatal("Parse should fail")
			}
			if d != nil {
				t.Error("Parse should not return a partial dashboard")
			}
			if !errors.Is(err, errors.ErrCodeMarkupParsing) {
				t.Errorf("code = %v, want %v (err: %v)", errors.GetCode(err), errors.ErrCodeMarkupParsing, err)
			}
		})
	}
}

func TestDecodeConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d, err := Decode(strings.NewReader(fullMarkup))
			if err == nil && len(d.Rows) != 2 {
				err = errors.New(errors.ErrCodeInternal, "got %d rows", len(d.Rows))
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("Decode error: %v", err)
		}
	}
}

func TestDashboardHelpers(t *testing.T) {
	d, err := Parse([]byte(fullMarkup))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if got := len(d.Panels()); got != 4 {
		t.Errorf("len(Panels()) = %d, want 4", got)
	}
	if got := len(d.Inputs()); got != 4 {
		t.Errorf("len(Inputs()) = %d, want 4", got)
	}
	if _, ok := d.SearchByID("base_web"); !ok {
		t.Error("SearchByID(base_web) not found")
	}
	if _, ok := d.SearchByID("nope"); ok {
		t.Error("SearchByID(nope) should not be found")
	}
}
