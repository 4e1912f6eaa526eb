package studio

import (
	stderrors "errors"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/dashbridge/pkg/errors"
)

func vizOn(primary string) Visualization {
	return Visualization{Type: "splunk.line", DataSourceRefs: &DataSourceRefs{Primary: primary}}
}

func search(query string) DataSource {
	return DataSource{Type: "ds.search", Options: &DataSourceOptions{Query: query}}
}

func chain(base string) DataSource {
	return DataSource{Type: "ds.chain", Extends: base}
}

func TestValidateValid(t *testing.T) {
	d, err := Parse([]byte(richJSON))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if err := Validate(d); err != nil {
		t.Errorf("Validate error: %v", err)
	}
	if err := ValidateStrict(d); err != nil {
		t.Errorf("ValidateStrict error: %v", err)
	}
}

func TestValidateDanglingDataSource(t *testing.T) {
	d := &Dashboard{
		Title:          "x",
		Visualizations: map[string]Visualization{"viz_1": vizOn("ds_missing")},
		DataSources:    map[string]DataSource{},
		Layout:         Layout{Kind: LayoutAbsolute},
	}

	err := Validate(d)
	var refErr *errors.DataSourceReferenceError
	if !stderrors.As(err, &refErr) {
		t.Fatalf("Validate error = %v, want DataSourceReferenceError", err)
	}
	if refErr.Visualization != "viz_1" || refErr.DataSource != "ds_missing" {
		t.Errorf("got %+v, want viz_1/ds_missing", refErr)
	}
	if !strings.Contains(err.Error(), "viz_1") || !strings.Contains(err.Error(), "ds_missing") {
		t.Errorf("message %q should name both ids", err.Error())
	}
	if !errors.Is(err, errors.ErrCodeInvalidDataSourceReference) {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidDataSourceReference)
	}
}

func TestValidateDanglingSecondary(t *testing.T) {
	d := &Dashboard{
		Title: "x",
		Visualizations: map[string]Visualization{
			"viz_1": {Type: "splunk.line", DataSourceRefs: &DataSourceRefs{Primary: "ds_1", Secondary: "ds_2"}},
		},
		DataSources: map[string]DataSource{"ds_1": search("index=main")},
	}

	var refErr *errors.DataSourceReferenceError
	if err := Validate(d); !stderrors.As(err, &refErr) || refErr.DataSource != "ds_2" {
		t.Errorf("Validate error = %v, want reference to ds_2", err)
	}
}

func TestValidateAnnotationsUnchecked(t *testing.T) {
	d := &Dashboard{
		Title: "x",
		Visualizations: map[string]Visualization{
			"viz_1": {Type: "splunk.line", DataSourceRefs: &DataSourceRefs{Annotations: []string{"nope"}}},
		},
	}
	if err := Validate(d); err != nil {
		t.Errorf("Validate error = %v, want nil", err)
	}
}

func TestValidateBrokenChain(t *testing.T) {
	d := &Dashboard{
		Title:       "x",
		DataSources: map[string]DataSource{"ds_derived": chain("ds_gone")},
	}

	err := Validate(d)
	var chainErr *errors.DataSourceChainError
	if !stderrors.As(err, &chainErr) {
		t.Fatalf("Validate error = %v, want DataSourceChainError", err)
	}
	if chainErr.DataSource != "ds_derived" || chainErr.Extends != "ds_gone" {
		t.Errorf("got %+v", chainErr)
	}
}

func TestValidateLayoutReferences(t *testing.T) {
	tests := []struct {
		name     string
		item     LayoutItem
		wantKind string
	}{
		{"missing visualization", LayoutItem{Item: "viz_9", Kind: ItemBlock}, "visualization"},
		{"missing input", LayoutItem{Item: "input_9", Kind: ItemInput}, "input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &Dashboard{
				Title:  "x",
				Layout: Layout{Kind: LayoutAbsolute, Structure: []LayoutItem{tt.item}},
			}
			err := Validate(d)
			var layoutErr *errors.LayoutReferenceError
			if !stderrors.As(err, &layoutErr) {
				t.Fatalf("Validate error = %v, want LayoutReferenceError", err)
			}
			if layoutErr.ItemKind != tt.wantKind || layoutErr.Item != tt.item.Item {
				t.Errorf("got %+v, want %s %s", layoutErr, tt.wantKind, tt.item.Item)
			}
		})
	}
}

func TestValidateLineItemsIgnored(t *testing.T) {
	d := &Dashboard{
		Title:  "x",
		Layout: Layout{Kind: LayoutAbsolute, Structure: []LayoutItem{{Item: "anything", Kind: ItemLine}}},
	}
	if err := Validate(d); err != nil {
		t.Errorf("Validate error = %v, want nil", err)
	}
}

func TestValidateFirstViolationWins(t *testing.T) {
	d := &Dashboard{
		Title: "x",
		Visualizations: map[string]Visualization{
			"viz_b": vizOn("ds_missing_b"),
			"viz_a": vizOn("ds_missing_a"),
		},
		DataSources: map[string]DataSource{"ds_c": chain("nowhere")},
		Layout:      Layout{Structure: []LayoutItem{{Item: "viz_z", Kind: ItemBlock}}},
	}

	// Visualizations are checked first, in id order.
	var refErr *errors.DataSourceReferenceError
	if err := Validate(d); !stderrors.As(err, &refErr) || refErr.Visualization != "viz_a" {
		t.Errorf("Validate error = %v, want violation for viz_a", err)
	}

	// With visualizations fixed, the chain is reported before the layout.
	d.DataSources["ds_missing_a"] = search("a")
	d.DataSources["ds_missing_b"] = search("b")
	if err := Validate(d); !errors.Is(err, errors.ErrCodeInvalidDataSourceChain) {
		t.Errorf("Validate error = %v, want chain violation", err)
	}
}

func TestValidateCycles(t *testing.T) {
	d := &Dashboard{
		Title: "x",
		DataSources: map[string]DataSource{
			"ds_a":    chain("ds_b"),
			"ds_b":    chain("ds_c"),
			"ds_c":    chain("ds_a"),
			"ds_root": search("index=main"),
			"ds_leaf": chain("ds_root"),
		},
	}

	if err := Validate(d); err != nil {
		t.Errorf("Validate error = %v, want nil (cycles are only checked strictly)", err)
	}

	err := ValidateStrict(d)
	var cycleErr *errors.DataSourceCycleError
	if !stderrors.As(err, &cycleErr) {
		t.Fatalf("ValidateStrict error = %v, want DataSourceCycleError", err)
	}
	want := []string{"ds_a", "ds_b", "ds_c", "ds_a"}
	if !slices.Equal(cycleErr.Chain, want) {
		t.Errorf("Chain = %v, want %v", cycleErr.Chain, want)
	}
	if !strings.Contains(err.Error(), "ds_a -> ds_b -> ds_c -> ds_a") {
		t.Errorf("message = %q", err.Error())
	}
}

func TestValidateStrictSelfExtend(t *testing.T) {
	d := &Dashboard{
		Title:       "x",
		DataSources: map[string]DataSource{"ds_loop": chain("ds_loop")},
	}

	var cycleErr *errors.DataSourceCycleError
	if err := ValidateStrict(d); !stderrors.As(err, &cycleErr) {
		t.Fatalf("ValidateStrict error = %v, want DataSourceCycleError", err)
	}
	if want := []string{"ds_loop", "ds_loop"}; !slices.Equal(cycleErr.Chain, want) {
		t.Errorf("Chain = %v, want %v", cycleErr.Chain, want)
	}
}

func TestValidateStrictTailIntoCycle(t *testing.T) {
	// ds_a leads into a cycle it is not part of.
	d := &Dashboard{
		Title: "x",
		DataSources: map[string]DataSource{
			"ds_a": chain("ds_x"),
			"ds_x": chain("ds_y"),
			"ds_y": chain("ds_x"),
		},
	}

	var cycleErr *errors.DataSourceCycleError
	if err := ValidateStrict(d); !stderrors.As(err, &cycleErr) {
		t.Fatalf("ValidateStrict error = %v, want DataSourceCycleError", err)
	}
	if want := []string{"ds_x", "ds_y", "ds_x"}; !slices.Equal(cycleErr.Chain, want) {
		t.Errorf("Chain = %v, want %v", cycleErr.Chain, want)
	}
}
