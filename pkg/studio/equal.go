package studio

import (
	"slices"

	"github.com/matzehuels/dashbridge/pkg/value"
)

// Equal reports whether a and b are structurally equal. Nil and empty
// collections compare equal, as do a nil and an absent optional block, so
// that a dashboard equals itself after a Serialize/Parse round trip.
func Equal(a, b *Dashboard) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Title != b.Title || !equalStrPtr(a.Description, b.Description) {
		return false
	}
	if !equalMap(a.Visualizations, b.Visualizations, equalVisualization) ||
		!equalMap(a.DataSources, b.DataSources, equalDataSource) ||
		!equalMap(a.Inputs, b.Inputs, equalInput) {
		return false
	}
	if !equalLayout(a.Layout, b.Layout) {
		return false
	}
	var ad, bd map[string]value.Value
	if a.Defaults != nil {
		ad = a.Defaults.DataSources
	}
	if b.Defaults != nil {
		bd = b.Defaults.DataSources
	}
	return value.EqualMaps(ad, bd)
}

func equalMap[V any](a, b map[string]V, eq func(V, V) bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok || !eq(av, bv) {
			return false
		}
	}
	return true
}

func equalVisualization(a, b Visualization) bool {
	if a.Type != b.Type || a.Title != b.Title {
		return false
	}
	var ar, br DataSourceRefs
	if a.DataSourceRefs != nil {
		ar = *a.DataSourceRefs
	}
	if b.DataSourceRefs != nil {
		br = *b.DataSourceRefs
	}
	if ar.Primary != br.Primary || ar.Secondary != br.Secondary || !slices.Equal(ar.Annotations, br.Annotations) {
		return false
	}
	return value.EqualMaps(a.Options, b.Options) && value.EqualMaps(a.Context, b.Context)
}

func equalDataSource(a, b DataSource) bool {
	if a.Type != b.Type || a.Name != b.Name || a.Extends != b.Extends {
		return false
	}
	var ao, bo DataSourceOptions
	if a.Options != nil {
		ao = *a.Options
	}
	if b.Options != nil {
		bo = *b.Options
	}
	var aq, bq QueryParameters
	if ao.QueryParameters != nil {
		aq = *ao.QueryParameters
	}
	if bo.QueryParameters != nil {
		bq = *bo.QueryParameters
	}
	return ao.Query == bo.Query && aq == bq &&
		ao.Refresh == bo.Refresh && ao.RefreshType == bo.RefreshType &&
		equalBoolPtr(ao.EnableSmartSources, bo.EnableSmartSources)
}

func equalInput(a, b Input) bool {
	return a.Type == b.Type && a.Title == b.Title && a.Token == b.Token &&
		a.DefaultValue == b.DefaultValue && value.EqualMaps(a.Options, b.Options)
}

func equalLayout(a, b Layout) bool {
	if a.Kind != b.Kind || !value.EqualMaps(a.Options, b.Options) {
		return false
	}
	if len(a.GlobalInputs) != len(b.GlobalInputs) || len(a.Structure) != len(b.Structure) {
		return false
	}
	for i := range a.GlobalInputs {
		if a.GlobalInputs[i] != b.GlobalInputs[i] {
			return false
		}
	}
	for i := range a.Structure {
		x, y := a.Structure[i], b.Structure[i]
		if x.Item != y.Item || x.Kind != y.Kind || !equalPosition(x.Position, y.Position) {
			return false
		}
	}
	return true
}

func equalPosition(a, b Position) bool {
	return equalIntPtr(a.X, b.X) && equalIntPtr(a.Y, b.Y) &&
		equalIntPtr(a.W, b.W) && equalIntPtr(a.H, b.H) &&
		equalIntPtr(a.BootstrapWidth, b.BootstrapWidth) && equalIntPtr(a.Order, b.Order)
}

func equalIntPtr(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalBoolPtr(a, b *bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalStrPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
