// Package studio models modern JSON dashboard definitions and provides their
// parser, serializer, envelope wrapper and reference validator.
//
// # Model
//
// A [Dashboard] is a flat, id-referencing graph:
//
//	{
//	  "title": "Ops",
//	  "visualizations": {"viz_1": {"type": "splunk.singlevalue", "dataSources": {"primary": "ds_1"}}},
//	  "dataSources": {"ds_1": {"type": "ds.search", "options": {"query": "search index=main"}}},
//	  "layout": {"type": "absolute", "structure": [
//	    {"item": "viz_1", "type": "block", "position": {"x": 0, "y": 0, "w": 300, "h": 200}}
//	  ]}
//	}
//
// Visualizations reference data sources through their "dataSources" block,
// data sources may extend a base data source, and layout items reference
// visualizations (type "block") or inputs (type "input").
//
// # Parsing and Serialization
//
// [Parse] decodes JSON text and [Serialize] writes canonical JSON with
// lexically sorted keys. The pair satisfies the round-trip law
// Parse(Serialize(d)) == d under [Equal].
//
// # Envelope
//
// For deployment, the JSON text is carried inside a markup wrapper in a
// CDATA section. [WrapEnvelope] writes the wrapper and [ParseEnvelope] reads
// the first CDATA section back. A "]]>" sequence inside the JSON text is not
// escaped and corrupts the envelope.
//
// # Validation
//
// [Validate] checks references and fails fast on the first violation.
// [ValidateStrict] additionally rejects cyclic extends chains.
//
// # Concurrency
//
// All functions are stateless and safe for concurrent use. Dashboards are
// treated as immutable values once parsed.
package studio
