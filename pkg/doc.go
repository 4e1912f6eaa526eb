// Package pkg provides the core libraries for dashbridge dashboard conversion.
//
// # Overview
//
// Dashbridge moves dashboard definitions between two representations: the
// legacy SimpleXML markup and the modern Studio JSON format, which is
// deployed inside a markup envelope. The pkg directory is organized into
// three main areas:
//
//  1. Document models - [value], [studio], [simplexml]
//  2. Translation - [convert] and the [io] readers and writers
//  3. Orchestration - [pipeline] with [cache] and [observability]
//
// # Architecture
//
// The typical data flow through dashbridge:
//
//	Legacy markup / Studio JSON / envelope
//	         ↓
//	    [io] package (format detection + decoding)
//	         ↓
//	    [studio] package (reference validation)
//	         ↓
//	    [convert] package (legacy ⇄ modern translation)
//	         ↓
//	    Studio JSON / envelope / legacy markup output
//
// # Quick Start
//
// Convert legacy markup to Studio JSON:
//
//	import (
//	    "github.com/matzehuels/dashbridge/pkg/convert"
//	    "github.com/matzehuels/dashbridge/pkg/simplexml"
//	    "github.com/matzehuels/dashbridge/pkg/studio"
//	)
//
//	// 1. Parse the legacy markup
//	legacy, err := simplexml.Parse(markup)
//
//	// 2. Translate to the modern model
//	d := convert.ToStudio(legacy)
//
//	// 3. Check references
//	if err := studio.Validate(d); err != nil {
//	    return err
//	}
//
//	// 4. Serialize, optionally wrapped for deployment
//	text, err := studio.Serialize(d)
//	envelope := studio.WrapEnvelope(text, "ops_overview")
//
// # Main Packages
//
// ## Document Models
//
// [value] - Dynamic JSON values (null, bool, int, float, string, sequence,
// map) used for free-form option blocks. Integers and floats stay distinct.
//
// [studio] - The modern Studio dashboard model with its parser, canonical
// serializer, envelope wrapper and fail-fast reference validator.
//
// [simplexml] - The legacy dashboard model with a streaming token scanner
// and a markup writer.
//
// ## Translation
//
// [convert] - Bidirectional conversion with the visualization and input type
// tables, grid layout on the way in and row grouping on the way out.
//
// [io] - Format detection and file import/export for all three formats.
//
// ## Infrastructure
//
// [pipeline] - The parse → validate → convert pipeline shared by the CLI and
// embedding services.
//
// [cache] - Conversion output cache with file, redis and null backends.
//
// [observability] - Hooks for pipeline and cache events.
//
// [errors] - Machine-readable error codes and typed reference violations.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...             # All tests
//	go test ./pkg/convert/...     # Specific package
//	go test -run Example ./pkg/... # Examples only
//
// [value]: https://pkg.go.dev/github.com/matzehuels/dashbridge/pkg/value
// [studio]: https://pkg.go.dev/github.com/matzehuels/dashbridge/pkg/studio
// [simplexml]: https://pkg.go.dev/github.com/matzehuels/dashbridge/pkg/simplexml
// [convert]: https://pkg.go.dev/github.com/matzehuels/dashbridge/pkg/convert
// [io]: https://pkg.go.dev/github.com/matzehuels/dashbridge/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/dashbridge/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/dashbridge/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/dashbridge/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/dashbridge/pkg/errors
package pkg
