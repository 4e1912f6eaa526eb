// Package pipeline runs the parse → validate → convert → serialize flow for
// a single dashboard document.
//
// The CLI and any embedding service share this package so that format
// detection, validation and caching behave the same everywhere.
//
// # Stages
//
//  1. Parse: detect the input format and decode it
//  2. Validate: check the references of the modern form (optional)
//  3. Convert: translate to the target format and serialize
//
// Outputs are cached by the content hash of the input together with every
// option that changes the output, so a repeated conversion of the same
// document returns the stored bytes without parsing.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, input, pipeline.Options{
//	    To:       dashio.FormatStudio,
//	    Validate: true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(result.Output)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dashbridge/pkg/cache"
	"github.com/matzehuels/dashbridge/pkg/errors"
	dashio "github.com/matzehuels/dashbridge/pkg/io"
	"github.com/matzehuels/dashbridge/pkg/studio"
)

// =============================================================================
// Default Values
// =============================================================================

// DefaultTTL is how long converted outputs stay cached.
const DefaultTTL = 7 * 24 * time.Hour

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures a pipeline run.
type Options struct {
	// From is the input format. Empty means detect from the input.
	From dashio.Format `json:"from,omitempty"`

	// To is the output format. Empty means the other family: legacy input
	// converts to studio, modern input to simplexml.
	To dashio.Format `json:"to,omitempty"`

	// Validate checks the references of the modern form before output.
	Validate bool `json:"validate,omitempty"`

	// Strict adds the data source cycle check. Implies Validate.
	Strict bool `json:"strict,omitempty"`

	// EnvelopeID is the id written into envelope output. Empty means the id
	// of an envelope input, or an id derived from the input hash.
	EnvelopeID string `json:"envelope_id,omitempty"`

	// Refresh bypasses cached outputs.
	Refresh bool `json:"refresh,omitempty"`

	// TTL is the cache lifetime of the output.
	TTL time.Duration `json:"ttl,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies this run in logs and hook events.
	RunID string

	// From and To are the resolved input and output formats.
	From dashio.Format
	To   dashio.Format

	// Output is the serialized document in the target format.
	Output []byte

	// InputHash is the content hash of the input bytes.
	InputHash string

	// Document is the decoded input. Nil on a cache hit.
	Document *dashio.Document

	// Studio is the modern form of the document, when one was built.
	// Nil on a cache hit.
	Studio *studio.Dashboard

	// Stats contains timing and size information.
	Stats Stats

	// CacheHit reports whether Output came from the cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Items        int
	ParseTime    time.Duration
	ValidateTime time.Duration
	ConvertTime  time.Duration
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and applies defaults. Calling it
// more than once has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.From != "" {
		if _, err := dashio.ParseFormat(string(o.From)); err != nil {
			return fmt.Errorf("from: %w", err)
		}
	}
	if o.To != "" {
		if _, err := dashio.ParseFormat(string(o.To)); err != nil {
			return fmt.Errorf("to: %w", err)
		}
	}
	if o.EnvelopeID != "" {
		if err := errors.ValidateEnvelopeID(o.EnvelopeID); err != nil {
			return err
		}
	}
	if o.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "ttl cannot be negative")
	}

	if o.Strict {
		o.Validate = true
	}
	if o.TTL == 0 {
		o.TTL = DefaultTTL
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// TargetFor returns the output format used when none is requested.
func TargetFor(from dashio.Format) dashio.Format {
	if from == dashio.FormatSimpleXML {
		return dashio.FormatStudio
	}
	return dashio.FormatSimpleXML
}

// ConversionKeyOpts returns cache key options for a run from the given
// input format.
func (o *Options) ConversionKeyOpts(from dashio.Format) cache.ConversionKeyOpts {
	return cache.ConversionKeyOpts{
		From:       string(from),
		To:         string(o.To),
		Validate:   o.Validate,
		Strict:     o.Strict,
		EnvelopeID: o.EnvelopeID,
	}
}
