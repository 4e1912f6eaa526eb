package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/dashbridge/pkg/cache"
	"github.com/matzehuels/dashbridge/pkg/convert"
	"github.com/matzehuels/dashbridge/pkg/errors"
	dashio "github.com/matzehuels/dashbridge/pkg/io"
	"github.com/matzehuels/dashbridge/pkg/observability"
	"github.com/matzehuels/dashbridge/pkg/simplexml"
	"github.com/matzehuels/dashbridge/pkg/studio"
)

// cacheKeyType labels conversion entries in cache hook events.
const cacheKeyType = "conversion"

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete parse → validate → convert pipeline with
// caching. The input is never modified.
func (r *Runner) Execute(ctx context.Context, input []byte, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := opts.Logger

	result := &Result{
		RunID:     uuid.NewString(),
		InputHash: cache.Hash(input),
	}
	logger = logger.With("run", result.RunID[:8])

	from := opts.From
	if from == "" {
		detected, err := dashio.Detect(input)
		if err != nil {
			return nil, fmt.Errorf("parse: %w", err)
		}
		from = detected
	}
	if opts.To == "" {
		opts.To = TargetFor(from)
	}
	result.From, result.To = from, opts.To

	cacheKey := r.Keyer.ConversionKey(result.InputHash, opts.ConversionKeyOpts(from))

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		data, hit, err := r.Cache.Get(ctx, cacheKey)
		switch {
		case err != nil:
			logger.Warn("cache read failed", "err", err)
		case hit:
			observability.Cache().OnCacheHit(ctx, cacheKeyType)
			logger.Debug("cache hit", "from", from, "to", opts.To)
			result.Output = data
			result.CacheHit = true
			return result, nil
		default:
			observability.Cache().OnCacheMiss(ctx, cacheKeyType)
		}
	}

	// Stage 1: Parse
	parseStart := time.Now()
	doc, err := r.Parse(ctx, input, from)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	result.Document = doc
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.Items = doc.Items()

	logger.Debug("parsed document",
		"format", from,
		"items", result.Stats.Items,
		"duration", result.Stats.ParseTime)

	// Stage 2: Validate
	if opts.Validate || opts.To != dashio.FormatSimpleXML {
		result.Studio = modernForm(doc)
	}
	if opts.Validate {
		validateStart := time.Now()
		if err := r.Validate(ctx, result.Studio, opts.Strict); err != nil {
			return nil, fmt.Errorf("validate: %w", err)
		}
		result.Stats.ValidateTime = time.Since(validateStart)
		logger.Debug("validated references", "strict", opts.Strict, "duration", result.Stats.ValidateTime)
	}

	// Stage 3: Convert
	convertStart := time.Now()
	envelopeID := opts.EnvelopeID
	if envelopeID == "" {
		envelopeID = DefaultEnvelopeID(doc, result.InputHash)
	}
	output, err := r.convert(ctx, doc, result.Studio, opts.To, envelopeID)
	if err != nil {
		return nil, fmt.Errorf("convert: %w", err)
	}
	result.Output = output
	result.Stats.ConvertTime = time.Since(convertStart)

	logger.Debug("converted document",
		"to", opts.To,
		"bytes", len(output),
		"duration", result.Stats.ConvertTime)

	// Cache the result
	if err := r.Cache.Set(ctx, cacheKey, output, opts.TTL); err != nil {
		logger.Warn("cache write failed", "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, cacheKeyType, len(output))
	}

	return result, nil
}

// Parse decodes input in the given format. An empty format is detected.
func (r *Runner) Parse(ctx context.Context, input []byte, format dashio.Format) (*dashio.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if format == "" {
		detected, err := dashio.Detect(input)
		if err != nil {
			return nil, err
		}
		format = detected
	}

	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, string(format))
	start := time.Now()

	doc, err := dashio.DecodeAs(input, format)

	items := 0
	if doc != nil {
		items = doc.Items()
	}
	hooks.OnParseComplete(ctx, string(format), items, time.Since(start), err)
	return doc, err
}

// Validate checks the references of d, adding the cycle check when strict
// is set.
func (r *Runner) Validate(ctx context.Context, d *studio.Dashboard, strict bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	hooks := observability.Pipeline()
	hooks.OnValidateStart(ctx, strict)
	start := time.Now()

	var err error
	if strict {
		err = studio.ValidateStrict(d)
	} else {
		err = studio.Validate(d)
	}

	hooks.OnValidateComplete(ctx, strict, time.Since(start), err)
	return err
}

// Convert serializes doc in the target format. envelopeID is only used for
// envelope output.
func (r *Runner) Convert(ctx context.Context, doc *dashio.Document, to dashio.Format, envelopeID string) ([]byte, error) {
	if doc == nil || (doc.Studio == nil && doc.SimpleXML == nil) {
		return nil, errors.New(errors.ErrCodeInternal, "document holds no dashboard")
	}
	var modern *studio.Dashboard
	if to != dashio.FormatSimpleXML {
		modern = modernForm(doc)
	}
	return r.convert(ctx, doc, modern, to, envelopeID)
}

func (r *Runner) convert(ctx context.Context, doc *dashio.Document, modern *studio.Dashboard, to dashio.Format, envelopeID string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnConvertStart(ctx, string(doc.Format), string(to))
	start := time.Now()

	var buf bytes.Buffer
	var err error
	switch to {
	case dashio.FormatStudio:
		err = dashio.WriteStudio(modern, &buf)
	case dashio.FormatEnvelope:
		err = dashio.WriteEnvelope(modern, envelopeID, &buf)
	case dashio.FormatSimpleXML:
		err = dashio.WriteSimpleXML(legacyForm(doc), &buf)
	default:
		err = errors.New(errors.ErrCodeUnsupported, "unsupported target format %q", to)
	}

	hooks.OnConvertComplete(ctx, string(doc.Format), string(to), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DefaultEnvelopeID returns the id of an envelope input, or a name-based
// UUID of the input hash so that repeated runs produce the same envelope.
func DefaultEnvelopeID(doc *dashio.Document, inputHash string) string {
	if doc != nil && doc.EnvelopeID != "" && errors.ValidateEnvelopeID(doc.EnvelopeID) == nil {
		return doc.EnvelopeID
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("dashbridge:"+inputHash)).String()
}

func modernForm(doc *dashio.Document) *studio.Dashboard {
	if doc.Studio != nil {
		return doc.Studio
	}
	return convert.ToStudio(doc.SimpleXML)
}

func legacyForm(doc *dashio.Document) *simplexml.Dashboard {
	if doc.SimpleXML != nil {
		return doc.SimpleXML
	}
	return convert.ToSimpleXML(doc.Studio)
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
