// Package value provides a closed "any JSON value" type for untyped option
// payloads.
//
// Dashboard visualizations, data sources, inputs and layouts carry option
// bags whose shape is not modeled. [Value] holds one of seven variants:
// null, boolean, integer, float, string, sequence and mapping. Code switches
// on [Value.Kind] instead of inspecting interface types at runtime.
//
// # JSON
//
// [Value] implements json.Marshaler and json.Unmarshaler. Decoding walks the
// token stream and picks the first matching variant in a fixed order: bool,
// integer, float, string, sequence, mapping. A number literal becomes an
// integer when it fits int64 and a float otherwise.
//
// Encoding is the structural inverse and canonical:
//   - mapping keys are written in lexical order
//   - floats always carry a fraction or exponent ("2.0", not "2"), so an
//     encoded float never decodes back as an integer
//   - NaN and infinities cannot be encoded and fail with an error
//
// # Inference
//
// [Infer] re-types a plain string (as found in legacy markup options) into
// an integer, float, boolean or string. It is a best-effort heuristic, not a
// schema-driven coercion.
//
// # Concurrency
//
// Values are immutable after construction; all functions are safe for
// concurrent use.
package value
