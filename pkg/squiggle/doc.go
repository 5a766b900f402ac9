// Package squiggle derives generative vector art from a 32-byte seed.
//
// # Overview
//
// Every artifact produced by this package is a pure function of a [Seed].
// The same seed always yields the same drawing, byte for byte, so callers
// can cache results keyed by seed without worrying about staleness.
//
// The generation pipeline is:
//
//	Seed
//	  ↓
//	[DeriveParams]  (oscillations, stroke width, gradient, offsets)
//	  ↓
//	[BuildPath] + [GradientFor]
//	  ↓
//	[RenderSVG]     (1000×1000 document)
//	  ↓
//	[GenerateMetadata] (base64 JSON data URI embedding the SVG)
//
// # Usage
//
//	seed, err := squiggle.ParseSeed("1234592349abcdef...")
//	if err != nil {
//	    return err
//	}
//	uri := squiggle.GenerateMetadata(seed)
//	// uri = "data:application/json;base64,eyJuYW1lIjoi..."
//
// # Seed Layout
//
// Bytes are consumed as follows:
//
//   - seed[0]: oscillation count (4–15)
//   - seed[1]: stroke width (10–80)
//   - seed[2]: gradient palette (mod 3)
//   - seed[3+i]: horizontal period of oscillation i (20–100)
//   - seed[15+i]: amplitude of oscillation i (100–600)
//
// The period and amplitude ranges share bytes 15–17 when there are more
// than twelve oscillations. That overlap is part of the seed→image mapping
// and must not be changed, or previously issued seeds would render
// differently.
//
// # Errors
//
// Generation never fails. Only [ParseSeed] returns an error, for malformed
// hex input.
package squiggle
