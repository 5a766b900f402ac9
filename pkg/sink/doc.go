// Package sink renders squiggle parameters into formats other than the
// canonical SVG document.
//
// # Output Formats
//
//   - PNG: [RenderPNG] rasterizes the squiggle with fogleman/gg. It is a
//     preview; the SVG stays the reference rendering.
//   - JSON: [RenderJSON] exports the derived parameters and path geometry
//     for external tooling.
//
// # Usage
//
//	p := squiggle.DeriveParams(seed)
//	png, err := sink.RenderPNG(p, sink.WithScale(0.5))
//	doc, err := sink.RenderJSON(p, sink.WithJSONSeed(seed))
package sink
