// Package viz renders molecule structures as bond graph diagrams.
//
// # Overview
//
// This package produces graph visualizations using Graphviz, where atoms
// appear as circles connected by bond edges. It is a structural view of
// the molecule tree, complementing the text notation produced by the
// smiles package.
//
// # Usage
//
// Convert a molecule to DOT format, then render to SVG:
//
//	dot, err := viz.ToDOT(mol, viz.Options{})
//	svg, err := viz.RenderSVG(dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := viz.RenderPDF(dot)
//	png, err := viz.RenderPNG(dot, 2.0)  // 2x scale
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: When true, atom labels include their node index
//
// # DOT Format
//
// The [ToDOT] function produces Graphviz DOT source that can be:
//
//   - Rendered directly via [RenderSVG]
//   - Saved and processed with external Graphviz tools
//   - Customized before rendering
//
// Double and triple bonds are drawn as parallel edge lines, aromatic
// bonds as dashed edges, and aromatic atoms with a grey fill.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package viz
