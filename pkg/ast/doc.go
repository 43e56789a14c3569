// Package ast defines the molecular structure tree consumed by the SMILES
// writer in [github.com/moltext/moltext/pkg/smiles].
//
// A molecule is described as a tree of tagged variants: linear chains,
// rings, and fused-ring groups, optionally carrying side branches
// (attachments) at arbitrary positions. Nodes are plain value records -
// the writer never mutates them, so a single tree can be encoded from
// multiple goroutines.
//
// # Building trees
//
// Nodes can be assembled directly or through the fluent builders:
//
//	benzene := ast.NewRing("c", 6, 1).Build()
//	toluene := ast.NewRing("c", 6, 1).
//		Attach(1, ast.NewLinear("C").Build()).
//		Build()
//
// # Positions
//
// All per-position maps (attachments, substitutions) are keyed by 1-based
// atom position within the owning node. Fused-ring position maps use
// absolute 0-based positions in the shared output sequence instead.
package ast
