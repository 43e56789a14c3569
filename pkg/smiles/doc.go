// Package smiles renders molecular structure trees to SMILES line notation.
//
// The entry point is [Encode], which dispatches on the node variant and
// recursively serializes chains, rings, and fused-ring groups, keeping
// branch parentheses, ring-closure labels, and bond symbols consistent
// even when atoms are shared between overlapping rings or a ring closure
// straddles a branch boundary.
//
//	text, err := smiles.Encode(ast.NewRing("c", 6, 1).Build())
//	// text == "c1ccccc1"
//
// # Guarantees
//
// For every rendering, emitted '(' and ')' counts balance, and each member
// ring's closure label appears exactly twice. Bond symbols are positioned,
// never inferred: the caller chooses them. Ring-closure numbers are written
// as plain decimal digits; '%' escaping of multi-digit numbers is left to
// the caller.
//
// # Leniency
//
// Missing optional metadata (bonds, attachments, substitutions) renders as
// if empty. Malformed metadata - a branch-depth array shorter than the ring
// size, or a fused-ring position never populated - falls back to depth 0
// and atom "C" rather than failing.
//
// # Limits
//
// Encoding is a synchronous recursive tree walk. Recursion depth is bounded
// by the tree's attachment nesting depth, so a pathologically deep tree can
// exhaust the call stack. Each Encode call owns its traversal state, so
// concurrent encodes of independent trees need no locking.
package smiles
