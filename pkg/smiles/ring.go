package smiles

import (
	"strconv"
	"strings"

	"github.com/moltext/moltext/pkg/ast"
)

// writeRing routes a ring to the matching builder. Rings carrying absolute
// positions or sequential continuations render through the interleaved
// fused-ring path as a single-member group; rings whose branch-depth
// metadata is non-uniform straddle a branch boundary and need the
// branch-crossing builder; everything else renders flat.
func writeRing(sb *strings.Builder, r *ast.Ring) error {
	if len(r.Positions) > 0 || len(r.Next) > 0 {
		return writeInterleaved(sb, &ast.FusedRing{Rings: []*ast.Ring{r}})
	}
	if uniformDepths(r.Depths) {
		return writeFlatRing(sb, r)
	}
	return writeCrossingRing(sb, r)
}

// ringAtom returns the atom symbol at a 1-based ring position, preferring
// a substitution override over the base atom.
func ringAtom(r *ast.Ring, pos int) string {
	if sub, ok := r.Substitutions[pos]; ok {
		return atomOr(sub)
	}
	return atomOr(r.Atom)
}

// closureBond returns the closure-bond symbol stored in the ring's last
// bond slot, if present.
func closureBond(r *ast.Ring) string {
	return bondAt(r.Bonds, r.Size-1)
}

// writeFlatRing renders a ring whose positions all sit at the same branch
// depth. Per position: inter-atom bond (from position 2 on), atom symbol,
// closure markers, then attachments. The closure label follows the atom it
// is attached to: the opening label (with its closure bond) comes directly
// after the first atom, the closing label after the last.
func writeFlatRing(sb *strings.Builder, r *ast.Ring) error {
	label := strconv.Itoa(r.Number)
	for i := 1; i <= r.Size; i++ {
		if i > 1 {
			sb.WriteString(bondAt(r.Bonds, i-2))
		}
		sb.WriteString(ringAtom(r, i))
		if i == 1 {
			sb.WriteString(closureBond(r))
			sb.WriteString(label)
		}
		if i == r.Size {
			sb.WriteString(label)
		}
		if err := writeAttachments(sb, r.Attachments[i], false); err != nil {
			return err
		}
	}
	return nil
}

// writeCrossingRing renders a ring whose closure straddles a branch
// boundary: some positions sit deeper than others, so the ring closes
// inside a branch that opened after it (or the reverse). The walker keeps
// the paren stream synchronized with the normalized per-position depths.
//
// Attachments at a position directly followed by a deeper position are
// deferred: they belong after the branch that is about to open, not before
// it. Auto placement resolves to inline for exactly those attachments.
func writeCrossingRing(sb *strings.Builder, r *ast.Ring) error {
	depths := normalizeDepths(r.Depths, r.Size)
	label := strconv.Itoa(r.Number)
	w := newBranchWalker(sb)

	for i := 1; i <= r.Size; i++ {
		d := depths[i-1]
		if err := w.closeToSibling(d); err != nil {
			return err
		}
		w.openTo(d)

		if i > 1 {
			sb.WriteString(bondAt(r.Bonds, i-2))
		}
		sb.WriteString(ringAtom(r, i))
		if i == 1 {
			sb.WriteString(closureBond(r))
			sb.WriteString(label)
		}
		if i == r.Size {
			sb.WriteString(label)
		}

		atts := r.Attachments[i]
		if len(atts) == 0 {
			continue
		}
		if i < r.Size && depths[i] > d {
			for _, att := range atts {
				w.deferAttachment(att)
			}
			continue
		}
		if err := writeAttachments(sb, atts, false); err != nil {
			return err
		}
	}

	if err := w.closeToSibling(0); err != nil {
		return err
	}
	return w.flushQueued()
}
