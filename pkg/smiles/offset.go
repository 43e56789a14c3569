package smiles

import (
	"slices"
	"strings"

	"github.com/moltext/moltext/pkg/ast"
)

// writeOffsetFused renders a fused group without explicit position data.
// Member rings are sorted by offset and written into a shared indexed
// sequence at offset+i. When two rings overlap, the atom value belongs to
// whichever ring writes first, but attachments accumulate from every ring
// that declares one at the shared position - only atom identity is owned
// by first-writer.
//
// If any position carries a nonzero branch depth the sequence is walked
// depth-aware with the interleaved close policy; otherwise a flat single
// pass emits bond, atom, open markers, close markers, then attachments at
// each position.
func writeOffsetFused(sb *strings.Builder, f *ast.FusedRing) error {
	rings := slices.Clone(memberRings(f))
	slices.SortStableFunc(rings, func(a, b *ast.Ring) int { return a.Offset - b.Offset })

	s := newFusedSeq()
	depths := make(map[int]int)
	for _, r := range rings {
		if r.Size <= 0 {
			continue
		}
		for i := 0; i < r.Size; i++ {
			pos := r.Offset + i
			e := s.at(pos)
			if e.atom == "" {
				e.atom = ringAtom(r, i+1)
			}
			e.atts = append(e.atts, r.Attachments[i+1]...)
			if i > 0 && e.bond == "" {
				e.bond = bondAt(r.Bonds, i-1)
			}
			if i < len(r.Depths) {
				if _, ok := depths[pos]; !ok {
					depths[pos] = r.Depths[i]
				}
			}
		}
		s.open(r.Offset, r.Number, closureBond(r))
		s.close(r.Offset+r.Size-1, r.Number)
	}

	slices.Sort(s.order)

	deep := false
	for _, d := range depths {
		if d != 0 {
			deep = true
			break
		}
	}
	if deep {
		normalizeDepthMap(depths, s.order)
		return walkFusedSeq(sb, s, depths)
	}

	for i, pos := range s.order {
		e := s.entries[pos]
		if i > 0 {
			sb.WriteString(e.bond)
		}
		sb.WriteString(atomOr(e.atom))
		writeMarkers(sb, e)
		if err := writeAttachments(sb, e.atts, false); err != nil {
			return err
		}
	}
	return nil
}
