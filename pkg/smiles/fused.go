package smiles

import (
	"slices"
	"strconv"
	"strings"

	"github.com/moltext/moltext/pkg/ast"
)

// ringMarker records a ring opening or closing at an absolute position.
// Open markers carry the ring's closure-bond symbol; both carry the
// closure label.
type ringMarker struct {
	number int
	bond   string // closure bond, open markers only
	seq    int    // insertion order, tiebreaker when no explicit order exists
}

// fusedEntry is one position of the shared atom sequence a fused group
// renders into.
type fusedEntry struct {
	atom   string
	bond   string // bond before this atom
	atts   []ast.Attachment
	owned  bool // an earlier ring populated this position
	opens  []ringMarker
	closes []ringMarker
}

// fusedSeq accumulates the union of all member-ring positions in first-seen
// order, plus per-position entries.
type fusedSeq struct {
	order   []int
	entries map[int]*fusedEntry
	seq     int
}

func newFusedSeq() *fusedSeq {
	return &fusedSeq{entries: make(map[int]*fusedEntry)}
}

// at returns the entry for pos, creating it on first reference.
func (s *fusedSeq) at(pos int) *fusedEntry {
	if e, ok := s.entries[pos]; ok {
		return e
	}
	e := &fusedEntry{}
	s.entries[pos] = e
	s.order = append(s.order, pos)
	return e
}

func (s *fusedSeq) open(pos, number int, bond string) {
	e := s.at(pos)
	e.opens = append(e.opens, ringMarker{number: number, bond: bond, seq: s.seq})
	s.seq++
}

func (s *fusedSeq) close(pos, number int) {
	e := s.at(pos)
	e.closes = append(e.closes, ringMarker{number: number, seq: s.seq})
	s.seq++
}

// memberRings flattens a group's rings with their sequential continuations,
// preserving chaining order.
func memberRings(f *ast.FusedRing) []*ast.Ring {
	var out []*ast.Ring
	var add func(r *ast.Ring)
	add = func(r *ast.Ring) {
		out = append(out, r)
		for _, next := range r.Next {
			add(next)
		}
	}
	for _, r := range f.Rings {
		add(r)
	}
	return out
}

// writeFused routes a fused group to the interleaved builder when explicit
// position data is present, and to the offset builder otherwise.
func writeFused(sb *strings.Builder, f *ast.FusedRing) error {
	if f.Interleaved() {
		return writeInterleaved(sb, f)
	}
	return writeOffsetFused(sb, f)
}

// writeInterleaved renders a fused group whose member rings share atoms at
// known absolute positions. It builds one ordered atom sequence covering
// the union of ring positions, sequential continuations, and standalone
// continuation atoms, then walks it depth-aware with the interleaved close
// policy.
//
// Atom identity at a shared position belongs to the first ring that writes
// it, and attachments are not re-added at positions an earlier ring already
// populated: atoms shared between fused rings must not duplicate attachment
// rendering.
func writeInterleaved(sb *strings.Builder, f *ast.FusedRing) error {
	s := newFusedSeq()
	depths := make(map[int]int)

	// Global position list first: it fixes the base traversal order.
	for _, pos := range f.AllPositions {
		s.at(pos)
	}

	for _, r := range memberRings(f) {
		positions := r.Positions
		if len(positions) == 0 && r.Size > 0 {
			positions = continuationPositions(s, r)
		}
		if len(positions) == 0 {
			continue
		}
		for idx, pos := range positions {
			e := s.at(pos)
			if !e.owned {
				e.atom = ringAtom(r, idx+1)
				e.atts = r.Attachments[idx+1]
				e.owned = true
			}
			if idx > 0 && e.bond == "" {
				e.bond = bondAt(r.Bonds, idx-1)
			}
			if idx < len(r.Depths) {
				if _, ok := depths[pos]; !ok {
					depths[pos] = r.Depths[idx]
				}
			}
		}
		s.open(positions[0], r.Number, closureBond(r))
		s.close(positions[len(positions)-1], r.Number)
	}

	// Fill continuation atoms and apply the group-level override maps.
	for _, pos := range s.order {
		e := s.entries[pos]
		if atom, ok := f.Atoms[pos]; ok {
			e.atom = atom
		}
		if e.bond == "" {
			e.bond = f.Bonds[pos]
		}
		if !e.owned {
			e.atts = f.Attachments[pos]
		}
		if d, ok := f.Depths[pos]; ok {
			depths[pos] = d
		}
	}

	normalizeDepthMap(depths, s.order)
	sortMarkers(s, f.MarkerOrder)
	return walkFusedSeq(sb, s, depths)
}

// continuationPositions places a continuation ring in the shared sequence.
// A ring declaring a nonzero Offset sits at Offset..Offset+Size-1 so it can
// overlap its predecessor; otherwise it chains directly after the highest
// position placed so far.
func continuationPositions(s *fusedSeq, r *ast.Ring) []int {
	start := r.Offset
	if start == 0 {
		for _, pos := range s.order {
			if pos >= start {
				start = pos + 1
			}
		}
	}
	positions := make([]int, r.Size)
	for i := range positions {
		positions[i] = start + i
	}
	return positions
}

// normalizeDepthMap shifts the depth values of the in-scope positions so
// their minimum is 0. Positions without an entry count as depth 0.
func normalizeDepthMap(depths map[int]int, order []int) {
	min := 0
	for i, pos := range order {
		d := depths[pos]
		if i == 0 || d < min {
			min = d
		}
	}
	if min == 0 {
		return
	}
	for _, pos := range order {
		depths[pos] = depths[pos] - min
	}
}

// sortMarkers orders co-located markers: opens sort before closes at
// emission, and within each kind the preserved left-to-right appearance
// order wins when known, else ascending closure label. This reproduces the
// original digit adjacency ("12" vs "21"), which matters for round-trip
// fidelity, not chemistry.
func sortMarkers(s *fusedSeq, markerOrder map[int][]int) {
	for pos, e := range s.entries {
		rank := func(m ringMarker) (int, int) {
			if want, ok := markerOrder[pos]; ok {
				if i := slices.Index(want, m.number); i >= 0 {
					return 0, i
				}
			}
			return 1, m.number
		}
		byRank := func(a, b ringMarker) int {
			ga, ka := rank(a)
			gb, kb := rank(b)
			if ga != gb {
				return ga - gb
			}
			return ka - kb
		}
		slices.SortStableFunc(e.opens, byRank)
		slices.SortStableFunc(e.closes, byRank)
	}
}

// writeMarkers emits a position's ring markers after its atom: opening
// markers first (closure bond, then label), then closing labels.
func writeMarkers(sb *strings.Builder, e *fusedEntry) {
	for _, m := range e.opens {
		sb.WriteString(m.bond)
		sb.WriteString(strconv.Itoa(m.number))
	}
	for _, m := range e.closes {
		sb.WriteString(strconv.Itoa(m.number))
	}
}

// walkFusedSeq traverses the shared sequence exactly like the
// branch-crossing algorithm - open and close parens against normalized
// depths, defer attachments past inline branches - but closes with the
// interleaved policy: pendings flush right after the matching ')', with no
// sibling/inline split.
func walkFusedSeq(sb *strings.Builder, s *fusedSeq, depths map[int]int) error {
	w := newBranchWalker(sb)
	for i, pos := range s.order {
		e := s.entries[pos]
		d := depths[pos]
		if err := w.closeToInterleaved(d); err != nil {
			return err
		}
		w.openTo(d)

		if i > 0 {
			sb.WriteString(e.bond)
		}
		sb.WriteString(atomOr(e.atom))
		writeMarkers(sb, e)

		if len(e.atts) == 0 {
			continue
		}
		if i+1 < len(s.order) && depths[s.order[i+1]] > d {
			for _, att := range e.atts {
				w.deferAttachment(att)
			}
			continue
		}
		if err := writeAttachments(sb, e.atts, false); err != nil {
			return err
		}
	}
	if err := w.closeToInterleaved(0); err != nil {
		return err
	}
	return w.flushQueued()
}
