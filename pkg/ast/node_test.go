package ast

import (
	"slices"
	"testing"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindMolecule, "molecule"},
		{KindLinear, "linear"},
		{KindRing, "ring"},
		{KindFusedRing, "fused-ring"},
		{Kind(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestNodeKinds(t *testing.T) {
	tests := []struct {
		node Node
		want Kind
	}{
		{&Molecule{}, KindMolecule},
		{&Linear{}, KindLinear},
		{&Ring{}, KindRing},
		{&FusedRing{}, KindFusedRing},
	}
	for _, tt := range tests {
		if got := tt.node.Kind(); got != tt.want {
			t.Errorf("%T.Kind() = %v, want %v", tt.node, got, tt.want)
		}
	}
}

func TestLinearBuilder(t *testing.T) {
	n := NewLinear("C", "C").
		Atom("O").
		Bonds("", "=").
		Attach(2, NewLinear("N").Build()).
		AttachAs(3, NewLinear("F").Build(), PlacementInline).
		Build()

	if !slices.Equal(n.Atoms, []string{"C", "C", "O"}) {
		t.Errorf("Atoms = %v", n.Atoms)
	}
	if !slices.Equal(n.Bonds, []string{"", "="}) {
		t.Errorf("Bonds = %v", n.Bonds)
	}
	if len(n.Attachments[2]) != 1 || n.Attachments[2][0].Placement != PlacementAuto {
		t.Errorf("Attachments[2] = %v", n.Attachments[2])
	}
	if len(n.Attachments[3]) != 1 || n.Attachments[3][0].Placement != PlacementInline {
		t.Errorf("Attachments[3] = %v", n.Attachments[3])
	}
}

func TestRingBuilder(t *testing.T) {
	next := NewRing("C", 3, 2).Build()
	r := NewRing("c", 6, 1).
		Bonds("=", "", "", "", "", "").
		Substitute(2, "n").
		Attach(3, NewLinear("Cl").Build()).
		Depths(0, 0, 1, 1, 1, 0).
		Then(next).
		Build()

	if r.Atom != "c" || r.Size != 6 || r.Number != 1 {
		t.Errorf("ring = %+v", r)
	}
	if r.Substitutions[2] != "n" {
		t.Errorf("Substitutions = %v", r.Substitutions)
	}
	if len(r.Attachments[3]) != 1 {
		t.Errorf("Attachments = %v", r.Attachments)
	}
	if !slices.Equal(r.Depths, []int{0, 0, 1, 1, 1, 0}) {
		t.Errorf("Depths = %v", r.Depths)
	}
	if len(r.Next) != 1 || r.Next[0] != next {
		t.Errorf("Next = %v", r.Next)
	}
}

func TestBuildCopiesRecord(t *testing.T) {
	b := NewRing("C", 5, 1)
	first := b.Build()
	second := b.Substitute(1, "N").Build()

	if first.Substitutions != nil {
		t.Errorf("first build saw later substitution: %v", first.Substitutions)
	}
	if second.Substitutions[1] != "N" {
		t.Errorf("second.Substitutions = %v", second.Substitutions)
	}
}

func TestFusedBuilder(t *testing.T) {
	r1 := NewRing("c", 6, 1).Positions(0, 1, 2, 3, 4, 5).Build()
	r2 := NewRing("c", 6, 2).Positions(4, 5, 6, 7, 8, 9).Build()
	f := NewFused(r1, r2).
		AllPositions(0, 1, 2, 3, 4, 5, 6, 7, 8, 9).
		DepthAt(7, 1).
		AtomAt(3, "n").
		BondAt(6, "=").
		MarkerOrderAt(5, 2, 1).
		Attach(9, NewLinear("O").Build()).
		Build()

	if len(f.Rings) != 2 {
		t.Fatalf("Rings = %d", len(f.Rings))
	}
	if !f.Interleaved() {
		t.Error("Interleaved() = false, want true")
	}
	if f.Depths[7] != 1 || f.Atoms[3] != "n" || f.Bonds[6] != "=" {
		t.Errorf("maps = %v %v %v", f.Depths, f.Atoms, f.Bonds)
	}
	if !slices.Equal(f.MarkerOrder[5], []int{2, 1}) {
		t.Errorf("MarkerOrder = %v", f.MarkerOrder)
	}
}

func TestInterleavedDetection(t *testing.T) {
	offset := NewFused(NewRing("C", 6, 1).Build(), NewRing("C", 4, 2).Offset(2).Build()).Build()
	if offset.Interleaved() {
		t.Error("offset group reported interleaved")
	}

	byRing := NewFused(NewRing("C", 6, 1).Positions(0, 1, 2, 3, 4, 5).Build()).Build()
	if !byRing.Interleaved() {
		t.Error("ring positions not detected")
	}
}
