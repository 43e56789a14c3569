package smiles

import (
	"strings"
	"testing"

	"github.com/moltext/moltext/pkg/ast"
)

func TestEncodeInterleavedFused(t *testing.T) {
	tests := []struct {
		name string
		node ast.Node
		want string
	}{
		{
			name: "TwoRingsSharingAnEdge",
			node: ast.NewFused(
				ast.NewRing("c", 6, 1).Positions(0, 1, 2, 3, 4, 5).Build(),
				ast.NewRing("c", 6, 2).Positions(4, 5, 6, 7, 8, 9).Build(),
			).Build(),
			want: "c1cccc2c1ccc2",
		},
		{
			name: "SharedPositionAttachmentSuppressed",
			node: ast.NewFused(
				ast.NewRing("c", 6, 1).Positions(0, 1, 2, 3, 4, 5).
					Attach(5, ast.NewLinear("F").Build()).Build(),
				ast.NewRing("c", 6, 2).Positions(4, 5, 6, 7, 8, 9).
					Attach(1, ast.NewLinear("F").Build()).Build(),
			).Build(),
			want: "c1cccc2(F)c1ccc2",
		},
		{
			name: "ContinuationAtomFromGlobalMaps",
			node: ast.NewFused(
				ast.NewRing("C", 3, 1).Positions(0, 1, 2).Build(),
			).AllPositions(0, 1, 2, 3).AtomAt(3, "O").BondAt(3, "=").Build(),
			want: "C1CC1=O",
		},
		{
			name: "MarkerOrderPreservedAtSharedPosition",
			node: ast.NewFused(
				ast.NewRing("C", 4, 1).Positions(0, 1, 2, 3).Build(),
				ast.NewRing("C", 4, 2).Positions(0, 1, 2, 3).Build(),
			).MarkerOrderAt(0, 2, 1).Build(),
			want: "C21CCC12",
		},
		{
			name: "GlobalDepthOpensInlineBranch",
			node: ast.NewFused(
				ast.NewRing("C", 4, 1).Positions(0, 1, 2, 3).Build(),
			).DepthAt(2, 1).DepthAt(3, 1).Build(),
			want: "C1C(CC1)",
		},
		{
			name: "SequentialRingsChainAfterEachOther",
			node: ast.NewRing("C", 3, 1).
				Then(ast.NewRing("C", 3, 2).Build()).
				Build(),
			want: "C1CC1C2CC2",
		},
		{
			// Decalin: the continuation ring's offset overlaps two atoms
			// with its predecessor instead of chaining after it.
			name: "ContinuationWithOffsetOverlapsPredecessor",
			node: ast.NewRing("C", 6, 1).
				Then(ast.NewRing("C", 6, 2).Offset(4).Build()).
				Build(),
			want: "C1CCCC2C1CCCC2",
		},
		{
			// The shared atom carries ring 2's opening marker before
			// ring 1's closing label, matching the co-location policy.
			name: "ContinuationOffsetSharesSingleAtom",
			node: ast.NewRing("C", 4, 1).
				Then(ast.NewRing("C", 3, 2).Offset(3).Build()).
				Build(),
			want: "C1CCC21CC2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.node)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			if got != tt.want {
				t.Errorf("Encode = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEncodeOffsetFused(t *testing.T) {
	tests := []struct {
		name string
		node ast.Node
		want string
	}{
		{
			name: "SharedAtomsBetweenOffsets",
			node: ast.NewFused(
				ast.NewRing("C", 6, 1).Build(),
				ast.NewRing("C", 4, 2).Offset(2).Build(),
			).Build(),
			want: "C1CC2CCC12",
		},
		{
			name: "RingsSortedByOffset",
			node: ast.NewFused(
				ast.NewRing("C", 4, 2).Offset(2).Build(),
				ast.NewRing("C", 6, 1).Build(),
			).Build(),
			want: "C1CC2CCC12",
		},
		{
			name: "OverlapAccumulatesAttachments",
			node: ast.NewFused(
				ast.NewRing("C", 6, 1).Attach(3, ast.NewLinear("F").Build()).Build(),
				ast.NewRing("C", 4, 2).Offset(2).Attach(1, ast.NewLinear("Cl").Build()).Build(),
			).Build(),
			want: "C1CC2(F)(Cl)CCC12",
		},
		{
			name: "NonZeroDepthDelegatesToDepthWalk",
			node: ast.NewFused(
				ast.NewRing("C", 4, 1).Depths(0, 0, 1, 1).Build(),
			).Build(),
			want: "C1C(CC1)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.node)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			if got != tt.want {
				t.Errorf("Encode = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestFusedClosurePairing checks that each member ring's label appears
// exactly twice, for both representations.
func TestFusedClosurePairing(t *testing.T) {
	nodes := map[string]ast.Node{
		"offset": ast.NewFused(
			ast.NewRing("C", 6, 1).Build(),
			ast.NewRing("C", 4, 2).Offset(2).Build(),
			ast.NewRing("C", 3, 3).Offset(5).Build(),
		).Build(),
		"interleaved": ast.NewFused(
			ast.NewRing("c", 6, 1).Positions(0, 1, 2, 3, 4, 5).Build(),
			ast.NewRing("c", 6, 2).Positions(4, 5, 6, 7, 8, 9).Build(),
		).Build(),
	}

	for name, n := range nodes {
		t.Run(name, func(t *testing.T) {
			got, err := Encode(n)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			for _, label := range []string{"1", "2"} {
				if c := strings.Count(got, label); c != 2 {
					t.Errorf("label %s appears %d times in %q, want 2", label, c, got)
				}
			}
		})
	}
}
