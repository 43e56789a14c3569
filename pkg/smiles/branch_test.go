package smiles

import (
	"slices"
	"strings"
	"testing"

	"github.com/moltext/moltext/pkg/ast"
)

func TestNormalizeDepths(t *testing.T) {
	tests := []struct {
		name   string
		depths []int
		size   int
		want   []int
	}{
		{
			name:   "AlreadyZeroBasedIsNoOp",
			depths: []int{0, 0, 1, 0},
			size:   4,
			want:   []int{0, 0, 1, 0},
		},
		{
			name:   "ShiftedToZeroMinimum",
			depths: []int{2, 2, 3, 2},
			size:   4,
			want:   []int{0, 0, 1, 0},
		},
		{
			name:   "ShortInputPadsWithZero",
			depths: []int{1, 2},
			size:   4,
			want:   []int{1, 2, 0, 0},
		},
		{
			name:   "EmptyInput",
			depths: nil,
			size:   3,
			want:   []int{0, 0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeDepths(tt.depths, tt.size)
			if !slices.Equal(got, tt.want) {
				t.Errorf("normalizeDepths(%v, %d) = %v, want %v", tt.depths, tt.size, got, tt.want)
			}
		})
	}
}

func TestNormalizeDepthsDoesNotMutateInput(t *testing.T) {
	in := []int{3, 4, 3}
	normalizeDepths(in, 3)
	if !slices.Equal(in, []int{3, 4, 3}) {
		t.Errorf("input mutated: %v", in)
	}
}

func TestUniformDepths(t *testing.T) {
	tests := []struct {
		depths []int
		want   bool
	}{
		{nil, true},
		{[]int{2}, true},
		{[]int{1, 1, 1}, true},
		{[]int{0, 1, 0}, false},
	}

	for _, tt := range tests {
		if got := uniformDepths(tt.depths); got != tt.want {
			t.Errorf("uniformDepths(%v) = %v, want %v", tt.depths, got, tt.want)
		}
	}
}

func TestBranchWalkerSiblingClosePolicy(t *testing.T) {
	var sb strings.Builder
	w := newBranchWalker(&sb)

	w.deferAttachment(ast.Attachment{Node: ast.NewLinear("O").Build()}) // Auto resolves inline here
	w.deferAttachment(ast.Attachment{Node: ast.NewLinear("N").Build(), Placement: ast.PlacementSibling})
	w.openTo(1)
	sb.WriteString("C")
	if err := w.closeToSibling(0); err != nil {
		t.Fatalf("closeToSibling: %v", err)
	}

	// Inline pending before the ')', sibling pending after it.
	if got, want := sb.String(), "(CO)(N)"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
	if w.depth != 0 {
		t.Errorf("depth = %d, want 0", w.depth)
	}
}

func TestBranchWalkerInterleavedClosePolicy(t *testing.T) {
	var sb strings.Builder
	w := newBranchWalker(&sb)

	w.deferAttachment(ast.Attachment{Node: ast.NewLinear("O").Build()})
	w.deferAttachment(ast.Attachment{Node: ast.NewLinear("N").Build(), Placement: ast.PlacementSibling})
	w.openTo(1)
	sb.WriteString("C")
	if err := w.closeToInterleaved(0); err != nil {
		t.Fatalf("closeToInterleaved: %v", err)
	}

	// Everything flushes after the ')', placement decides bracketing only.
	if got, want := sb.String(), "(C)O(N)"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestBranchWalkerQueuedRidesFirstFrameOfJump(t *testing.T) {
	var sb strings.Builder
	w := newBranchWalker(&sb)

	w.deferAttachment(ast.Attachment{Node: ast.NewLinear("O").Build()})
	w.openTo(2) // depth jumps by two; pending belongs to the outer frame
	sb.WriteString("C")
	if err := w.closeToSibling(1); err != nil {
		t.Fatalf("closeToSibling(1): %v", err)
	}
	if got, want := sb.String(), "((C)"; got != want {
		t.Fatalf("after inner close: %q, want %q", got, want)
	}
	if err := w.closeToSibling(0); err != nil {
		t.Fatalf("closeToSibling(0): %v", err)
	}
	if got, want := sb.String(), "((C)O)"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestBranchWalkerFlushQueuedAtDepthZero(t *testing.T) {
	var sb strings.Builder
	w := newBranchWalker(&sb)

	w.deferAttachment(ast.Attachment{Node: ast.NewLinear("O").Build(), Placement: ast.PlacementSibling})
	if err := w.flushQueued(); err != nil {
		t.Fatalf("flushQueued: %v", err)
	}
	if got, want := sb.String(), "(O)"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}
