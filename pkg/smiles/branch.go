package smiles

import (
	"strings"

	"github.com/moltext/moltext/pkg/ast"
)

// pendingAttachment is an attachment whose emission was deferred past an
// inline branch, with its placement already resolved.
type pendingAttachment struct {
	node    ast.Node
	sibling bool // parenthesized when flushed; inline otherwise
}

// branchFrame is one open parenthesis level. base is the depth outside the
// frame's parenthesis; pendings are flushed when the frame closes.
type branchFrame struct {
	base     int
	pendings []pendingAttachment
}

// branchWalker keeps an explicit depth counter synchronized with emitted
// '(' and ')' characters, and defers side-branch content until the output
// stream returns to the right depth. The frame stack replaces a pending
// table keyed by position, so no map is mutated during iteration.
//
// Each walker belongs to a single encode call; it is never shared.
type branchWalker struct {
	sb     *strings.Builder
	depth  int
	frames []branchFrame
	queued []pendingAttachment // waiting for the next opened frame
}

func newBranchWalker(sb *strings.Builder) *branchWalker {
	return &branchWalker{sb: sb}
}

// deferAttachment queues an attachment recorded at a position whose next
// position is strictly deeper. Auto placement resolves to inline here: the
// attachment sits on the chain side of the branch about to open.
func (w *branchWalker) deferAttachment(att ast.Attachment) {
	w.queued = append(w.queued, pendingAttachment{
		node:    att.Node,
		sibling: renderAsSibling(att.Placement, true),
	})
}

// openTo emits '(' until the depth counter reaches target. Attachments
// queued by deferAttachment ride on the first frame opened, since that is
// the frame whose close returns the stream to their host depth.
func (w *branchWalker) openTo(target int) {
	for w.depth < target {
		w.sb.WriteByte('(')
		f := branchFrame{base: w.depth}
		if len(w.queued) > 0 {
			f.pendings = w.queued
			w.queued = nil
		}
		w.frames = append(w.frames, f)
		w.depth++
	}
}

// closeToSibling emits ')' while the depth counter exceeds target, flushing
// each closing frame's pendings with the sibling policy: inline attachments
// land before the ')' (still inside the branch), sibling attachments land
// after it, parenthesized, at the shallower depth.
func (w *branchWalker) closeToSibling(target int) error {
	for w.depth > target {
		f := w.pop()
		for _, p := range f.pendings {
			if !p.sibling {
				if err := write(w.sb, p.node); err != nil {
					return err
				}
			}
		}
		w.sb.WriteByte(')')
		w.depth--
		for _, p := range f.pendings {
			if p.sibling {
				if err := writeBranch(w.sb, p.node); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// closeToInterleaved emits ')' while the depth counter exceeds target,
// flushing each closing frame's pendings immediately after the ')'. No
// before/after split: in the interleaved representation placement is
// encoded directly in the attachment flag.
func (w *branchWalker) closeToInterleaved(target int) error {
	for w.depth > target {
		f := w.pop()
		w.sb.WriteByte(')')
		w.depth--
		for _, p := range f.pendings {
			if p.sibling {
				if err := writeBranch(w.sb, p.node); err != nil {
					return err
				}
			} else if err := write(w.sb, p.node); err != nil {
				return err
			}
		}
	}
	return nil
}

// flushQueued emits attachments still queued after all frames closed.
// These were deferred at the final positions of the walk and never got a
// frame; they flush at depth 0.
func (w *branchWalker) flushQueued() error {
	for _, p := range w.queued {
		if p.sibling {
			if err := writeBranch(w.sb, p.node); err != nil {
				return err
			}
		} else if err := write(w.sb, p.node); err != nil {
			return err
		}
	}
	w.queued = nil
	return nil
}

func (w *branchWalker) pop() branchFrame {
	f := w.frames[len(w.frames)-1]
	w.frames = w.frames[:len(w.frames)-1]
	return f
}

// normalizeDepths pads a branch-depth sequence to size entries (missing
// slots default to 0) and shifts it so its minimum is 0. Depths are
// relative to the enclosing context, never absolute; normalizing an
// already-zero-based sequence is a no-op. The input is left untouched.
func normalizeDepths(depths []int, size int) []int {
	out := make([]int, size)
	copy(out, depths)
	min := 0
	for i, d := range out {
		if i == 0 || d < min {
			min = d
		}
	}
	if min != 0 {
		for i := range out {
			out[i] -= min
		}
	}
	return out
}

// uniformDepths reports whether every entry equals the first. An empty or
// single-entry sequence is uniform.
func uniformDepths(depths []int) bool {
	if len(depths) < 2 {
		return true
	}
	for _, d := range depths[1:] {
		if d != depths[0] {
			return false
		}
	}
	return true
}
