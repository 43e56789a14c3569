package smiles

import (
	"errors"
	"fmt"
	"strings"

	"github.com/moltext/moltext/pkg/ast"
)

// ErrUnknownNode is returned by [Encode] when a node's variant matches none
// of the known kinds. There is no recovery: an undefined node type cannot
// be serialized.
var ErrUnknownNode = errors.New("unknown node kind")

// Encode renders a molecular structure tree to SMILES text.
//
// Encode is the single dispatch point: every builder calls back into it
// (via the internal write function) for attachment subtrees, so a ring's
// side branch can itself contain further rings. All traversal state lives
// in per-call values, making Encode safe for concurrent use on independent
// trees.
func Encode(n ast.Node) (string, error) {
	var sb strings.Builder
	if err := write(&sb, n); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// write dispatches a node to the matching builder.
func write(sb *strings.Builder, n ast.Node) error {
	switch v := n.(type) {
	case *ast.Molecule:
		return writeMolecule(sb, v)
	case *ast.Linear:
		return writeLinear(sb, v)
	case *ast.Ring:
		return writeRing(sb, v)
	case *ast.FusedRing:
		return writeFused(sb, v)
	default:
		return fmt.Errorf("%w: %T", ErrUnknownNode, n)
	}
}

// writeMolecule concatenates the rendered components in order, prefixing
// each component after the first with its leading bond.
func writeMolecule(sb *strings.Builder, m *ast.Molecule) error {
	for i, c := range m.Components {
		if i > 0 {
			sb.WriteString(c.Bond)
		}
		if err := write(sb, c.Node); err != nil {
			return err
		}
	}
	return nil
}

// writeLinear walks atom positions 1..N, emitting bond, atom, and any
// attachments. The bond-array shape is determined by length: equal to the
// atom count means one bond before each atom, one shorter means one bond
// between each adjacent pair.
func writeLinear(sb *strings.Builder, n *ast.Linear) error {
	perAtom := len(n.Bonds) == len(n.Atoms)
	for i, atom := range n.Atoms {
		if perAtom {
			sb.WriteString(n.Bonds[i])
		} else if i > 0 {
			sb.WriteString(bondAt(n.Bonds, i-1))
		}
		sb.WriteString(atomOr(atom))
		// Chain-level attachments are always bracketed side branches; the
		// inline placement only applies to ring-hosted attachments.
		for _, att := range n.Attachments[i+1] {
			if err := writeBranch(sb, att.Node); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeBranch renders a node wrapped in its own parentheses.
func writeBranch(sb *strings.Builder, n ast.Node) error {
	sb.WriteByte('(')
	if err := write(sb, n); err != nil {
		return err
	}
	sb.WriteByte(')')
	return nil
}

// writeAttachments emits attachments in registration order, wrapping each
// in parentheses unless it resolves to inline placement.
func writeAttachments(sb *strings.Builder, atts []ast.Attachment, inlineBranchFollows bool) error {
	for _, att := range atts {
		if renderAsSibling(att.Placement, inlineBranchFollows) {
			if err := writeBranch(sb, att.Node); err != nil {
				return err
			}
		} else if err := write(sb, att.Node); err != nil {
			return err
		}
	}
	return nil
}

// renderAsSibling resolves an attachment's placement to a concrete choice.
//
// Explicit placements win. Auto placement defaults to sibling, except when
// an inline branch opens directly after the attachment's host position:
// such attachments sit on the chain side of the branch and default to
// inline. This asymmetry between the flat and branch-crossing builders is
// deliberate; keeping the rule in one place stops it from drifting.
func renderAsSibling(p ast.Placement, inlineBranchFollows bool) bool {
	switch p {
	case ast.PlacementSibling:
		return true
	case ast.PlacementInline:
		return false
	default:
		return !inlineBranchFollows
	}
}

// atomOr substitutes the default atom symbol for an empty one.
func atomOr(symbol string) string {
	if symbol == "" {
		return ast.DefaultAtom
	}
	return symbol
}

// bondAt returns bonds[i], or "" when the index is out of range.
func bondAt(bonds []string, i int) string {
	if i < 0 || i >= len(bonds) {
		return ""
	}
	return bonds[i]
}
