package io

import (
	"github.com/moltext/moltext/pkg/ast"
	moltexterrors "github.com/moltext/moltext/pkg/errors"
)

// Node kind discriminators used in the JSON format.
const (
	kindLinear = "linear"
	kindRing   = "ring"
	kindFused  = "fused"
)

// Document is the top-level JSON object.
type Document struct {
	Name     string   `json:"name,omitempty"`
	Molecule Molecule `json:"molecule"`
}

// Molecule holds the ordered components of a document.
type Molecule struct {
	Components []Component `json:"components"`
}

// Component is one top-level node with the bond joining it to the
// previous component.
type Component struct {
	Bond string `json:"bond,omitempty"`
	Node *Node  `json:"node"`
}

// Node is the wire form of any structure node. The Kind field selects
// which of the remaining fields are meaningful.
type Node struct {
	Kind string `json:"kind"`

	// Linear fields.
	Atoms []string `json:"atoms,omitempty"`

	// Shared by linear and ring.
	Bonds       []string             `json:"bonds,omitempty"`
	Attachments map[int][]Attachment `json:"attachments,omitempty"`

	// Ring fields.
	Atom          string         `json:"atom,omitempty"`
	Size          int            `json:"size,omitempty"`
	Number        int            `json:"number,omitempty"`
	Substitutions map[int]string `json:"substitutions,omitempty"`
	Depths        []int          `json:"depths,omitempty"`
	Positions     []int          `json:"positions,omitempty"`
	Offset        int            `json:"offset,omitempty"`
	Next          []*Node        `json:"next,omitempty"`

	// Fused fields. Position-indexed maps use absolute positions.
	Rings        []*Node        `json:"rings,omitempty"`
	AllPositions []int          `json:"all_positions,omitempty"`
	DepthAt      map[int]int    `json:"depth_at,omitempty"`
	AtomAt       map[int]string `json:"atom_at,omitempty"`
	BondAt       map[int]string `json:"bond_at,omitempty"`
	MarkerOrder  map[int][]int  `json:"marker_order,omitempty"`
}

// Attachment is the wire form of a branch hanging off a position.
type Attachment struct {
	Placement string `json:"placement,omitempty"`
	Node      *Node  `json:"node"`
}

var placementFromString = map[string]ast.Placement{
	"":        ast.PlacementAuto,
	"auto":    ast.PlacementAuto,
	"sibling": ast.PlacementSibling,
	"inline":  ast.PlacementInline,
}

var placementToString = map[ast.Placement]string{
	ast.PlacementAuto:    "",
	ast.PlacementSibling: "sibling",
	ast.PlacementInline:  "inline",
}

// toAST converts a wire node into its structure form, validating atom
// and bond symbols along the way.
func (n *Node) toAST() (ast.Node, error) {
	if n == nil {
		return nil, moltexterrors.New(moltexterrors.ErrCodeInvalidDocument, "missing node")
	}
	switch n.Kind {
	case kindLinear:
		return n.toLinear()
	case kindRing:
		return n.toRing()
	case kindFused:
		return n.toFused()
	default:
		return nil, moltexterrors.New(moltexterrors.ErrCodeInvalidDocument, "unknown node kind: %q", n.Kind)
	}
}

func (n *Node) toLinear() (*ast.Linear, error) {
	for _, a := range n.Atoms {
		if err := moltexterrors.ValidateAtomSymbol(a); err != nil {
			return nil, err
		}
	}
	for _, b := range n.Bonds {
		if err := moltexterrors.ValidateBondSymbol(b); err != nil {
			return nil, err
		}
	}
	atts, err := toASTAttachments(n.Attachments)
	if err != nil {
		return nil, err
	}
	return &ast.Linear{Atoms: n.Atoms, Bonds: n.Bonds, Attachments: atts}, nil
}

func (n *Node) toRing() (*ast.Ring, error) {
	if err := moltexterrors.ValidateAtomSymbol(n.Atom); err != nil {
		return nil, err
	}
	if err := moltexterrors.ValidateRingNumber(n.Number); err != nil {
		return nil, err
	}
	for _, b := range n.Bonds {
		if err := moltexterrors.ValidateBondSymbol(b); err != nil {
			return nil, err
		}
	}
	for _, s := range n.Substitutions {
		if err := moltexterrors.ValidateAtomSymbol(s); err != nil {
			return nil, err
		}
	}
	atts, err := toASTAttachments(n.Attachments)
	if err != nil {
		return nil, err
	}
	var next []*ast.Ring
	for _, c := range n.Next {
		if c.Kind != kindRing {
			return nil, moltexterrors.New(moltexterrors.ErrCodeInvalidDocument, "continuation must be a ring, got %q", c.Kind)
		}
		r, err := c.toRing()
		if err != nil {
			return nil, err
		}
		next = append(next, r)
	}
	return &ast.Ring{
		Atom:          n.Atom,
		Size:          n.Size,
		Number:        n.Number,
		Bonds:         n.Bonds,
		Substitutions: n.Substitutions,
		Attachments:   atts,
		Depths:        n.Depths,
		Positions:     n.Positions,
		Offset:        n.Offset,
		Next:          next,
	}, nil
}

func (n *Node) toFused() (*ast.FusedRing, error) {
	var rings []*ast.Ring
	for _, c := range n.Rings {
		if c.Kind != kindRing {
			return nil, moltexterrors.New(moltexterrors.ErrCodeInvalidDocument, "fused member must be a ring, got %q", c.Kind)
		}
		r, err := c.toRing()
		if err != nil {
			return nil, err
		}
		rings = append(rings, r)
	}
	for _, a := range n.AtomAt {
		if err := moltexterrors.ValidateAtomSymbol(a); err != nil {
			return nil, err
		}
	}
	for _, b := range n.BondAt {
		if err := moltexterrors.ValidateBondSymbol(b); err != nil {
			return nil, err
		}
	}
	atts, err := toASTAttachments(n.Attachments)
	if err != nil {
		return nil, err
	}
	return &ast.FusedRing{
		Rings:        rings,
		AllPositions: n.AllPositions,
		Depths:       n.DepthAt,
		Atoms:        n.AtomAt,
		Bonds:        n.BondAt,
		MarkerOrder:  n.MarkerOrder,
		Attachments:  atts,
	}, nil
}

func toASTAttachments(atts map[int][]Attachment) (map[int][]ast.Attachment, error) {
	if len(atts) == 0 {
		return nil, nil
	}
	out := make(map[int][]ast.Attachment, len(atts))
	for pos, list := range atts {
		for _, a := range list {
			p, ok := placementFromString[a.Placement]
			if !ok {
				return nil, moltexterrors.New(moltexterrors.ErrCodeInvalidDocument, "unknown placement: %q", a.Placement)
			}
			child, err := a.Node.toAST()
			if err != nil {
				return nil, err
			}
			out[pos] = append(out[pos], ast.Attachment{Node: child, Placement: p})
		}
	}
	return out, nil
}

// fromAST converts a structure node into its wire form.
func fromAST(n ast.Node) (*Node, error) {
	switch v := n.(type) {
	case *ast.Linear:
		atts, err := fromASTAttachments(v.Attachments)
		if err != nil {
			return nil, err
		}
		return &Node{
			Kind:        kindLinear,
			Atoms:       v.Atoms,
			Bonds:       v.Bonds,
			Attachments: atts,
		}, nil
	case *ast.Ring:
		return fromRing(v)
	case *ast.FusedRing:
		rings := make([]*Node, len(v.Rings))
		for i, r := range v.Rings {
			w, err := fromRing(r)
			if err != nil {
				return nil, err
			}
			rings[i] = w
		}
		atts, err := fromASTAttachments(v.Attachments)
		if err != nil {
			return nil, err
		}
		return &Node{
			Kind:         kindFused,
			Rings:        rings,
			AllPositions: v.AllPositions,
			DepthAt:      v.Depths,
			AtomAt:       v.Atoms,
			BondAt:       v.Bonds,
			MarkerOrder:  v.MarkerOrder,
			Attachments:  atts,
		}, nil
	default:
		return nil, moltexterrors.New(moltexterrors.ErrCodeInvalidDocument, "cannot serialize node of type %T", n)
	}
}

func fromRing(r *ast.Ring) (*Node, error) {
	var next []*Node
	for _, c := range r.Next {
		w, err := fromRing(c)
		if err != nil {
			return nil, err
		}
		next = append(next, w)
	}
	atts, err := fromASTAttachments(r.Attachments)
	if err != nil {
		return nil, err
	}
	return &Node{
		Kind:          kindRing,
		Atom:          r.Atom,
		Size:          r.Size,
		Number:        r.Number,
		Bonds:         r.Bonds,
		Substitutions: r.Substitutions,
		Attachments:   atts,
		Depths:        r.Depths,
		Positions:     r.Positions,
		Offset:        r.Offset,
		Next:          next,
	}, nil
}

func fromASTAttachments(atts map[int][]ast.Attachment) (map[int][]Attachment, error) {
	if len(atts) == 0 {
		return nil, nil
	}
	out := make(map[int][]Attachment, len(atts))
	for pos, list := range atts {
		for _, a := range list {
			child, err := fromAST(a.Node)
			if err != nil {
				return nil, err
			}
			out[pos] = append(out[pos], Attachment{
				Placement: placementToString[a.Placement],
				Node:      child,
			})
		}
	}
	return out, nil
}
