package ast

// DefaultAtom is the atom symbol assumed when a node omits one.
const DefaultAtom = "C"

// Kind identifies the variant of a [Node].
type Kind int

const (
	// KindMolecule is an ordered sequence of components joined by bonds.
	KindMolecule Kind = iota
	// KindLinear is a straight chain of atoms.
	KindLinear
	// KindRing is a single ring with one closure label.
	KindRing
	// KindFusedRing is a group of rings sharing atoms.
	KindFusedRing
)

// String returns the kind's name for diagnostics.
func (k Kind) String() string {
	switch k {
	case KindMolecule:
		return "molecule"
	case KindLinear:
		return "linear"
	case KindRing:
		return "ring"
	case KindFusedRing:
		return "fused-ring"
	default:
		return "unknown"
	}
}

// Node is a variant of the molecular structure tree.
// The concrete types are [*Molecule], [*Linear], [*Ring], and [*FusedRing].
type Node interface {
	Kind() Kind
}

// Placement controls how an attachment is rendered relative to its host atom.
type Placement int

const (
	// PlacementAuto lets the writer decide: attachments default to sibling,
	// except on the chain side of a branch that opens immediately after the
	// host atom, where they default to inline.
	PlacementAuto Placement = iota
	// PlacementSibling renders the attachment wrapped in its own parentheses.
	PlacementSibling
	// PlacementInline renders the attachment as a literal continuation of the
	// current chain, with no added parentheses. Used for atoms that follow a
	// ring closure on the main chain rather than hanging off it.
	PlacementInline
)

// Attachment is a side branch hanging off an atom position.
// The attached node can be any variant, including further rings.
type Attachment struct {
	Node      Node
	Placement Placement
}

// Component is one element of a [Molecule], with an optional leading bond
// connecting it to the previous component.
type Component struct {
	Bond string // bond symbol before this component; empty for a single bond
	Node Node
}

// Molecule is an ordered sequence of chain, ring, and fused-ring components.
type Molecule struct {
	Components []Component
}

// Kind returns [KindMolecule].
func (*Molecule) Kind() Kind { return KindMolecule }

// Linear is a straight chain of atoms.
//
// Bonds takes one of two shapes, distinguished by length:
//   - len(Bonds) == len(Atoms): Bonds[i] precedes Atoms[i] (branch shape)
//   - len(Bonds) == len(Atoms)-1: Bonds[i] sits between Atoms[i] and
//     Atoms[i+1] (main-chain shape)
//
// Attachments maps 1-based atom positions to side branches.
type Linear struct {
	Atoms       []string
	Bonds       []string
	Attachments map[int][]Attachment
}

// Kind returns [KindLinear].
func (*Linear) Kind() Kind { return KindLinear }

// Ring is a single ring closed by one ring-closure label.
//
// Bonds[i] is the bond before the (i+2)-th ring atom; the slot at index
// Size-1, when present, holds the closure-bond symbol emitted with the
// opening label. Substitutions overrides the base Atom symbol at 1-based
// positions. Depths records how many branch levels deep each position sits
// relative to the ring's start; a uniform (or empty) sequence means the
// ring does not straddle a branch boundary.
//
// Positions, when set, gives the ring's absolute 0-based atom positions in
// a shared fused-ring sequence and promotes rendering into the interleaved
// fused-ring path. Offset places the ring in the shared sequence of an
// offset-based fused group. Next chains further rings rendered directly
// after this one without an intervening branch.
type Ring struct {
	Atom          string
	Size          int
	Number        int // ring-closure label
	Bonds         []string
	Substitutions map[int]string
	Attachments   map[int][]Attachment
	Depths        []int
	Positions     []int
	Offset        int
	Next          []*Ring
}

// Kind returns [KindRing].
func (*Ring) Kind() Kind { return KindRing }

// FusedRing is a group of rings sharing atoms.
//
// Two representations exist. When AllPositions is set (or any member ring
// carries Positions), the group is interleaved: member rings map to
// absolute positions in one shared sequence, and the group-level maps fill
// in atoms, bonds, depths, and attachments for positions owned by no ring.
// Otherwise the group is offset-based: each ring is placed into the shared
// sequence at its integer Offset.
//
// MarkerOrder preserves the original left-to-right order of ring-closure
// labels that land on the same position, keyed by position and listing
// ring numbers in appearance order.
type FusedRing struct {
	Rings        []*Ring
	AllPositions []int
	Depths       map[int]int
	Atoms        map[int]string
	Bonds        map[int]string
	MarkerOrder  map[int][]int
	Attachments  map[int][]Attachment
}

// Kind returns [KindFusedRing].
func (*FusedRing) Kind() Kind { return KindFusedRing }

// Interleaved reports whether the group uses the interleaved representation.
func (f *FusedRing) Interleaved() bool {
	if len(f.AllPositions) > 0 {
		return true
	}
	for _, r := range f.Rings {
		if len(r.Positions) > 0 {
			return true
		}
	}
	return false
}
