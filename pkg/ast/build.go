package ast

// LinearBuilder assembles a [Linear] chain.
// The zero value is not usable - use [NewLinear].
type LinearBuilder struct {
	n Linear
}

// NewLinear starts a chain with the given atom symbols.
func NewLinear(atoms ...string) *LinearBuilder {
	return &LinearBuilder{n: Linear{Atoms: atoms}}
}

// Atom appends one atom to the chain.
func (b *LinearBuilder) Atom(symbol string) *LinearBuilder {
	b.n.Atoms = append(b.n.Atoms, symbol)
	return b
}

// Bonds sets the bond array. Pass len(Atoms) symbols for the branch shape
// (one bond before each atom) or len(Atoms)-1 for the main-chain shape
// (one bond between each adjacent pair).
func (b *LinearBuilder) Bonds(bonds ...string) *LinearBuilder {
	b.n.Bonds = bonds
	return b
}

// Attach registers a side branch at the 1-based position.
func (b *LinearBuilder) Attach(pos int, n Node) *LinearBuilder {
	return b.AttachAs(pos, n, PlacementAuto)
}

// AttachAs registers a side branch with an explicit placement.
func (b *LinearBuilder) AttachAs(pos int, n Node, p Placement) *LinearBuilder {
	if b.n.Attachments == nil {
		b.n.Attachments = make(map[int][]Attachment)
	}
	b.n.Attachments[pos] = append(b.n.Attachments[pos], Attachment{Node: n, Placement: p})
	return b
}

// Build returns the assembled chain.
func (b *LinearBuilder) Build() *Linear {
	n := b.n
	return &n
}

// RingBuilder assembles a [Ring].
// The zero value is not usable - use [NewRing].
type RingBuilder struct {
	r Ring
}

// NewRing starts a ring of the given base atom, size, and closure label.
func NewRing(atom string, size, number int) *RingBuilder {
	return &RingBuilder{r: Ring{Atom: atom, Size: size, Number: number}}
}

// Bonds sets the ring bond array. Bonds[i] precedes the (i+2)-th atom;
// the slot at index size-1 holds the closure-bond symbol.
func (b *RingBuilder) Bonds(bonds ...string) *RingBuilder {
	b.r.Bonds = bonds
	return b
}

// Substitute overrides the atom symbol at the 1-based position.
func (b *RingBuilder) Substitute(pos int, atom string) *RingBuilder {
	if b.r.Substitutions == nil {
		b.r.Substitutions = make(map[int]string)
	}
	b.r.Substitutions[pos] = atom
	return b
}

// Attach registers a side branch at the 1-based position.
func (b *RingBuilder) Attach(pos int, n Node) *RingBuilder {
	return b.AttachAs(pos, n, PlacementAuto)
}

// AttachAs registers a side branch with an explicit placement.
func (b *RingBuilder) AttachAs(pos int, n Node, p Placement) *RingBuilder {
	if b.r.Attachments == nil {
		b.r.Attachments = make(map[int][]Attachment)
	}
	b.r.Attachments[pos] = append(b.r.Attachments[pos], Attachment{Node: n, Placement: p})
	return b
}

// Depths sets the per-position branch-depth metadata.
func (b *RingBuilder) Depths(depths ...int) *RingBuilder {
	b.r.Depths = depths
	return b
}

// Positions sets the ring's absolute positions in a shared fused sequence.
func (b *RingBuilder) Positions(positions ...int) *RingBuilder {
	b.r.Positions = positions
	return b
}

// Offset places the ring in an offset-based fused group.
func (b *RingBuilder) Offset(off int) *RingBuilder {
	b.r.Offset = off
	return b
}

// Then chains a ring rendered directly after this one.
func (b *RingBuilder) Then(r *Ring) *RingBuilder {
	b.r.Next = append(b.r.Next, r)
	return b
}

// Build returns the assembled ring.
func (b *RingBuilder) Build() *Ring {
	r := b.r
	return &r
}

// MoleculeBuilder assembles a [Molecule] from components.
// The zero value is not usable - use [NewMolecule].
type MoleculeBuilder struct {
	m Molecule
}

// NewMolecule starts an empty molecule.
func NewMolecule() *MoleculeBuilder {
	return &MoleculeBuilder{}
}

// Add appends a component with no leading bond.
func (b *MoleculeBuilder) Add(n Node) *MoleculeBuilder {
	return b.AddBonded("", n)
}

// AddBonded appends a component connected by the given bond symbol.
func (b *MoleculeBuilder) AddBonded(bond string, n Node) *MoleculeBuilder {
	b.m.Components = append(b.m.Components, Component{Bond: bond, Node: n})
	return b
}

// Build returns the assembled molecule.
func (b *MoleculeBuilder) Build() *Molecule {
	m := b.m
	return &m
}

// FusedBuilder assembles a [FusedRing] group.
// The zero value is not usable - use [NewFused].
type FusedBuilder struct {
	f FusedRing
}

// NewFused starts a fused group from member rings.
func NewFused(rings ...*Ring) *FusedBuilder {
	return &FusedBuilder{f: FusedRing{Rings: rings}}
}

// AllPositions sets the global ordered position list, switching the group
// to the interleaved representation.
func (b *FusedBuilder) AllPositions(positions ...int) *FusedBuilder {
	b.f.AllPositions = positions
	return b
}

// DepthAt sets the branch depth for an absolute position.
func (b *FusedBuilder) DepthAt(pos, depth int) *FusedBuilder {
	if b.f.Depths == nil {
		b.f.Depths = make(map[int]int)
	}
	b.f.Depths[pos] = depth
	return b
}

// AtomAt overrides the atom symbol at an absolute position.
func (b *FusedBuilder) AtomAt(pos int, atom string) *FusedBuilder {
	if b.f.Atoms == nil {
		b.f.Atoms = make(map[int]string)
	}
	b.f.Atoms[pos] = atom
	return b
}

// BondAt sets the bond before the atom at an absolute position.
func (b *FusedBuilder) BondAt(pos int, bond string) *FusedBuilder {
	if b.f.Bonds == nil {
		b.f.Bonds = make(map[int]string)
	}
	b.f.Bonds[pos] = bond
	return b
}

// MarkerOrderAt fixes the left-to-right order of closure labels that land
// on the same position.
func (b *FusedBuilder) MarkerOrderAt(pos int, numbers ...int) *FusedBuilder {
	if b.f.MarkerOrder == nil {
		b.f.MarkerOrder = make(map[int][]int)
	}
	b.f.MarkerOrder[pos] = numbers
	return b
}

// Attach registers a side branch at an absolute position owned by no ring.
func (b *FusedBuilder) Attach(pos int, n Node) *FusedBuilder {
	return b.AttachAs(pos, n, PlacementAuto)
}

// AttachAs registers a side branch with an explicit placement.
func (b *FusedBuilder) AttachAs(pos int, n Node, p Placement) *FusedBuilder {
	if b.f.Attachments == nil {
		b.f.Attachments = make(map[int][]Attachment)
	}
	b.f.Attachments[pos] = append(b.f.Attachments[pos], Attachment{Node: n, Placement: p})
	return b
}

// Build returns the assembled fused group.
func (b *FusedBuilder) Build() *FusedRing {
	f := b.f
	return &f
}
