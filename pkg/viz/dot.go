package viz

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/moltext/moltext/pkg/ast"
	moltexterrors "github.com/moltext/moltext/pkg/errors"
)

// Options configures bond graph rendering.
type Options struct {
	// Detailed includes the atom's node index in its label.
	// When false, only the atom symbol is shown.
	Detailed bool
}

// ToDOT converts a molecule tree to Graphviz DOT format for bond graph
// visualization. The resulting DOT string can be rendered using
// [RenderSVG], [RenderPDF], or [RenderPNG].
//
// Aromatic atoms (lowercase symbols) are rendered with a grey fill to
// distinguish them from plain atoms.
func ToDOT(mol *ast.Molecule, opts Options) (string, error) {
	b := &dotBuilder{detailed: opts.Detailed}
	b.buf.WriteString("graph M {\n")
	b.buf.WriteString("  layout=neato;\n")
	b.buf.WriteString("  bgcolor=\"transparent\";\n")
	b.buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=14, margin=\"0.05,0.05\"];\n")
	b.buf.WriteString("  overlap=false;\n")
	b.buf.WriteString("\n")

	var prev string
	for i, c := range mol.Components {
		first, last, err := b.walk(c.Node)
		if err != nil {
			return "", err
		}
		if i > 0 && prev != "" && first != "" && c.Bond != "." {
			b.bond(prev, first, c.Bond)
		}
		if last != "" {
			prev = last
		}
	}

	b.buf.WriteString("}\n")
	return b.buf.String(), nil
}

// dotBuilder accumulates DOT source while assigning sequential atom IDs.
type dotBuilder struct {
	buf      bytes.Buffer
	next     int
	detailed bool
}

// atom emits an atom node and returns its DOT ID.
func (b *dotBuilder) atom(symbol string) string {
	id := fmt.Sprintf("a%d", b.next)
	label := symbol
	if label == "" {
		label = ast.DefaultAtom
	}
	if b.detailed {
		label = fmt.Sprintf("%s %d", label, b.next)
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if aromatic(symbol) {
		attrs = append(attrs, "fillcolor=lightgrey")
	}
	fmt.Fprintf(&b.buf, "  %q [%s];\n", id, strings.Join(attrs, ", "))
	b.next++
	return id
}

// bond emits an edge between two atoms. The "." symbol means no bond.
func (b *dotBuilder) bond(from, to, symbol string) {
	if symbol == "." {
		return
	}
	attrs := bondAttrs(symbol)
	if len(attrs) == 0 {
		fmt.Fprintf(&b.buf, "  %q -- %q;\n", from, to)
		return
	}
	fmt.Fprintf(&b.buf, "  %q -- %q [%s];\n", from, to, strings.Join(attrs, ", "))
}

// bondAttrs maps a bond symbol to DOT edge attributes. Double and triple
// bonds use Graphviz color lists to draw parallel lines.
func bondAttrs(symbol string) []string {
	switch symbol {
	case "=":
		return []string{`color="black:black"`}
	case "#":
		return []string{`color="black:black:black"`}
	case ":":
		return []string{"style=dashed"}
	default:
		return nil
	}
}

func aromatic(symbol string) bool {
	if symbol == "" || symbol[0] == '[' {
		return false
	}
	return unicode.IsLower(rune(symbol[0]))
}

// walk emits the subgraph for a node and returns the DOT IDs of its first
// and last atoms for connecting to surrounding structure.
func (b *dotBuilder) walk(n ast.Node) (first, last string, err error) {
	switch v := n.(type) {
	case *ast.Linear:
		return b.walkLinear(v)
	case *ast.Ring:
		return b.walkRing(v)
	case *ast.FusedRing:
		return b.walkFused(v)
	case *ast.Molecule:
		var prev string
		for i, c := range v.Components {
			f, l, err := b.walk(c.Node)
			if err != nil {
				return "", "", err
			}
			if i == 0 {
				first = f
			} else if prev != "" && f != "" && c.Bond != "." {
				b.bond(prev, f, c.Bond)
			}
			if l != "" {
				prev = l
			}
		}
		return first, prev, nil
	default:
		return "", "", moltexterrors.New(moltexterrors.ErrCodeInvalidMolecule, "cannot draw node of type %T", n)
	}
}

func (b *dotBuilder) walkLinear(n *ast.Linear) (first, last string, err error) {
	perAtom := len(n.Bonds) == len(n.Atoms)
	var prev string
	for i, atom := range n.Atoms {
		id := b.atom(atom)
		if i == 0 {
			first = id
		} else if perAtom {
			b.bond(prev, id, n.Bonds[i])
		} else {
			b.bond(prev, id, bondAt(n.Bonds, i-1))
		}
		if err := b.attachments(id, n.Attachments[i+1]); err != nil {
			return "", "", err
		}
		prev = id
	}
	return first, prev, nil
}

func (b *dotBuilder) walkRing(r *ast.Ring) (first, last string, err error) {
	var prev string
	for i := 1; i <= r.Size; i++ {
		symbol := r.Atom
		if s, ok := r.Substitutions[i]; ok {
			symbol = s
		}
		id := b.atom(symbol)
		if i == 1 {
			first = id
		} else {
			b.bond(prev, id, bondAt(r.Bonds, i-2))
		}
		if err := b.attachments(id, r.Attachments[i]); err != nil {
			return "", "", err
		}
		prev = id
	}
	// Closure bond joins the last ring atom back to the first.
	if r.Size > 1 {
		b.bond(prev, first, bondAt(r.Bonds, r.Size-1))
	}
	return first, prev, nil
}

// walkFused places atoms at absolute positions shared across member
// rings, then draws each ring's perimeter and closure over them.
func (b *dotBuilder) walkFused(f *ast.FusedRing) (first, last string, err error) {
	atoms := map[int]string{}   // position -> DOT ID
	symbols := map[int]string{} // position -> symbol

	rings := fusedMembers(f)
	placed := make([][]int, len(rings))
	nextFree := 0
	for ri, r := range rings {
		positions := r.Positions
		if len(positions) == 0 {
			positions = make([]int, r.Size)
			start := r.Offset
			if start == 0 && ri > 0 {
				start = nextFree
			}
			for i := range positions {
				positions[i] = start + i
			}
		}
		placed[ri] = positions
		for idx, pos := range positions {
			if _, ok := symbols[pos]; !ok {
				symbol := r.Atom
				if s, ok := r.Substitutions[idx+1]; ok {
					symbol = s
				}
				if o, ok := f.Atoms[pos]; ok {
					symbol = o
				}
				symbols[pos] = symbol
			}
			if pos >= nextFree {
				nextFree = pos + 1
			}
		}
	}

	// Emit atoms in position order so IDs are stable.
	order := make([]int, 0, len(symbols))
	for pos := range symbols {
		order = append(order, pos)
	}
	slices.Sort(order)
	for _, pos := range order {
		atoms[pos] = b.atom(symbols[pos])
	}

	for ri, r := range rings {
		positions := placed[ri]
		for idx := 1; idx < len(positions); idx++ {
			bond := bondAt(r.Bonds, idx-1)
			if o, ok := f.Bonds[positions[idx]]; ok && bond == "" {
				bond = o
			}
			b.bond(atoms[positions[idx-1]], atoms[positions[idx]], bond)
		}
		if len(positions) > 1 {
			b.bond(atoms[positions[len(positions)-1]], atoms[positions[0]], bondAt(r.Bonds, r.Size-1))
		}
		for idx, pos := range positions {
			if err := b.attachments(atoms[pos], r.Attachments[idx+1]); err != nil {
				return "", "", err
			}
		}
	}
	for _, pos := range order {
		if err := b.attachments(atoms[pos], f.Attachments[pos]); err != nil {
			return "", "", err
		}
	}

	if len(order) == 0 {
		return "", "", nil
	}
	return atoms[order[0]], atoms[order[len(order)-1]], nil
}

func (b *dotBuilder) attachments(host string, atts []ast.Attachment) error {
	for _, att := range atts {
		f, _, err := b.walk(att.Node)
		if err != nil {
			return err
		}
		if f != "" {
			b.bond(host, f, "")
		}
	}
	return nil
}

// fusedMembers flattens the member rings including continuation chains.
func fusedMembers(f *ast.FusedRing) []*ast.Ring {
	var out []*ast.Ring
	var add func(r *ast.Ring)
	add = func(r *ast.Ring) {
		out = append(out, r)
		for _, n := range r.Next {
			add(n)
		}
	}
	for _, r := range f.Rings {
		add(r)
	}
	return out
}

// bondAt returns bonds[i], or "" when the index is out of range.
func bondAt(bonds []string, i int) string {
	if i < 0 || i >= len(bonds) {
		return ""
	}
	return bonds[i]
}
