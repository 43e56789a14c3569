package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/moltext/moltext/pkg/ast"
	moltexterrors "github.com/moltext/moltext/pkg/errors"
)

// WriteDocument encodes a molecule as a JSON document and writes it to w.
// The output includes all node data (atoms, bonds, attachments, depth and
// position metadata), so it can be re-imported with [ReadDocument] for
// round-trip processing.
func WriteDocument(name string, mol *ast.Molecule, w io.Writer) error {
	if mol == nil || len(mol.Components) == 0 {
		return moltexterrors.New(moltexterrors.ErrCodeInvalidMolecule, "molecule has no components")
	}

	doc := Document{
		Name:     name,
		Molecule: Molecule{Components: make([]Component, len(mol.Components))},
	}
	for i, c := range mol.Components {
		n, err := fromAST(c.Node)
		if err != nil {
			return err
		}
		doc.Molecule.Components[i] = Component{Bond: c.Bond, Node: n}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return moltexterrors.Wrap(moltexterrors.ErrCodeInternal, err, "encode document")
	}
	return nil
}

// ExportDocument writes a molecule to a JSON file at path.
// This is a convenience wrapper around [WriteDocument] for file-based output.
func ExportDocument(name string, mol *ast.Molecule, path string) error {
	if err := moltexterrors.ValidatePath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return moltexterrors.Wrap(moltexterrors.ErrCodeInvalidPath, err, "create %s", path)
	}
	defer f.Close()
	return WriteDocument(name, mol, f)
}
