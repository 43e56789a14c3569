package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/moltext/moltext/pkg/ast"
	moltexterrors "github.com/moltext/moltext/pkg/errors"
)

// ReadDocument decodes a JSON molecule document from r.
//
// The input must be a JSON object with a "molecule" holding one or more
// components:
//
//	{
//	  "name": "ethanol",
//	  "molecule": {
//	    "components": [{"node": {"kind": "linear", "atoms": ["C", "C", "O"]}}]
//	  }
//	}
//
// ReadDocument returns an error if:
//   - The JSON is malformed
//   - The molecule has no components, or a component has no node
//   - A node carries an unknown kind or placement
//   - An atom symbol, bond symbol, or ring number fails validation
//
// Errors are wrapped with context describing which component caused the
// problem. Use errors.Is to check for specific error codes.
//
// The returned molecule is independent of r and can be modified safely
// after ReadDocument returns. ReadDocument does not close r.
func ReadDocument(r io.Reader) (string, *ast.Molecule, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return "", nil, moltexterrors.Wrap(moltexterrors.ErrCodeInvalidDocument, err, "decode document")
	}

	if doc.Name != "" {
		if err := moltexterrors.ValidateMoleculeName(doc.Name); err != nil {
			return "", nil, err
		}
	}
	if len(doc.Molecule.Components) == 0 {
		return "", nil, moltexterrors.New(moltexterrors.ErrCodeInvalidDocument, "molecule has no components")
	}

	mol := &ast.Molecule{Components: make([]ast.Component, len(doc.Molecule.Components))}
	for i, c := range doc.Molecule.Components {
		if err := moltexterrors.ValidateBondSymbol(c.Bond); err != nil {
			return "", nil, fmt.Errorf("component %d: %w", i, err)
		}
		n, err := c.Node.toAST()
		if err != nil {
			return "", nil, fmt.Errorf("component %d: %w", i, err)
		}
		mol.Components[i] = ast.Component{Bond: c.Bond, Node: n}
	}

	return doc.Name, mol, nil
}

// ImportDocument reads a JSON file at path and returns the decoded
// molecule along with its document name.
//
// ImportDocument opens the file, decodes it using [ReadDocument], and
// closes the file. Errors wrap the underlying cause with the file path
// for context. It returns the same validation errors as [ReadDocument]
// for malformed documents.
func ImportDocument(path string) (string, *ast.Molecule, error) {
	if err := moltexterrors.ValidatePath(path); err != nil {
		return "", nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return "", nil, moltexterrors.Wrap(moltexterrors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()
	return ReadDocument(f)
}
