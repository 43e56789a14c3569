// Package io provides JSON import and export for molecule documents.
//
// # Overview
//
// This package enables serialization of molecule trees to and from a simple
// JSON format. The format is designed for:
//
//   - Authoring molecule structures by hand or from external tools
//   - Caching decoded documents for faster re-encoding
//   - Round-trip preservation: import, encode, export, and re-import identically
//
// # JSON Format
//
// A document has a name and a molecule with one or more components:
//
//	{
//	  "name": "ethanol",
//	  "molecule": {
//	    "components": [
//	      {"node": {"kind": "linear", "atoms": ["C", "C", "O"]}}
//	    ]
//	  }
//	}
//
// # Node Kinds
//
// Every node object carries a "kind" discriminator:
//
//   - linear: chain of atoms with optional bonds and attachments
//   - ring: cycle with atom, size, and closure number
//   - fused: ring system sharing atoms across member rings
//
// Ring nodes additionally accept substitutions, depths, positions, offset,
// and continuation rings ("next"). Fused nodes accept member rings plus
// position-indexed atom, bond, depth, and marker-order overrides.
//
// Attachments hang off positions (1-based) and may carry an explicit
// placement of "sibling" or "inline"; omitted placement means automatic.
//
// # Import
//
// Use [ImportDocument] to read a document from a file path, or
// [ReadDocument] to read from any io.Reader:
//
//	doc, err := io.ImportDocument("ethanol.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Both functions validate atom symbols, bond symbols, and ring numbers.
// Errors are wrapped with context about which node caused the problem.
//
// # Export
//
// Use [ExportDocument] to write a document to a file, or [WriteDocument]
// to write to any io.Writer. The export includes all node data, so a
// document survives an import/export round trip unchanged in meaning.
package io
