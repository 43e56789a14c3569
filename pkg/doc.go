// Package pkg provides the core libraries for moltext SMILES encoding.
//
// # Overview
//
// Moltext transforms molecule structure documents into SMILES line notation
// and bond graph diagrams. The pkg directory is organized into these areas:
//
//  1. [ast] - Molecule structure types (linear chains, rings, fused systems)
//  2. [smiles] - The SMILES encoder
//  3. [io] - JSON document import/export
//  4. [viz] - Bond graph rendering via Graphviz
//  5. [pipeline] - Orchestration (decode → encode → render)
//  6. [cache], [store] - Caching and molecule library persistence
//
// # Architecture
//
// The typical data flow through moltext:
//
//	Molecule Document (JSON)
//	         ↓
//	    [io] package (decode to AST)
//	         ↓
//	    [ast] package (structure nodes)
//	         ↓
//	    [smiles] package (encode notation)
//	         ↓
//	    [viz] package (DOT/SVG/PNG/PDF)
//
// # Quick Start
//
// Encode a molecule directly:
//
//	mol := &ast.Molecule{Components: []ast.Component{
//	    {Node: ast.NewLinear("C", "C", "O").Build()},
//	}}
//	notation, err := smiles.Encode(mol)
//	// notation == "CCO"
//
// Or run the full pipeline from a document file:
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, err := runner.Execute(ctx, pipeline.Options{Input: "ethanol.json"})
package pkg
