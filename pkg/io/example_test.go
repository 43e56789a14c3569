package io_test

import (
	"bytes"
	"fmt"
	"strings"

	moltextio "github.com/moltext/moltext/pkg/io"
	"github.com/moltext/moltext/pkg/smiles"
)

func ExampleReadDocument() {
	doc := `{
		"name": "ethanol",
		"molecule": {
			"components": [
				{"node": {"kind": "linear", "atoms": ["C", "C", "O"]}}
			]
		}
	}`

	name, mol, err := moltextio.ReadDocument(strings.NewReader(doc))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	notation, _ := smiles.Encode(mol)
	fmt.Printf("%s: %s\n", name, notation)
	// Output: ethanol: CCO
}

func ExampleWriteDocument() {
	doc := `{"molecule": {"components": [{"node": {"kind": "ring", "atom": "c", "size": 6, "number": 1}}]}}`

	_, mol, err := moltextio.ReadDocument(strings.NewReader(doc))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	var buf bytes.Buffer
	if err := moltextio.WriteDocument("benzene", mol, &buf); err != nil {
		fmt.Println("error:", err)
		return
	}

	back, _, err := moltextio.ReadDocument(&buf)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(back)
	// Output: benzene
}
