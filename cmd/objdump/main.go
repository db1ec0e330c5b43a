//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

// Command objdump inspects Bristol Fashion circuit files: gate
// counts by operation, and the ss 4.4 leakage prediction for each
// file.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/markkurossi/tabulate"

	"github.com/latticelock/crgc/circuit"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Printf("usage: objdump circuit.txt [circuit.txt ...]\n")
		os.Exit(1)
	}
	if err := dumpObjects(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func dumpObjects(files []string) error {
	type oCircuit struct {
		name    string
		circuit *circuit.Circuit
	}
	var circuits []oCircuit

	for _, file := range files {
		f, err := os.Open(file)
		if err != nil {
			return err
		}
		c, err := circuit.ParseBristol(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		circuits = append(circuits, oCircuit{name: file, circuit: c})
	}

	if len(circuits) == 0 {
		return nil
	}

	tab := tabulate.New(tabulate.Github)
	tab.Header("File")
	tab.Header("XOR").SetAlign(tabulate.MR)
	tab.Header("AND").SetAlign(tabulate.MR)
	tab.Header("OR").SetAlign(tabulate.MR)
	tab.Header("Gates").SetAlign(tabulate.MR)
	tab.Header("Wires").SetAlign(tabulate.MR)
	tab.Header("In A").SetAlign(tabulate.MR)
	tab.Header("In B").SetAlign(tabulate.MR)
	tab.Header("Out").SetAlign(tabulate.MR)

	for _, oc := range circuits {
		var numXor, numAnd, numOr int
		for _, g := range oc.circuit.Gates {
			switch g.SourceOp {
			case circuit.OpXOR:
				numXor++
			case circuit.OpAND:
				numAnd++
			case circuit.OpOR:
				numOr++
			}
		}
		row := tab.Row()
		row.Column(oc.name)
		row.Column(fmt.Sprintf("%d", numXor))
		row.Column(fmt.Sprintf("%d", numAnd))
		row.Column(fmt.Sprintf("%d", numOr))
		row.Column(fmt.Sprintf("%d", oc.circuit.NumGates))
		row.Column(fmt.Sprintf("%d", oc.circuit.NumWires))
		row.Column(fmt.Sprintf("%d", oc.circuit.InputABits))
		row.Column(fmt.Sprintf("%d", oc.circuit.InputBBits))
		row.Column(fmt.Sprintf("%d", oc.circuit.OutputBits))
	}
	tab.Print(os.Stdout)

	leak := tabulate.New(tabulate.Github)
	leak.Header("File")
	leak.Header("Obfuscatable").SetAlign(tabulate.MR)
	leak.Header("Leaking").SetAlign(tabulate.MR)
	leak.Header("Fraction").SetAlign(tabulate.MR)
	leak.Header("Exposed A bits").SetAlign(tabulate.MR)

	for _, oc := range circuits {
		report := circuit.PredictLeakage(oc.circuit)
		row := leak.Row()
		row.Column(oc.name)
		row.Column(fmt.Sprintf("%d", report.NumObfuscatable))
		row.Column(fmt.Sprintf("%d", report.NumLeaking))
		row.Column(fmt.Sprintf("%.3f", report.FractionLeaking()))
		row.Column(fmt.Sprintf("%d", len(report.LeakedInputBits)))
	}
	leak.Print(os.Stdout)

	return nil
}
