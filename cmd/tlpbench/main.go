//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

// Command tlpbench exercises PSetup, PGen, and PSolve end to end over
// a sequential function circuit f, reporting timings for each phase
// and confirming the puzzle's embedded secret bit round-trips.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/markkurossi/tabulate"
	"github.com/markkurossi/text/superscript"

	"github.com/latticelock/crgc/circuit"
	"github.com/latticelock/crgc/env"
	"github.com/latticelock/crgc/tlp"
)

func main() {
	file := flag.String("f", "", "Sequential function circuit file (Bristol Fashion)")
	t := flag.Int("t", 1024, "Number of sequential applications of f")
	secret := flag.Bool("s", true, "Secret bit to embed in the puzzle")
	seed := flag.String("seed", "", "Deterministic entropy seed for PSetup/PGen (repeatable benchmarks); empty uses crypto/rand")
	flag.Parse()

	if len(*file) == 0 {
		fmt.Printf("sequential function circuit not specified\n")
		os.Exit(1)
	}

	f, err := loadCircuit(*file)
	if err != nil {
		log.Fatalf("failed to parse %s: %s", *file, err)
	}
	fmt.Printf("f: %v\n", f)
	fmt.Printf("T: %d (f%s)\n", *t, superscript.Itoa(*t))

	var config env.Config
	if len(*seed) > 0 {
		config.Rand = circuit.DeterministicRand([]byte(*seed))
	}

	if err := run(&config, f, *t, *secret); err != nil {
		log.Fatal(err)
	}
}

func loadCircuit(file string) (*circuit.Circuit, error) {
	r, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return circuit.ParseBristol(r)
}

func run(config *env.Config, f *circuit.Circuit, t int, secret bool) error {
	start := time.Now()
	pp, err := tlp.PSetup(config.GetRandom(), f, t)
	if err != nil {
		return err
	}
	setupTime := time.Since(start)

	start = time.Now()
	puzzle, err := tlp.PGen(config.GetRandom(), pp, secret)
	if err != nil {
		return err
	}
	genTime := time.Since(start)

	start = time.Now()
	solved, err := tlp.PSolve(pp, puzzle)
	if err != nil {
		return err
	}
	solveTime := time.Since(start)

	tab := tabulate.New(tabulate.Github)
	tab.Header("Phase")
	tab.Header("Duration").SetAlign(tabulate.MR)

	row := tab.Row()
	row.Column("PSetup")
	row.Column(setupTime.String())

	row = tab.Row()
	row.Column("PGen")
	row.Column(genTime.String())

	row = tab.Row()
	row.Column("PSolve")
	row.Column(solveTime.String())

	tab.Print(os.Stdout)

	fmt.Printf("secret in:  %v\n", secret)
	fmt.Printf("secret out: %v\n", solved)
	if solved != secret {
		return fmt.Errorf("round-trip failed: got %v, want %v", solved, secret)
	}
	if solveTime <= genTime {
		fmt.Printf("warning: PSolve (%s) was not slower than PGen (%s) for T=%d\n",
			solveTime, genTime, t)
	}
	return nil
}
