//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"bytes"
	"math/big"
	"testing"
)

// obfuscateAndFlip runs only ss 4.3.1 and ss 4.3.2, the property
// exercised by the round-trip scenario in ss 8: a fresh input A',
// flipped under a circuit derived from a clone of c, must evaluate to
// the same output as the original input A on the original circuit.
func obfuscateAndFlip(t *testing.T, c *Circuit, a []bool) (*Circuit, []bool) {
	t.Helper()
	aPrime, flipA, err := ObfuscateInput(bytes.NewReader(seedBytes(1, len(a))), a)
	if err != nil {
		t.Fatalf("ObfuscateInput failed: %s", err)
	}
	gc := c.clone()
	if err := FlipCircuit(DeterministicRand([]byte("flip-test")), gc, flipA); err != nil {
		t.Fatalf("FlipCircuit failed: %s", err)
	}
	return gc, aPrime
}

// seedBytes returns a deterministic byte stream long enough to supply
// n random bits, so tests never depend on crypto/rand.
func seedBytes(seed byte, n int) []byte {
	buf := make([]byte, (n+7)/8)
	for i := range buf {
		buf[i] = seed*31 + byte(i)
	}
	return buf
}

func TestGarbleRoundTrip(t *testing.T) {
	c := loadTestdata(t, "adder64.txt")
	a := BitsFromBigInt(big.NewInt(42), c.InputABits)
	b := BitsFromBigInt(big.NewInt(17), c.InputBBits)

	gc, aPrime := obfuscateAndFlip(t, c, a)

	out, err := gc.Evaluate(aPrime, b)
	if err != nil {
		t.Fatalf("Evaluate on flipped circuit failed: %s", err)
	}
	got := BigIntFromBits(out)
	if got.Uint64() != 59 {
		t.Fatalf("garbled 42+17 = %s, want 59", got)
	}
}

func TestGarbleFullPipelineRoundTrip(t *testing.T) {
	c := loadTestdata(t, "adder64.txt")
	a := BitsFromBigInt(big.NewInt(42), c.InputABits)
	b := BitsFromBigInt(big.NewInt(17), c.InputBBits)

	gc, aPrime, err := Garble(DeterministicRand([]byte("garble-test")), c, a)
	if err != nil {
		t.Fatalf("Garble failed: %s", err)
	}
	out, err := gc.Evaluate(aPrime, b)
	if err != nil {
		t.Fatalf("Evaluate on garbled circuit failed: %s", err)
	}
	got := BigIntFromBits(out)
	if got.Uint64() != 59 {
		t.Fatalf("garbled 42+17 = %s, want 59", got)
	}
}

// Garble must never mutate the circuit it was handed.
func TestGarbleDoesNotMutateInput(t *testing.T) {
	c := loadTestdata(t, "adder64.txt")
	before := make([]Gate, len(c.Gates))
	copy(before, c.Gates)

	a := BitsFromBigInt(big.NewInt(1), c.InputABits)
	if _, _, err := Garble(DeterministicRand([]byte("mutate-test")), c, a); err != nil {
		t.Fatalf("Garble failed: %s", err)
	}
	for i := range before {
		if c.Gates[i].Table != before[i].Table {
			t.Fatalf("gate %d table changed after Garble", i)
		}
	}
}

// A garbled circuit's gate tables must never degenerate to constant
// tables: a constant table is exactly the leakage ss 4.3.3-4.3.5
// exist to eliminate.
func TestGarbleProducesNonConstantTables(t *testing.T) {
	c := loadTestdata(t, "adder64.txt")
	a := BitsFromBigInt(big.NewInt(7), c.InputABits)

	gc, _, err := Garble(DeterministicRand([]byte("nonconstant-test")), c, a)
	if err != nil {
		t.Fatalf("Garble failed: %s", err)
	}
	for i, g := range gc.Gates {
		if _, isConstant := g.Table.Constant(); isConstant {
			t.Fatalf("gate %d has a constant table after garbling", i)
		}
	}
}

// A circuit built only from XOR gates must survive garbling. In
// xormix256 every wire derives from input A, so ss 4.3.3 finds both
// parents of every gate fixed-known and repairs no table, and an XOR
// table keeps depending on each parent whatever the other's value.
func TestGarbleXorOnlyCircuit(t *testing.T) {
	c := loadTestdata(t, "xormix256.txt")
	a := BitsFromBigInt(big.NewInt(8), c.InputABits)
	gc, aPrime, err := Garble(DeterministicRand([]byte("xor-only-test")), c, a)
	if err != nil {
		t.Fatalf("Garble failed: %s", err)
	}
	gotGarbled, err := gc.Evaluate(aPrime, nil)
	if err != nil {
		t.Fatalf("Evaluate on garbled circuit failed: %s", err)
	}
	gotPlain, err := c.Evaluate(a, nil)
	if err != nil {
		t.Fatalf("Evaluate on plain circuit failed: %s", err)
	}
	for i := range gotPlain {
		if gotGarbled[i] != gotPlain[i] {
			t.Fatalf("bit %d: garbled=%v plain=%v", i, gotGarbled[i], gotPlain[i])
		}
	}
}

func TestGarbleDeterministicGivenSameRand(t *testing.T) {
	c := loadTestdata(t, "adder64.txt")
	a := BitsFromBigInt(big.NewInt(9), c.InputABits)

	gc1, aPrime1, err := Garble(DeterministicRand([]byte("fixed-seed")), c, a)
	if err != nil {
		t.Fatalf("Garble failed: %s", err)
	}
	gc2, aPrime2, err := Garble(DeterministicRand([]byte("fixed-seed")), c, a)
	if err != nil {
		t.Fatalf("Garble failed: %s", err)
	}
	for i := range aPrime1 {
		if aPrime1[i] != aPrime2[i] {
			t.Fatalf("A' differs between runs with identical seed")
		}
	}
	for i := range gc1.Gates {
		if gc1.Gates[i].Table != gc2.Gates[i].Table {
			t.Fatalf("gate %d table differs between runs with identical seed", i)
		}
	}
}
