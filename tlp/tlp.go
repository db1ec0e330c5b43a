//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package tlp

import (
	"fmt"
	"io"

	"github.com/latticelock/crgc/circuit"
)

// IncompatibleStateError reports that a Puzzle's dimensions do not
// match the PublicParams it is being solved against.
type IncompatibleStateError struct {
	Err error
}

func (e *IncompatibleStateError) Error() string {
	return fmt.Sprintf("incompatible state: %s", e.Err)
}

func (e *IncompatibleStateError) Unwrap() error {
	return e.Err
}

// IncompatibleState returns an IncompatibleStateError carrying the
// formatted message.
func IncompatibleState(format string, args ...interface{}) error {
	return &IncompatibleStateError{Err: fmt.Errorf(format, args...)}
}

// PublicParams is the output of PSetup: a garbled C_T together with
// the flip pattern over its input-A wires. This bundle is a flip
// pattern, not a cryptographic public key, despite the name "pk" in
// the literature it comes from (ss 9); EncodingKey names it for what
// it actually is.
type PublicParams struct {
	Circuit     *circuit.Circuit
	EncodingKey []bool
	Lambda      int
}

// Puzzle is the TLP instance Z = (x_tilde, r, c) produced by PGen and
// consumed by PSolve.
type Puzzle struct {
	// EncodedA is x_tilde_A, wire-indexed over the garbled circuit's
	// input-A wires.
	EncodedA []bool
	// B is the wire-indexed evaluator-side bundle (m, z).
	B []bool
	// R is the lambda-bit Goldreich-Levin mask.
	R []bool
	// C is <r, m> XOR s.
	C bool
}

// PSetup builds C_T from f and garbles it once under a freshly
// sampled flip pattern (ss 4.6). It performs only ss 4.3.2's circuit
// flipping, not the full garbling pipeline's fixed-gate repair and
// leakage regeneration: the construction's reusability comes from the
// flip pattern alone, and the literal PSetup algorithm in ss 4.6 names
// only this step.
func PSetup(rand io.Reader, f *circuit.Circuit, t int) (*PublicParams, error) {
	ct, err := BuildCT(f, t)
	if err != nil {
		return nil, err
	}
	encodingKey, err := circuit.RandomBits(rand, ct.InputABits)
	if err != nil {
		return nil, err
	}
	if err := circuit.FlipCircuit(rand, ct, encodingKey); err != nil {
		return nil, err
	}
	return &PublicParams{
		Circuit:     ct,
		EncodingKey: encodingKey,
		Lambda:      f.InputABits,
	}, nil
}

// PGen creates a puzzle embedding secret bit s under pp (ss 4.6). Its
// cost is independent of T: PGen never evaluates the garbled circuit.
func PGen(rand io.Reader, pp *PublicParams, s bool) (*Puzzle, error) {
	lambda := pp.Lambda
	x, err := circuit.RandomBits(rand, lambda)
	if err != nil {
		return nil, err
	}
	m, err := circuit.RandomBits(rand, lambda)
	if err != nil {
		return nil, err
	}
	r, err := circuit.RandomBits(rand, lambda)
	if err != nil {
		return nil, err
	}

	// Wire-indexed A-side bundle: b=0 at wire 0, x at wires [1,1+lambda).
	aBundle := make([]bool, 1+lambda)
	copy(aBundle[1:], x)

	// Wire-indexed B-side bundle: m at [0,lambda), z=0^lambda after it.
	bBundle := make([]bool, 2*lambda)
	copy(bBundle[:lambda], m)

	encodedA := circuit.XorBits(aBundle, pp.EncodingKey)

	return &Puzzle{
		EncodedA: encodedA,
		B:        bBundle,
		R:        r,
		C:        popcountMod2(r, m) != s,
	}, nil
}

// PSolve evaluates pp's garbled circuit on Z's encoded input and
// unmasks the secret bit (ss 4.6). Evaluating C_T requires T
// sequential applications of f, so PSolve's wall-clock cost scales
// with T even though PGen's does not.
func PSolve(pp *PublicParams, z *Puzzle) (bool, error) {
	if len(z.EncodedA) != pp.Circuit.InputABits {
		return false, IncompatibleState(
			"puzzle input A has %d bits, public params want %d",
			len(z.EncodedA), pp.Circuit.InputABits)
	}
	if len(z.B) != pp.Circuit.InputBBits {
		return false, IncompatibleState(
			"puzzle input B has %d bits, public params want %d",
			len(z.B), pp.Circuit.InputBBits)
	}
	if len(z.R) != pp.Lambda {
		return false, IncompatibleState(
			"puzzle mask r has %d bits, want %d", len(z.R), pp.Lambda)
	}

	callerA := reverseBits(z.EncodedA)
	callerB := reverseBits(z.B)
	callerY, err := pp.Circuit.Evaluate(callerA, callerB)
	if err != nil {
		return false, err
	}
	y := reverseBits(callerY)

	return popcountMod2(z.R, y) != z.C, nil
}

// reverseBits returns v with its element order reversed. Evaluate's
// I/O endianness contract (ss 6) is a self-inverse reversal between
// caller order and wire order; this helper performs that same
// reversal so PGen/PSolve can state their bundles directly in wire
// order, matching BuildCT's wire layout.
func reverseBits(v []bool) []bool {
	out := make([]bool, len(v))
	for i, bit := range v {
		out[len(v)-1-i] = bit
	}
	return out
}

// popcountMod2 computes <a, b>, the Goldreich-Levin predicate:
// popcount(a AND b) mod 2.
func popcountMod2(a, b []bool) bool {
	odd := false
	for i := range a {
		if a[i] && b[i] {
			odd = !odd
		}
	}
	return odd
}
