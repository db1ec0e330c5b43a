//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

// Package tlp implements the time-lock puzzle built on top of the
// circuit package's completely reusable garbled circuits: the T-fold
// unrolled circuit builder (ss 4.5) and the PSetup/PGen/PSolve
// algorithms with a Goldreich-Levin hardcore predicate (ss 4.6).
package tlp

import (
	"github.com/latticelock/crgc/circuit"
)

// BuildCT composes the sequential function f into the T-fold unrolled
// circuit C_T (ss 4.5). f must be a pure, deterministic circuit taking
// a single lambda-bit argument (input_b_bits = 0) and producing a
// single lambda-bit output word.
//
// C_T's input layout is:
//   - A-side: b (1 bit), x (lambda bits).
//   - B-side: m (lambda bits), z (lambda bits).
//
// The iteration counter i kept in the paper's exposition is symbolic
// and dead once the loop is unrolled (ss 9); it is omitted here.
// C_T evaluates T sequential copies of f on x, then selects m when
// b = 0 and x XOR z when b = 1.
func BuildCT(f *circuit.Circuit, t int) (*circuit.Circuit, error) {
	lambda := f.InputABits
	if f.InputBBits != 0 {
		return nil, circuit.InvalidInput(
			"sequential function f must take a single %d-bit argument, got input_b_bits=%d",
			lambda, f.InputBBits)
	}
	if f.NumOutputs != 1 || f.OutputBits != lambda {
		return nil, circuit.InvalidInput(
			"sequential function f must produce one %d-bit output word, got %dx%d",
			lambda, f.NumOutputs, f.OutputBits)
	}
	if t < 1 {
		return nil, circuit.InvalidInput("T must be >= 1, got %d", t)
	}

	inputABits := 1 + lambda
	inputBBits := 2 * lambda
	bWire := circuit.Wire(0)
	mStart := circuit.Wire(inputABits)
	zStart := circuit.Wire(inputABits + lambda)

	var gates []circuit.Gate
	next := circuit.Wire(inputABits + inputBBits)

	appendCopy := func(in []circuit.Wire) []circuit.Wire {
		remap := make([]circuit.Wire, f.NumWires)
		for i, w := range in {
			remap[i] = w
		}
		for _, g := range f.Gates {
			gates = append(gates, circuit.Gate{
				LeftParent:  remap[g.LeftParent],
				RightParent: remap[g.RightParent],
				Output:      next,
				Table:       g.Table,
				SourceOp:    g.SourceOp,
			})
			remap[g.Output] = next
			next++
		}
		outStart := f.NumWires - lambda
		out := make([]circuit.Wire, lambda)
		for i := 0; i < lambda; i++ {
			out[i] = remap[outStart+i]
		}
		return out
	}

	cur := make([]circuit.Wire, lambda)
	for i := 0; i < lambda; i++ {
		cur[i] = circuit.Wire(1 + i)
	}
	for i := 0; i < t; i++ {
		cur = appendCopy(cur)
	}

	// Per-bit multiplexer: out_j = m_j XOR (b AND ((cur_j XOR z_j) XOR m_j)).
	// The helper gates (trueVal, diff, masked) for every bit are appended
	// first; the lambda out_j gates are appended last, contiguously, so
	// they land as the circuit's final lambda wire ids (ss 3: circuit
	// outputs are the last numOutputs*outputBits wires).
	masked := make([]circuit.Wire, lambda)
	for j := 0; j < lambda; j++ {
		trueVal := next
		gates = append(gates, circuit.Gate{
			LeftParent: cur[j], RightParent: zStart + circuit.Wire(j),
			Output: trueVal, Table: circuit.TableXOR, SourceOp: circuit.OpXOR,
		})
		next++

		diff := next
		gates = append(gates, circuit.Gate{
			LeftParent: trueVal, RightParent: mStart + circuit.Wire(j),
			Output: diff, Table: circuit.TableXOR, SourceOp: circuit.OpXOR,
		})
		next++

		masked[j] = next
		gates = append(gates, circuit.Gate{
			LeftParent: bWire, RightParent: diff,
			Output: masked[j], Table: circuit.TableAND, SourceOp: circuit.OpAND,
		})
		next++
	}
	for j := 0; j < lambda; j++ {
		out := next
		gates = append(gates, circuit.Gate{
			LeftParent: mStart + circuit.Wire(j), RightParent: masked[j],
			Output: out, Table: circuit.TableXOR, SourceOp: circuit.OpXOR,
		})
		next++
	}

	return &circuit.Circuit{
		Details: circuit.Details{
			NumWires:   int(next),
			NumGates:   len(gates),
			NumOutputs: 1,
			InputABits: inputABits,
			InputBBits: inputBBits,
			OutputBits: lambda,
		},
		Gates: gates,
	}, nil
}
