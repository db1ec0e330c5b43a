//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

// Package rgcio serializes and reads back garbled circuits in the RGC
// artifact format (ss 6): three sibling text files carrying the
// circuit's header, its gate list with raw truth tables, and the
// obfuscated generator input A'. This is outside the circuit
// package's core on purpose - a garbled circuit's tables no longer fit
// the Bristol AND/XOR/OR vocabulary, so it needs its own file format,
// and that format is an external-collaborator concern of the garbler,
// not of circuit evaluation itself.
package rgcio

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/latticelock/crgc/circuit"
)

const (
	detailsSuffix = "_rgc_details.txt"
	gatesSuffix   = "_rgc.txt"
	inputASuffix  = "_rgc_inputA.txt"
)

// Write serializes c and the obfuscated input aPrime (in the caller's
// original, non-reversed bit order) to the three files named after
// baseName.
func Write(baseName string, c *circuit.Circuit, aPrime []bool) error {
	if len(aPrime) != c.InputABits {
		return circuit.InvalidInput("input A' has %d bits, want %d",
			len(aPrime), c.InputABits)
	}

	if err := writeDetails(baseName+detailsSuffix, c); err != nil {
		return err
	}
	if err := writeGates(baseName+gatesSuffix, c); err != nil {
		return err
	}
	return writeInputA(baseName+inputASuffix, aPrime)
}

func writeDetails(path string, c *circuit.Circuit) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if _, err := fmt.Fprintf(w, "%d %d\n", c.NumGates, c.NumWires); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "2 %d %d\n", c.InputABits, c.InputBBits); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%d", c.NumOutputs); err != nil {
		return err
	}
	for i := 0; i < c.NumOutputs; i++ {
		if _, err := fmt.Fprintf(w, " %d", c.OutputBits); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	return w.Flush()
}

func writeGates(path string, c *circuit.Circuit) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, g := range c.Gates {
		t := g.Table
		if _, err := fmt.Fprintf(w, "%d %d %d %s\n",
			g.LeftParent, g.RightParent, g.Output, tableBits(t)); err != nil {
			return err
		}
	}
	return w.Flush()
}

func tableBits(t circuit.Table) string {
	var sb strings.Builder
	for _, bit := range []bool{t[0][0], t[0][1], t[1][0], t[1][1]} {
		if bit {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

func writeInputA(path string, aPrime []bool) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var sb strings.Builder
	for _, bit := range aPrime {
		if bit {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	sb.WriteByte('\n')
	_, err = f.WriteString(sb.String())
	return err
}

// Read parses back the three files named after baseName into a
// garbled circuit and its accompanying obfuscated input A'.
func Read(baseName string) (*circuit.Circuit, []bool, error) {
	details, err := readDetails(baseName + detailsSuffix)
	if err != nil {
		return nil, nil, err
	}
	gates, err := readGates(baseName+gatesSuffix, details)
	if err != nil {
		return nil, nil, err
	}
	aPrime, err := readInputA(baseName+inputASuffix, details.InputABits)
	if err != nil {
		return nil, nil, err
	}
	return &circuit.Circuit{Details: details, Gates: gates}, aPrime, nil
}

func readDetails(path string) (circuit.Details, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return circuit.Details{}, err
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) < 3 {
		return circuit.Details{}, fmt.Errorf("rgc details %s: expected 3 header lines", path)
	}

	l1 := strings.Fields(lines[0])
	if len(l1) != 2 {
		return circuit.Details{}, fmt.Errorf("rgc details %s: bad line 1", path)
	}
	numGates, err := strconv.Atoi(l1[0])
	if err != nil {
		return circuit.Details{}, err
	}
	numWires, err := strconv.Atoi(l1[1])
	if err != nil {
		return circuit.Details{}, err
	}

	l2 := strings.Fields(lines[1])
	if len(l2) != 3 {
		return circuit.Details{}, fmt.Errorf("rgc details %s: bad line 2", path)
	}
	inputABits, err := strconv.Atoi(l2[1])
	if err != nil {
		return circuit.Details{}, err
	}
	inputBBits, err := strconv.Atoi(l2[2])
	if err != nil {
		return circuit.Details{}, err
	}

	l3 := strings.Fields(lines[2])
	if len(l3) < 1 {
		return circuit.Details{}, fmt.Errorf("rgc details %s: bad line 3", path)
	}
	numOutputs, err := strconv.Atoi(l3[0])
	if err != nil {
		return circuit.Details{}, err
	}
	var outputBits int
	if numOutputs > 0 {
		if len(l3) != 1+numOutputs {
			return circuit.Details{}, fmt.Errorf("rgc details %s: output width count mismatch", path)
		}
		outputBits, err = strconv.Atoi(l3[1])
		if err != nil {
			return circuit.Details{}, err
		}
	}

	return circuit.Details{
		NumWires:   numWires,
		NumGates:   numGates,
		NumOutputs: numOutputs,
		InputABits: inputABits,
		InputBBits: inputBBits,
		OutputBits: outputBits,
	}, nil
}

func readGates(path string, details circuit.Details) ([]circuit.Gate, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	gates := make([]circuit.Gate, 0, details.NumGates)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 4 {
			return nil, fmt.Errorf("rgc gates %s: expected 4 fields, got %d",
				path, len(fields))
		}
		left, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, err
		}
		right, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, err
		}
		out, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, err
		}
		bits := fields[3]
		if len(bits) != 4 {
			return nil, fmt.Errorf("rgc gates %s: table field must be 4 chars, got %q",
				path, bits)
		}
		var t circuit.Table
		t[0][0] = bits[0] == '1'
		t[0][1] = bits[1] == '1'
		t[1][0] = bits[2] == '1'
		t[1][1] = bits[3] == '1'
		gates = append(gates, circuit.Gate{
			LeftParent:  circuit.Wire(left),
			RightParent: circuit.Wire(right),
			Output:      circuit.Wire(out),
			Table:       t,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(gates) != details.NumGates {
		return nil, fmt.Errorf("rgc gates %s: declared %d gates, found %d",
			path, details.NumGates, len(gates))
	}
	return gates, nil
}

func readInputA(path string, inputABits int) ([]bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	line := strings.TrimSpace(string(data))
	if len(line) != inputABits {
		return nil, fmt.Errorf("rgc inputA %s: expected %d bits, got %d",
			path, inputABits, len(line))
	}
	bits := make([]bool, inputABits)
	for i, ch := range line {
		switch ch {
		case '0':
			bits[i] = false
		case '1':
			bits[i] = true
		default:
			return nil, fmt.Errorf("rgc inputA %s: unexpected character %q",
				path, ch)
		}
	}
	return bits, nil
}
