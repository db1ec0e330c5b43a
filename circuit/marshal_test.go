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

func TestEmitBristolRoundTrip(t *testing.T) {
	c := loadTestdata(t, "adder64.txt")

	var buf bytes.Buffer
	if err := c.EmitBristol(&buf); err != nil {
		t.Fatalf("EmitBristol failed: %s", err)
	}

	reparsed, err := ParseBristol(&buf)
	if err != nil {
		t.Fatalf("re-parsing emitted Bristol text failed: %s", err)
	}
	if reparsed.Details != c.Details {
		t.Fatalf("Details changed across round-trip: got %#v, want %#v",
			reparsed.Details, c.Details)
	}

	out, err := reparsed.Evaluate(
		BitsFromBigInt(big.NewInt(42), reparsed.InputABits),
		BitsFromBigInt(big.NewInt(17), reparsed.InputBBits))
	if err != nil {
		t.Fatalf("Evaluate on re-parsed circuit failed: %s", err)
	}
	got := BigIntFromBits(out)
	if got.Uint64() != 59 {
		t.Fatalf("re-parsed 42+17 = %s, want 59", got)
	}
}
