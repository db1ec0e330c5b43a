//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"
)

// DeterministicRand returns an io.Reader that expands seed into an
// unbounded pseudo-random stream via HKDF-SHA256. It exists only so
// tests can reproduce a specific garbling run; production code must
// use a cryptographically strong source such as crypto/rand.Reader
// (ss 9 design notes).
func DeterministicRand(seed []byte) io.Reader {
	return hkdf.New(sha256.New, seed, nil, []byte("latticelock/crgc test rand"))
}
