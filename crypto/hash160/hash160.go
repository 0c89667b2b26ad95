// Package hash160 implements ripemd160(sha256(b)), the 20-byte
// script-hash digest used to identify contracts and addresses.
package hash160

import (
	"crypto/sha256"

	"golang.org/x/crypto/ripemd160"
)

// Size is the length, in bytes, of a Hash160 digest.
const Size = ripemd160.Size

// Sum returns ripemd160(sha256(b)).
func Sum(b []byte) [Size]byte {
	sha := sha256.Sum256(b)

	h := ripemd160.New()
	h.Write(sha[:])

	var out [Size]byte
	copy(out[:], h.Sum(nil))
	return out
}
