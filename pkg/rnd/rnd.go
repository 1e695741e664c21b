// Package rnd is the companion module bundled alongside the mutex core
// in the original source tree (mysys_ssl/my_rnd.cc) but independent of
// it: a password-hash-compatible 30-bit linear-congruential generator,
// plus a variant that prefers a cryptographic source and falls back to
// the LCG. It is not used by any of the mutex implementations — it is
// specified here only because it shipped in the same retrieval pack.
//
// The LCG's output is ABI-frozen: MySQL's password hashing depends on
// generating the exact same sequence for the exact same seed, so the
// arithmetic below must never change, and must stay integer arithmetic
// throughout (no intermediate float64 rounding beyond the single final
// division) to avoid platform-dependent drift.
package rnd

import "crypto/rand"

// maxValue is the modulus every seed and every generated value is taken
// against: 2^30 - 1.
const maxValue = 0x3FFFFFFF

// Rand holds the two-word LCG state. The zero value is not seeded;
// construct one with New.
type Rand struct {
	seed1, seed2 uint32
}

// New seeds a Rand the way my_rnd_init does: each seed is reduced mod
// maxValue before use.
func New(seed1, seed2 uint32) *Rand {
	return &Rand{
		seed1: seed1 % maxValue,
		seed2: seed2 % maxValue,
	}
}

// Next advances the generator and returns a value in [0, 1), bit-for-bit
// identical to my_rnd: seed1 = (seed1*3 + seed2) mod max; seed2 =
// (seed1 + seed2 + 33) mod max; return seed1 / max.
func (r *Rand) Next() float64 {
	r.seed1 = uint32((uint64(r.seed1)*3 + uint64(r.seed2)) % maxValue)
	r.seed2 = uint32((uint64(r.seed1) + uint64(r.seed2) + 33) % maxValue)
	return float64(r.seed1) / float64(maxValue)
}

// NextSSL mirrors my_rnd_ssl: it tries to pull a cryptographically
// random uint32 first (crypto/rand standing in for the original's
// OpenSSL/yaSSL RAND_bytes call) and divides it by the maximum uint32,
// giving a value in [0, 1] (1.0 when the random word is all ones); if that
// fails, it falls back to r.Next(). Unlike Next, NextSSL's output is
// explicitly NOT required to be reproducible — only the fallback path is
// ABI-frozen.
func (r *Rand) NextSSL() float64 {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err == nil {
		v := uint32(buf[0])<<24 | uint32(buf[1])<<16 | uint32(buf[2])<<8 | uint32(buf[3])
		return float64(v) / float64(^uint32(0))
	}
	return r.Next()
}
