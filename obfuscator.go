package b32

import "math/bits"

// DefaultObfuscator, when set, obfuscates all external representations
// (String, Format, JSON, etc.) while keeping internal values raw.
// Set this once at startup before formatting or parsing codes.
var DefaultObfuscator *Obfuscator

const modulus = uint64(MaxCode) + 1

// Obfuscator maps codes through an affine permutation of [0, MaxCode] so
// sequential codes do not look sequential in external representations.
type Obfuscator struct {
	mul, inv, add uint64
}

// NewObfuscator creates an obfuscator derived from key.
// Use a random uint64 and keep it secret.
func NewObfuscator(key uint64) *Obfuscator {
	mul := key%modulus | 1
	// modulus is 2^10 * 5^10, so mul must be odd and not a multiple of 5.
	if mul%5 == 0 {
		mul += 2
	}
	return &Obfuscator{
		mul: mul,
		inv: inverse(mul, modulus),
		add: (key / modulus) % modulus,
	}
}

// SetObfuscator sets the DefaultObfuscator with the given key.
// Call once at startup to enable obfuscation.
func SetObfuscator(key uint64) {
	DefaultObfuscator = NewObfuscator(key)
}

// Obfuscate permutes c within [0, MaxCode]. Codes outside that range are
// returned unchanged.
func (o *Obfuscator) Obfuscate(c Code) Code {
	if !c.Valid() {
		return c
	}
	return Code((mulmod(uint64(c), o.mul) + o.add) % modulus)
}

// Deobfuscate reverses Obfuscate.
func (o *Obfuscator) Deobfuscate(c Code) Code {
	if !c.Valid() {
		return c
	}
	return Code(mulmod((uint64(c)+modulus-o.add)%modulus, o.inv))
}

// obfuscate applies DefaultObfuscator if set.
func obfuscate(c Code) Code {
	if DefaultObfuscator != nil {
		return DefaultObfuscator.Obfuscate(c)
	}
	return c
}

// deobfuscate reverses obfuscation if DefaultObfuscator is set.
func deobfuscate(c Code) Code {
	if DefaultObfuscator != nil {
		return DefaultObfuscator.Deobfuscate(c)
	}
	return c
}

func mulmod(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	return bits.Rem64(hi, lo, modulus)
}

// inverse returns the multiplicative inverse of a mod m; a and m are coprime.
func inverse(a, m uint64) uint64 {
	t, newT := int64(0), int64(1)
	r, newR := int64(m), int64(a)
	for newR != 0 {
		q := r / newR
		t, newT = newT, t-q*newT
		r, newR = newR, r-q*newR
	}
	if t < 0 {
		t += int64(m)
	}
	return uint64(t)
}
