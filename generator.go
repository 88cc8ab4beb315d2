package b32

import (
	"errors"
	"sync/atomic"
)

// ErrExhausted is returned by Generate once every code up to MaxCode has been issued.
var ErrExhausted = errors.New("b32: generator exhausted")

// DefaultGenerator is used by New(). Set via SetStart().
var DefaultGenerator = NewGenerator(1)

// SetStart replaces the DefaultGenerator with one that issues codes from start.
// Call this once at startup before using New().
func SetStart(start Code) {
	DefaultGenerator = NewGenerator(start)
}

// New issues a code from the DefaultGenerator.
// Panics when the generator is exhausted.
func New() Code {
	if DefaultGenerator == nil {
		panic("b32: call SetStart() before using New()")
	}
	return Must(DefaultGenerator.Generate())
}

// Generator issues sequential codes and is safe for concurrent use.
// Combine with an Obfuscator to hand out codes that do not look sequential.
type Generator struct {
	next atomic.Uint64
}

func NewGenerator(start Code) *Generator {
	if !start.Valid() {
		panic("b32: start code out of range")
	}
	g := &Generator{}
	g.next.Store(uint64(start))
	return g
}

func (g *Generator) Generate() (Code, error) {
	for {
		old := g.next.Load()
		if old > uint64(MaxCode) {
			return Nil, ErrExhausted
		}
		if g.next.CompareAndSwap(old, old+1) {
			return Code(old), nil
		}
	}
}
