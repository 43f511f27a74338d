package seeded

import "strings"

// #region constants
const (
	modulus    = 2147483647 // 2^31 - 1
	multiplier = 16807
)

// #endregion constants

// #region generator
// Generator is a Park-Miller minimal standard LCG keyed by a string.
// Each logical series owns its own Generator; there is no shared state.
type Generator struct {
	state int64
}

// New hashes key into a non-negative 31-bit seed and returns a fresh generator.
func New(key string) *Generator {
	s := Hash(key) % modulus
	if s == 0 {
		// zero is a fixed point of the LCG step
		s = 1
	}
	return &Generator{state: s}
}

// Next advances the generator and returns a value in [0,1).
func (g *Generator) Next() float64 {
	g.state = (g.state * multiplier) % modulus
	return float64(g.state) / modulus
}

// Intn draws an index in [0,n). Returns 0 for n <= 0 but still advances.
func (g *Generator) Intn(n int) int {
	r := g.Next()
	if n <= 0 {
		return 0
	}
	return int(r * float64(n))
}

// #endregion generator

// #region hash
// Hash is a polynomial rolling hash (h*31 + c) with 32-bit wraparound,
// returned as its absolute value.
func Hash(key string) int64 {
	var h int32
	for _, c := range key {
		h = h*31 + int32(c)
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return v
}

// Key joins seed parts with "-", e.g. Key("office", "Newark", "csat", "trend").
func Key(parts ...string) string {
	return strings.Join(parts, "-")
}

// #endregion hash
