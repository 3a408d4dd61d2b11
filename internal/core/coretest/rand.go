// Package coretest provides scripted randomness for engine tests.
package coretest

// Rand replays scripted draws in order. When a queue runs dry it falls back
// to DefaultFloat / DefaultInt.
type Rand struct {
	Floats       []float64
	Ints         []int
	DefaultFloat float64
	DefaultInt   int
}

// Float64 returns the next scripted float.
func (r *Rand) Float64() float64 {
	if len(r.Floats) == 0 {
		return r.DefaultFloat
	}
	v := r.Floats[0]
	r.Floats = r.Floats[1:]
	return v
}

// Intn returns the next scripted int, reduced modulo n.
func (r *Rand) Intn(n int) int {
	v := r.DefaultInt
	if len(r.Ints) > 0 {
		v = r.Ints[0]
		r.Ints = r.Ints[1:]
	}
	if n <= 0 {
		return 0
	}
	if v < 0 {
		v = -v
	}
	return v % n
}
