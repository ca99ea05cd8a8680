package animspec

import (
	"fmt"
	"strings"
)

// Vector is a fixed-arity tuple of one to four float64 channels.
//
// Vectors are mutated in place so specs can reuse them as scratch buffers
// across frames. All vectors taking part in one evaluation must share the
// same arity.
type Vector struct {
	n int
	c [MaxVectorSize]float64
}

// NewVector returns a zeroed vector with n channels.
// It panics if n is outside [1, MaxVectorSize].
func NewVector(n int) *Vector {
	if n < 1 || n > MaxVectorSize {
		panic(fmt.Sprintf("animspec: vector size %d out of range [1, %d]", n, MaxVectorSize))
	}
	return &Vector{n: n}
}

// Vector1 returns a one-channel vector.
func Vector1(v1 float64) *Vector {
	return &Vector{n: 1, c: [MaxVectorSize]float64{v1}}
}

// Vector2 returns a two-channel vector.
func Vector2(v1, v2 float64) *Vector {
	return &Vector{n: 2, c: [MaxVectorSize]float64{v1, v2}}
}

// Vector3 returns a three-channel vector.
func Vector3(v1, v2, v3 float64) *Vector {
	return &Vector{n: 3, c: [MaxVectorSize]float64{v1, v2, v3}}
}

// Vector4 returns a four-channel vector.
func Vector4(v1, v2, v3, v4 float64) *Vector {
	return &Vector{n: 4, c: [MaxVectorSize]float64{v1, v2, v3, v4}}
}

// Size returns the number of channels.
func (v *Vector) Size() int { return v.n }

// Get returns channel i.
func (v *Vector) Get(i int) float64 {
	v.checkIndex(i)
	return v.c[i]
}

// Set assigns channel i.
func (v *Vector) Set(i int, value float64) {
	v.checkIndex(i)
	v.c[i] = value
}

// Reset zeroes every channel.
func (v *Vector) Reset() {
	v.c = [MaxVectorSize]float64{}
}

// Copy returns an independent vector with the same channels.
func (v *Vector) Copy() *Vector {
	dup := *v
	return &dup
}

// CopyFrom overwrites v with the channels of src. Sizes must match.
func (v *Vector) CopyFrom(src *Vector) {
	if src.n != v.n {
		panic(fmt.Sprintf("animspec: cannot copy vector of size %d into size %d", src.n, v.n))
	}
	v.c = src.c
}

// Channels returns a slice view of the active channels. Writes through the
// slice modify the vector.
func (v *Vector) Channels() []float64 {
	return v.c[:v.n]
}

// Equal reports whether both vectors have the same size and channels.
func (v *Vector) Equal(other *Vector) bool {
	return v.n == other.n && v.c == other.c
}

func (v *Vector) String() string {
	var b strings.Builder
	b.WriteString("Vector(")
	for i := range v.n {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%g", v.c[i])
	}
	b.WriteString(")")
	return b.String()
}

func (v *Vector) checkIndex(i int) {
	if i < 0 || i >= v.n {
		panic(fmt.Sprintf("animspec: index %d out of range for vector of size %d", i, v.n))
	}
}
