package geometry

import "github.com/go-gl/mathgl/mgl64"

// Vec6 stacks two 3D vectors, typically a linear part followed by an angular part.
type Vec6 [6]float64

// Linear returns the first three entries.
func (v Vec6) Linear() mgl64.Vec3 {
	return mgl64.Vec3{v[0], v[1], v[2]}
}

// Angular returns the last three entries.
func (v Vec6) Angular() mgl64.Vec3 {
	return mgl64.Vec3{v[3], v[4], v[5]}
}

// Combine3 concatenates a and b.
func Combine3(a, b mgl64.Vec3) Vec6 {
	return Vec6{a[0], a[1], a[2], b[0], b[1], b[2]}
}

// Combine returns a new vector of size v1.Size()+v2.Size() whose first entries
// are v1 and remaining entries are v2. Both vectors must be non-nil.
func Combine(v1, v2 *mgl64.VecN) *mgl64.VecN {
	if v1 == nil || v2 == nil {
		panic("geometry: Combine called with a nil vector")
	}

	data := make([]float64, 0, v1.Size()+v2.Size())
	data = append(data, v1.Raw()...)
	data = append(data, v2.Raw()...)

	return mgl64.NewVecNFromData(data)
}
