package section

// Skew is the optional skew (mask) transform carried by the header: a 3×3
// rotation and a translation.
//
// The rotation is kept transposed relative to the row-major ordering callers
// pass to Set and receive from Get, which is also the order it has on disk.
type Skew struct {
	rotation    [3][3]float32
	translation [3]float32
}

// Set replaces the transform. A nil rotation or translation zero-fills that
// half instead of leaving it untouched.
func (s *Skew) Set(rotation *[9]float32, translation *[3]float32) {
	*s = Skew{}

	if rotation != nil {
		for i := range 3 {
			for j := range 3 {
				s.rotation[j][i] = rotation[3*i+j]
			}
		}
	}
	if translation != nil {
		s.translation = *translation
	}
}

// IsSet reports whether any rotation or translation component is non-zero.
func (s Skew) IsSet() bool {
	for i := range 3 {
		if s.translation[i] != 0 {
			return true
		}
		for j := range 3 {
			if s.rotation[i][j] != 0 {
				return true
			}
		}
	}

	return false
}

// Get returns the rotation in row-major order, the translation and IsSet.
func (s Skew) Get() (rotation [9]float32, translation [3]float32, set bool) {
	for i := range 3 {
		for j := range 3 {
			rotation[3*i+j] = s.rotation[j][i]
		}
	}

	return rotation, s.translation, s.IsSet()
}
