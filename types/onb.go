package types

// A right-handed orthonormal basis built around a unit vector W. Used to
// lift hemisphere sample directions into world space.
type OrthonormalBasis struct {
	U, V, W Vec3
}

// Build the basis from a unit W. The up reference flips to +Y when W is
// nearly parallel to +X so the cross product stays well conditioned.
func NewOrthonormalBasis(w Vec3) OrthonormalBasis {
	up := Vec3{1, 0, 0}
	if w[0] < -0.9 || w[0] > 0.9 {
		up = Vec3{0, 1, 0}
	}

	u := up.Cross(w).Normalize()
	return OrthonormalBasis{
		U: u,
		V: w.Cross(u),
		W: w,
	}
}

// Transform local coordinates (x along U, y along V, z along W) into
// world space.
func (onb OrthonormalBasis) Local(x, y, z float32) Vec3 {
	return onb.U.Mul(x).Add(onb.V.Mul(y)).Add(onb.W.Mul(z))
}
