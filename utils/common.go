package utils

const (
	// DETTOL is the default relative Jacobian determinant tolerance. An element
	// rejects determinants at or below DETTOL*h^dim, h being its nodal extent.
	DETTOL = 1.e-14
)
