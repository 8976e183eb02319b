package shape

import "github.com/notargets/fermi/quadrature"

// Func computes the shape functions S[nnodes] and their derivatives with
// respect to the reference coordinates dSdR[nnodes][dim] at r.
type Func func(S []float64, dSdR [][]float64, r [3]float64)

type definition struct {
	fn        Func
	natCoords [][3]float64
	rule      func() (quadrature.Rule, error)
}

func tensorRule(f func(int) quadrature.Rule, n int) func() (quadrature.Rule, error) {
	return func() (quadrature.Rule, error) { return f(n), nil }
}

// Tensor product node tables are shared with their shape functions
var (
	quad4Nodes = [][3]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	quad9Nodes = [][3]float64{
		{-1, -1}, {1, -1}, {1, 1}, {-1, 1},
		{0, -1}, {1, 0}, {0, 1}, {-1, 0},
		{0, 0},
	}
	hex8Nodes = [][3]float64{
		{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
		{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
	}
)

var definitions = [numKinds]definition{
	Segment2: {
		fn:        seg2,
		natCoords: [][3]float64{{-1}, {1}},
		rule:      tensorRule(quadrature.Line, 2),
	},
	Segment3: {
		fn:        seg3,
		natCoords: [][3]float64{{-1}, {1}, {0}},
		rule:      tensorRule(quadrature.Line, 3),
	},
	Tri3: {
		fn:        tri3,
		natCoords: [][3]float64{{0, 0}, {1, 0}, {0, 1}},
		rule:      func() (quadrature.Rule, error) { return quadrature.Triangle(3) },
	},
	Tri6: {
		fn: tri6,
		natCoords: [][3]float64{
			{0, 0}, {1, 0}, {0, 1},
			{0.5, 0}, {0.5, 0.5}, {0, 0.5},
		},
		rule: func() (quadrature.Rule, error) { return quadrature.Triangle(6) },
	},
	Quad4: {
		fn:        quad4,
		natCoords: quad4Nodes,
		rule:      tensorRule(quadrature.Quadrilateral, 2),
	},
	Quad9: {
		fn:        quad9,
		natCoords: quad9Nodes,
		rule:      tensorRule(quadrature.Quadrilateral, 3),
	},
	Tet4: {
		fn:        tet4,
		natCoords: [][3]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		rule:      func() (quadrature.Rule, error) { return quadrature.Tetrahedron(4) },
	},
	Hex8: {
		fn:        hex8,
		natCoords: hex8Nodes,
		rule:      tensorRule(quadrature.Hexahedron, 2),
	},
}

// 0-----------1  --> r
func seg2(S []float64, dSdR [][]float64, r [3]float64) {
	S[0] = 0.5 * (1 - r[0])
	S[1] = 0.5 * (1 + r[0])
	dSdR[0][0] = -0.5
	dSdR[1][0] = 0.5
}

// 0-----2-----1  --> r
func seg3(S []float64, dSdR [][]float64, r [3]float64) {
	x := r[0]
	S[0] = 0.5 * x * (x - 1)
	S[1] = 0.5 * x * (x + 1)
	S[2] = 1 - x*x
	dSdR[0][0] = x - 0.5
	dSdR[1][0] = x + 0.5
	dSdR[2][0] = -2 * x
}

// s
// |
// 2
// | \
// 0---1 --> r
func tri3(S []float64, dSdR [][]float64, r [3]float64) {
	S[0] = 1 - r[0] - r[1]
	S[1] = r[0]
	S[2] = r[1]
	dSdR[0][0], dSdR[0][1] = -1, -1
	dSdR[1][0], dSdR[1][1] = 1, 0
	dSdR[2][0], dSdR[2][1] = 0, 1
}

// s
// |
// 2
// | \
// 5   4
// |     \
// 0--3--1 --> r
func tri6(S []float64, dSdR [][]float64, r [3]float64) {
	var (
		l1 = 1 - r[0] - r[1]
		l2 = r[0]
		l3 = r[1]
	)
	S[0] = l1 * (2*l1 - 1)
	S[1] = l2 * (2*l2 - 1)
	S[2] = l3 * (2*l3 - 1)
	S[3] = 4 * l1 * l2
	S[4] = 4 * l2 * l3
	S[5] = 4 * l3 * l1

	dSdR[0][0], dSdR[0][1] = 1-4*l1, 1-4*l1
	dSdR[1][0], dSdR[1][1] = 4*l2-1, 0
	dSdR[2][0], dSdR[2][1] = 0, 4*l3-1
	dSdR[3][0], dSdR[3][1] = 4*(l1-l2), -4*l2
	dSdR[4][0], dSdR[4][1] = 4*l3, 4*l2
	dSdR[5][0], dSdR[5][1] = -4*l3, 4*(l1-l3)
}

// 3-----2
// |     |
// |     |
// 0-----1
func quad4(S []float64, dSdR [][]float64, r [3]float64) {
	for n, nc := range quad4Nodes {
		S[n] = 0.25 * (1 + nc[0]*r[0]) * (1 + nc[1]*r[1])
		dSdR[n][0] = 0.25 * nc[0] * (1 + nc[1]*r[1])
		dSdR[n][1] = 0.25 * nc[1] * (1 + nc[0]*r[0])
	}
}

// 3--6--2
// |     |
// 7  8  5
// |     |
// 0--4--1
func quad9(S []float64, dSdR [][]float64, r [3]float64) {
	for n, nc := range quad9Nodes {
		lr, dlr := lagrange3(nc[0], r[0])
		ls, dls := lagrange3(nc[1], r[1])
		S[n] = lr * ls
		dSdR[n][0] = dlr * ls
		dSdR[n][1] = lr * dls
	}
}

// lagrange3 is the quadratic 1D Lagrange basis on the nodes -1, 0, 1,
// selected by the node coordinate c.
func lagrange3(c, x float64) (l, dl float64) {
	switch {
	case c < 0:
		return 0.5 * x * (x - 1), x - 0.5
	case c > 0:
		return 0.5 * x * (x + 1), x + 0.5
	}
	return 1 - x*x, -2 * x
}

func tet4(S []float64, dSdR [][]float64, r [3]float64) {
	S[0] = 1 - r[0] - r[1] - r[2]
	S[1] = r[0]
	S[2] = r[1]
	S[3] = r[2]
	for dir := 0; dir < 3; dir++ {
		dSdR[0][dir] = -1
		for n := 1; n < 4; n++ {
			dSdR[n][dir] = 0
		}
		dSdR[dir+1][dir] = 1
	}
}

func hex8(S []float64, dSdR [][]float64, r [3]float64) {
	//   7-----6
	//  /|    /|
	// 4-----5 |
	// | 3---|-2
	// |/    |/
	// 0-----1
	for n, nc := range hex8Nodes {
		var (
			a = 1 + nc[0]*r[0]
			b = 1 + nc[1]*r[1]
			c = 1 + nc[2]*r[2]
		)
		S[n] = 0.125 * a * b * c
		dSdR[n][0] = 0.125 * nc[0] * b * c
		dSdR[n][1] = 0.125 * nc[1] * a * c
		dSdR[n][2] = 0.125 * nc[2] * a * b
	}
}
