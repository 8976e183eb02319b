package types

import "fmt"

// Node is a point in physical space. Elements reference nodes owned by the
// mesh and read only the components used by their intrinsic dimension.
type Node struct {
	X, Y, Z float64
}

func NewNode(coords ...float64) (n Node) {
	if len(coords) > 3 {
		panic(fmt.Errorf("a node has at most 3 coordinates, have %d", len(coords)))
	}
	for j, c := range coords {
		switch j {
		case 0:
			n.X = c
		case 1:
			n.Y = c
		case 2:
			n.Z = c
		}
	}
	return
}

func (n Node) Coord(j int) float64 {
	switch j {
	case 0:
		return n.X
	case 1:
		return n.Y
	case 2:
		return n.Z
	}
	panic(fmt.Errorf("coordinate index %d out of range [0,2]", j))
}

func (n Node) String() string {
	return fmt.Sprintf("(%g, %g, %g)", n.X, n.Y, n.Z)
}
