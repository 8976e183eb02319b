// Package shape holds the reference shape function tables of every supported
// element kind, evaluated at the integration points of the kind's default
// quadrature rule. Tables are built once per kind and shared read-only.
package shape

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/notargets/fermi/quadrature"
)

var (
	ErrUnknownKind      = errors.New("unknown element kind")
	ErrPartitionOfUnity = errors.New("partition of unity violated")
)

type Kind uint8

const (
	Segment2 Kind = iota
	Segment3
	Tri3
	Tri6
	Quad4
	Quad9
	Tet4
	Hex8
	numKinds
)

var kindNames = [numKinds]string{"seg2", "seg3", "tri3", "tri6", "quad4", "quad9", "tet4", "hex8"}

var kindAliases = map[string]Kind{
	"lin2": Segment2,
	"lin3": Segment3,
	"qua4": Quad4,
	"qua9": Quad9,
}

func (k Kind) String() string {
	if k >= numKinds {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return kindNames[k]
}

func (k Kind) Valid() bool { return k < numKinds }

func ParseKind(name string) (k Kind, err error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, kn := range kindNames {
		if kn == name {
			return Kind(i), nil
		}
	}
	if k, ok := kindAliases[name]; ok {
		return k, nil
	}
	err = fmt.Errorf("%w: %q", ErrUnknownKind, name)
	return
}

// Kinds lists every supported kind in declaration order
func Kinds() (ks []Kind) {
	for k := Kind(0); k < numKinds; k++ {
		ks = append(ks, k)
	}
	return
}

// Dim is the intrinsic (reference) dimension of the kind
func (k Kind) Dim() int {
	switch k {
	case Segment2, Segment3:
		return 1
	case Tri3, Tri6, Quad4, Quad9:
		return 2
	case Tet4, Hex8:
		return 3
	}
	return 0
}

func (k Kind) Nnodes() int {
	if !k.Valid() {
		return 0
	}
	return len(definitions[k].natCoords)
}

// Table is the reference data of one element kind at its integration points
type Table struct {
	Kind      Kind
	Dim       int           // intrinsic dimension
	Nnodes    int           // local node count
	Ngp       int           // number of integration points
	Sh        [][]float64   // [node][gp] shape function values
	DSh       [][][]float64 // [node][dir][gp] derivatives w.r.t. reference coordinates
	W         []float64     // [gp] quadrature weights
	R         [][3]float64  // [gp] reference coordinates of the integration points
	NatCoords [][3]float64  // [node] reference coordinates of the nodes
}

func (t *Table) Shapes(node, gp int) float64       { return t.Sh[node][gp] }
func (t *Table) DShapes(node, dir, gp int) float64 { return t.DSh[node][dir][gp] }
func (t *Table) Weight(gp int) float64             { return t.W[gp] }

// CheckPartitionOfUnity verifies that the shape functions sum to one and their
// derivatives sum to zero at every integration point.
func (t *Table) CheckPartitionOfUnity(tol float64) (err error) {
	for gp := 0; gp < t.Ngp; gp++ {
		var sum float64
		for n := 0; n < t.Nnodes; n++ {
			sum += t.Sh[n][gp]
		}
		if math.Abs(sum-1) > tol {
			return fmt.Errorf("%w: %s, gp = %d, sum(S) = %.17g", ErrPartitionOfUnity, t.Kind, gp, sum)
		}
		for dir := 0; dir < t.Dim; dir++ {
			sum = 0
			for n := 0; n < t.Nnodes; n++ {
				sum += t.DSh[n][dir][gp]
			}
			if math.Abs(sum) > tol {
				return fmt.Errorf("%w: %s, gp = %d, dir = %d, sum(dS) = %.17g", ErrPartitionOfUnity, t.Kind, gp, dir, sum)
			}
		}
	}
	return
}

var cache [numKinds]struct {
	once  sync.Once
	table *Table
	err   error
}

// Get returns the shared table of kind k. The result must not be modified.
func Get(k Kind) (*Table, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, k)
	}
	c := &cache[k]
	c.once.Do(func() {
		c.table, c.err = newTable(k)
	})
	return c.table, c.err
}

func newTable(k Kind) (t *Table, err error) {
	var (
		def  = definitions[k]
		rule quadrature.Rule
	)
	if rule, err = def.rule(); err != nil {
		return
	}
	t = &Table{
		Kind:      k,
		Dim:       k.Dim(),
		Nnodes:    len(def.natCoords),
		Ngp:       rule.Npts(),
		W:         rule.W,
		R:         rule.R,
		NatCoords: def.natCoords,
	}
	t.Sh = make([][]float64, t.Nnodes)
	t.DSh = make([][][]float64, t.Nnodes)
	for n := 0; n < t.Nnodes; n++ {
		t.Sh[n] = make([]float64, t.Ngp)
		t.DSh[n] = make([][]float64, t.Dim)
		for dir := 0; dir < t.Dim; dir++ {
			t.DSh[n][dir] = make([]float64, t.Ngp)
		}
	}
	S, dSdR := alloc(t.Nnodes, t.Dim)
	for gp, r := range rule.R {
		def.fn(S, dSdR, r)
		for n := 0; n < t.Nnodes; n++ {
			t.Sh[n][gp] = S[n]
			for dir := 0; dir < t.Dim; dir++ {
				t.DSh[n][dir][gp] = dSdR[n][dir]
			}
		}
	}
	return
}

// Evaluate returns the shape functions and their reference derivatives of
// kind k at reference coordinate r.
func Evaluate(k Kind, r [3]float64) (S []float64, dSdR [][]float64, err error) {
	if !k.Valid() {
		err = fmt.Errorf("%w: %s", ErrUnknownKind, k)
		return
	}
	def := definitions[k]
	S, dSdR = alloc(len(def.natCoords), k.Dim())
	def.fn(S, dSdR, r)
	return
}

func alloc(nnodes, dim int) (S []float64, dSdR [][]float64) {
	S = make([]float64, nnodes)
	dSdR = make([][]float64, nnodes)
	for n := range dSdR {
		dSdR[n] = make([]float64, dim)
	}
	return
}
