// Package element computes the local diffusion matrices of a single finite
// element:
//
//	Ae[i][j] = ∫ (D ∇Ni·∇Nj + Σa Ni Nj) dV
//	Be[i][j] = ∫ ν Σf Ni Nj dV
//
// Every element kind goes through the same accumulation, driven by the shared
// reference table of its kind.
package element

import (
	"fmt"
	"math"

	"github.com/notargets/fermi/shape"
	"github.com/notargets/fermi/types"
	"github.com/notargets/fermi/utils"
)

type Element struct {
	ID          int
	Kind        shape.Kind
	Nodes       []types.Node // local order matches the reference node numbering
	NodeIndexes []int        // local to global degree of freedom map
	Material    types.Material
	table       *shape.Table
	detTol      float64 // relative determinant tolerance
	extent      float64 // h^dim, h the largest nodal extent over the intrinsic axes
}

func NewElement(id int, kind shape.Kind, nodes []types.Node, nodeIndexes []int,
	material types.Material) (el *Element, err error) {
	var (
		tbl *shape.Table
	)
	if tbl, err = shape.Get(kind); err != nil {
		return
	}
	if len(nodes) != len(nodeIndexes) || len(nodes) != tbl.Nnodes {
		err = &ShapeMismatchError{
			Element:     id,
			Kind:        kind,
			Nodes:       len(nodes),
			NodeIndexes: len(nodeIndexes),
			Expected:    tbl.Nnodes,
		}
		return
	}
	if err = material.Validate(); err != nil {
		err = fmt.Errorf("element %d: %w", id, err)
		return
	}
	el = &Element{
		ID:          id,
		Kind:        kind,
		Nodes:       nodes,
		NodeIndexes: nodeIndexes,
		Material:    material,
		table:       tbl,
		detTol:      utils.DETTOL,
	}
	el.extent = math.Pow(nodalExtent(nodes, tbl.Dim), float64(tbl.Dim))
	return
}

func nodalExtent(nodes []types.Node, dim int) (h float64) {
	for j := 0; j < dim; j++ {
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, nd := range nodes {
			x := nd.Coord(j)
			lo, hi = math.Min(lo, x), math.Max(hi, x)
		}
		h = math.Max(h, hi-lo)
	}
	return
}

// SetDetTolerance replaces the relative determinant tolerance, utils.DETTOL
// by default.
func (el *Element) SetDetTolerance(tol float64) {
	if tol < 0 || math.IsNaN(tol) || math.IsInf(tol, 0) {
		panic(fmt.Errorf("determinant tolerance must be finite and non negative, have %g", tol))
	}
	el.detTol = tol
}

// DetTolerance is the absolute cutoff applied to Jacobian determinants, the
// relative tolerance scaled by h^dim so that it follows the element size.
func (el *Element) DetTolerance() float64 { return el.detTol * el.extent }

func (el *Element) Dim() int            { return el.table.Dim }
func (el *Element) Nnodes() int         { return el.table.Nnodes }
func (el *Element) Table() *shape.Table { return el.table }

// InverseJacobian builds J[i][j] = Σn dNn/dRi * xj(n) at integration point gp
// and returns its inverse and determinant. Zero, tiny and negative
// determinants are rejected.
func (el *Element) InverseJacobian(gp int) (ijac utils.SmallMatrix, det float64, err error) {
	var (
		tbl = el.table
		dim = tbl.Dim
		jac = utils.NewSmallMatrix(dim)
	)
	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			var sum float64
			for n := 0; n < tbl.Nnodes; n++ {
				sum += tbl.DSh[n][i][gp] * el.Nodes[n].Coord(j)
			}
			jac.Data[i][j] = sum
		}
	}
	tol := el.DetTolerance()
	det, err = jac.Inverse(&ijac, tol)
	if err == nil && det <= tol {
		err = errInverted
	}
	if err != nil {
		err = &DegenerateGeometryError{
			Element:    el.ID,
			Kind:       el.Kind,
			GaussPoint: gp,
			Det:        det,
			Err:        err,
		}
		ijac = utils.SmallMatrix{}
	}
	return
}

// PhysicalGradients fills G[n][a] = dNn/dxa = Σk ijac[a][k] dNn/dRk at gp
func (el *Element) PhysicalGradients(gp int, ijac *utils.SmallMatrix, G [][3]float64) {
	var (
		tbl = el.table
		dim = tbl.Dim
	)
	for n := 0; n < tbl.Nnodes; n++ {
		G[n] = [3]float64{}
		for a := 0; a < dim; a++ {
			for k := 0; k < dim; k++ {
				G[n][a] += ijac.Data[a][k] * tbl.DSh[n][k][gp]
			}
		}
	}
}

func (el *Element) ComputeAe() (Ae utils.Matrix, err error) {
	Ae, _, err = el.compute(true, false)
	return
}

func (el *Element) ComputeBe() (Be utils.Matrix, err error) {
	_, Be, err = el.compute(false, true)
	return
}

// ComputeAeBe computes both matrices in one pass over the integration points
func (el *Element) ComputeAeBe() (Ae, Be utils.Matrix, err error) {
	return el.compute(true, true)
}

func (el *Element) compute(wantAe, wantBe bool) (Ae, Be utils.Matrix, err error) {
	var (
		n      = el.table.Nnodes
		ae, be []float64
	)
	if wantAe {
		ae = make([]float64, n*n)
	}
	if wantBe {
		be = make([]float64, n*n)
	}
	if err = el.accumulate(ae, be); err != nil {
		return
	}
	for _, m := range [][]float64{ae, be} {
		if m == nil {
			continue
		}
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				m[j*n+i] = m[i*n+j]
			}
		}
	}
	if wantAe {
		Ae = utils.NewMatrix(n, n, ae)
	}
	if wantBe {
		Be = utils.NewMatrix(n, n, be)
	}
	return
}

// accumulate integrates the upper triangle (j >= i) of the requested
// matrices. A nil slice skips that matrix.
func (el *Element) accumulate(ae, be []float64) (err error) {
	var (
		tbl     = el.table
		n       = tbl.Nnodes
		dim     = tbl.Dim
		d       = el.Material.D
		xsA     = el.Material.XsA
		nuSigF  = el.Material.NuSigmaF()
		G       [][3]float64
		ijac    utils.SmallMatrix
		det, wd float64
	)
	if ae != nil {
		G = make([][3]float64, n)
	}
	for gp := 0; gp < tbl.Ngp; gp++ {
		if ijac, det, err = el.InverseJacobian(gp); err != nil {
			return
		}
		if ae != nil {
			el.PhysicalGradients(gp, &ijac, G)
		}
		wd = tbl.W[gp] * det
		for i := 0; i < n; i++ {
			Si := tbl.Sh[i][gp]
			for j := i; j < n; j++ {
				Sj := tbl.Sh[j][gp]
				if ae != nil {
					var gg float64
					for a := 0; a < dim; a++ {
						gg += G[i][a] * G[j][a]
					}
					ae[i*n+j] += (d*gg + xsA*Si*Sj) * wd
				}
				if be != nil {
					be[i*n+j] += nuSigF * Si * Sj * wd
				}
			}
		}
	}
	return
}

// Volume is the physical measure (length, area or volume) of the element
func (el *Element) Volume() (vol float64, err error) {
	var det float64
	for gp := 0; gp < el.table.Ngp; gp++ {
		if _, det, err = el.InverseJacobian(gp); err != nil {
			return 0, err
		}
		vol += el.table.W[gp] * det
	}
	return
}

func (el *Element) Centroid() (c types.Node) {
	var (
		oon = 1. / float64(len(el.Nodes))
	)
	for _, nd := range el.Nodes {
		c.X += nd.X * oon
		c.Y += nd.Y * oon
		c.Z += nd.Z * oon
	}
	return
}

func (el *Element) String() string {
	return fmt.Sprintf("element %d (%s) nodes %v, material %q", el.ID, el.Kind, el.NodeIndexes, el.Material.Name)
}
