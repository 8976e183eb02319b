package InputParameters

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/ghodss/yaml"
	"github.com/james-bowman/sparse"

	"github.com/notargets/fermi/element"
	"github.com/notargets/fermi/shape"
	"github.com/notargets/fermi/types"
)

var ErrInput = errors.New("invalid problem input")

type MaterialInput struct {
	XsA float64 `json:"XsA"` // Absorption cross section
	XsF float64 `json:"XsF"` // Fission cross section
	Nu  float64 `json:"Nu"`  // Neutrons per fission
	D   float64 `json:"D"`   // Diffusion coefficient
}

type ElementInput struct {
	Kind     string `json:"Kind"`     // seg2, seg3, tri3, tri6, quad4, quad9, tet4, hex8
	Nodes    []int  `json:"Nodes"`    // Indices into the Nodes list, in local order
	Material string `json:"Material"` // Key into Materials
}

// Parameters obtained from the YAML problem file
type InputParameters struct {
	Title     string                   `json:"Title"`
	Materials map[string]MaterialInput `json:"Materials"`
	Nodes     [][]float64              `json:"Nodes"` // Up to 3 coordinates per node
	Elements  []ElementInput           `json:"Elements"`
	DetTol    float64                  `json:"DetTol,omitempty"` // Relative Jacobian determinant tolerance, 0 keeps the default
}

func (ip *InputParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func (ip *InputParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%d]\t\t\t= Nodes\n", len(ip.Nodes))
	fmt.Printf("[%d]\t\t\t= Elements\n", len(ip.Elements))
	if ip.DetTol != 0 {
		fmt.Printf("[%g]\t\t= DetTol\n", ip.DetTol)
	}
	keys := make([]string, len(ip.Materials))
	i := 0
	for k := range ip.Materials {
		keys[i] = k
		i++
	}
	sort.Strings(keys)
	for _, key := range keys {
		m := ip.Materials[key]
		fmt.Printf("Materials[%s] = XsA:%8.5f XsF:%8.5f Nu:%8.5f D:%8.5f\n", key, m.XsA, m.XsF, m.Nu, m.D)
	}
	if valence, nnz, err := ip.Connectivity(); err == nil {
		var orphans []int
		for n, v := range valence {
			if v == 0 {
				orphans = append(orphans, n)
			}
		}
		fmt.Printf("[%d]\t\t\t= Global matrix non zeros\n", nnz)
		if len(orphans) != 0 {
			fmt.Printf("Nodes not referenced by any element: %v\n", orphans)
		}
	}
}

func (ip *InputParameters) Material(name string) (m types.Material, err error) {
	mi, ok := ip.Materials[name]
	if !ok {
		err = fmt.Errorf("%w: unknown material %q", ErrInput, name)
		return
	}
	m = types.Material{Name: name, XsA: mi.XsA, XsF: mi.XsF, Nu: mi.Nu, D: mi.D}
	return
}

// Build constructs one Element per entry of Elements, numbered by position
func (ip *InputParameters) Build() (els []*element.Element, err error) {
	var (
		nodes = make([]types.Node, len(ip.Nodes))
	)
	if ip.DetTol < 0 || math.IsNaN(ip.DetTol) || math.IsInf(ip.DetTol, 0) {
		err = fmt.Errorf("%w: DetTol = %g", ErrInput, ip.DetTol)
		return
	}
	for n, coords := range ip.Nodes {
		if len(coords) == 0 || len(coords) > 3 {
			err = fmt.Errorf("%w: node %d has %d coordinates", ErrInput, n, len(coords))
			return
		}
		nodes[n] = types.NewNode(coords...)
	}
	els = make([]*element.Element, len(ip.Elements))
	for k, ei := range ip.Elements {
		var (
			kind     shape.Kind
			mat      types.Material
			elNodes  = make([]types.Node, len(ei.Nodes))
			elGlobal = make([]int, len(ei.Nodes))
		)
		if kind, err = shape.ParseKind(ei.Kind); err != nil {
			return nil, fmt.Errorf("element %d: %w", k, err)
		}
		if mat, err = ip.Material(ei.Material); err != nil {
			return nil, fmt.Errorf("element %d: %w", k, err)
		}
		for i, n := range ei.Nodes {
			if n < 0 || n >= len(nodes) {
				return nil, fmt.Errorf("%w: element %d references node %d, have %d nodes",
					ErrInput, k, n, len(nodes))
			}
			elNodes[i] = nodes[n]
			elGlobal[i] = n
		}
		if els[k], err = element.NewElement(k, kind, elNodes, elGlobal, mat); err != nil {
			return nil, err
		}
		if ip.DetTol > 0 {
			els[k].SetDetTolerance(ip.DetTol)
		}
	}
	return
}

// Connectivity returns the number of elements sharing each node and the
// number of non zeros of the global matrix assembled from these elements.
// Both come from the node to node graph N = Iᵀ I, with I the element to node
// incidence matrix.
func (ip *InputParameters) Connectivity() (valence []int, nnz int, err error) {
	var (
		K  = len(ip.Elements)
		Nv = len(ip.Nodes)
	)
	if K == 0 || Nv == 0 {
		err = fmt.Errorf("%w: need at least one node and one element", ErrInput)
		return
	}
	SpEToN_Tmp := sparse.NewDOK(K, Nv)
	for k, ei := range ip.Elements {
		for _, n := range ei.Nodes {
			if n < 0 || n >= Nv {
				err = fmt.Errorf("%w: element %d references node %d, have %d nodes", ErrInput, k, n, Nv)
				return
			}
			SpEToN_Tmp.Set(k, n, 1)
		}
	}
	SpEToN := SpEToN_Tmp.ToCSR()
	SpNToN := sparse.NewCSR(Nv, Nv, nil, nil, nil)
	SpNToN.Mul(SpEToN.T(), SpEToN)
	valence = make([]int, Nv)
	for n := 0; n < Nv; n++ {
		valence[n] = int(SpNToN.At(n, n))
	}
	nnz = SpNToN.NNZ()
	return
}
