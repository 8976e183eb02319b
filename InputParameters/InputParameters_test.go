package InputParameters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/fermi/element"
	"github.com/notargets/fermi/shape"
	"github.com/notargets/fermi/types"
)

var problem = []byte(`
Title: Two region slab
Materials:
  fuel:
    XsA: 0.08
    XsF: 0.03
    Nu: 2.43
    D: 1.3
  reflector:
    XsA: 0.01
    D: 0.9
Nodes:
  - [0]
  - [1]
  - [2]
  - [3]
  - [9]   # not referenced
Elements:
  - {Kind: seg2, Nodes: [0, 1], Material: fuel}
  - {Kind: seg2, Nodes: [1, 2], Material: fuel}
  - {Kind: lin2, Nodes: [2, 3], Material: reflector}
`)

func TestParseAndBuild(t *testing.T) {
	var ip InputParameters
	require.NoError(t, ip.Parse(problem))
	assert.Equal(t, "Two region slab", ip.Title)
	assert.Equal(t, 2.43, ip.Materials["fuel"].Nu)
	assert.Equal(t, 0., ip.Materials["reflector"].XsF)
	assert.Len(t, ip.Nodes, 5)
	ip.Print()

	els, err := ip.Build()
	require.NoError(t, err)
	require.Len(t, els, 3)
	assert.Equal(t, shape.Segment2, els[2].Kind)
	assert.Equal(t, []int{2, 3}, els[2].NodeIndexes)
	assert.Equal(t, "reflector", els[2].Material.Name)
	assert.Equal(t, types.Node{X: 3}, els[2].Nodes[1])
	assert.Equal(t, 2, els[2].ID)

	Ae, err := els[2].ComputeAe()
	require.NoError(t, err)
	assert.InDelta(t, 0.9+0.01/3, Ae.At(0, 0), 1.e-14)
}

func TestConnectivity(t *testing.T) {
	var ip InputParameters
	require.NoError(t, ip.Parse(problem))
	valence, nnz, err := ip.Connectivity()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 2, 1, 0}, valence)
	assert.Equal(t, 4+2*3, nnz)
	{ // Two quads sharing an edge: 6 nodes, 4 of them coupled to the other quad
		q := InputParameters{
			Nodes: [][]float64{{0, 0}, {1, 0}, {2, 0}, {0, 1}, {1, 1}, {2, 1}},
			Elements: []ElementInput{
				{Kind: "quad4", Nodes: []int{0, 1, 4, 3}},
				{Kind: "quad4", Nodes: []int{1, 2, 5, 4}},
			},
		}
		valence, nnz, err = q.Connectivity()
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 1, 1, 2, 1}, valence)
		assert.Equal(t, 16+16-4, nnz)
	}
	_, _, err = (&InputParameters{}).Connectivity()
	assert.ErrorIs(t, err, ErrInput)
}

func TestBuildErrors(t *testing.T) {
	base := func() InputParameters {
		return InputParameters{
			Materials: map[string]MaterialInput{"m": {D: 1}},
			Nodes:     [][]float64{{0}, {1}, {2}},
			Elements:  []ElementInput{{Kind: "seg2", Nodes: []int{0, 1}, Material: "m"}},
		}
	}
	{
		ip := base()
		ip.Elements[0].Material = "missing"
		_, err := ip.Build()
		assert.ErrorIs(t, err, ErrInput)
	}
	{
		ip := base()
		ip.Elements[0].Nodes = []int{0, 3}
		_, err := ip.Build()
		assert.ErrorIs(t, err, ErrInput)
		_, _, err = ip.Connectivity()
		assert.ErrorIs(t, err, ErrInput)
	}
	{
		ip := base()
		ip.Elements[0].Kind = "prism6"
		_, err := ip.Build()
		assert.ErrorIs(t, err, shape.ErrUnknownKind)
	}
	{
		ip := base()
		ip.Elements[0].Nodes = []int{0, 1, 2}
		_, err := ip.Build()
		assert.ErrorIs(t, err, element.ErrShapeMismatch)
	}
	{
		ip := base()
		ip.Nodes[1] = []float64{1, 2, 3, 4}
		_, err := ip.Build()
		assert.ErrorIs(t, err, ErrInput)
	}
	{
		ip := base()
		ip.Materials["m"] = MaterialInput{D: -1}
		_, err := ip.Build()
		assert.ErrorIs(t, err, types.ErrInvalidMaterial)
	}
}

func TestDetTol(t *testing.T) {
	var ip InputParameters
	require.NoError(t, ip.Parse(append(problem, []byte("DetTol: 0.6\n")...)))
	assert.Equal(t, 0.6, ip.DetTol)
	els, err := ip.Build()
	require.NoError(t, err)
	assert.Equal(t, 0.6, els[0].DetTolerance()) // unit length segment
	_, err = els[0].ComputeAe()                 // det = 0.5 on a unit segment
	assert.ErrorIs(t, err, element.ErrDegenerateGeometry)

	ip.DetTol = 0
	els, err = ip.Build()
	require.NoError(t, err)
	assert.Equal(t, 1.e-14, els[0].DetTolerance())

	ip.DetTol = -1
	_, err = ip.Build()
	assert.ErrorIs(t, err, ErrInput)
}
