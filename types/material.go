package types

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidMaterial = errors.New("invalid material")

// Material holds the one group diffusion parameters of a region
type Material struct {
	Name string
	XsA  float64 // Absorption cross section
	XsF  float64 // Fission cross section
	Nu   float64 // Neutrons per fission
	D    float64 // Diffusion coefficient
}

func (m Material) NuSigmaF() float64 { return m.Nu * m.XsF }

func (m Material) Validate() (err error) {
	fields := []struct {
		name string
		val  float64
	}{
		{"xs_a", m.XsA},
		{"xs_f", m.XsF},
		{"nu", m.Nu},
		{"d", m.D},
	}
	for _, f := range fields {
		if math.IsNaN(f.val) || math.IsInf(f.val, 0) || f.val < 0 {
			return fmt.Errorf("%w %q: %s = %g", ErrInvalidMaterial, m.Name, f.name, f.val)
		}
	}
	return
}
