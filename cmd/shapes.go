package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/notargets/fermi/shape"
)

// ShapesCmd represents the shapes command
var ShapesCmd = &cobra.Command{
	Use:   "shapes [kind...]",
	Short: "Print reference shape function tables and check the partition of unity",
	Long: `
Prints the integration points, weights, shape functions and derivatives of each
requested element kind (all kinds when none is given).

fermi shapes seg2 quad4`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunShapes(os.Stdout, args)
	},
}

func init() {
	rootCmd.AddCommand(ShapesCmd)
}

func RunShapes(w io.Writer, names []string) (err error) {
	var (
		kinds []shape.Kind
		log   = newLogger()
	)
	if len(names) == 0 {
		kinds = shape.Kinds()
	}
	for _, name := range names {
		var k shape.Kind
		if k, err = shape.ParseKind(name); err != nil {
			return
		}
		kinds = append(kinds, k)
	}
	for _, k := range kinds {
		var tbl *shape.Table
		if tbl, err = shape.Get(k); err != nil {
			return
		}
		if err = tbl.CheckPartitionOfUnity(1.e-13); err != nil {
			return
		}
		log.Debug("partition of unity", "kind", k, "gauss points", tbl.Ngp)
		fmt.Fprintf(w, "%s: dim = %d, nodes = %d, gauss points = %d\n", k, tbl.Dim, tbl.Nnodes, tbl.Ngp)
		for gp := 0; gp < tbl.Ngp; gp++ {
			fmt.Fprintf(w, "  gp %d: r = %8.5f w = %8.5f\n", gp, tbl.R[gp][:tbl.Dim], tbl.W[gp])
			for n := 0; n < tbl.Nnodes; n++ {
				dS := make([]float64, tbl.Dim)
				for dir := range dS {
					dS[dir] = tbl.DShapes(n, dir, gp)
				}
				fmt.Fprintf(w, "    S[%d] = %9.6f dS/dR = %9.6f\n", n, tbl.Shapes(n, gp), dS)
			}
		}
	}
	return
}
