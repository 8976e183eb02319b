package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/fermi/InputParameters"
	"github.com/notargets/fermi/element"
	"github.com/notargets/fermi/utils"
)

type ElementRun struct {
	InputFile string
	Parallel  int     // Number of goroutines, <= 0 uses every CPU
	Check     bool    // Verify that every result is symmetric positive semi definite
	Quiet     bool    // Skip printing the matrices
	DetTol    float64 // Overrides the problem file DetTol when > 0
}

// ElementCmd represents the element command
var ElementCmd = &cobra.Command{
	Use:   "element",
	Short: "Compute the local matrices Ae and Be of every element in a problem file",
	Long: `
Reads a YAML problem file and prints the stiffness/absorption matrix Ae and the
fission source matrix Be of every element, with its local to global node map.

fermi element -I problem.yaml`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		er := &ElementRun{}
		if er.InputFile, err = cmd.Flags().GetString("inputFile"); err != nil {
			return
		}
		er.Parallel = viper.GetInt("parallel")
		er.DetTol = viper.GetFloat64("detTol")
		er.Check, _ = cmd.Flags().GetBool("check")
		er.Quiet, _ = cmd.Flags().GetBool("quiet")
		if len(er.InputFile) == 0 {
			exampleFile := `
########################################
Title: "Slab"
Materials:
  fuel: {XsA: 0.08, XsF: 0.03, Nu: 2.43, D: 1.3}
Nodes: [[0], [1], [2]]
Elements:
  - {Kind: seg2, Nodes: [0, 1], Material: fuel}
  - {Kind: seg2, Nodes: [1, 2], Material: fuel}
########################################
`
			fmt.Printf("Example File:%s\n", exampleFile)
			return fmt.Errorf("must supply a problem file (-I, --inputFile)")
		}
		if dir := viper.GetString("profile"); dir != "" {
			defer profile.Start(profile.CPUProfile, profile.ProfilePath(dir), profile.Quiet).Stop()
		}
		var data []byte
		if data, err = os.ReadFile(er.InputFile); err != nil {
			return
		}
		ip := &InputParameters.InputParameters{}
		if err = ip.Parse(data); err != nil {
			return fmt.Errorf("parsing %s: %w", er.InputFile, err)
		}
		if viper.GetBool("verbose") {
			ip.Print()
		}
		return RunElements(os.Stdout, ip, er)
	},
}

func init() {
	rootCmd.AddCommand(ElementCmd)
	ElementCmd.Flags().StringP("inputFile", "I", "", "YAML problem file with Materials, Nodes and Elements")
	ElementCmd.Flags().IntP("parallel", "p", 0, "number of goroutines, 0 uses every CPU")
	ElementCmd.Flags().Bool("check", false, "verify that every Ae and Be is symmetric positive semi definite")
	ElementCmd.Flags().BoolP("quiet", "q", false, "do not print the matrices")
	ElementCmd.Flags().Float64("detTol", 0, "relative Jacobian determinant tolerance, 0 keeps the problem file value")
	_ = viper.BindPFlag("parallel", ElementCmd.Flags().Lookup("parallel"))
	_ = viper.BindPFlag("detTol", ElementCmd.Flags().Lookup("detTol"))
}

func RunElements(w io.Writer, ip *InputParameters.InputParameters, er *ElementRun) (err error) {
	var (
		log      = newLogger()
		els      []*element.Element
		contribs []element.Contribution
		start    = time.Now()
	)
	if er.DetTol > 0 {
		ip.DetTol = er.DetTol
	}
	if els, err = ip.Build(); err != nil {
		return
	}
	log.Debug("built elements", "title", ip.Title, "elements", len(els), "nodes", len(ip.Nodes))
	if contribs, err = element.ComputeAll(els, er.Parallel); err != nil {
		return
	}
	log.Info("computed element matrices", "elements", len(contribs), "parallel", er.Parallel,
		"elapsed", time.Since(start))
	for _, c := range contribs {
		if er.Check {
			if err = checkContribution(c); err != nil {
				return
			}
		}
		if er.Quiet {
			continue
		}
		fmt.Fprintf(w, "%s\n", c.Element)
		fmt.Fprint(w, c.Ae.Print("Ae"))
		fmt.Fprint(w, c.Be.Print("Be"))
	}
	return
}

// checkContribution verifies that Ae and Be are symmetric positive semi
// definite, as diffusion and mass forms must be.
func checkContribution(c element.Contribution) (err error) {
	for _, m := range []struct {
		name string
		M    utils.Matrix
	}{{"Ae", c.Ae}, {"Be", c.Be}} {
		if !m.M.IsSymmetric(0) {
			return fmt.Errorf("%s: %s is not symmetric", c.Element, m.name)
		}
		var ok bool
		if ok, err = m.M.IsPositiveSemiDefinite(1.e-10); err != nil {
			return fmt.Errorf("%s: %s: %w", c.Element, m.name, err)
		}
		if !ok {
			return fmt.Errorf("%s: %s is not positive semi definite", c.Element, m.name)
		}
	}
	return
}
