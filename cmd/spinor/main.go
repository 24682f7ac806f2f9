// Package main provides the Spinor QML framework CLI.
package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/spinor-ml/spinor/controlled"
	"github.com/spinor-ml/spinor/internal/circuit"
	"github.com/spinor-ml/spinor/operator"
	"github.com/spinor-ml/spinor/quantuminfo"
)

const version = "v0.1.0-dev"

var (
	circuitFile string
	entropyBase float64
	verbose     bool
)

func main() {
	root := &cobra.Command{
		Use:   "spinor",
		Short: "Spinor QML Framework - symbolic quantum operators for Go",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.WarnLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
			controlled.SetLogger(log)
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(versionCmd(), describeCmd(), matrixCmd(), sparseCmd(), eigvalsCmd(), entropyCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("Spinor QML Framework %s\n", version)
		},
	}
}

func loadCircuit() (*circuit.Circuit, error) {
	if circuitFile == "" {
		return nil, fmt.Errorf("no circuit file given; use -f")
	}
	spec, err := circuit.Load(circuitFile)
	if err != nil {
		return nil, err
	}
	return spec.Build()
}

func describeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe",
		Short: "List the operations of a circuit description",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCircuit()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "#\tOPERATION\tWIRES\tPARAMS")
			for i, op := range c.Ops {
				fmt.Fprintf(w, "%d\t%s\t%s\t%v\n", i, op.Name(), op.Wires(), op.Data())
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVarP(&circuitFile, "file", "f", "", "circuit description file")
	return cmd
}

func matrixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "matrix",
		Short: "Print the circuit unitary",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCircuit()
			if err != nil {
				return err
			}
			u, err := c.Matrix()
			if err != nil {
				return err
			}
			fmt.Printf("wires: %s\n%s", c.Wires(), u)
			return nil
		},
	}
	cmd.Flags().StringVarP(&circuitFile, "file", "f", "", "circuit description file")
	return cmd
}

func sparseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sparse",
		Short: "Print the CSR form of each operation that has a sparse representation",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCircuit()
			if err != nil {
				return err
			}
			for _, op := range c.Ops {
				sm, ok := op.(operator.SparseMatrixer)
				if !ok {
					fmt.Printf("%s: dense only\n", op.Name())
					continue
				}
				s, err := sm.SparseMatrix(nil, operator.FormatCSR)
				if err != nil {
					return fmt.Errorf("sparse matrix of %s: %w", op.Name(), err)
				}
				indptr, indices, values := s.CSR()
				fmt.Printf("%s: dim=%d nnz=%d\n  indptr:  %v\n  indices: %v\n  values:  %v\n",
					op.Name(), s.Dim(), s.NNZ(), indptr, indices, values)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&circuitFile, "file", "f", "", "circuit description file")
	return cmd
}

func eigvalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eigvals",
		Short: "Print the eigenvalues of each circuit operation",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCircuit()
			if err != nil {
				return err
			}
			for _, op := range c.Ops {
				vals, err := op.Eigvals()
				if err != nil {
					return fmt.Errorf("eigenvalues of %s: %w", op.Name(), err)
				}
				fmt.Printf("%s: %v\n", op.Name(), vals)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&circuitFile, "file", "f", "", "circuit description file")
	return cmd
}

func entropyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entropy",
		Short: "Von Neumann entropy of the circuit output state",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCircuit()
			if err != nil {
				return err
			}
			state, err := c.State()
			if err != nil {
				return err
			}
			s, err := quantuminfo.VonNeumannEntropyFromState(state, entropyBase, true)
			if err != nil {
				return err
			}
			fmt.Printf("entropy: %g\n", s)
			return nil
		},
	}
	cmd.Flags().StringVarP(&circuitFile, "file", "f", "", "circuit description file")
	cmd.Flags().Float64VarP(&entropyBase, "base", "b", 0, "logarithm base (0 = natural)")
	return cmd
}
