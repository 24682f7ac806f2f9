// Package circuit loads circuit descriptions from YAML and records them on
// a queuing context, wrapping controlled entries in the symbolic
// controlled-operator construction.
//
// Description format:
//
//	name: bell-flip
//	operations:
//	  - gate: Hadamard
//	    wires: ["0"]
//	  - gate: PauliX
//	    wires: ["1"]
//	    control: ["0"]
//	    control_values: [true]
package circuit

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/spinor-ml/spinor/internal/controlled"
	"github.com/spinor-ml/spinor/internal/operator"
	"github.com/spinor-ml/spinor/internal/qmath"
	"github.com/spinor-ml/spinor/internal/queuing"
	"github.com/spinor-ml/spinor/internal/wires"
)

// OperationSpec describes one circuit entry.
type OperationSpec struct {
	Gate          string    `yaml:"gate"`
	Wires         []string  `yaml:"wires"`
	Params        []float64 `yaml:"params"`
	Control       []string  `yaml:"control"`
	ControlValues []bool    `yaml:"control_values"`
	WorkWires     []string  `yaml:"work_wires"`
}

// Spec is a parsed circuit description.
type Spec struct {
	Name       string          `yaml:"name"`
	Operations []OperationSpec `yaml:"operations"`
}

// Circuit is a built circuit: the recorded top-level operators in order.
type Circuit struct {
	Name string
	Ops  []operator.Operator
}

// Load parses a circuit description file.
func Load(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading circuit description: %w", err)
	}
	return Parse(data)
}

// Parse parses a circuit description.
func Parse(data []byte) (*Spec, error) {
	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parsing circuit description: %w", err)
	}
	if len(spec.Operations) == 0 {
		return nil, fmt.Errorf("circuit description has no operations")
	}
	return &spec, nil
}

// Build records the described operations on a fresh queuing context and
// returns the resulting circuit. Controlled entries replace their base
// operator in the recording.
func (s *Spec) Build() (*Circuit, error) {
	ctx := queuing.NewContext()
	defer ctx.Close()

	for i, op := range s.Operations {
		base, err := makeGate(op)
		if err != nil {
			return nil, fmt.Errorf("operation %d: %w", i, err)
		}
		if len(op.Control) == 0 {
			continue // the gate recorded itself
		}
		opts := []controlled.Option{}
		if op.ControlValues != nil {
			opts = append(opts, controlled.WithControlValues(op.ControlValues))
		}
		if len(op.WorkWires) > 0 {
			opts = append(opts, controlled.WithWorkWires(wires.New(op.WorkWires...)))
		}
		if _, err := controlled.New(base, wires.New(op.Control...), opts...); err != nil {
			return nil, fmt.Errorf("operation %d: %w", i, err)
		}
	}

	var ops []operator.Operator
	for _, item := range ctx.TopLevel() {
		op, ok := item.(operator.Operator)
		if !ok {
			return nil, fmt.Errorf("recorded item %q is not an operator", item.Name())
		}
		ops = append(ops, op)
	}
	return &Circuit{Name: s.Name, Ops: ops}, nil
}

func makeGate(op OperationSpec) (operator.Operator, error) {
	oneWire := func() (string, error) {
		if len(op.Wires) != 1 {
			return "", fmt.Errorf("gate %s acts on exactly one wire, got %d", op.Gate, len(op.Wires))
		}
		return op.Wires[0], nil
	}
	oneParam := func() (float64, error) {
		if len(op.Params) != 1 {
			return 0, fmt.Errorf("gate %s takes exactly one parameter, got %d", op.Gate, len(op.Params))
		}
		return op.Params[0], nil
	}

	switch op.Gate {
	case "PauliX", "X":
		w, err := oneWire()
		if err != nil {
			return nil, err
		}
		return operator.NewPauliX(w), nil
	case "PauliY", "Y":
		w, err := oneWire()
		if err != nil {
			return nil, err
		}
		return operator.NewPauliY(w), nil
	case "PauliZ", "Z":
		w, err := oneWire()
		if err != nil {
			return nil, err
		}
		return operator.NewPauliZ(w), nil
	case "Hadamard", "H":
		w, err := oneWire()
		if err != nil {
			return nil, err
		}
		return operator.NewHadamard(w), nil
	case "RX", "RY", "RZ", "PhaseShift":
		w, err := oneWire()
		if err != nil {
			return nil, err
		}
		theta, err := oneParam()
		if err != nil {
			return nil, err
		}
		switch op.Gate {
		case "RX":
			return operator.NewRX(theta, w), nil
		case "RY":
			return operator.NewRY(theta, w), nil
		case "RZ":
			return operator.NewRZ(theta, w), nil
		default:
			return operator.NewPhaseShift(theta, w), nil
		}
	default:
		return nil, fmt.Errorf("unknown gate %q", op.Gate)
	}
}

// Wires returns the ordered union of all wires the circuit touches, in
// first-appearance order.
func (c *Circuit) Wires() wires.Wires {
	var out wires.Wires
	for _, op := range c.Ops {
		for _, w := range op.Wires() {
			if !out.Contains(w) {
				out = append(out, w)
			}
		}
	}
	return out
}

// Matrix composes the circuit unitary over the circuit's wire order, later
// operations applied after (to the left of) earlier ones.
func (c *Circuit) Matrix() (*qmath.Matrix, error) {
	order := c.Wires()
	u := qmath.Eye(1 << order.Len())
	for _, op := range c.Ops {
		m, err := op.Matrix(order)
		if err != nil {
			return nil, fmt.Errorf("matrix of %s: %w", op.Name(), err)
		}
		u, err = m.Mul(u)
		if err != nil {
			return nil, err
		}
	}
	return u, nil
}

// State applies the circuit unitary to |0...0⟩.
func (c *Circuit) State() ([]complex128, error) {
	u, err := c.Matrix()
	if err != nil {
		return nil, err
	}
	dim := u.Dim()
	state := make([]complex128, dim)
	for i := 0; i < dim; i++ {
		state[i] = u.At(i, 0)
	}
	return state, nil
}
