// Package wires provides ordered sequences of wire labels and the set
// algebra the operator layer needs (containment, sharing, concatenation).
//
// A wire label is an opaque string. Integer-labelled wires are converted
// with Ints. Order is always significant: Wires{"0", "1"} and
// Wires{"1", "0"} are different sequences.
package wires

import (
	"fmt"
	"strconv"
	"strings"
)

// Wires is an ordered sequence of wire labels.
type Wires []string

// New builds a Wires sequence from string labels.
func New(labels ...string) Wires {
	w := make(Wires, len(labels))
	copy(w, labels)
	return w
}

// Ints builds a Wires sequence from integer labels.
func Ints(labels ...int) Wires {
	w := make(Wires, len(labels))
	for i, l := range labels {
		w[i] = strconv.Itoa(l)
	}
	return w
}

// Validate checks that no label appears twice.
func (w Wires) Validate() error {
	seen := make(map[string]struct{}, len(w))
	for _, l := range w {
		if _, ok := seen[l]; ok {
			return fmt.Errorf("wire label %q appears more than once", l)
		}
		seen[l] = struct{}{}
	}
	return nil
}

// Len returns the number of wires.
func (w Wires) Len() int {
	return len(w)
}

// Contains reports whether label is in the sequence.
func (w Wires) Contains(label string) bool {
	for _, l := range w {
		if l == label {
			return true
		}
	}
	return false
}

// Index returns the position of label, or -1 if absent.
func (w Wires) Index(label string) int {
	for i, l := range w {
		if l == label {
			return i
		}
	}
	return -1
}

// Shared returns the labels present in both sequences, in w's order.
func (w Wires) Shared(other Wires) Wires {
	var shared Wires
	for _, l := range w {
		if other.Contains(l) {
			shared = append(shared, l)
		}
	}
	return shared
}

// Disjoint reports whether the two sequences have no label in common.
func (w Wires) Disjoint(other Wires) bool {
	return len(w.Shared(other)) == 0
}

// Concat returns the concatenation of w with the given sequences,
// preserving order. The receiver is not modified.
func (w Wires) Concat(others ...Wires) Wires {
	out := make(Wires, 0, len(w))
	out = append(out, w...)
	for _, o := range others {
		out = append(out, o...)
	}
	return out
}

// Equal checks if two sequences hold the same labels in the same order.
func (w Wires) Equal(other Wires) bool {
	if len(w) != len(other) {
		return false
	}
	for i := range w {
		if w[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the sequence.
func (w Wires) Clone() Wires {
	clone := make(Wires, len(w))
	copy(clone, w)
	return clone
}

// String formats the sequence as "[a b c]".
func (w Wires) String() string {
	return "[" + strings.Join(w, " ") + "]"
}
