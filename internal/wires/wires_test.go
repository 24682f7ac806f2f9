package wires

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	w := New("a", "b", "c")
	assert.Equal(t, 3, w.Len())
	assert.Equal(t, Wires{"a", "b", "c"}, w)
}

func TestInts(t *testing.T) {
	w := Ints(0, 1, 5)
	assert.Equal(t, Wires{"0", "1", "5"}, w)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		w       Wires
		wantErr bool
	}{
		{"empty", Wires{}, false},
		{"unique", New("a", "b", "c"), false},
		{"duplicate", New("a", "b", "a"), true},
		{"adjacent duplicate", New("x", "x"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.w.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestContainsIndex(t *testing.T) {
	w := New("q0", "q1", "q2")
	assert.True(t, w.Contains("q1"))
	assert.False(t, w.Contains("q3"))
	assert.Equal(t, 2, w.Index("q2"))
	assert.Equal(t, -1, w.Index("q3"))
}

func TestSharedDisjoint(t *testing.T) {
	a := New("a", "b", "c")
	b := New("c", "d", "b")

	shared := a.Shared(b)
	assert.Equal(t, Wires{"b", "c"}, shared, "shared labels keep the receiver's order")

	assert.False(t, a.Disjoint(b))
	assert.True(t, a.Disjoint(New("x", "y")))
	assert.True(t, a.Disjoint(Wires{}))
}

func TestConcat(t *testing.T) {
	a := New("a", "b")
	b := New("c")
	c := New("d", "e")

	got := a.Concat(b, c)
	assert.Equal(t, Wires{"a", "b", "c", "d", "e"}, got)

	// The receiver is untouched.
	assert.Equal(t, Wires{"a", "b"}, a)
}

func TestEqual(t *testing.T) {
	assert.True(t, New("a", "b").Equal(New("a", "b")))
	assert.False(t, New("a", "b").Equal(New("b", "a")), "order matters")
	assert.False(t, New("a").Equal(New("a", "b")))
}

func TestClone(t *testing.T) {
	w := New("a", "b")
	c := w.Clone()
	require.Equal(t, w, c)

	c[0] = "z"
	assert.Equal(t, "a", w[0], "clone must not alias the original")
}

func TestString(t *testing.T) {
	assert.Equal(t, "[a b c]", New("a", "b", "c").String())
	assert.Equal(t, "[]", Wires{}.String())
}
