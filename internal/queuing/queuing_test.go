package queuing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOp struct{ name string }

func (f *fakeOp) Name() string { return f.name }

func TestActiveStack(t *testing.T) {
	require.Nil(t, Active(), "no context open at test start")

	outer := NewContext()
	assert.Same(t, outer, Active())

	inner := NewContext()
	assert.Same(t, inner, Active(), "innermost context is active")

	inner.Close()
	assert.Same(t, outer, Active())

	outer.Close()
	assert.Nil(t, Active())
}

func TestCloseOutOfOrder(t *testing.T) {
	outer := NewContext()
	inner := NewContext()

	outer.Close()
	assert.Same(t, inner, Active(), "closing a non-innermost context removes only it")

	inner.Close()
	assert.Nil(t, Active())
}

func TestAppendAndRecords(t *testing.T) {
	ctx := NewContext()
	defer ctx.Close()

	a := &fakeOp{name: "A"}
	b := &fakeOp{name: "B"}
	ctx.Append(a)
	ctx.Append(b)

	assert.Equal(t, 2, ctx.Len())
	recs := ctx.Records()
	require.Len(t, recs, 2)
	assert.Same(t, a, recs[0].(*fakeOp))
	assert.Same(t, b, recs[1].(*fakeOp))
}

func TestAppendAssignsRecordIDs(t *testing.T) {
	ctx := NewContext()
	defer ctx.Close()

	a := &fakeOp{name: "A"}
	b := &fakeOp{name: "B"}
	ctx.Append(a)
	ctx.Append(b)

	ia, ok := ctx.InfoOf(a)
	require.True(t, ok)
	ib, ok := ctx.InfoOf(b)
	require.True(t, ok)

	assert.NotEmpty(t, ia.ID)
	assert.NotEmpty(t, ib.ID)
	assert.NotEqual(t, ia.ID, ib.ID, "every record gets its own id")
}

func TestOwnership(t *testing.T) {
	ctx := NewContext()
	defer ctx.Close()

	base := &fakeOp{name: "PauliX"}
	wrapper := &fakeOp{name: "CPauliX"}

	ctx.Append(base)
	ctx.Append(wrapper, base)

	inf, ok := ctx.InfoOf(base)
	require.True(t, ok)
	assert.Same(t, wrapper, inf.Owner.(*fakeOp))

	winf, ok := ctx.InfoOf(wrapper)
	require.True(t, ok)
	require.Len(t, winf.Owns, 1)
	assert.Same(t, base, winf.Owns[0].(*fakeOp))
}

func TestTopLevelExcludesOwned(t *testing.T) {
	ctx := NewContext()
	defer ctx.Close()

	base := &fakeOp{name: "PauliX"}
	wrapper := &fakeOp{name: "CPauliX"}
	other := &fakeOp{name: "Hadamard"}

	ctx.Append(base)
	ctx.Append(wrapper, base)
	ctx.Append(other)

	top := ctx.TopLevel()
	require.Len(t, top, 2)
	assert.Same(t, wrapper, top[0].(*fakeOp))
	assert.Same(t, other, top[1].(*fakeOp))
}

func TestSafeUpdateInfo(t *testing.T) {
	ctx := NewContext()
	defer ctx.Close()

	recorded := &fakeOp{name: "recorded"}
	unrecorded := &fakeOp{name: "unrecorded"}
	owner := &fakeOp{name: "owner"}

	ctx.Append(recorded)

	ctx.SafeUpdateInfo(recorded, owner)
	inf, ok := ctx.InfoOf(recorded)
	require.True(t, ok)
	assert.Same(t, owner, inf.Owner.(*fakeOp))

	ctx.SafeUpdateInfo(unrecorded, owner)
	_, ok = ctx.InfoOf(unrecorded)
	assert.False(t, ok, "unrecorded items are ignored")
}

func TestRemove(t *testing.T) {
	ctx := NewContext()
	defer ctx.Close()

	a := &fakeOp{name: "A"}
	b := &fakeOp{name: "B"}
	ctx.Append(a)
	ctx.Append(b)

	ctx.Remove(a)
	assert.Equal(t, 1, ctx.Len())
	_, ok := ctx.InfoOf(a)
	assert.False(t, ok)

	// Removing twice is a no-op.
	ctx.Remove(a)
	assert.Equal(t, 1, ctx.Len())
}
