// Package queuing implements the recording context that captures operators
// as they are constructed, in order, together with ownership annotations.
//
// A Context records items during circuit construction the same way a
// gradient tape records operations during a forward pass. Symbolic wrappers
// use the ownership annotations to take over their wrapped operator, so the
// wrapped operator no longer appears as an independent top-level entry.
//
// Usage:
//
//	ctx := queuing.NewContext()
//	defer ctx.Close()
//	// ... construct operators ...
//	ops := ctx.TopLevel()
package queuing

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Category sorts recorded items into the lists a circuit recorder keeps.
type Category string

// Queue categories.
const (
	CategoryNone         Category = ""
	CategoryPrep         Category = "prep"
	CategoryOps          Category = "ops"
	CategoryMeasurements Category = "measurements"
)

// Item is anything a Context can record.
type Item interface {
	Name() string
}

// Info holds the annotations attached to a recorded item.
type Info struct {
	// ID is the unique record identifier assigned when the item is
	// appended.
	ID string
	// Owner is the item that subsumes this one, if any. Owned items are
	// excluded from TopLevel.
	Owner Item
	// Owns lists the items this one subsumes.
	Owns []Item
}

type record struct {
	id   string
	item Item
}

// Context is an ordered recording of items with per-item annotations.
// A Context is not safe for concurrent use; the active-context stack is.
type Context struct {
	records []record
	info    map[Item]*Info
	log     zerolog.Logger
}

var (
	activeMu sync.Mutex
	active   []*Context
)

// NewContext creates a recording context and pushes it onto the active
// stack. Call Close to pop it.
func NewContext() *Context {
	c := &Context{
		records: make([]record, 0, 16),
		info:    make(map[Item]*Info),
		log:     zerolog.Nop(),
	}
	activeMu.Lock()
	active = append(active, c)
	activeMu.Unlock()
	return c
}

// Active returns the innermost recording context, or nil when none is open.
func Active() *Context {
	activeMu.Lock()
	defer activeMu.Unlock()
	if len(active) == 0 {
		return nil
	}
	return active[len(active)-1]
}

// Close pops the context from the active stack. Closing a context that is
// not the innermost one also removes it.
func (c *Context) Close() {
	activeMu.Lock()
	defer activeMu.Unlock()
	for i := len(active) - 1; i >= 0; i-- {
		if active[i] == c {
			active = append(active[:i], active[i+1:]...)
			return
		}
	}
}

// SetLogger attaches a logger used for queue diagnostics.
func (c *Context) SetLogger(log zerolog.Logger) {
	c.log = log.With().Str("component", "queuing").Logger()
}

// Append records an item, optionally marking items it owns. Owned items
// that were recorded earlier are annotated with this item as their owner.
func (c *Context) Append(item Item, owns ...Item) {
	id := uuid.NewString()
	c.records = append(c.records, record{id: id, item: item})
	inf := c.infoFor(item)
	inf.ID = id
	for _, owned := range owns {
		inf.Owns = append(inf.Owns, owned)
		c.infoFor(owned).Owner = item
	}
	c.log.Debug().Str("id", id).Str("op", item.Name()).Int("position", len(c.records)-1).Msg("recorded")
}

// SafeUpdateInfo sets the owner annotation for an item if it has been
// recorded; unrecorded items are ignored.
func (c *Context) SafeUpdateInfo(item Item, owner Item) {
	if !c.contains(item) {
		return
	}
	c.infoFor(item).Owner = owner
}

// Remove drops an item and its annotations from the recording. Removing an
// unrecorded item is a no-op.
func (c *Context) Remove(item Item) {
	for i, r := range c.records {
		if r.item == item {
			c.records = append(c.records[:i], c.records[i+1:]...)
			delete(c.info, item)
			return
		}
	}
}

// InfoOf returns the annotations for a recorded item.
func (c *Context) InfoOf(item Item) (Info, bool) {
	inf, ok := c.info[item]
	if !ok {
		return Info{}, false
	}
	return *inf, true
}

// Records returns all recorded items in recording order.
func (c *Context) Records() []Item {
	out := make([]Item, len(c.records))
	for i, r := range c.records {
		out[i] = r.item
	}
	return out
}

// TopLevel returns the recorded items that are not owned by another item.
func (c *Context) TopLevel() []Item {
	var out []Item
	for _, r := range c.records {
		if inf, ok := c.info[r.item]; ok && inf.Owner != nil {
			continue
		}
		out = append(out, r.item)
	}
	return out
}

// Len returns the number of recorded items.
func (c *Context) Len() int {
	return len(c.records)
}

func (c *Context) infoFor(item Item) *Info {
	inf, ok := c.info[item]
	if !ok {
		inf = &Info{}
		c.info[item] = inf
	}
	return inf
}

func (c *Context) contains(item Item) bool {
	for _, r := range c.records {
		if r.item == item {
			return true
		}
	}
	return false
}
