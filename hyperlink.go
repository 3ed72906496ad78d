package vtcore

import (
	"sync"

	"github.com/google/uuid"
)

// Hyperlink is an OSC 8 URI plus its optional "id=" parameter, which lets
// a single logical link span multiple non-adjacent text runs (e.g. a link
// broken across a line wrap) while still highlighting as one link on
// hover.
type Hyperlink struct {
	ID  uint32
	URI string
	Key string // the "id=" parameter from OSC 8, empty if none was given
}

// HyperlinkRegistry assigns small integer IDs to hyperlinks so that Cell
// can store a uint32 reference instead of a pointer, the same
// deduplication-by-identity idiom ImageManager uses for image content.
// Links sharing the same non-empty Key collapse to a single entry;
// refcounting drops an entry once no cell references it any longer.
type HyperlinkRegistry struct {
	mu sync.RWMutex

	links     map[uint32]*Hyperlink
	keyToID   map[string]uint32
	refCounts map[uint32]int

	nextID uint32
}

// NewHyperlinkRegistry returns an empty registry.
func NewHyperlinkRegistry() *HyperlinkRegistry {
	return &HyperlinkRegistry{
		links:     make(map[uint32]*Hyperlink),
		keyToID:   make(map[string]uint32),
		refCounts: make(map[uint32]int),
	}
}

// Open returns the ID for (uri, key). A non-empty key already registered
// with the same URI reuses that entry and bumps its refcount; any other
// call creates a new entry. An empty key never dedupes: each OSC 8
// with no id= parameter gets its own entry, since only a shared key makes
// two OSC 8 runs the same logical link. A synthetic key is generated for
// the un-keyed case so every Hyperlink still carries a stable, unique Key
// for callers that serialize it (e.g. Screen.Inspect's DumpLink.ID).
func (r *HyperlinkRegistry) Open(uri, key string) uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	autoKeyed := key == ""
	if !autoKeyed {
		if id, ok := r.keyToID[key]; ok {
			if link := r.links[id]; link != nil && link.URI == uri {
				r.refCounts[id]++
				return id
			}
		}
	} else {
		key = uuid.NewString()
	}

	r.nextID++
	id := r.nextID
	r.links[id] = &Hyperlink{ID: id, URI: uri, Key: key}
	r.keyToID[key] = id
	r.refCounts[id] = 1
	return id
}

// Retain increments the reference count for an existing ID (used when a
// cell is overwritten with a copy of another cell that already carries a
// hyperlink reference).
func (r *HyperlinkRegistry) Retain(id uint32) {
	if id == 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.links[id]; ok {
		r.refCounts[id]++
	}
}

// Release decrements the reference count for an ID, removing it once no
// cell references it any longer.
func (r *HyperlinkRegistry) Release(id uint32) {
	if id == 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refCounts[id]--
	if r.refCounts[id] <= 0 {
		if link, ok := r.links[id]; ok && link.Key != "" {
			delete(r.keyToID, link.Key)
		}
		delete(r.links, id)
		delete(r.refCounts, id)
	}
}

// Lookup returns the hyperlink for id, or nil if it has no entry (id == 0
// or already released).
func (r *HyperlinkRegistry) Lookup(id uint32) *Hyperlink {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.links[id]
}

// Count returns the number of distinct hyperlinks currently registered.
func (r *HyperlinkRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.links)
}
