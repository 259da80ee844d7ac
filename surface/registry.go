// Copyright 2026 The wayapp Authors
// SPDX-License-Identifier: MIT

package surface

// VisitFunc is invoked by Registry.Descend for each reachable
// sub-surface that has a registered payload. sub is the identity of
// the wl_subsurface positioning object, child the identity of the
// sub-surface's wl_surface, and data points at the child's payload
// inside the registry.
type VisitFunc[T any] func(sub, child Identity, data *T)

// entry pairs the role descriptor with the application payload.
// Entries are heap-allocated so Data can hand out a stable *T.
type entry[T any] struct {
	kind Kind
	data T
}

// childLink is one parent→child adjacency record.
type childLink struct {
	sub     Identity // wl_subsurface object
	surface Identity // child wl_surface (registry key)
}

// Registry maps surface identities to their Kind and an application
// payload T, and tracks parent→children adjacency for sub-surfaces.
//
// The registry owns the payload values; it never owns protocol
// objects, which are referenced only by identity. It is not
// thread-safe: all access must happen on the goroutine that owns the
// event loop.
//
// Example:
//
//	reg := surface.NewRegistry[*myState]()
//	reg.Insert(surface.Window(id), newMyState())
//	if st := reg.Data(id); st != nil {
//	    (*st).update()
//	}
type Registry[T any] struct {
	entries map[Identity]*entry[T]

	// children maps a parent surface identity to its sub-surface
	// links in insertion order. The parent itself may be absent from
	// entries (externally managed parents are allowed).
	children map[Identity][]childLink
}

// NewRegistry creates an empty registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{
		entries:  make(map[Identity]*entry[T]),
		children: make(map[Identity][]childLink),
	}
}

// Len returns the number of registered surfaces.
func (r *Registry[T]) Len() int {
	return len(r.entries)
}

// Insert stores data and kind under kind.Identity(). The last write
// for a given identity wins; there is no duplicate detection.
//
// Inserting a sub-surface additionally appends one child link to the
// declared parent's list. Inserting the same sub-surface twice
// appends two links: adjacency entries are not deduplicated.
func (r *Registry[T]) Insert(kind Kind, data T) {
	r.entries[kind.Identity()] = &entry[T]{kind: kind, data: data}

	if kind.Role() == RoleSub {
		parent := kind.Parent()
		r.children[parent] = append(r.children[parent], childLink{
			sub:     kind.SubHandle(),
			surface: kind.Identity(),
		})
	}
}

// Remove deletes the entry for kind.Identity(). Removing an identity
// that is not present is a no-op.
//
// Removing a sub-surface clears the entire child list of the parent
// named in its Kind, not just the one link: the siblings' payload
// entries remain registered, but they become unreachable through
// Descend. This asymmetry with Insert is preserved deliberately
// (removal detaches the parent's whole family).
func (r *Registry[T]) Remove(kind Kind) {
	delete(r.entries, kind.Identity())

	if kind.Role() == RoleSub {
		delete(r.children, kind.Parent())
	}
}

// Data returns a pointer to the payload stored for id, or nil when id
// is not registered. The pointer stays valid until the entry is
// removed or overwritten.
func (r *Registry[T]) Data(id Identity) *T {
	e, ok := r.entries[id]
	if !ok {
		return nil
	}
	return &e.data
}

// Get returns the Kind registered for id.
func (r *Registry[T]) Get(id Identity) (Kind, bool) {
	e, ok := r.entries[id]
	if !ok {
		return Kind{}, false
	}
	return e.kind, true
}

// Each invokes f for every registered surface, in no particular
// order. f must not insert into or remove from the registry.
func (r *Registry[T]) Each(f func(kind Kind, data *T)) {
	for _, e := range r.entries {
		f(e.kind, &e.data)
	}
}

// Children returns the identities of parent's direct sub-surfaces in
// insertion order. The returned slice is a copy.
func (r *Registry[T]) Children(parent Identity) []Identity {
	links := r.children[parent]
	if len(links) == 0 {
		return nil
	}
	ids := make([]Identity, len(links))
	for i, l := range links {
		ids[i] = l.surface
	}
	return ids
}

// Descend walks the sub-surface tree rooted at parent in pre-order,
// siblings in insertion order, invoking f for every reachable child
// that has a registered payload. Children without a payload are
// skipped silently but their own children are still visited, so a
// partially initialized chain does not hide the levels below it.
//
// Each child list is snapshotted before recursing, so f may itself
// insert into or remove from the registry.
func (r *Registry[T]) Descend(parent Identity, f VisitFunc[T]) {
	// Snapshot: f may mutate r.children while we iterate.
	links := make([]childLink, len(r.children[parent]))
	copy(links, r.children[parent])

	for _, l := range links {
		if e, ok := r.entries[l.surface]; ok {
			f(l.sub, l.surface, &e.data)
		}
		r.Descend(l.surface, f)
	}
}
