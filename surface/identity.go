// Copyright 2026 The wayapp Authors
// SPDX-License-Identifier: MIT

package surface

import "strconv"

// Identity is an opaque token uniquely identifying a live protocol
// surface object. Identities are assigned by the windowing layer, are
// stable for the surface's lifetime, and are not recycled while still
// referenced. An Identity is hashable (usable as a map key) and
// totally ordered by its numeric value.
//
// The zero value None never names a live surface.
type Identity uint64

// None is the invalid zero Identity.
const None Identity = 0

// Valid reports whether id names a surface at all.
// It does not check liveness; a destroyed surface's identity stays
// "valid" but no longer resolves in any registry.
func (id Identity) Valid() bool {
	return id != None
}

// Less reports whether id orders before other.
func (id Identity) Less(other Identity) bool {
	return id < other
}

// String returns a short diagnostic form like "surface#42".
func (id Identity) String() string {
	if id == None {
		return "surface#none"
	}
	return "surface#" + strconv.FormatUint(uint64(id), 10)
}
