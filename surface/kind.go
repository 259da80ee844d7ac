// Copyright 2026 The wayapp Authors
// SPDX-License-Identifier: MIT

package surface

// Role tags the variant stored in a Kind.
type Role uint8

const (
	// RoleWindow is a top-level (xdg toplevel) window.
	RoleWindow Role = iota + 1

	// RoleLayer is an overlay/layer-shell surface.
	RoleLayer

	// RolePopup is a transient (xdg popup) surface.
	RolePopup

	// RoleSub is a sub-surface composited onto a parent surface.
	RoleSub
)

// String returns the protocol-ish name of the role.
func (r Role) String() string {
	switch r {
	case RoleWindow:
		return "window"
	case RoleLayer:
		return "layer"
	case RolePopup:
		return "popup"
	case RoleSub:
		return "subsurface"
	default:
		return "invalid"
	}
}

// Kind describes what role a live surface plays. It is a closed
// tagged variant: a small value dispatched with a switch on Role,
// rather than an interface. Protocol objects themselves stay with the
// windowing layer; a Kind references them only by identity.
//
// A Kind is immutable after construction and comparable; two Kinds
// are equal exactly when they name the same surface in the same role.
type Kind struct {
	role Role

	// id is the wl_surface identity the Kind is keyed by.
	id Identity

	// parent and sub are populated for RoleSub only: the parent
	// surface's identity and the wl_subsurface object's identity.
	parent Identity
	sub    Identity
}

// Window returns the Kind for a top-level window surface.
func Window(id Identity) Kind {
	return Kind{role: RoleWindow, id: id}
}

// Layer returns the Kind for a layer-shell surface.
func Layer(id Identity) Kind {
	return Kind{role: RoleLayer, id: id}
}

// Popup returns the Kind for a transient popup surface.
func Popup(id Identity) Kind {
	return Kind{role: RolePopup, id: id}
}

// Sub returns the Kind for a sub-surface. parent is the identity of
// the surface it is attached to, sub the identity of the
// wl_subsurface positioning object, and surface the identity of the
// sub-surface's own wl_surface (the registry key).
//
// The parent need not itself be registered anywhere: parents may be
// externally managed surfaces.
func Sub(parent, sub, surface Identity) Kind {
	return Kind{role: RoleSub, id: surface, parent: parent, sub: sub}
}

// Role returns the variant tag.
func (k Kind) Role() Role {
	return k.role
}

// Identity returns the identity of the surface this Kind describes.
// Every Kind stored in a Registry is keyed by this value.
func (k Kind) Identity() Identity {
	return k.id
}

// Parent returns the declared parent identity for sub-surfaces, or
// None for every other role.
func (k Kind) Parent() Identity {
	if k.role != RoleSub {
		return None
	}
	return k.parent
}

// SubHandle returns the wl_subsurface object identity for
// sub-surfaces, or None for every other role.
func (k Kind) SubHandle() Identity {
	if k.role != RoleSub {
		return None
	}
	return k.sub
}

// IsZero reports whether k is the zero Kind (no role, no surface).
func (k Kind) IsZero() bool {
	return k.role == 0
}

// String returns a short diagnostic form like "window(surface#7)".
func (k Kind) String() string {
	if k.IsZero() {
		return "kind(zero)"
	}
	s := k.role.String() + "(" + k.id.String()
	if k.role == RoleSub {
		s += " parent=" + k.parent.String()
	}
	return s + ")"
}
