// Copyright 2026 The wayapp Authors
// SPDX-License-Identifier: MIT

// Package surface tracks live on-screen surfaces by identity.
//
// The package has three pieces:
//
//   - Identity: an opaque, ordered, hashable token naming one live
//     protocol surface object.
//   - Kind: a closed tagged variant describing the role a surface
//     plays (top-level window, layer surface, popup, or sub-surface).
//   - Registry: a generic map from Identity to (Kind, payload), plus
//     the parent/child adjacency needed to walk sub-surface trees.
//
// The registry is deliberately not thread-safe: it belongs to the
// single goroutine that owns the protocol event loop, and all
// mutation happens there. See the wayapp package for the dispatch
// loop built on top of it.
//
// # Sub-surface adjacency
//
// Inserting a sub-surface appends one link to its parent's child
// list; removing a sub-surface clears the parent's entire child list.
// The asymmetry is intentional: removal means "detach this
// surface's whole family", and
// sibling payload entries survive with only the traversal edge lost.
// Registry documents this in detail.
package surface
