// Copyright 2026 The wayapp Authors
// SPDX-License-Identifier: MIT

// Package pixbuf provides a small pool of CPU pixel buffers keyed by
// size and texture format.
//
// The pool serves the expensive branch of the configure-debounce
// pipeline: buffer reallocation on resize. Buffers are plain
// *image.RGBA backing stores tagged with the wire format the
// compositor expects, so a transport can upload or attach them
// without further conversion bookkeeping.
package pixbuf
