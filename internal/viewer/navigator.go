// Package viewer tracks which image of the open album is on screen.
//
// The Navigator holds nothing but the current index. The photo sequence
// itself is re-derived from the authoritative forest on every render, so
// the navigator never has to track mutations made elsewhere: callers pass
// the current sequence length into every movement.
package viewer

// Navigator is the bounded, wrap-around cursor over the open album's flat
// photo sequence. The zero value is a closed navigator.
type Navigator struct {
	index int
	open  bool
}

// Open sets the index directly and opens the viewer. Out-of-range indexes
// are clamped; opening over an empty sequence is ignored.
func (n *Navigator) Open(index, length int) {
	if length <= 0 {
		return
	}
	n.index = clamp(index, length)
	n.open = true
}

// Close clears the viewer.
func (n *Navigator) Close() {
	n.open = false
	n.index = 0
}

// IsOpen reports whether an image is currently displayed.
func (n *Navigator) IsOpen() bool {
	return n.open
}

// Index returns the current position. Only meaningful while open.
func (n *Navigator) Index() int {
	return n.index
}

// Next advances to the following image, wrapping past the end back to the
// first.
func (n *Navigator) Next(length int) {
	if !n.open || length <= 0 {
		return
	}
	n.index = (n.index + 1) % length
}

// Prev moves to the preceding image, wrapping before the start back to the
// last.
func (n *Navigator) Prev(length int) {
	if !n.open || length <= 0 {
		return
	}
	n.index = (n.index - 1 + length) % length
}

// Reconcile repairs the index after the sequence changed underneath the
// viewer, typically because the displayed image was deleted. An empty
// sequence closes the viewer; otherwise the index is clamped into range.
func (n *Navigator) Reconcile(length int) {
	if !n.open {
		return
	}
	if length <= 0 {
		n.Close()
		return
	}
	n.index = clamp(n.index, length)
}

func clamp(index, length int) int {
	if index < 0 {
		return 0
	}
	if index >= length {
		return length - 1
	}
	return index
}
