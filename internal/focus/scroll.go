package focus

import "fmt"

// Padding is the margin kept between a focused item and the viewport edge.
const Padding = 1

// Rect is a rectangle in terminal cells.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Top returns the first row of r.
func (r Rect) Top() int { return r.Y }

// Bottom returns the row just below r.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Vector is a scroll translation.
type Vector struct {
	X, Y int
}

// ScrollRequestMsg asks the UI to scroll Scrollable so that Target is
// visible. It is answered from the layout recorded by the next render.
type ScrollRequestMsg struct {
	Scrollable string
	Target     string
}

// TargetID names the layout slot of an item inside a scrollable.
func TargetID[K comparable](scrollable string, id K) string {
	return fmt.Sprintf("%s/%v", scrollable, id)
}

// Layout is the geometry recorded during one render. Item rects are in the
// content coordinates of their scrollable; scrollable rects hold the
// visible viewport size.
type Layout struct {
	rects map[string]Rect
}

// NewLayout returns an empty layout.
func NewLayout() *Layout {
	return &Layout{rects: make(map[string]Rect)}
}

// Record stores the rect of id.
func (l *Layout) Record(id string, r Rect) {
	l.rects[id] = r
}

// Rect returns the rect recorded for id.
func (l *Layout) Rect(id string) (Rect, bool) {
	if l == nil {
		return Rect{}, false
	}
	r, ok := l.rects[id]
	return r, ok
}

// Resolve computes the vertical offset answering msg. ok is false when
// either rect is unknown, in which case the scroll is dropped.
func (l *Layout) Resolve(msg ScrollRequestMsg, translation Vector) (offset int, ok bool) {
	viewport, ok := l.Rect(msg.Scrollable)
	if !ok {
		return translation.Y, false
	}
	target, ok := l.Rect(msg.Target)
	if !ok {
		return translation.Y, false
	}
	return FollowOffset(target, viewport, translation, Padding), true
}

// FollowOffset returns the smallest change to translation that shows target
// fully inside viewport with padding on both sides. A target taller than the
// viewport is aligned to its top.
func FollowOffset(target, viewport Rect, translation Vector, padding int) int {
	lo := target.Bottom() + padding - viewport.Height
	hi := target.Top() - padding

	y := translation.Y
	if lo > hi {
		y = hi
	} else {
		y = max(lo, min(y, hi))
	}
	return max(y, 0)
}
