package reveal

import (
	"fmt"
	"sort"
)

// Span is a block of rows in a vertically scrolled document.
type Span struct {
	Top    int
	Height int
}

// Bottom returns the first row after the span.
func (s Span) Bottom() int {
	return s.Top + s.Height
}

type lineRegistration struct {
	span       Span
	target     Element
	thresholds []float64
	margin     Margin
	cb         Callback
	last       float64
	inView     bool
	reported   bool
}

// LineObserver is an Observer for a document measured in rows and shown
// through a window of Height rows starting at Offset. Targets must be Span
// values. Reports are delivered from Scroll, never from Observe.
type LineObserver struct {
	regs   map[Handle]*lineRegistration
	next   Handle
	offset int
	height int
}

// NewLineObserver creates an observer with an empty window.
func NewLineObserver() *LineObserver {
	return &LineObserver{
		regs: make(map[Handle]*lineRegistration),
	}
}

// Observe registers target. Targets that are not a Span are refused with
// ErrUnsupported.
func (o *LineObserver) Observe(target Element, opts Options, cb Callback) (Handle, error) {
	span, ok := target.(Span)
	if !ok {
		return 0, fmt.Errorf("%w: target %T is not a Span", ErrUnsupported, target)
	}
	if cb == nil {
		return 0, fmt.Errorf("reveal: nil callback")
	}

	thresholds := opts.Thresholds
	if len(thresholds) == 0 {
		thresholds = []float64{0}
	}

	o.next++
	o.regs[o.next] = &lineRegistration{
		span:       span,
		target:     target,
		thresholds: append([]float64(nil), thresholds...),
		margin:     opts.RootMargin,
		cb:         cb,
	}
	return o.next, nil
}

// Unobserve drops a registration. Unknown handles are ignored.
func (o *LineObserver) Unobserve(h Handle) {
	delete(o.regs, h)
}

// Active returns the number of live registrations.
func (o *LineObserver) Active() int {
	return len(o.regs)
}

// Window returns the current offset and height.
func (o *LineObserver) Window() (offset, height int) {
	return o.offset, o.height
}

// Scroll moves the window and reports every registration seen for the first
// time or whose ratio crossed one of its thresholds.
func (o *LineObserver) Scroll(offset, height int) {
	if height < 0 {
		height = 0
	}
	o.offset = offset
	o.height = height

	handles := make([]Handle, 0, len(o.regs))
	for h := range o.regs {
		handles = append(handles, h)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })

	for _, h := range handles {
		reg, ok := o.regs[h]
		if !ok {
			// Released by an earlier callback in this pass.
			continue
		}
		ratio, intersecting := o.intersect(reg.span, reg.margin)
		if reg.reported && intersecting == reg.inView && !crossed(reg.last, ratio, reg.thresholds) {
			continue
		}
		reg.reported = true
		reg.last = ratio
		reg.inView = intersecting
		reg.cb(Entry{Target: reg.target, Ratio: ratio, Intersecting: intersecting})
	}
}

// Refresh re-runs Scroll with the current window.
func (o *LineObserver) Refresh() {
	o.Scroll(o.offset, o.height)
}

func (o *LineObserver) intersect(s Span, m Margin) (float64, bool) {
	winTop := o.offset - m.Top
	winBottom := o.offset + o.height + m.Bottom
	if winBottom <= winTop {
		return 0, false
	}

	if s.Height <= 0 {
		if s.Top >= winTop && s.Top < winBottom {
			return 1, true
		}
		return 0, false
	}

	top := max(s.Top, winTop)
	bottom := min(s.Bottom(), winBottom)
	overlap := bottom - top
	if overlap <= 0 {
		return 0, false
	}
	return float64(overlap) / float64(s.Height), true
}

func crossed(prev, cur float64, thresholds []float64) bool {
	for _, t := range thresholds {
		if (prev >= t) != (cur >= t) {
			return true
		}
	}
	return false
}
