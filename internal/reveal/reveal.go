// Package reveal turns "this element has been seen" into a one-shot signal.
//
// A Trigger watches a single element through an injected Observer and flips
// to Seen the first time the element's visible fraction reaches the
// configured threshold. It then releases its observation and never flips
// back. Callers map the signal to presentation state themselves.
package reveal

import (
	"errors"
	"fmt"
)

// DefaultThreshold is the fraction of an element that must be visible
// before a Trigger fires.
const DefaultThreshold = 0.1

// ErrUnsupported is returned by an Observer that cannot watch the given
// element (or cannot watch anything at all in this runtime).
var ErrUnsupported = errors.New("reveal: visibility observation unsupported")

// Element is an opaque handle to something renderable. Only the Observer
// interprets it.
type Element any

// Handle identifies one registration with an Observer.
type Handle uint64

// Margin grows (positive) or shrinks (negative) the effective viewport used
// for intersection tests, in the Observer's own units.
type Margin struct {
	Top    int
	Bottom int
}

// Entry is a single intersection report.
type Entry struct {
	Target       Element
	Ratio        float64 // visible fraction of the target, 0..1
	Intersecting bool    // any part of the target overlaps the viewport
}

// Callback receives intersection reports for one registration.
type Callback func(Entry)

// Options are passed to Observer.Observe.
type Options struct {
	Thresholds []float64
	RootMargin Margin
}

// Observer is the runtime's visibility facility.
type Observer interface {
	Observe(target Element, opts Options, cb Callback) (Handle, error)
	Unobserve(h Handle)
}

// State is the trigger's position in its two-state machine.
type State int

const (
	Unseen State = iota
	Seen
)

func (s State) String() string {
	switch s {
	case Unseen:
		return "unseen"
	case Seen:
		return "seen"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Option configures a Trigger.
type Option func(*Trigger)

// WithThreshold sets the visible fraction required to fire. Values outside
// [0,1] are clamped.
func WithThreshold(t float64) Option {
	return func(tr *Trigger) {
		tr.threshold = clamp01(t)
	}
}

// WithRootMargin offsets the viewport bounds used for the intersection test.
func WithRootMargin(m Margin) Option {
	return func(tr *Trigger) {
		tr.margin = m
	}
}

// Trigger is a one-shot visibility signal bound to one element.
type Trigger struct {
	obs       Observer
	target    Element
	threshold float64
	margin    Margin

	handle    Handle
	observing bool
	mounted   bool
	fired     bool
	err       error
	gen       uint64 // bumped on every Mount; reports from older mounts are dropped
}

// New creates a Trigger for target. It does nothing until Mount is called.
// A nil Observer is allowed and means the runtime has no visibility
// facility; such a trigger is Seen as soon as it mounts.
func New(obs Observer, target Element, opts ...Option) *Trigger {
	t := &Trigger{
		obs:       obs,
		target:    target,
		threshold: DefaultThreshold,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Mount registers the observation. If the facility is missing or refuses the
// element the trigger fails open and is Seen immediately. Mounting twice is a
// no-op.
func (t *Trigger) Mount() {
	if t.mounted {
		return
	}
	t.mounted = true
	if t.fired {
		return
	}
	if t.obs == nil {
		t.err = ErrUnsupported
		t.fired = true
		return
	}

	t.gen++
	gen := t.gen
	h, err := t.obs.Observe(t.target, Options{
		Thresholds: []float64{t.threshold},
		RootMargin: t.margin,
	}, func(e Entry) { t.handleEntry(gen, e) })
	if err != nil {
		t.err = fmt.Errorf("observe: %w", err)
		t.fired = true
		return
	}

	t.handle = h
	t.observing = true

	// The facility may report synchronously from inside Observe.
	if t.fired {
		t.release()
	}
}

// Unmount releases the registration if it is still held. It is safe to call
// more than once and before Mount.
func (t *Trigger) Unmount() {
	t.release()
	t.mounted = false
}

// Seen reports whether the element has been seen. Once true it stays true for
// the lifetime of the trigger, across Unmount and Mount.
func (t *Trigger) Seen() bool {
	return t.fired
}

// State returns Unseen or Seen.
func (t *Trigger) State() State {
	if t.fired {
		return Seen
	}
	return Unseen
}

// Observing reports whether the trigger currently holds a registration.
func (t *Trigger) Observing() bool {
	return t.observing
}

// Err returns the reason the trigger failed open, if it did.
func (t *Trigger) Err() error {
	return t.err
}

// Threshold returns the configured threshold.
func (t *Trigger) Threshold() float64 {
	return t.threshold
}

func (t *Trigger) handleEntry(gen uint64, e Entry) {
	// Unmount cancels reports the facility had already queued.
	if t.fired || !t.mounted || gen != t.gen {
		return
	}
	if !e.Intersecting || e.Ratio < t.threshold {
		return
	}
	t.fired = true
	t.release()
}

func (t *Trigger) release() {
	if !t.observing {
		return
	}
	t.observing = false
	t.obs.Unobserve(t.handle)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
