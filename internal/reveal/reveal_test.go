package reveal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeObserver records every call so tests can assert on registration
// lifetimes.
type fakeObserver struct {
	observeCalls   int
	unobserveCalls int
	lastOptions    Options
	callbacks      map[Handle]Callback
	next           Handle
	err            error
	reportOnAttach *Entry
}

func newFakeObserver() *fakeObserver {
	return &fakeObserver{callbacks: make(map[Handle]Callback)}
}

func (f *fakeObserver) Observe(target Element, opts Options, cb Callback) (Handle, error) {
	f.observeCalls++
	f.lastOptions = opts
	if f.err != nil {
		return 0, f.err
	}
	f.next++
	f.callbacks[f.next] = cb
	if f.reportOnAttach != nil {
		cb(*f.reportOnAttach)
	}
	return f.next, nil
}

func (f *fakeObserver) Unobserve(h Handle) {
	f.unobserveCalls++
	delete(f.callbacks, h)
}

func (f *fakeObserver) emit(e Entry) {
	for _, cb := range f.callbacks {
		cb(e)
	}
}

func TestTriggerStartsUnseen(t *testing.T) {
	obs := newFakeObserver()
	tr := New(obs, "card")
	tr.Mount()

	assert.False(t, tr.Seen())
	assert.Equal(t, Unseen, tr.State())
	assert.True(t, tr.Observing())
	assert.Equal(t, 1, obs.observeCalls)
	assert.Equal(t, []float64{DefaultThreshold}, obs.lastOptions.Thresholds)
}

func TestTriggerFiresOnceAndReleases(t *testing.T) {
	obs := newFakeObserver()
	tr := New(obs, "card", WithThreshold(0.2))
	tr.Mount()

	obs.emit(Entry{Ratio: 0.1, Intersecting: true})
	require.False(t, tr.Seen(), "below threshold must not fire")

	obs.emit(Entry{Ratio: 0.2, Intersecting: true})
	require.True(t, tr.Seen())
	assert.Equal(t, Seen, tr.State())
	assert.False(t, tr.Observing())
	assert.Equal(t, 1, obs.unobserveCalls)
	assert.Empty(t, obs.callbacks)

	// Scroll away and back: nothing re-registers, nothing flips back.
	obs.emit(Entry{Ratio: 0, Intersecting: false})
	obs.emit(Entry{Ratio: 1, Intersecting: true})
	assert.True(t, tr.Seen())
	assert.Equal(t, 1, obs.observeCalls)
	assert.Equal(t, 1, obs.unobserveCalls)

	tr.Unmount()
	assert.Equal(t, 1, obs.unobserveCalls, "unmount after firing must not unobserve again")
}

func TestTriggerStaleCallbackIgnoredAfterFire(t *testing.T) {
	obs := newFakeObserver()
	tr := New(obs, "card")
	tr.Mount()

	var cb Callback
	for _, c := range obs.callbacks {
		cb = c
	}
	require.NotNil(t, cb)

	cb(Entry{Ratio: 1, Intersecting: true})
	cb(Entry{Ratio: 1, Intersecting: true})

	assert.True(t, tr.Seen())
	assert.Equal(t, 1, obs.unobserveCalls)
}

func TestTriggerUnmountReleasesPendingObservation(t *testing.T) {
	obs := newFakeObserver()
	tr := New(obs, "card")
	tr.Mount()
	tr.Unmount()
	tr.Unmount()

	assert.False(t, tr.Seen())
	assert.False(t, tr.Observing())
	assert.Equal(t, 1, obs.unobserveCalls)
	assert.Empty(t, obs.callbacks)
}

// queuedObserver hands out registrations but keeps every callback, the way
// a facility with an already queued report would.
type queuedObserver struct {
	fakeObserver
	kept []Callback
}

func (q *queuedObserver) Observe(target Element, opts Options, cb Callback) (Handle, error) {
	q.kept = append(q.kept, cb)
	return q.fakeObserver.Observe(target, opts, cb)
}

func TestTriggerIgnoresReportAfterUnmount(t *testing.T) {
	obs := &queuedObserver{fakeObserver: *newFakeObserver()}
	tr := New(obs, "card")
	tr.Mount()
	tr.Unmount()

	require.Len(t, obs.kept, 1)
	obs.kept[0](Entry{Ratio: 1, Intersecting: true})
	assert.False(t, tr.Seen())
	assert.Equal(t, Unseen, tr.State())
}

func TestTriggerIgnoresReportFromEarlierMount(t *testing.T) {
	obs := &queuedObserver{fakeObserver: *newFakeObserver()}
	tr := New(obs, "card")
	tr.Mount()
	tr.Unmount()
	tr.Mount()

	require.Len(t, obs.kept, 2)
	obs.kept[0](Entry{Ratio: 1, Intersecting: true})
	assert.False(t, tr.Seen(), "report from the first mount must be dropped")
	assert.True(t, tr.Observing())

	obs.kept[1](Entry{Ratio: 1, Intersecting: true})
	assert.True(t, tr.Seen())
	assert.False(t, tr.Observing())
}

func TestTriggerSeenSurvivesRemount(t *testing.T) {
	obs := newFakeObserver()
	tr := New(obs, "card")
	tr.Mount()
	obs.emit(Entry{Ratio: 1, Intersecting: true})
	tr.Unmount()
	tr.Mount()

	assert.True(t, tr.Seen())
	assert.Equal(t, 1, obs.observeCalls, "a seen trigger does not register again")
}

func TestTriggerFailsOpenWithoutObserver(t *testing.T) {
	tr := New(nil, "card")
	assert.False(t, tr.Seen(), "nothing happens before mount")

	tr.Mount()
	assert.True(t, tr.Seen())
	assert.ErrorIs(t, tr.Err(), ErrUnsupported)

	tr.Unmount()
	assert.True(t, tr.Seen())
}

func TestTriggerFailsOpenWhenObserveErrors(t *testing.T) {
	obs := newFakeObserver()
	obs.err = errors.New("no intersection api")

	tr := New(obs, "card")
	tr.Mount()

	assert.True(t, tr.Seen())
	assert.False(t, tr.Observing())
	assert.Error(t, tr.Err())
	assert.Equal(t, 0, obs.unobserveCalls)
}

func TestTriggerSynchronousReportDuringObserve(t *testing.T) {
	obs := newFakeObserver()
	obs.reportOnAttach = &Entry{Ratio: 1, Intersecting: true}

	tr := New(obs, "card")
	tr.Mount()

	assert.True(t, tr.Seen())
	assert.False(t, tr.Observing())
	assert.Equal(t, 1, obs.unobserveCalls)
	assert.Empty(t, obs.callbacks)
}

func TestTriggerMountTwiceRegistersOnce(t *testing.T) {
	obs := newFakeObserver()
	tr := New(obs, "card")
	tr.Mount()
	tr.Mount()

	assert.Equal(t, 1, obs.observeCalls)
}

func TestTriggerZeroThresholdNeedsIntersection(t *testing.T) {
	obs := newFakeObserver()
	tr := New(obs, "card", WithThreshold(0))
	tr.Mount()

	obs.emit(Entry{Ratio: 0, Intersecting: false})
	assert.False(t, tr.Seen())

	obs.emit(Entry{Ratio: 0.01, Intersecting: true})
	assert.True(t, tr.Seen())
}

func TestWithThresholdClamps(t *testing.T) {
	assert.Equal(t, 1.0, New(nil, nil, WithThreshold(3)).Threshold())
	assert.Equal(t, 0.0, New(nil, nil, WithThreshold(-1)).Threshold())
}

func TestWithRootMarginPassedToObserver(t *testing.T) {
	obs := newFakeObserver()
	New(obs, "card", WithRootMargin(Margin{Top: 2, Bottom: -3})).Mount()

	assert.Equal(t, Margin{Top: 2, Bottom: -3}, obs.lastOptions.RootMargin)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "unseen", Unseen.String())
	assert.Equal(t, "seen", Seen.String())
	assert.Equal(t, "State(7)", State(7).String())
}
