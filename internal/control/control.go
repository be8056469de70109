// Package control implements the shared start/pause/exit state machine
// used by the mining and generator loops. A single control channel
// carries Start(interval) and Exit signals from one producer (the
// Handle) to one consumer (the loop itself).
package control

import "time"

type signalKind int

const (
	signalStart signalKind = iota
	signalExit
)

// Signal is a message delivered over a loop's control channel.
type Signal struct {
	kind     signalKind
	Interval time.Duration
}

// StartSignal requests that the loop begin (or resume) running,
// polling its control channel at most once per interval. An interval
// of zero means run flat-out with no sleep between iterations.
func StartSignal(interval time.Duration) Signal {
	return Signal{kind: signalStart, Interval: interval}
}

// ExitSignal requests that the loop terminate at its next check point.
func ExitSignal() Signal {
	return Signal{kind: signalExit}
}

// State is a loop's current operating state.
type State int

const (
	// Paused loops block on the control channel, doing no work.
	Paused State = iota
	// Running loops do one unit of work per iteration and poll the
	// control channel non-blockingly between iterations.
	Running
	// ShutDown loops have received Exit and must return at the next
	// check point.
	ShutDown
)

// Handle lets callers drive a running loop from another goroutine.
type Handle struct {
	signals chan<- Signal
}

// Start sends a Start signal, requesting the loop run with the given
// inter-iteration interval.
func (h Handle) Start(interval time.Duration) {
	h.signals <- StartSignal(interval)
}

// Exit sends an Exit signal, requesting the loop terminate.
func (h Handle) Exit() {
	h.signals <- ExitSignal()
}

// Loop holds one loop's control-channel state. It is not safe for
// concurrent use by multiple goroutines other than via its Handle.
type Loop struct {
	signals  chan Signal
	state    State
	interval time.Duration
}

// NewLoop creates a Loop paired with the Handle used to control it.
// The loop starts Paused.
func NewLoop() (*Loop, Handle) {
	ch := make(chan Signal)
	return &Loop{signals: ch, state: Paused}, Handle{signals: ch}
}

// Poll advances the loop's state machine by one step: while paused,
// it blocks until a signal arrives; while running, it drains at most
// one pending signal without blocking. It returns the state after
// handling any signal, so callers can check for ShutDown before doing
// their next unit of work.
//
// Disconnection of the control channel (a closed channel observed
// here) is a programming error, not a runtime condition to recover
// from, and panics.
func (l *Loop) Poll() State {
	switch l.state {
	case ShutDown:
		return ShutDown
	case Paused:
		sig, ok := <-l.signals
		if !ok {
			panic("control: control channel disconnected")
		}
		l.apply(sig)
	default:
		select {
		case sig, ok := <-l.signals:
			if !ok {
				panic("control: control channel disconnected")
			}
			l.apply(sig)
		default:
		}
	}
	return l.state
}

func (l *Loop) apply(sig Signal) {
	switch sig.kind {
	case signalExit:
		l.state = ShutDown
	case signalStart:
		l.state = Running
		l.interval = sig.Interval
	}
}

// Interval returns the current running interval. Only meaningful
// while the loop is in the Running state.
func (l *Loop) Interval() time.Duration {
	return l.interval
}

// State returns the loop's current state without waiting for a signal.
func (l *Loop) State() State {
	return l.state
}
