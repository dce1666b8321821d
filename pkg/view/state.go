package view

import (
	"github.com/platinummonkey/advocates/pkg/advocates"
)

// State is everything the view displays
type State struct {
	// Query is the current input text
	Query string
	// Rows are the records from the most recently applied response
	Rows []advocates.Advocate
	// Seq is the sequence number of the last issued fetch
	Seq uint64
	// Applied is the sequence number of the response currently shown
	Applied uint64
}

// Event is an input to Reduce
type Event interface {
	event()
}

// Mounted is sent once when the view starts
type Mounted struct{}

// QueryChanged is sent on every edit of the input text
type QueryChanged struct {
	Text string
}

// ResetRequested clears the query and reloads the default listing
type ResetRequested struct{}

// DebounceElapsed is sent when the quiet period after an edit has passed
type DebounceElapsed struct {
	Text string
}

// ResultsLoaded carries the rows answered for fetch Seq
type ResultsLoaded struct {
	Seq  uint64
	Rows []advocates.Advocate
}

// FetchFailed reports that fetch Seq did not complete
type FetchFailed struct {
	Seq uint64
	Err error
}

func (Mounted) event()         {}
func (QueryChanged) event()    {}
func (ResetRequested) event()  {}
func (DebounceElapsed) event() {}
func (ResultsLoaded) event()   {}
func (FetchFailed) event()     {}

// EffectKind says what the driver has to do after a transition
type EffectKind int

const (
	// EffectNone requires no action
	EffectNone EffectKind = iota
	// EffectDebounce (re)schedules a fetch after the quiet period
	EffectDebounce
	// EffectFetch cancels any pending debounce and fetches immediately
	EffectFetch
)

func (k EffectKind) String() string {
	switch k {
	case EffectNone:
		return "none"
	case EffectDebounce:
		return "debounce"
	case EffectFetch:
		return "fetch"
	default:
		return "unknown"
	}
}

// Effect is the side effect requested by Reduce
type Effect struct {
	Kind  EffectKind
	Query string
	// Seq identifies the fetch for EffectFetch
	Seq uint64
}

// Reduce applies ev to s and returns the new state along with the effect
// the driver must carry out. It never mutates its input.
func Reduce(s State, ev Event) (State, Effect) {
	switch e := ev.(type) {
	case Mounted:
		return fetch(s)

	case QueryChanged:
		s.Query = e.Text
		return s, Effect{Kind: EffectDebounce, Query: e.Text}

	case ResetRequested:
		s.Query = ""
		return fetch(s)

	case DebounceElapsed:
		// a timer that fired after a reset or a newer edit is stale
		if e.Text != s.Query {
			return s, Effect{}
		}
		return fetch(s)

	case ResultsLoaded:
		if e.Seq <= s.Applied {
			return s, Effect{}
		}
		s.Applied = e.Seq
		s.Rows = e.Rows
		if s.Rows == nil {
			s.Rows = []advocates.Advocate{}
		}
		return s, Effect{}

	case FetchFailed:
		return s, Effect{}
	}

	return s, Effect{}
}

func fetch(s State) (State, Effect) {
	s.Seq++
	return s, Effect{Kind: EffectFetch, Query: s.Query, Seq: s.Seq}
}
