package realtime

import "sync/atomic"

// State is the lifecycle of one live connection.
//
//	Connecting → Authenticated → JoinedRoom → Closed
//
// Any state may move to Closed; nothing leaves Closed.
type State int32

const (
	StateConnecting State = iota
	StateAuthenticated
	StateJoinedRoom
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateAuthenticated:
		return "authenticated"
	case StateJoinedRoom:
		return "joined_room"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

type stateBox struct{ v atomic.Int32 }

func (b *stateBox) load() State { return State(b.v.Load()) }

// advance moves from → to, failing if another transition got there first.
func (b *stateBox) advance(from, to State) bool {
	return b.v.CompareAndSwap(int32(from), int32(to))
}

// close moves to Closed and returns the previous state.
func (b *stateBox) close() State {
	return State(b.v.Swap(int32(StateClosed)))
}
