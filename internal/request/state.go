// Copyright (c) 2026 ToeiRei
// Assetdesk - asset tracking dashboard
// This source code is licensed under the MIT license found in the LICENSE file.

// Package request tracks the lifecycle of one logical request a view makes.
//
// A view calls Begin before issuing the request and keeps the returned Ticket
// with the command that runs it. When the result arrives it is applied with
// Resolve, which ignores any ticket other than the latest one. A reload, a
// second submit or a Reset therefore make earlier responses harmless.
package request

import "sync/atomic"

// Phase is where a request currently is.
type Phase int

const (
	Idle Phase = iota
	Pending
	Succeeded
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Ticket identifies one issued request. Tickets are unique per process.
type Ticket uint64

var lastTicket atomic.Uint64

func nextTicket() Ticket {
	return Ticket(lastTicket.Add(1))
}

// State holds the phase, last value and last error of a request. The zero
// value is Idle. State is not safe for concurrent use; bubbletea models only
// touch it from Update.
type State[T any] struct {
	phase  Phase
	value  T
	err    error
	ticket Ticket
}

// Begin moves to Pending and returns the ticket the result must carry.
// While Pending, Value reports false and ValueOr returns its default, so a
// reload shows the loading state rather than stale data.
func (s *State[T]) Begin() Ticket {
	s.phase = Pending
	s.err = nil
	s.ticket = nextTicket()
	return s.ticket
}

// Resolve applies a result. It returns false, changing nothing, when t is not
// the ticket of the latest Begin.
func (s *State[T]) Resolve(t Ticket, v T, err error) bool {
	if t == 0 || t != s.ticket || s.phase != Pending {
		return false
	}
	if err != nil {
		var zero T
		s.value = zero
		s.err = err
		s.phase = Failed
		return true
	}
	s.value = v
	s.err = nil
	s.phase = Succeeded
	return true
}

// Reset returns to Idle and invalidates any outstanding ticket.
func (s *State[T]) Reset() {
	var zero T
	s.phase = Idle
	s.value = zero
	s.err = nil
	s.ticket = 0
}

func (s *State[T]) Phase() Phase   { return s.phase }
func (s *State[T]) Loading() bool  { return s.phase == Pending }
func (s *State[T]) Err() error     { return s.err }
func (s *State[T]) Ticket() Ticket { return s.ticket }

// Value returns the resolved value and whether the last request succeeded.
func (s *State[T]) Value() (T, bool) {
	return s.value, s.phase == Succeeded
}

// ValueOr returns the resolved value, or def unless the last request succeeded.
func (s *State[T]) ValueOr(def T) T {
	if s.phase != Succeeded {
		return def
	}
	return s.value
}
