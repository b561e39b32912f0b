package service

import (
	"sync/atomic"
	"time"
)

type State struct {
	ready     atomic.Bool
	startedAt time.Time

	feedConnected atomic.Bool
	lastQuoteUnix atomic.Int64 // unix seconds
}

func NewState() *State {
	s := &State{startedAt: time.Now()}
	s.ready.Store(false)
	return s
}

func (s *State) SetReady(v bool) { s.ready.Store(v) }
func (s *State) Ready() bool     { return s.ready.Load() }

func (s *State) SetFeedConnected(v bool) { s.feedConnected.Store(v) }
func (s *State) FeedConnected() bool     { return s.feedConnected.Load() }

func (s *State) TouchQuote(t time.Time) { s.lastQuoteUnix.Store(t.Unix()) }
func (s *State) LastQuote() time.Time {
	u := s.lastQuoteUnix.Load()
	if u == 0 {
		return time.Time{}
	}
	return time.Unix(u, 0)
}

func (s *State) Uptime() time.Duration { return time.Since(s.startedAt) }
