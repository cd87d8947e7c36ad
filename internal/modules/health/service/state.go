package service

import (
	"sync/atomic"
	"time"
)

type State struct {
	ready     atomic.Bool
	startedAt time.Time

	lastReportUnix  atomic.Int64 // unix seconds
	lastRefreshUnix atomic.Int64
}

func NewState() *State {
	s := &State{startedAt: time.Now()}
	s.ready.Store(false)
	return s
}

func (s *State) SetReady(v bool) { s.ready.Store(v) }
func (s *State) Ready() bool     { return s.ready.Load() }

func (s *State) TouchReport(t time.Time)  { s.lastReportUnix.Store(t.Unix()) }
func (s *State) TouchRefresh(t time.Time) { s.lastRefreshUnix.Store(t.Unix()) }

func (s *State) LastReport() time.Time  { return unixOrZero(s.lastReportUnix.Load()) }
func (s *State) LastRefresh() time.Time { return unixOrZero(s.lastRefreshUnix.Load()) }

func unixOrZero(u int64) time.Time {
	if u == 0 {
		return time.Time{}
	}
	return time.Unix(u, 0)
}

func (s *State) Uptime() time.Duration { return time.Since(s.startedAt) }
