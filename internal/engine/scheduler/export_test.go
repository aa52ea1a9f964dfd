package scheduler

import (
	"maps"
	"time"
)

// NodeStatusMap returns a copy of the internal node status map.
// This is exported for testing purposes only.
func (s *Scheduler) NodeStatusMap() map[string]NodeStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.nodeStatus)
}

// WithClock replaces the clock. Exported for testing purposes only.
func (s *Scheduler) WithClock(now func() time.Time) *Scheduler {
	s.now = now
	return s
}
