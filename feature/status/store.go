package status

import (
	"sort"
	"sync"

	"market-sync/core/syncer"
)

// Store keeps the most recent run report per source. It is the only
// shared mutable state between the scheduler and the HTTP server, so all
// access goes through the mutex.
type Store struct {
	mu      sync.RWMutex
	reports map[string]*syncer.RunReport
}

// NewStore creates an empty report store.
func NewStore() *Store {
	return &Store{reports: make(map[string]*syncer.RunReport)}
}

// Put records the latest report for its source, replacing any previous
// one.
func (s *Store) Put(report *syncer.RunReport) {
	if report == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[report.Source] = report
}

// Get returns the latest report for a source.
func (s *Store) Get(source string) (*syncer.RunReport, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	report, ok := s.reports[source]
	return report, ok
}

// All returns the latest reports ordered by source name.
func (s *Store) All() []*syncer.RunReport {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*syncer.RunReport, 0, len(s.reports))
	for _, report := range s.reports {
		out = append(out, report)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Source < out[j].Source
	})
	return out
}
