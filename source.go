package xlpanel

import (
	"context"
	"sync"
)

// DataSource provides the summary data of one panel.
type DataSource interface {
	// SummaryData fetches the current summary ResultSet of the panel.
	SummaryData(ctx context.Context) (*ResultSet, error)
	// Filters lists the filters and parameters currently active on the panel.
	Filters(ctx context.Context) ([]Filter, error)
	// ApplyFilters re-applies the active filters ahead of a refresh.
	ApplyFilters(ctx context.Context) error
}

// Filter is one active filter or parameter on a panel.
type Filter struct {
	Field      string `json:"field,omitempty"` // column the filter targets; empty for row-level expressions
	Expression string `json:"expression"`      // predicate over the row, e.g. `Sales > 500`
}

// StaticSource serves a fixed ResultSet. Errors can be injected to simulate
// an unreachable host.
type StaticSource struct {
	mu       sync.Mutex
	rs       *ResultSet
	filters  []Filter
	fetchErr error
	applyErr error
	fetches  int
}

// NewStaticSource creates a StaticSource serving rs.
func NewStaticSource(rs *ResultSet, filters ...Filter) *StaticSource {
	return &StaticSource{rs: rs, filters: filters}
}

// SetResultSet replaces the served ResultSet.
func (s *StaticSource) SetResultSet(rs *ResultSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rs = rs
}

// FailFetch makes subsequent SummaryData and Filters calls return err (nil to clear).
func (s *StaticSource) FailFetch(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetchErr = err
}

// FailApply makes subsequent ApplyFilters calls return err (nil to clear).
func (s *StaticSource) FailApply(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyErr = err
}

// Fetches returns how many successful SummaryData calls were served.
func (s *StaticSource) Fetches() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetches
}

// SummaryData implements DataSource.
func (s *StaticSource) SummaryData(ctx context.Context) (*ResultSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	if s.rs == nil {
		return nil, ErrPanelNotFound
	}
	s.fetches++
	return s.rs, nil
}

// Filters implements DataSource.
func (s *StaticSource) Filters(ctx context.Context) ([]Filter, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	out := make([]Filter, len(s.filters))
	copy(out, s.filters)
	return out, nil
}

// ApplyFilters implements DataSource.
func (s *StaticSource) ApplyFilters(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyErr
}
