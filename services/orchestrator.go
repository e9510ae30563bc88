package services

import (
	"context"
	"fmt"
	"sync"

	"jobspy-client/models"
	"jobspy-client/utils"
)

// State is the lifecycle stage of the current query.
type State int

const (
	StateIdle State = iota
	StateSearching
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSearching:
		return "searching"
	case StateSucceeded:
		return "success"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Searcher runs a query against the search service.
type Searcher interface {
	Search(ctx context.Context, q models.SearchQuery) (*models.ResultSet, error)
}

// Snapshot is a consistent view of the orchestrator handed to presentation code.
// Slices are shared with the orchestrator and must be treated as read-only.
type Snapshot struct {
	State State
	Seq   uint64
	Query *models.SearchQuery

	Results        *models.ResultSet
	Filter         models.FilterSpec
	Filtered       []models.JobResult
	Visible        []models.JobResult
	Page           int
	HasMore        bool
	Remaining      int
	AvailableSites []string

	Err error
}

// ErrMessage is the user-facing failure message, empty unless State is StateFailed.
func (s Snapshot) ErrMessage() string {
	if s.Err == nil {
		return ""
	}
	return s.Err.Error()
}

// Orchestrator owns the single search lifecycle and the derived view over its
// result: the active filter and the pagination window.
//
// Every submitted query is tagged with a sequence number. A completion is only
// applied when its tag is the latest one, so the last submitted query wins even
// when an older one completes later. Superseded requests are not cancelled.
type Orchestrator struct {
	searcher Searcher
	filter   *Filter
	logger   *utils.Logger

	mu        sync.Mutex
	seq       uint64
	state     State
	lastQuery *models.SearchQuery
	results   *models.ResultSet
	spec      models.FilterSpec
	filtered  []models.JobResult
	sites     []string
	window    *Window
	err       error
}

// NewOrchestrator creates an idle Orchestrator. pageSize <= 0 means DefaultPageSize.
func NewOrchestrator(searcher Searcher, filter *Filter, pageSize int, logger *utils.Logger) *Orchestrator {
	return &Orchestrator{
		searcher: searcher,
		filter:   filter,
		logger:   logger,
		window:   NewWindow(pageSize),
	}
}

// Submit validates q and enters the searching state: the previous result and
// error are cleared, q becomes the last query, and the filter and window are
// reset. It returns the sequence number to complete the query with.
func (o *Orchestrator) Submit(q models.SearchQuery) (uint64, error) {
	if err := q.Validate(); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	o.seq++
	submitted := q.Clone()
	o.lastQuery = &submitted
	o.state = StateSearching
	o.results = nil
	o.err = nil
	o.spec = models.FilterSpec{}
	o.filtered = nil
	o.sites = nil
	o.window.Reset()

	o.logger.Debug("[orchestrator] Submitted #%d %q on %v", o.seq, q.SearchTerm, q.SiteName)
	return o.seq, nil
}

// Complete applies the outcome of query seq. It reports false, and changes
// nothing, when a newer query has been submitted since.
func (o *Orchestrator) Complete(seq uint64, rs *models.ResultSet, err error) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if seq != o.seq {
		o.logger.Debug("[orchestrator] Discarding stale result #%d (latest is #%d)", seq, o.seq)
		return false
	}

	if err != nil {
		o.state = StateFailed
		o.err = newSearchError(err)
		o.logger.Warn("[orchestrator] Search #%d failed: %v", seq, err)
		return true
	}

	if rs == nil {
		rs = &models.ResultSet{}
	}
	o.state = StateSucceeded
	o.results = rs
	o.sites = AvailableSites(rs.Jobs)
	o.refilter()
	o.logger.Info("[orchestrator] Search #%d returned %d listings (total %d)", seq, len(rs.Jobs), rs.Total)
	return true
}

// Search submits q, runs it and applies the result. It returns ErrSuperseded
// when another query was submitted meanwhile, and the *SearchError when the
// query failed.
func (o *Orchestrator) Search(ctx context.Context, q models.SearchQuery) (Snapshot, error) {
	seq, err := o.Submit(q)
	if err != nil {
		return o.Snapshot(), err
	}

	rs, err := o.searcher.Search(ctx, q)
	if !o.Complete(seq, rs, err) {
		return o.Snapshot(), ErrSuperseded
	}

	snap := o.Snapshot()
	return snap, snap.Err
}

// SearchAsync submits q and runs it in a goroutine. done, when not nil, is called
// with the resulting snapshot, or with ErrSuperseded when the result was discarded.
func (o *Orchestrator) SearchAsync(ctx context.Context, q models.SearchQuery, done func(Snapshot, error)) (uint64, error) {
	seq, err := o.Submit(q)
	if err != nil {
		return 0, err
	}

	go func() {
		rs, err := o.searcher.Search(ctx, q)
		applied := o.Complete(seq, rs, err)
		if done == nil {
			return
		}
		if !applied {
			done(Snapshot{Seq: seq}, ErrSuperseded)
			return
		}
		snap := o.Snapshot()
		done(snap, snap.Err)
	}()
	return seq, nil
}

// SetFilter replaces the active filter. The page index is kept; the visible
// prefix is recomputed against the new filtered sequence.
func (o *Orchestrator) SetFilter(spec models.FilterSpec) Snapshot {
	o.mu.Lock()
	o.spec = spec
	o.refilter()
	o.mu.Unlock()
	return o.Snapshot()
}

// UpdateFilter applies fn to the active filter.
func (o *Orchestrator) UpdateFilter(fn func(models.FilterSpec) models.FilterSpec) Snapshot {
	o.mu.Lock()
	o.spec = fn(o.spec)
	o.refilter()
	o.mu.Unlock()
	return o.Snapshot()
}

// ClearFilter removes every constraint.
func (o *Orchestrator) ClearFilter() Snapshot {
	return o.SetFilter(models.FilterSpec{})
}

// LoadMore reveals one more page. It reports false when everything is visible.
func (o *Orchestrator) LoadMore() (Snapshot, bool) {
	o.mu.Lock()
	more := o.window.HasMore(len(o.filtered))
	if more {
		o.window.LoadMore()
	}
	o.mu.Unlock()
	return o.Snapshot(), more
}

// Job returns the i-th (0-based) job of the filtered sequence.
func (o *Orchestrator) Job(i int) (models.JobResult, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if i < 0 || i >= len(o.filtered) {
		return models.JobResult{}, false
	}
	return o.filtered[i], true
}

// LastQuery returns a copy of the most recently submitted query, nil before
// the first submit.
func (o *Orchestrator) LastQuery() *models.SearchQuery {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.lastQuery == nil {
		return nil
	}
	q := o.lastQuery.Clone()
	return &q
}

// Snapshot returns the current state.
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()

	snap := Snapshot{
		State:          o.state,
		Seq:            o.seq,
		Results:        o.results,
		Filter:         o.spec,
		Filtered:       o.filtered,
		Visible:        o.window.Visible(o.filtered),
		Page:           o.window.Page(),
		HasMore:        o.window.HasMore(len(o.filtered)),
		Remaining:      o.window.Remaining(len(o.filtered)),
		AvailableSites: o.sites,
		Err:            o.err,
	}
	if o.lastQuery != nil {
		q := o.lastQuery.Clone()
		snap.Query = &q
	}
	return snap
}

// refilter recomputes the filtered view. Callers hold o.mu.
func (o *Orchestrator) refilter() {
	if o.results == nil {
		o.filtered = nil
		return
	}
	o.filtered = o.filter.Apply(o.results.Jobs, o.spec)
}
