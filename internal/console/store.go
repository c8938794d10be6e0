// Package console holds the state behind every operator view and keeps it consistent
// while loads overlap.
package console

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"

	"github.com/cloudnook/mcpgw/internal/contracts"
	"github.com/cloudnook/mcpgw/internal/domain"
	"github.com/cloudnook/mcpgw/internal/gateway"
	"github.com/cloudnook/mcpgw/internal/notify"
	"github.com/cloudnook/mcpgw/internal/refresh"
	"github.com/cloudnook/mcpgw/internal/viewmodel"
)

// Store loads data from the gateway backend and derives the state of each view.
// It is the only component that notifies the operator about failures.
// NewStore should be used to create instances of Store.
type Store struct {
	backend   gateway.Backend
	builder   *viewmodel.Builder
	notifier  notify.Notifier
	logger    hclog.Logger
	observers []contracts.ObservationRecorder
	clock     func() time.Time

	dashboard refresh.Latest[Snapshot]

	mu        sync.RWMutex
	dashState LoadState
	details   map[string]*detailEntry
	closed    bool
}

// detailEntry coordinates the detail loads of one server.
type detailEntry struct {
	latest   refresh.Latest[DetailState]
	inflight int
}

// NewStore creates a Store reading from backend and building views with builder.
func NewStore(backend gateway.Backend, builder *viewmodel.Builder, opt ...Option) (*Store, error) {
	if backend == nil {
		return nil, fmt.Errorf("backend cannot be nil")
	}
	if builder == nil {
		return nil, fmt.Errorf("builder cannot be nil")
	}

	opts, err := NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	return &Store{
		backend:   backend,
		builder:   builder,
		notifier:  opts.Notifier,
		logger:    opts.Logger.Named("console"),
		observers: opts.Observers,
		clock:     opts.Clock,
		dashState: LoadState{Status: LoadIdle},
		details:   map[string]*detailEntry{},
	}, nil
}

// Builder returns the view-model builder used by the store.
func (s *Store) Builder() *viewmodel.Builder {
	return s.builder
}

// Refresh reloads the server list.
// When a newer refresh starts before this one completes, this one is discarded and nil is returned.
// On failure the previous data is kept, the failure is recorded in the load state and the operator is notified.
func (s *Store) Refresh(ctx context.Context) error {
	t, err := s.dashboard.Begin(ctx)
	if err != nil {
		return err
	}

	summaries, err := s.backend.FetchSummaries(t.Context())
	now := s.clock()

	if err != nil {
		f := gateway.AsFailure(err)
		state := LoadState{Status: LoadError, Message: f.Message, TraceID: f.TraceID, UpdatedAt: &now}
		if !s.commitDashboard(t, nil, state) {
			s.logger.Debug("Discarding superseded refresh", "seq", t.Seq())
			return nil
		}
		return s.report(f)
	}

	rows := s.builder.BuildRows(summaries)
	snap := Snapshot{
		Summaries: summaries,
		Rows:      rows,
		Counts:    viewmodel.AggregateCounts(viewmodel.Records(rows)),
		FetchedAt: now,
	}
	if !s.commitDashboard(t, &snap, LoadState{Status: LoadReady, UpdatedAt: &now}) {
		s.logger.Debug("Discarding superseded refresh", "seq", t.Seq())
		return nil
	}

	s.observe(rows, now)

	return nil
}

// Snapshot returns the last successfully loaded server list.
func (s *Store) Snapshot() (Snapshot, bool) {
	return s.dashboard.Value()
}

// Dashboard returns the dashboard filtered by query, from the last successful load.
func (s *Store) Dashboard(query string) DashboardView {
	s.mu.RLock()
	state := s.dashState
	s.mu.RUnlock()

	snap, _ := s.dashboard.Value()
	rows := viewmodel.FilterRows(snap.Rows, query)
	if rows == nil {
		rows = []viewmodel.ServerRow{}
	}

	return DashboardView{
		Counts:  snap.Counts,
		Query:   query,
		Matched: len(rows),
		Rows:    rows,
		State:   state,
	}
}

// LoadDetail loads the detail page of a server.
//
// A missing server or missing parameter is returned as a view state with a nil error.
// Transport and business failures notify the operator and are returned as errors.
// Capabilities are loaded alongside the detail; their failure does not discard the detail.
// A load superseded by a newer one for the same server returns its own state without notifying.
func (s *Store) LoadDetail(ctx context.Context, serverID string, serverName string) (DetailState, error) {
	switch {
	case strings.TrimSpace(serverID) == "":
		state, _ := detailState(gateway.MissingParameter("serverId"))
		return state, nil
	case strings.TrimSpace(serverName) == "":
		state, _ := detailState(gateway.MissingParameter("serverName"))
		return state, nil
	}

	entry, err := s.acquireDetail(serverID)
	if err != nil {
		return DetailState{}, err
	}
	defer s.releaseDetail(serverID, entry)

	var capsErr error
	state, err := entry.latest.Run(ctx, func(ctx context.Context) (DetailState, error) {
		var (
			detail domain.ServerDetail
			caps   domain.Capabilities
		)

		var g errgroup.Group
		g.Go(func() error {
			var err error
			detail, err = s.backend.FetchDetail(ctx, serverID, serverName)
			return err
		})
		g.Go(func() error {
			caps, capsErr = s.backend.FetchCapabilities(ctx, serverID)
			return nil
		})

		if err := g.Wait(); err != nil {
			state, f := detailState(err)
			if f == nil {
				return state, nil
			}
			return state, f
		}

		dv := s.builder.BuildDetail(detail)
		state := DetailState{Status: DetailReady, Detail: &dv, Raw: &detail}

		if capsErr != nil {
			state.CapabilitiesError = gateway.AsFailure(capsErr).Message
			return state, nil
		}

		if err := caps.Validate(); err != nil {
			s.logger.Warn("Server capabilities are inconsistent", "serverID", serverID, "error", err)
		}
		cv := viewmodel.BuildCapabilities(caps)
		state.Capabilities = &cv

		return state, nil
	})

	switch {
	case errors.Is(err, refresh.ErrSuperseded):
		// A newer load owns the page; this caller still gets what it asked for.
		return state, nil
	case errors.Is(err, refresh.ErrClosed):
		return state, err
	case err != nil:
		return state, s.report(err)
	}

	if capsErr != nil {
		s.report(capsErr)
	}

	return state, nil
}

// Detail returns the most recently applied detail state of a server.
// Only servers in the current server list, or with a load in flight, are retained.
func (s *Store) Detail(serverID string) (DetailState, bool) {
	s.mu.RLock()
	entry, ok := s.details[serverID]
	s.mu.RUnlock()

	if !ok {
		return DetailState{}, false
	}
	return entry.latest.Value()
}

// Register registers a server with the backend, notifies the operator of success and refreshes the server list.
func (s *Store) Register(ctx context.Context, reg domain.Registration) (domain.ServerRecord, error) {
	record, err := s.backend.RegisterServer(ctx, reg)
	if err != nil {
		return domain.ServerRecord{}, s.report(err)
	}

	s.notifier.Notify(notify.Notification{
		Level:   notify.LevelSuccess,
		Message: fmt.Sprintf("Server %s registered successfully", record.Name),
		At:      s.clock(),
	})

	if err := s.Refresh(ctx); err != nil {
		s.logger.Warn("Refresh after registration failed", "error", err)
	}

	return record, nil
}

// Capabilities loads the tools, resources and prompts a server advertises.
func (s *Store) Capabilities(ctx context.Context, serverID string) (domain.Capabilities, error) {
	caps, err := s.backend.FetchCapabilities(ctx, serverID)
	if err != nil {
		return domain.Capabilities{}, s.report(err)
	}
	return caps, nil
}

// Close discards every in-flight load. The store cannot be refreshed or load details afterwards.
func (s *Store) Close() {
	s.dashboard.Close()

	s.mu.Lock()
	details := s.details
	s.details = map[string]*detailEntry{}
	s.closed = true
	s.mu.Unlock()

	for _, e := range details {
		e.latest.Close()
	}
}

// commitDashboard records the outcome of the refresh holding t unless a newer refresh has begun.
// snap is applied when not nil.
func (s *Store) commitDashboard(t refresh.Ticket, snap *Snapshot, state LoadState) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if snap == nil {
		if !s.dashboard.Current(t) {
			return false
		}
	} else {
		if err := s.dashboard.Apply(t, *snap); err != nil {
			return false
		}
		s.pruneDetailsLocked(snap.Rows)
	}

	s.dashState = state
	return true
}

func (s *Store) acquireDetail(serverID string) (*detailEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, refresh.ErrClosed
	}

	e, ok := s.details[serverID]
	if !ok {
		e = &detailEntry{}
		s.details[serverID] = e
	}
	e.inflight++
	return e, nil
}

// releaseDetail ends a load. Once idle, the entry of a server missing from the server list is dropped.
func (s *Store) releaseDetail(serverID string, e *detailEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e.inflight--
	if e.inflight > 0 || s.details[serverID] != e {
		return
	}

	snap, _ := s.dashboard.Value()
	if !slices.ContainsFunc(snap.Rows, func(r viewmodel.ServerRow) bool { return r.Record.ID == serverID }) {
		delete(s.details, serverID)
	}
}

// pruneDetailsLocked drops idle entries of servers no longer listed. Callers must hold s.mu.
func (s *Store) pruneDetailsLocked(rows []viewmodel.ServerRow) {
	listed := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		listed[r.Record.ID] = struct{}{}
	}

	for id, e := range s.details {
		if _, ok := listed[id]; !ok && e.inflight == 0 {
			delete(s.details, id)
		}
	}
}

// detailState maps a failed detail load to its view state.
// Not-found and missing parameters are view states; other failures are returned for reporting.
func detailState(err error) (DetailState, *gateway.Failure) {
	f := gateway.AsFailure(err)

	switch f.Kind {
	case gateway.KindNotFound:
		return DetailState{Status: DetailNotFound, Message: "Server not found"}, nil
	case gateway.KindMissingParameter:
		return DetailState{Status: DetailMissingParameter, Message: f.Message}, nil
	default:
		return DetailState{Status: DetailError, Message: f.Message}, f
	}
}

// report notifies the operator about transport and business failures, and returns err as a Failure.
// Cancellation is not reported.
func (s *Store) report(err error) *gateway.Failure {
	f := gateway.AsFailure(err)

	if errors.Is(err, context.Canceled) {
		return f
	}

	switch f.Kind {
	case gateway.KindTransport, gateway.KindBusiness:
		s.logger.Error("Gateway backend request failed", "kind", f.Kind, "code", f.Code, "traceId", f.TraceID, "error", f)
		s.notifier.Notify(notify.Notification{
			Level:   notify.LevelError,
			Message: f.Message,
			TraceID: f.TraceID,
			At:      s.clock(),
		})
	}

	return f
}

func (s *Store) observe(rows []viewmodel.ServerRow, at time.Time) {
	if len(s.observers) == 0 {
		return
	}

	obs := make([]domain.Observation, 0, len(rows))
	for _, r := range rows {
		obs = append(obs, domain.Observation{
			ServerID:   r.Record.ID,
			ServerName: r.Record.Name,
			Lifecycle:  r.Record.LifecycleStatus,
			Health:     r.Record.HealthStatus,
			ObservedAt: at,
		})
	}

	for _, o := range s.observers {
		o.Observe(obs)
	}
}
