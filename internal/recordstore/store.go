// Package recordstore owns the local mirror of the remote record store.
// The remote is the system of record: creates append to the mirror
// optimistically and every mutation schedules a short-delay refetch that
// replaces the mirror wholesale, which is the only reconciliation
// mechanism. There is no rollback and no conflict resolution beyond
// last write wins.
package recordstore

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"studyrec/internal/cache"
	"studyrec/internal/daybound"
	"studyrec/internal/record"
	"studyrec/internal/remote"
)

var (
	// ErrMissingFields indicates a create without category or content
	ErrMissingFields = errors.New("category and content are required")
	// ErrMissingID indicates an update or delete without an id
	ErrMissingID = errors.New("record id is required")
	// ErrNotFound indicates an id absent from the mirror
	ErrNotFound = errors.New("record not found")
)

// DefaultRefetchDelay is how long after a mutation the reconciling refetch
// runs. The delay gives the write time to land before reading back.
const DefaultRefetchDelay = 1500 * time.Millisecond

// Option configures a Store.
type Option func(*Store)

// WithCache attaches a disk cache for the mirror and master data.
func WithCache(c *cache.Cache) Option {
	return func(s *Store) { s.cache = c }
}

// WithRefetchDelay overrides the reconciliation delay.
func WithRefetchDelay(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.refetchDelay = d
		}
	}
}

// WithLogger overrides the store's logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithClock injects the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Store mirrors one user's partition of the remote record store.
type Store struct {
	client       *remote.Client
	userName     string
	cache        *cache.Cache
	log          *log.Logger
	now          func() time.Time
	refetchDelay time.Duration

	mu      sync.Mutex
	mirror  []record.Record
	master  record.MasterData
	refetch *time.Timer

	sends   sync.WaitGroup
	sendMu  sync.Mutex
	sendErr error
}

// New returns a store for userName backed by client.
func New(client *remote.Client, userName string, opts ...Option) *Store {
	s := &Store{
		client:       client,
		userName:     userName,
		log:          log.Default(),
		now:          time.Now,
		refetchDelay: DefaultRefetchDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadCached seeds the mirror and master data from the disk cache. Absent
// cache entries leave the store empty.
func (s *Store) LoadCached() error {
	if s.cache == nil {
		return nil
	}
	recs, err := s.cache.LoadRecords(s.userName)
	if err != nil {
		return err
	}
	master, err := s.cache.LoadMasterData()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if recs != nil {
		s.mirror = recs
	}
	if master != nil {
		s.master = *master
	}
	return nil
}

// Create validates and appends rec to the mirror, then sends the create in
// the background and schedules a refetch. The optimistic row has no id
// until the refetch replaces the mirror with server rows. A failed send is
// not rolled back; the divergence lasts until a later refetch succeeds.
func (s *Store) Create(rec record.Record) error {
	if strings.TrimSpace(rec.Category) == "" || strings.TrimSpace(rec.Content) == "" {
		return ErrMissingFields
	}
	rec.UserName = s.userName

	s.mu.Lock()
	s.mirror = append(s.mirror, rec)
	s.persistCacheLocked()
	s.mu.Unlock()

	s.dispatch(remote.ActionCreate, rec)
	s.scheduleRefetch()
	return nil
}

// Update resubmits a record by id. The mirror is not patched locally; the
// scheduled refetch carries the change in.
func (s *Store) Update(rec record.Record) error {
	if rec.ID == "" {
		return ErrMissingID
	}
	if !s.has(rec.ID) {
		return ErrNotFound
	}
	rec.UserName = s.userName

	s.dispatch(remote.ActionUpdate, rec)
	s.scheduleRefetch()
	return nil
}

// Delete removes a record by id. Like Update, the mirror changes only on
// the scheduled refetch.
func (s *Store) Delete(id string) error {
	if id == "" {
		return ErrMissingID
	}
	if !s.has(id) {
		return ErrNotFound
	}

	s.dispatch(remote.ActionDelete, record.Record{ID: id, UserName: s.userName})
	s.scheduleRefetch()
	return nil
}

func (s *Store) has(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.mirror {
		if r.ID == id {
			return true
		}
	}
	return false
}

func (s *Store) dispatch(action remote.Action, rec record.Record) {
	s.sends.Add(1)
	go func() {
		defer s.sends.Done()
		ctx, cancel := context.WithTimeout(context.Background(), remote.DefaultTimeout)
		defer cancel()
		if err := s.client.Send(ctx, action, rec); err != nil {
			s.log.Warn("record mutation not delivered", "action", action, "err", err)
			s.sendMu.Lock()
			if s.sendErr == nil {
				s.sendErr = err
			}
			s.sendMu.Unlock()
		}
	}()
}

// Flush waits for in-flight sends and reports the first transport failure
// since the last call. Short-lived callers invoke it before exiting so
// background sends are not silently dropped.
func (s *Store) Flush() error {
	s.sends.Wait()
	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	err := s.sendErr
	s.sendErr = nil
	return err
}

func (s *Store) scheduleRefetch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.refetch != nil {
		s.refetch.Stop()
	}
	s.refetch = time.AfterFunc(s.refetchDelay, func() {
		ctx, cancel := context.WithTimeout(context.Background(), remote.DefaultTimeout)
		defer cancel()
		if err := s.RefetchAll(ctx); err != nil {
			s.log.Warn("scheduled refetch failed", "err", err)
		}
	})
}

// RefetchAll fetches the user's partition and replaces the mirror and
// master data wholesale.
func (s *Store) RefetchAll(ctx context.Context) error {
	p, err := s.client.Fetch(ctx, s.userName)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.mirror = p.Records
	s.master = p.MasterData
	s.persistCacheLocked()
	return nil
}

func (s *Store) persistCacheLocked() {
	if s.cache == nil {
		return
	}
	if err := s.cache.SaveRecords(s.userName, s.mirror); err != nil {
		s.log.Warn("record cache write failed", "err", err)
	}
	if err := s.cache.SaveMasterData(s.master); err != nil {
		s.log.Warn("master data cache write failed", "err", err)
	}
}

// Records returns a copy of the mirror.
func (s *Store) Records() []record.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]record.Record, len(s.mirror))
	copy(out, s.mirror)
	return out
}

// MasterData returns the current suggestion vocabularies.
func (s *Store) MasterData() record.MasterData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.master
}

// Expanded returns the mirror with boundary-crossing records split.
func (s *Store) Expanded() []record.Record {
	return daybound.Expand(s.Records())
}

// TodayTotalMinutes sums the minutes attributed to the current logical day.
func (s *Store) TodayTotalMinutes() int {
	return daybound.TotalMinutesOn(s.Records(), daybound.LogicalDate(s.now()))
}

// UserName returns the partition this store mirrors.
func (s *Store) UserName() string { return s.userName }

// Close cancels any pending scheduled refetch. A refetch already running
// is allowed to finish.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.refetch != nil {
		s.refetch.Stop()
		s.refetch = nil
	}
}
