// Package timer runs a study session: wall-clock elapsed time with
// pause/resume bookkeeping, a one-second display tick, a rotating support
// message, and a durable snapshot for crash recovery. Elapsed time is
// always derived from timestamps, never from counting ticks, so a stalled
// or recovered process shows the true duration.
package timer

import (
	"errors"
	"math"
	"strings"
	"sync"
	"time"

	"studyrec/internal/record"
	"studyrec/internal/session"
)

var (
	// ErrMissingFields indicates a start without category or content
	ErrMissingFields = errors.New("category and content are required")
	// ErrSessionActive indicates a start while a session is running
	ErrSessionActive = errors.New("a session is already active")
	// ErrNoSession indicates an operation with no active session
	ErrNoSession = errors.New("no active session")
	// ErrAlreadyPaused indicates a pause while already paused
	ErrAlreadyPaused = errors.New("session is already paused")
	// ErrNotPaused indicates a resume while not paused
	ErrNotPaused = errors.New("session is not paused")
	// ErrNotFinishing indicates a commit without a preceding finish
	ErrNotFinishing = errors.New("no finished session to commit")
)

const (
	// DefaultMessageInterval is the support message rotation period.
	DefaultMessageInterval = 20 * time.Second

	displayInterval   = time.Second
	heartbeatInterval = time.Minute
)

type phase int

const (
	phaseIdle phase = iota
	phaseRunning
	phaseFinishing
)

// Extra carries the reflection fields merged into the draft at commit.
type Extra struct {
	Condition  string
	Comment    string
	Location   string
	Enthusiasm string
}

// Option configures a Timer.
type Option func(*Timer)

// WithClock injects the time source.
func WithClock(now func() time.Time) Option {
	return func(t *Timer) { t.now = now }
}

// WithMessageInterval sets the support message rotation period.
func WithMessageInterval(d time.Duration) Option {
	return func(t *Timer) {
		if d > 0 {
			t.messageInterval = d
		}
	}
}

// WithOnTick registers a callback fired on every display tick with the
// current elapsed time.
func WithOnTick(fn func(elapsed time.Duration)) Option {
	return func(t *Timer) { t.onTick = fn }
}

// WithOnSupportMessage registers a callback fired on every support message
// rotation tick.
func WithOnSupportMessage(fn func()) Option {
	return func(t *Timer) { t.onSupport = fn }
}

// Timer is the session state machine. Methods are safe for concurrent use;
// the tick goroutines share the same mutex as the public operations.
type Timer struct {
	mu    sync.Mutex
	store session.Store
	now   func() time.Time

	messageInterval time.Duration
	onTick          func(time.Duration)
	onSupport       func()

	phase  phase
	paused bool

	startTime         time.Time
	accumulatedPaused time.Duration
	lastPause         time.Time
	lastHeartbeat     time.Duration

	category string
	content  string
	location string

	draft *record.Record

	stopDisplay chan struct{}
	stopMessage chan struct{}
}

// New returns an idle timer persisting snapshots to store.
func New(store session.Store, opts ...Option) *Timer {
	t := &Timer{
		store:           store,
		now:             time.Now,
		messageInterval: DefaultMessageInterval,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Recover rebuilds a timer from a persisted snapshot. It returns nil (and
// no error) when no session is active. The recovered timer resumes ticking
// unless the snapshot was paused; elapsed time comes from the stored
// timestamps, so time spent down is accounted for.
func Recover(store session.Store, opts ...Option) (*Timer, error) {
	snap, err := store.Load()
	if err != nil {
		return nil, err
	}
	if snap == nil || !snap.IsStudying {
		return nil, nil
	}

	t := New(store, opts...)
	t.phase = phaseRunning
	t.paused = snap.IsPaused
	t.startTime = snap.StartTime
	t.accumulatedPaused = time.Duration(snap.AccumulatedPausedMs) * time.Millisecond
	if snap.LastPauseTime != nil {
		t.lastPause = *snap.LastPauseTime
	}
	t.category = snap.Category
	t.content = snap.Content
	t.location = snap.Location
	t.lastHeartbeat = t.elapsedLocked(t.now())

	if !t.paused {
		t.startDisplayTickLocked()
	}
	t.startMessageTickLocked()
	return t, nil
}

// Start begins a session. Category and content are required; location is
// optional. Starting while a session is active fails without touching it.
func (t *Timer) Start(category, content, location string) error {
	category = strings.TrimSpace(category)
	content = strings.TrimSpace(content)
	if category == "" || content == "" {
		return ErrMissingFields
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.phase != phaseIdle {
		return ErrSessionActive
	}

	t.phase = phaseRunning
	t.paused = false
	t.startTime = t.now()
	t.accumulatedPaused = 0
	t.lastPause = time.Time{}
	t.lastHeartbeat = 0
	t.category = category
	t.content = content
	t.location = location
	t.draft = nil

	if err := t.persistLocked(); err != nil {
		t.phase = phaseIdle
		return err
	}

	t.startDisplayTickLocked()
	t.startMessageTickLocked()
	return nil
}

// Pause suspends the running session.
func (t *Timer) Pause() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.phase != phaseRunning {
		return ErrNoSession
	}
	if t.paused {
		return ErrAlreadyPaused
	}

	t.paused = true
	t.lastPause = t.now()
	t.stopDisplayTickLocked()
	return t.persistLocked()
}

// Resume continues a paused session, folding the pause interval into the
// accumulated pause total.
func (t *Timer) Resume() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.phase != phaseRunning {
		return ErrNoSession
	}
	if !t.paused {
		return ErrNotPaused
	}

	t.accumulatedPaused += t.now().Sub(t.lastPause)
	t.paused = false
	t.lastPause = time.Time{}
	t.startDisplayTickLocked()
	return t.persistLocked()
}

// ElapsedAt returns the studied time as of now: wall time since start
// minus accumulated pauses, minus the open pause when paused, clamped at
// zero.
func (t *Timer) ElapsedAt(now time.Time) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.elapsedLocked(now)
}

// ElapsedMs is ElapsedAt in whole milliseconds.
func (t *Timer) ElapsedMs(now time.Time) int64 {
	return t.ElapsedAt(now).Milliseconds()
}

func (t *Timer) elapsedLocked(now time.Time) time.Duration {
	if t.phase == phaseIdle {
		return 0
	}
	elapsed := now.Sub(t.startTime) - t.accumulatedPaused
	if t.paused {
		elapsed -= now.Sub(t.lastPause)
	}
	if elapsed < 0 {
		elapsed = 0
	}
	return elapsed
}

// Active reports whether a session is running or paused.
func (t *Timer) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.phase == phaseRunning
}

// Paused reports whether the session is paused.
func (t *Timer) Paused() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.paused
}

// Session returns the running session's category, content and location.
func (t *Timer) Session() (category, content, location string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.category, t.content, t.location
}

// StartedAt returns the session start time.
func (t *Timer) StartedAt() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.startTime
}

// Finish ends the running or paused session and returns a draft record:
// duration in minutes rounded from elapsed milliseconds, the start's
// calendar date, and clock-formatted start and end times. The snapshot is
// kept until Commit so an interrupted finish flow can recover.
func (t *Timer) Finish() (record.Record, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.phase != phaseRunning {
		return record.Record{}, ErrNoSession
	}

	now := t.now()
	elapsed := t.elapsedLocked(now)
	minutes := int(math.Round(float64(elapsed.Milliseconds()) / 60000))
	if minutes < 0 {
		minutes = 0
	}

	draft := record.Record{
		Date:      record.DateOf(t.startTime),
		StartTime: record.ClockOf(t.startTime),
		EndTime:   record.ClockOf(now),
		Duration:  minutes,
		Category:  t.category,
		Content:   t.content,
		Location:  t.location,
	}
	t.draft = &draft
	t.phase = phaseFinishing
	t.paused = false
	t.stopDisplayTickLocked()
	t.stopMessageTickLocked()
	return draft, nil
}

// Commit merges the reflection fields into the draft, clears the
// snapshot, and returns the final record with the timer idle again.
func (t *Timer) Commit(extra Extra) (record.Record, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.phase != phaseFinishing || t.draft == nil {
		return record.Record{}, ErrNotFinishing
	}

	rec := *t.draft
	rec.Condition = extra.Condition
	rec.Comment = extra.Comment
	rec.Enthusiasm = extra.Enthusiasm
	if extra.Location != "" {
		rec.Location = extra.Location
	}

	if err := t.store.Clear(); err != nil {
		return record.Record{}, err
	}

	t.phase = phaseIdle
	t.draft = nil
	t.category = ""
	t.content = ""
	t.location = ""
	return rec, nil
}

// Stop halts the tick goroutines without touching session state. The
// snapshot stays in place for later recovery.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopDisplayTickLocked()
	t.stopMessageTickLocked()
}

func (t *Timer) persistLocked() error {
	snap := session.Snapshot{
		IsStudying:          t.phase == phaseRunning,
		IsPaused:            t.paused,
		StartTime:           t.startTime,
		AccumulatedPausedMs: t.accumulatedPaused.Milliseconds(),
		Category:            t.category,
		Content:             t.content,
		Location:            t.location,
	}
	if t.paused {
		lp := t.lastPause
		snap.LastPauseTime = &lp
	}
	return t.store.Save(snap)
}

func (t *Timer) startDisplayTickLocked() {
	if t.stopDisplay != nil {
		return
	}
	stop := make(chan struct{})
	t.stopDisplay = stop
	go t.displayLoop(stop)
}

func (t *Timer) stopDisplayTickLocked() {
	if t.stopDisplay != nil {
		close(t.stopDisplay)
		t.stopDisplay = nil
	}
}

func (t *Timer) startMessageTickLocked() {
	if t.stopMessage != nil {
		return
	}
	stop := make(chan struct{})
	t.stopMessage = stop
	go t.messageLoop(stop)
}

func (t *Timer) stopMessageTickLocked() {
	if t.stopMessage != nil {
		close(t.stopMessage)
		t.stopMessage = nil
	}
}

func (t *Timer) displayLoop(stop chan struct{}) {
	ticker := time.NewTicker(displayInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			t.displayTick()
		}
	}
}

func (t *Timer) displayTick() {
	t.mu.Lock()
	if t.phase != phaseRunning || t.paused {
		t.mu.Unlock()
		return
	}
	elapsed := t.elapsedLocked(t.now())
	onTick := t.onTick

	// Re-persist the snapshot every minute of studied time so a crash
	// loses at most the heartbeat interval of pause bookkeeping.
	if elapsed-t.lastHeartbeat >= heartbeatInterval {
		t.lastHeartbeat = elapsed
		_ = t.persistLocked()
	}
	t.mu.Unlock()

	if onTick != nil {
		onTick(elapsed)
	}
}

func (t *Timer) messageLoop(stop chan struct{}) {
	ticker := time.NewTicker(t.messageInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			t.mu.Lock()
			fn := t.onSupport
			running := t.phase == phaseRunning && !t.paused
			t.mu.Unlock()
			if running && fn != nil {
				fn()
			}
		}
	}
}
