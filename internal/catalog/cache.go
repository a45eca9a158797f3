package catalog

import (
	"alcyxob/fitness-catalog/internal/domain"
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// State is the lifecycle of the cached snapshot.
type State string

const (
	StateEmpty   State = "empty"
	StateLoading State = "loading"
	StateReady   State = "ready"
)

// Defaults for CacheConfig.
const (
	DefaultStalenessWindow = 5 * time.Minute
	DefaultLoadTimeout     = 30 * time.Second
)

const loadKey = "catalog"

// Fetcher loads the full remote catalog. *Gateway implements it.
type Fetcher interface {
	FetchAll(ctx context.Context) ([]domain.Exercise, error)
}

// SnapshotStore persists the last good remote catalog outside the process.
type SnapshotStore interface {
	Save(ctx context.Context, exercises []domain.Exercise) error
	Load(ctx context.Context) ([]domain.Exercise, error)
}

// CacheConfig tunes a Cache. Zero values select the defaults.
type CacheConfig struct {
	StalenessWindow time.Duration
	// LoadTimeout bounds one complete load; callers cannot cancel a load once started.
	LoadTimeout time.Duration
	// Snapshots is an optional persisted tier between the stale snapshot and the bundled data.
	Snapshots SnapshotStore
	Logger    *slog.Logger
	Now       func() time.Time
}

// Status describes the current snapshot.
type Status struct {
	State     State      `json:"state"`
	Source    string     `json:"source,omitempty"`
	Count     int        `json:"count"`
	FetchedAt *time.Time `json:"fetchedAt,omitempty"`
	LastError string     `json:"lastError,omitempty"`
}

// Cache owns the in-memory catalog shared by the whole process. Loads go through the
// chain remote -> stale snapshot -> persisted snapshot -> bundled dataset; concurrent
// loads are joined through a single in-flight handle.
type Cache struct {
	bundled   *Bundled
	chain     *Chain
	snapshots SnapshotStore
	window    time.Duration
	timeout   time.Duration
	logger    *slog.Logger
	now       func() time.Time
	group     singleflight.Group

	mu          sync.RWMutex
	state       State
	exercises   []domain.Exercise
	hasData     bool
	source      string
	fetchedAt   time.Time // last successful remote fetch
	lastAttempt time.Time
	lastError   string
	startedSeq  uint64
	appliedSeq  uint64
}

// NewCache creates an empty cache. Nothing is fetched until Initialize is called.
// A nil bundled dataset is replaced by the embedded one.
func NewCache(remote Fetcher, bundled *Bundled, cfg CacheConfig) *Cache {
	if bundled == nil {
		bundled = MustLoadBundled()
	}
	if cfg.StalenessWindow <= 0 {
		cfg.StalenessWindow = DefaultStalenessWindow
	}
	if cfg.LoadTimeout <= 0 {
		cfg.LoadTimeout = DefaultLoadTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	c := &Cache{
		bundled:   bundled,
		snapshots: cfg.Snapshots,
		window:    cfg.StalenessWindow,
		timeout:   cfg.LoadTimeout,
		logger:    cfg.Logger,
		now:       cfg.Now,
		state:     StateEmpty,
	}

	remoteSource := SourceFunc{SourceName: SourceRemote, Fn: func(ctx context.Context) ([]domain.Exercise, error) {
		exercises, err := remote.FetchAll(ctx)
		if err != nil {
			return nil, err
		}
		kept, dropped := Dedupe(exercises)
		for _, d := range dropped {
			c.logger.Warn("duplicate exercise dropped", "id", d.Dropped.ID, "name", d.Dropped.Name, "kept", d.KeptID)
		}
		return kept, nil
	}}
	staleSource := SourceFunc{SourceName: SourceStale, Fn: func(context.Context) ([]domain.Exercise, error) {
		c.mu.RLock()
		defer c.mu.RUnlock()
		if !c.hasData {
			return nil, ErrNoData
		}
		return c.exercises, nil
	}}
	var snapshotSource Source
	if cfg.Snapshots != nil {
		snapshotSource = SourceFunc{SourceName: SourceSnapshot, Fn: cfg.Snapshots.Load}
	}
	c.chain = NewChain(c.logger, remoteSource, staleSource, snapshotSource, bundled)
	return c
}

// Initialize makes sure the catalog is loaded. It returns immediately when the last
// remote fetch is younger than the staleness window, joins a load that is already
// running, and otherwise starts one. The returned error is only the caller's own
// context ending; a load that falls back still leaves the cache ready.
func (c *Cache) Initialize(ctx context.Context) error {
	if c.fresh() {
		return nil
	}
	return c.await(ctx, c.group.DoChan(loadKey, c.loadFunc(false)))
}

// Refresh forces a new load regardless of the staleness window.
func (c *Cache) Refresh(ctx context.Context) error {
	// A load already in flight may predate a write the caller wants to see, so start a
	// fresh one; the sequence check in apply keeps the newest result.
	c.group.Forget(loadKey)
	return c.await(ctx, c.group.DoChan(loadKey, c.loadFunc(true)))
}

func (c *Cache) await(ctx context.Context, ch <-chan singleflight.Result) error {
	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Cache) loadFunc(forced bool) func() (any, error) {
	return func() (any, error) {
		return nil, c.load(forced)
	}
}

func (c *Cache) load(forced bool) error {
	c.mu.Lock()
	if c.state == StateEmpty || forced {
		c.state = StateLoading
	}
	c.startedSeq++
	seq := c.startedSeq
	c.lastAttempt = c.now()
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	res, err := c.chain.Load(ctx)
	c.apply(seq, res, err)
	if err != nil {
		return err
	}

	if res.Source == SourceRemote && c.snapshots != nil {
		if err := c.snapshots.Save(ctx, res.Exercises); err != nil {
			c.logger.Error("failed to persist catalog snapshot", "error", err)
		}
	}
	return nil
}

func (c *Cache) apply(seq uint64, res Result, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		// Every tier failed, including the bundled data.
		c.lastError = err.Error()
		if c.hasData {
			c.state = StateReady
		} else {
			c.state = StateEmpty
		}
		return
	}
	if seq < c.appliedSeq {
		return
	}
	c.appliedSeq = seq
	c.state = StateReady

	switch res.Source {
	case SourceRemote:
		c.exercises = res.Exercises
		c.source = SourceRemote
		c.fetchedAt = c.now()
		c.lastError = ""
		c.logger.Info("catalog loaded", "source", res.Source, "count", len(res.Exercises))
	case SourceStale:
		c.lastError = "remote unavailable; serving previous snapshot"
		c.logger.Warn("catalog refresh failed, keeping previous snapshot", "source", c.source, "count", len(c.exercises))
	default:
		c.exercises = res.Exercises
		c.source = res.Source
		c.lastError = "remote unavailable; serving " + res.Source + " data"
		c.logger.Warn("catalog loaded from fallback", "source", res.Source, "count", len(res.Exercises))
	}
	c.hasData = true
}

func (c *Cache) fresh() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state == StateReady && !c.fetchedAt.IsZero() && c.now().Sub(c.fetchedAt) < c.window
}

// GetAll returns a copy of the current catalog. Serving the bundled dataset while no
// remote load has ever succeeded logs a warning on every read. A read of a snapshot
// older than the staleness window starts a background refresh.
func (c *Cache) GetAll() []domain.Exercise {
	c.mu.RLock()
	if !c.hasData {
		c.mu.RUnlock()
		c.logger.Warn("catalog served from bundled dataset", "reason", "no load has completed")
		return c.bundled.All()
	}
	out := domain.CloneExercises(c.exercises)
	now := c.now()
	neverFetched := c.fetchedAt.IsZero()
	bundledOnly := c.source == SourceBundled && neverFetched
	stale := c.state == StateReady &&
		now.Sub(c.lastAttempt) >= c.window &&
		(neverFetched || now.Sub(c.fetchedAt) >= c.window)
	c.mu.RUnlock()

	if bundledOnly {
		c.logger.Warn("catalog served from bundled dataset", "reason", "no remote load has succeeded")
	}
	if stale {
		c.group.DoChan(loadKey, c.loadFunc(false))
	}
	return out
}

// GetByCategory returns the exercises of one category, in catalog order.
func (c *Cache) GetByCategory(category domain.Category) []domain.Exercise {
	var out []domain.Exercise
	for _, ex := range c.GetAll() {
		if ex.Category == category {
			out = append(out, ex)
		}
	}
	return out
}

// GetByID returns the exercise with id, if present in the catalog.
func (c *Cache) GetByID(id string) (domain.Exercise, bool) {
	for _, ex := range c.GetAll() {
		if ex.ID == id {
			return ex, true
		}
	}
	return domain.Exercise{}, false
}

// GetCategories returns the categories present in the catalog, in domain.Categories order.
func (c *Cache) GetCategories() []domain.Category {
	present := make(map[domain.Category]bool)
	for _, ex := range c.GetAll() {
		present[ex.Category] = true
	}
	out := make([]domain.Category, 0, len(present))
	for _, cat := range domain.Categories {
		if present[cat] {
			out = append(out, cat)
		}
	}
	return out
}

// Status reports the snapshot's state and origin.
func (c *Cache) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s := Status{
		State:     c.state,
		Source:    c.source,
		Count:     len(c.exercises),
		LastError: c.lastError,
	}
	if !c.fetchedAt.IsZero() {
		t := c.fetchedAt
		s.FetchedAt = &t
	}
	return s
}
