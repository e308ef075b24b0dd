// Package datasync implements the per-collection synchronization coordinator:
// read-through across remote store, fallback generation and cached snapshots,
// and optimistic write-through with background remote flushing.
package datasync

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/classpulse/classpulse-api/pkg/jobs"
)

// Source identifies where the live in-memory state of a collection came from.
type Source string

const (
	SourceRemote   Source = "remote"
	SourceFallback Source = "fallback"
	SourceCache    Source = "cache"
	SourceEmpty    Source = "empty"
)

// State is the coordinator lifecycle per collection.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateLoading       State = "loading"
	StateReady         State = "ready"
	StateMutating      State = "mutating"
)

// Entity is anything the coordinator can manage. Entities carry their own
// identity so they stay re-insertable into the remote store.
type Entity interface {
	EntityID() string
}

// Gateway is the uniform remote store contract for one collection. The
// gateway performs no retries and no caching; both are coordinator concerns.
type Gateway[E Entity] interface {
	FetchAll(ctx context.Context) ([]E, error)
	Insert(ctx context.Context, entity E) (E, error)
	Update(ctx context.Context, entity E) error
	Delete(ctx context.Context, id string) error
}

// SnapshotStore persists the last known-good snapshot per collection key.
type SnapshotStore interface {
	ReadSnapshot(ctx context.Context, key string, dest interface{}) error
	WriteSnapshot(ctx context.Context, key string, value interface{}) error
}

// Notifier surfaces sync outcomes to the user. Fire-and-forget.
type Notifier interface {
	Success(title, message string)
	Error(title, message string)
}

// Metrics records sync health counters.
type Metrics interface {
	RecordCollectionLoad(collection string, source string)
	RecordRemoteFailure(collection string, op string)
}

// Config assembles a collection coordinator.
type Config[E Entity] struct {
	Key       string
	Gateway   Gateway[E]
	Snapshots SnapshotStore
	Generate  func() []E
	Notifier  Notifier
	Metrics   Metrics
	Logger    *zap.Logger
	Flush     jobs.QueueConfig
	// SeedRemote enables the best-effort bulk insert of freshly generated
	// fallback data into the remote store.
	SeedRemote bool
}

// Collection coordinates one entity collection between the remote store, the
// local snapshot cache, the fallback generator and optimistic in-memory state.
//
// Reads go remote -> fallback -> cache; the live collection is never absent.
// Mutations commit to in-memory state first and dispatch the remote call as a
// background job whose failure only emits a notification — local state is
// deliberately never rolled back.
type Collection[E Entity] struct {
	key        string
	gateway    Gateway[E]
	snapshots  SnapshotStore
	generate   func() []E
	notifier   Notifier
	metrics    Metrics
	logger     *zap.Logger
	seedRemote bool

	flush   *jobs.Queue
	pending atomic.Int64

	loadMu sync.Mutex
	mu     sync.RWMutex
	state  State
	source Source
	items  []E
}

type flushOp struct {
	op     string
	label  string
	silent bool
	call   func(context.Context) error
}

// NewCollection builds a coordinator for one collection key.
func NewCollection[E Entity](cfg Config[E]) *Collection[E] {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Collection[E]{
		key:        cfg.Key,
		gateway:    cfg.Gateway,
		snapshots:  cfg.Snapshots,
		generate:   cfg.Generate,
		notifier:   cfg.Notifier,
		metrics:    cfg.Metrics,
		logger:     logger.With(zap.String("collection", cfg.Key)),
		seedRemote: cfg.SeedRemote,
		state:      StateUninitialized,
	}
	flushCfg := cfg.Flush
	if flushCfg.Logger == nil {
		flushCfg.Logger = c.logger
	}
	c.flush = jobs.NewQueue("sync:"+cfg.Key, c.handleFlush, flushCfg)
	return c
}

// Start begins background flushing of remote writes. Without Start the
// coordinator still works, executing remote calls inline.
func (c *Collection[E]) Start(ctx context.Context) {
	c.flush.Start(ctx)
}

// Stop drains the flush workers.
func (c *Collection[E]) Stop() {
	c.flush.Stop()
}

// Key returns the collection key.
func (c *Collection[E]) Key() string {
	return c.key
}

// State reports the coordinator lifecycle, surfacing Mutating while remote
// flushes are outstanding.
func (c *Collection[E]) State() State {
	c.mu.RLock()
	state := c.state
	c.mu.RUnlock()
	if state == StateReady && c.pending.Load() > 0 {
		return StateMutating
	}
	return state
}

// LiveSource reports where the current in-memory state originated.
func (c *Collection[E]) LiveSource() Source {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.source
}

// Ensure loads the collection exactly once, returning current items afterwards.
func (c *Collection[E]) Ensure(ctx context.Context) ([]E, Source, error) {
	c.mu.RLock()
	initialized := c.state != StateUninitialized && c.state != StateLoading
	c.mu.RUnlock()
	if initialized {
		return c.Items(), c.LiveSource(), nil
	}
	return c.Load(ctx)
}

// Load executes the read-through: remote, then fallback generation, then the
// last cache snapshot, then an empty (but renderable) collection.
func (c *Collection[E]) Load(ctx context.Context) ([]E, Source, error) {
	c.loadMu.Lock()
	defer c.loadMu.Unlock()

	c.mu.Lock()
	if c.state == StateReady {
		items := append([]E(nil), c.items...)
		source := c.source
		c.mu.Unlock()
		return items, source, nil
	}
	c.state = StateLoading
	c.mu.Unlock()

	remote, err := c.gateway.FetchAll(ctx)
	if err == nil && len(remote) > 0 {
		c.adopt(ctx, remote, SourceRemote, true)
		return append([]E(nil), remote...), SourceRemote, nil
	}
	if err != nil {
		c.logger.Warn("remote fetch failed, generating fallback data", zap.Error(err))
		c.recordRemoteFailure("fetch")
	}

	generated := c.safeGenerate()
	if len(generated) > 0 {
		c.adopt(ctx, generated, SourceFallback, true)
		if c.seedRemote {
			c.dispatch(ctx, c.seedOp(generated))
		}
		if c.notifier != nil {
			c.notifier.Success("Using sample data", "Showing locally generated "+c.key+" until the remote store is reachable.")
		}
		return append([]E(nil), generated...), SourceFallback, nil
	}
	c.logger.Error("fallback generation produced no data")

	var cached []E
	if c.snapshots != nil {
		if snapErr := c.snapshots.ReadSnapshot(ctx, c.key, &cached); snapErr == nil && len(cached) > 0 {
			c.adopt(ctx, cached, SourceCache, false)
			return append([]E(nil), cached...), SourceCache, nil
		}
	}

	c.mu.Lock()
	c.items = nil
	c.state = StateReady
	c.source = SourceEmpty
	c.mu.Unlock()
	c.recordLoad(SourceEmpty)
	return []E{}, SourceEmpty, nil
}

// Items returns a copy of the live collection.
func (c *Collection[E]) Items() []E {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]E(nil), c.items...)
}

// Find returns the entity with the given id.
func (c *Collection[E]) Find(id string) (E, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, item := range c.items {
		if item.EntityID() == id {
			return item, true
		}
	}
	var zero E
	return zero, false
}

// Add applies an optimistic insert: local state and snapshot first, remote
// confirmation in the background.
func (c *Collection[E]) Add(ctx context.Context, entity E) E {
	c.mu.Lock()
	c.items = append(c.items, entity)
	items := append([]E(nil), c.items...)
	c.mu.Unlock()

	c.writeSnapshot(ctx, items)
	c.dispatch(ctx, flushOp{
		op:    "insert",
		label: "saving the new " + c.key + " entry",
		call: func(ctx context.Context) error {
			_, err := c.gateway.Insert(ctx, entity)
			return err
		},
	})
	return entity
}

// Apply mutates the entity with the given id in place. The mutation lands in
// memory immediately and in invocation order; the remote update follows.
func (c *Collection[E]) Apply(ctx context.Context, id string, mutate func(E) E) (E, bool) {
	c.mu.Lock()
	idx := -1
	for i, item := range c.items {
		if item.EntityID() == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.mu.Unlock()
		var zero E
		return zero, false
	}
	updated := mutate(c.items[idx])
	c.items[idx] = updated
	items := append([]E(nil), c.items...)
	c.mu.Unlock()

	c.writeSnapshot(ctx, items)
	c.dispatch(ctx, flushOp{
		op:    "update",
		label: "saving changes to " + c.key,
		call: func(ctx context.Context) error {
			return c.gateway.Update(ctx, updated)
		},
	})
	return updated, true
}

// Remove deletes the entity locally and issues a best-effort remote delete.
// A failed remote delete does not restore the entity.
func (c *Collection[E]) Remove(ctx context.Context, id string) (E, bool) {
	c.mu.Lock()
	idx := -1
	for i, item := range c.items {
		if item.EntityID() == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.mu.Unlock()
		var zero E
		return zero, false
	}
	removed := c.items[idx]
	c.items = append(c.items[:idx], c.items[idx+1:]...)
	items := append([]E(nil), c.items...)
	c.mu.Unlock()

	c.writeSnapshot(ctx, items)
	c.dispatch(ctx, flushOp{
		op:    "delete",
		label: "removing the " + c.key + " entry",
		call: func(ctx context.Context) error {
			return c.gateway.Delete(ctx, id)
		},
	})
	return removed, true
}

func (c *Collection[E]) adopt(ctx context.Context, items []E, source Source, snapshot bool) {
	c.mu.Lock()
	c.items = append([]E(nil), items...)
	c.state = StateReady
	c.source = source
	c.mu.Unlock()
	if snapshot {
		c.writeSnapshot(ctx, items)
	}
	c.recordLoad(source)
	c.logger.Info("collection loaded", zap.String("source", string(source)), zap.Int("count", len(items)))
}

func (c *Collection[E]) safeGenerate() (items []E) {
	if c.generate == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("fallback generator panicked", zap.Any("panic", r))
			items = nil
		}
	}()
	return c.generate()
}

func (c *Collection[E]) seedOp(items []E) flushOp {
	seed := append([]E(nil), items...)
	return flushOp{
		op:     "seed",
		label:  "seeding generated " + c.key,
		silent: true,
		call: func(ctx context.Context) error {
			var firstErr error
			for _, item := range seed {
				if _, err := c.gateway.Insert(ctx, item); err != nil {
					if firstErr == nil {
						firstErr = err
					}
				}
			}
			return firstErr
		},
	}
}

func (c *Collection[E]) writeSnapshot(ctx context.Context, items []E) {
	if c.snapshots == nil {
		return
	}
	if err := c.snapshots.WriteSnapshot(ctx, c.key, items); err != nil {
		c.logger.Warn("snapshot write failed", zap.Error(err))
	}
}

// dispatch hands the remote call to the flush queue when workers are running,
// falling back to an inline call otherwise.
func (c *Collection[E]) dispatch(ctx context.Context, op flushOp) {
	if c.flush.Started() {
		c.pending.Add(1)
		job := jobs.Job{ID: uuid.NewString(), Type: op.op, Payload: op, Enqueued: time.Now().UTC()}
		if err := c.flush.Enqueue(job); err == nil {
			return
		}
		c.pending.Add(-1)
	}
	if err := op.call(ctx); err != nil {
		c.reportFlushFailure(op, err)
	}
}

func (c *Collection[E]) handleFlush(ctx context.Context, job jobs.Job) error {
	op, ok := job.Payload.(flushOp)
	if !ok {
		c.pending.Add(-1)
		return nil
	}
	err := op.call(ctx)
	if err == nil {
		c.pending.Add(-1)
		return nil
	}
	if job.Attempt >= c.flush.MaxRetries() {
		c.pending.Add(-1)
		c.reportFlushFailure(op, err)
		return nil
	}
	return err
}

func (c *Collection[E]) reportFlushFailure(op flushOp, err error) {
	c.recordRemoteFailure(op.op)
	if op.silent {
		c.logger.Warn("remote seed failed, keeping local data", zap.String("op", op.op), zap.Error(err))
		return
	}
	c.logger.Warn("remote write failed, keeping optimistic state", zap.String("op", op.op), zap.Error(err))
	if c.notifier != nil {
		c.notifier.Error("Sync failed", "A problem occurred while "+op.label+". Your changes are kept locally.")
	}
}

func (c *Collection[E]) recordLoad(source Source) {
	if c.metrics != nil {
		c.metrics.RecordCollectionLoad(c.key, string(source))
	}
}

func (c *Collection[E]) recordRemoteFailure(op string) {
	if c.metrics != nil {
		c.metrics.RecordRemoteFailure(c.key, op)
	}
}
