package datasync

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEntity struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

func (e testEntity) EntityID() string { return e.ID }

type fakeGateway struct {
	mu       sync.Mutex
	fetch    []testEntity
	fetchErr error
	writeErr error
	inserted []testEntity
	updated  []testEntity
	deleted  []string
}

func (g *fakeGateway) FetchAll(ctx context.Context) ([]testEntity, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.fetchErr != nil {
		return nil, g.fetchErr
	}
	return append([]testEntity(nil), g.fetch...), nil
}

func (g *fakeGateway) Insert(ctx context.Context, entity testEntity) (testEntity, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.writeErr != nil {
		return entity, g.writeErr
	}
	g.inserted = append(g.inserted, entity)
	return entity, nil
}

func (g *fakeGateway) Update(ctx context.Context, entity testEntity) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.writeErr != nil {
		return g.writeErr
	}
	g.updated = append(g.updated, entity)
	return nil
}

func (g *fakeGateway) Delete(ctx context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.writeErr != nil {
		return g.writeErr
	}
	g.deleted = append(g.deleted, id)
	return nil
}

type fakeSnapshots struct {
	mu      sync.Mutex
	data    map[string][]byte
	readErr error
	writes  int
}

func newFakeSnapshots() *fakeSnapshots {
	return &fakeSnapshots{data: map[string][]byte{}}
}

func (s *fakeSnapshots) ReadSnapshot(ctx context.Context, key string, dest interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readErr != nil {
		return s.readErr
	}
	raw, ok := s.data[key]
	if !ok {
		return errors.New("snapshot miss")
	}
	return json.Unmarshal(raw, dest)
}

func (s *fakeSnapshots) WriteSnapshot(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = raw
	s.writes++
	return nil
}

type fakeNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (n *fakeNotifier) Success(title, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, title)
}

func (n *fakeNotifier) Error(title, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, title)
}

func (n *fakeNotifier) errorCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.errors)
}

// Collections in these tests are not started, so remote calls run inline and
// the assertions stay deterministic.
func newTestCollection(gateway *fakeGateway, snapshots *fakeSnapshots, notifier *fakeNotifier, generate func() []testEntity) *Collection[testEntity] {
	return NewCollection(Config[testEntity]{
		Key:       "widgets",
		Gateway:   gateway,
		Snapshots: snapshots,
		Generate:  generate,
		Notifier:  notifier,
	})
}

func TestLoadAdoptsRemoteData(t *testing.T) {
	gateway := &fakeGateway{fetch: []testEntity{{ID: "1", Value: "a"}}}
	snapshots := newFakeSnapshots()
	notifier := &fakeNotifier{}
	c := newTestCollection(gateway, snapshots, notifier, func() []testEntity {
		t.Fatal("generator must not run when remote data exists")
		return nil
	})

	items, source, err := c.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SourceRemote, source)
	require.Len(t, items, 1)
	assert.Equal(t, StateReady, c.State())
	assert.Equal(t, 1, snapshots.writes)
	assert.Empty(t, notifier.successes)
}

func TestLoadFallsBackToGeneratedData(t *testing.T) {
	gateway := &fakeGateway{fetchErr: errors.New("connection refused")}
	snapshots := newFakeSnapshots()
	notifier := &fakeNotifier{}
	c := newTestCollection(gateway, snapshots, notifier, func() []testEntity {
		return []testEntity{{ID: "g1", Value: "generated"}}
	})

	items, source, err := c.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, source)
	require.Len(t, items, 1)
	assert.Equal(t, "g1", items[0].ID)
	require.Len(t, notifier.successes, 1)
	assert.Equal(t, "Using sample data", notifier.successes[0])
	assert.Equal(t, 1, snapshots.writes)
}

func TestLoadEmptyRemoteTreatedAsMissing(t *testing.T) {
	gateway := &fakeGateway{}
	c := newTestCollection(gateway, newFakeSnapshots(), &fakeNotifier{}, func() []testEntity {
		return []testEntity{{ID: "g1"}}
	})

	_, source, err := c.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, source)
}

func TestLoadSeedsRemoteWithGeneratedData(t *testing.T) {
	gateway := &fakeGateway{fetchErr: errors.New("down")}
	c := NewCollection(Config[testEntity]{
		Key:        "widgets",
		Gateway:    gateway,
		Snapshots:  newFakeSnapshots(),
		Generate:   func() []testEntity { return []testEntity{{ID: "g1"}, {ID: "g2"}} },
		Notifier:   &fakeNotifier{},
		SeedRemote: true,
	})

	_, _, err := c.Load(context.Background())
	require.NoError(t, err)

	// Inline dispatch: fetch failed but inserts succeed.
	gateway.mu.Lock()
	defer gateway.mu.Unlock()
	assert.Len(t, gateway.inserted, 2)
}

func TestLoadFallsBackToCachedSnapshot(t *testing.T) {
	gateway := &fakeGateway{fetchErr: errors.New("down")}
	snapshots := newFakeSnapshots()
	raw, err := json.Marshal([]testEntity{{ID: "c1", Value: "cached"}})
	require.NoError(t, err)
	snapshots.data["widgets"] = raw

	c := newTestCollection(gateway, snapshots, &fakeNotifier{}, func() []testEntity { return nil })

	items, source, err := c.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SourceCache, source)
	require.Len(t, items, 1)
	assert.Equal(t, "c1", items[0].ID)
}

func TestLoadEndsEmptyWhenEverySourceFails(t *testing.T) {
	gateway := &fakeGateway{fetchErr: errors.New("down")}
	c := newTestCollection(gateway, newFakeSnapshots(), &fakeNotifier{}, func() []testEntity { return nil })

	items, source, err := c.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SourceEmpty, source)
	assert.NotNil(t, items)
	assert.Empty(t, items)
	assert.Equal(t, StateReady, c.State())
}

func TestLoadSurvivesGeneratorPanic(t *testing.T) {
	gateway := &fakeGateway{fetchErr: errors.New("down")}
	c := newTestCollection(gateway, newFakeSnapshots(), &fakeNotifier{}, func() []testEntity {
		panic("boom")
	})

	_, source, err := c.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SourceEmpty, source)
}

func TestEnsureLoadsOnlyOnce(t *testing.T) {
	gateway := &fakeGateway{fetch: []testEntity{{ID: "1"}}}
	c := newTestCollection(gateway, newFakeSnapshots(), &fakeNotifier{}, nil)

	_, _, err := c.Ensure(context.Background())
	require.NoError(t, err)

	// Subsequent Ensure serves memory even when the remote store dies.
	gateway.mu.Lock()
	gateway.fetchErr = errors.New("down")
	gateway.mu.Unlock()

	items, source, err := c.Ensure(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SourceRemote, source)
	assert.Len(t, items, 1)
}

func TestAddKeepsEntityWhenRemoteInsertFails(t *testing.T) {
	gateway := &fakeGateway{fetch: []testEntity{{ID: "1"}}}
	snapshots := newFakeSnapshots()
	notifier := &fakeNotifier{}
	c := newTestCollection(gateway, snapshots, notifier, nil)
	_, _, err := c.Load(context.Background())
	require.NoError(t, err)

	gateway.mu.Lock()
	gateway.writeErr = errors.New("insert refused")
	gateway.mu.Unlock()

	added := c.Add(context.Background(), testEntity{ID: "2", Value: "optimistic"})
	assert.Equal(t, "2", added.ID)

	// Local state holds the entity despite the failed remote write.
	items := c.Items()
	require.Len(t, items, 2)
	require.Equal(t, 1, notifier.errorCount())
	assert.Equal(t, "Sync failed", notifier.errors[0])

	// The snapshot already contains the optimistic entity.
	var cached []testEntity
	require.NoError(t, snapshots.ReadSnapshot(context.Background(), "widgets", &cached))
	assert.Len(t, cached, 2)
}

func TestApplyMutatesInPlace(t *testing.T) {
	gateway := &fakeGateway{fetch: []testEntity{{ID: "1", Value: "old"}}}
	c := newTestCollection(gateway, newFakeSnapshots(), &fakeNotifier{}, nil)
	_, _, err := c.Load(context.Background())
	require.NoError(t, err)

	updated, ok := c.Apply(context.Background(), "1", func(e testEntity) testEntity {
		e.Value = "new"
		return e
	})
	require.True(t, ok)
	assert.Equal(t, "new", updated.Value)

	item, found := c.Find("1")
	require.True(t, found)
	assert.Equal(t, "new", item.Value)

	gateway.mu.Lock()
	defer gateway.mu.Unlock()
	require.Len(t, gateway.updated, 1)
	assert.Equal(t, "new", gateway.updated[0].Value)
}

func TestApplyUnknownIDReportsMiss(t *testing.T) {
	gateway := &fakeGateway{fetch: []testEntity{{ID: "1"}}}
	c := newTestCollection(gateway, newFakeSnapshots(), &fakeNotifier{}, nil)
	_, _, err := c.Load(context.Background())
	require.NoError(t, err)

	_, ok := c.Apply(context.Background(), "missing", func(e testEntity) testEntity { return e })
	assert.False(t, ok)
}

func TestRemoveDoesNotRestoreOnRemoteFailure(t *testing.T) {
	gateway := &fakeGateway{fetch: []testEntity{{ID: "1"}, {ID: "2"}}}
	notifier := &fakeNotifier{}
	c := newTestCollection(gateway, newFakeSnapshots(), notifier, nil)
	_, _, err := c.Load(context.Background())
	require.NoError(t, err)

	gateway.mu.Lock()
	gateway.writeErr = errors.New("delete refused")
	gateway.mu.Unlock()

	removed, ok := c.Remove(context.Background(), "1")
	require.True(t, ok)
	assert.Equal(t, "1", removed.ID)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "2", items[0].ID)
	assert.Equal(t, 1, notifier.errorCount())
}

func TestItemsReturnsCopy(t *testing.T) {
	gateway := &fakeGateway{fetch: []testEntity{{ID: "1", Value: "a"}}}
	c := newTestCollection(gateway, newFakeSnapshots(), &fakeNotifier{}, nil)
	_, _, err := c.Load(context.Background())
	require.NoError(t, err)

	items := c.Items()
	items[0].Value = "mutated"

	fresh := c.Items()
	assert.Equal(t, "a", fresh[0].Value)
}

func TestStateLifecycle(t *testing.T) {
	gateway := &fakeGateway{fetch: []testEntity{{ID: "1"}}}
	c := newTestCollection(gateway, newFakeSnapshots(), &fakeNotifier{}, nil)

	assert.Equal(t, StateUninitialized, c.State())
	_, _, err := c.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateReady, c.State())
	assert.Equal(t, SourceRemote, c.LiveSource())
}
