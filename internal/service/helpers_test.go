package service

import (
	"context"
	"sync"

	"github.com/classpulse/classpulse-api/internal/datasync"
	"github.com/classpulse/classpulse-api/internal/models"
)

// memGateway is an in-memory remote store double shared by the service tests.
type memGateway[E datasync.Entity] struct {
	mu       sync.Mutex
	items    []E
	fetchErr error
	writeErr error
	inserts  int
	deletes  int
}

func (g *memGateway[E]) FetchAll(ctx context.Context) ([]E, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.fetchErr != nil {
		return nil, g.fetchErr
	}
	return append([]E(nil), g.items...), nil
}

func (g *memGateway[E]) Insert(ctx context.Context, entity E) (E, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.writeErr != nil {
		return entity, g.writeErr
	}
	g.items = append(g.items, entity)
	g.inserts++
	return entity, nil
}

func (g *memGateway[E]) Update(ctx context.Context, entity E) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.writeErr != nil {
		return g.writeErr
	}
	for i, item := range g.items {
		if item.EntityID() == entity.EntityID() {
			g.items[i] = entity
			return nil
		}
	}
	return nil
}

func (g *memGateway[E]) Delete(ctx context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.writeErr != nil {
		return g.writeErr
	}
	for i, item := range g.items {
		if item.EntityID() == id {
			g.items = append(g.items[:i], g.items[i+1:]...)
			break
		}
	}
	g.deletes++
	return nil
}

func (g *memGateway[E]) setWriteErr(err error) {
	g.mu.Lock()
	g.writeErr = err
	g.mu.Unlock()
}

// recordingNotifier captures notification titles for assertions.
type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(title, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, title)
}

func (n *recordingNotifier) Error(title, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, title)
}

func (n *recordingNotifier) errorTitles() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.errors...)
}

// newCollection builds an unstarted coordinator so remote calls run inline.
func newCollection[E datasync.Entity](key string, gateway datasync.Gateway[E], notifier datasync.Notifier) *datasync.Collection[E] {
	return datasync.NewCollection(datasync.Config[E]{
		Key:      key,
		Gateway:  gateway,
		Notifier: notifier,
	})
}

func testRoster() []models.Student {
	return []models.Student{
		{ID: "alice-johnson", Name: "Alice Johnson"},
		{ID: "bob-smith", Name: "Bob Smith"},
	}
}
