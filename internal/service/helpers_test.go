package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/shopapi/internal/db"
	"github.com/Skotchmaster/shopapi/internal/models"
	"github.com/Skotchmaster/shopapi/internal/mykafka"
	"github.com/Skotchmaster/shopapi/internal/repo"
)

type published struct {
	Topic string
	Key   string
	Event mykafka.Event
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []published
}

func (p *recordingPublisher) PublishEvent(_ context.Context, topic, key string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	ev, _ := event.(mykafka.Event)
	p.events = append(p.events, published{Topic: topic, Key: key, Event: ev})
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Event.Type)
	}
	return out
}

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	ctx := context.Background()
	gdb, err := db.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })
	require.NoError(t, db.Migrate(ctx, gdb))

	return &repo.GormRepo{DB: gdb}
}

func seedProduct(t *testing.T, r *repo.GormRepo, name string, price float64, stock int, categoryID *uint) models.Product {
	t.Helper()

	p := models.Product{Name: name, Price: price, Stock: stock, CategoryID: categoryID}
	require.NoError(t, r.CreateProduct(context.Background(), &p))
	return p
}

func seedCategory(t *testing.T, r *repo.GormRepo, name, slug string) models.Category {
	t.Helper()

	c := models.Category{Name: name, Slug: slug}
	require.NoError(t, r.CreateCategory(context.Background(), &c))
	return c
}

func ptr[T any](v T) *T { return &v }
