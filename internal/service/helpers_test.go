package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"go-farm-store/internal/model"
	"go-farm-store/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

// newTestStore restores a store from kv (a fresh memory store when nil).
func newTestStore(t *testing.T, kv repository.KVStore) *storeService {
	t.Helper()
	if kv == nil {
		kv = repository.NewMemoryKV()
	}
	s, err := newStoreService(context.Background(), repository.NewProductRepo(kv), repository.NewSaleRepo(kv), nil, fixedClock(testNow))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// seedProducts saves products so the next store restores them.
func seedProducts(t *testing.T, kv repository.KVStore, products []model.Product) {
	t.Helper()
	require.NoError(t, repository.NewProductRepo(kv).Save(context.Background(), products))
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got.String())
}

type eventSpy struct {
	mu     sync.Mutex
	events []map[string]interface{}
}

func (s *eventSpy) Publish(payload interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := payload.(map[string]interface{}); ok {
		s.events = append(s.events, m)
	}
}

func (s *eventSpy) actions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e["action"].(string))
	}
	return out
}

type recordedSale struct {
	productID string
	quantity  int
}

type recorderSpy struct {
	mu    sync.Mutex
	calls []recordedSale
	err   error
}

func (r *recorderSpy) RecordSale(productID string, quantity int, _ string) (*model.SaleRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, recordedSale{productID, quantity})
	if r.err != nil {
		return nil, r.err
	}
	return &model.SaleRecord{ProductID: productID, Quantity: quantity}, nil
}

func (r *recorderSpy) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

// flakyKV fails the operations whose error is set.
type flakyKV struct {
	repository.KVStore
	getErr error
	setErr error
}

func (f *flakyKV) Get(ctx context.Context, key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.KVStore.Get(ctx, key)
}

func (f *flakyKV) Set(ctx context.Context, key string, value []byte) error {
	if f.setErr != nil {
		return f.setErr
	}
	return f.KVStore.Set(ctx, key, value)
}
