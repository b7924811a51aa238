package share

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aburakaktas/host-website-flyer-generator/domain/flyer"
	"github.com/aburakaktas/host-website-flyer-generator/infrastructure/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var testAssets = flyer.Assets{
	Image: "data:image/jpeg;base64,aW1hZ2U=",
	QR:    "data:image/png;base64,cXI=",
}

// fakeClock is an adjustable time source shared by a store and its memory tier
type fakeClock struct {
	current time.Time
}

func (c *fakeClock) now() time.Time {
	return c.current
}

func (c *fakeClock) advance(d time.Duration) {
	c.current = c.current.Add(d)
}

func newTestStore(primary Backend) (*Store, *MemoryBackend, *fakeClock) {
	clock := &fakeClock{current: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	mem := NewMemoryBackend()
	mem.now = clock.now
	store := NewStore(primary, mem, cache.NewLRU(10))
	store.now = clock.now
	return store, mem, clock
}

// MockBackend is a testify mock for the durable tier
type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) Put(ctx context.Context, rec Record) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockBackend) Get(ctx context.Context, id string) (Record, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(Record), args.Error(1)
}

func (m *MockBackend) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestStore_PutGetRoundTrip(t *testing.T) {
	store, _, _ := newTestStore(nil)
	ctx := context.Background()

	id, err := store.Put(ctx, testAssets)
	assert.NoError(t, err)
	assert.Len(t, id, 36) // UUID shape

	got, err := store.Get(ctx, id)
	assert.NoError(t, err)
	assert.Equal(t, testAssets, got)
}

func TestStore_PutRejectsIncompleteAssets(t *testing.T) {
	store, _, _ := newTestStore(nil)

	_, err := store.Put(context.Background(), flyer.Assets{Image: "data:..."})

	assert.ErrorIs(t, err, ErrIncompleteAssets)
}

func TestStore_IDsAreUnique(t *testing.T) {
	store, _, _ := newTestStore(nil)
	ctx := context.Background()

	first, err := store.Put(ctx, testAssets)
	assert.NoError(t, err)
	second, err := store.Put(ctx, testAssets)
	assert.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestStore_UnknownIDNotFound(t *testing.T) {
	store, _, _ := newTestStore(nil)

	_, err := store.Get(context.Background(), "no-such-id")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_ExpiredRecordNotFound(t *testing.T) {
	store, mem, clock := newTestStore(nil)
	ctx := context.Background()

	id, err := store.Put(ctx, testAssets)
	assert.NoError(t, err)

	// Just inside the window the record is still reachable
	clock.advance(TTL)
	_, err = store.Get(ctx, id)
	assert.NoError(t, err)

	// Past the window it is logically gone, and the memory tier purges
	// the entry eagerly on access
	clock.advance(time.Second)
	_, err = store.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, mem.Len())
}

func TestStore_ExpiredCachedRecordNotServed(t *testing.T) {
	store, _, clock := newTestStore(nil)
	ctx := context.Background()

	id, err := store.Put(ctx, testAssets)
	assert.NoError(t, err)

	// Warm the cache, then expire everything
	_, err = store.Get(ctx, id)
	assert.NoError(t, err)
	clock.advance(TTL + time.Minute)

	_, err = store.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_PutFallsBackWhenPrimaryFails(t *testing.T) {
	primary := new(MockBackend)
	primary.On("Put", mock.Anything, mock.Anything).Return(errors.New("kv unavailable"))

	store, mem, _ := newTestStore(primary)
	ctx := context.Background()

	id, err := store.Put(ctx, testAssets)

	assert.NoError(t, err)
	assert.Equal(t, 1, mem.Len())
	// And the record is retrievable even though the primary also fails reads
	primary.On("Get", mock.Anything, id).Return(Record{}, errors.New("kv unavailable"))
	store.cache.Clear()
	got, err := store.Get(ctx, id)
	assert.NoError(t, err)
	assert.Equal(t, testAssets, got)
	primary.AssertExpectations(t)
}

func TestStore_PrimaryMissIsAuthoritative(t *testing.T) {
	primary := new(MockBackend)
	primary.On("Get", mock.Anything, "some-id").Return(Record{}, ErrNotFound)

	store, mem, clock := newTestStore(primary)
	// Seed the memory tier directly; the primary's clean miss must win
	_ = mem.Put(context.Background(), Record{ID: "some-id", Assets: testAssets, CreatedAt: clock.now()})

	_, err := store.Get(context.Background(), "some-id")

	assert.ErrorIs(t, err, ErrNotFound)
	primary.AssertExpectations(t)
}

func TestStore_PrimaryHitServed(t *testing.T) {
	primary := new(MockBackend)
	store, _, clock := newTestStore(primary)
	rec := Record{ID: "some-id", Assets: testAssets, CreatedAt: clock.now()}
	primary.On("Get", mock.Anything, "some-id").Return(rec, nil)

	got, err := store.Get(context.Background(), "some-id")

	assert.NoError(t, err)
	assert.Equal(t, testAssets, got)
}

func TestStore_ExpiredPrimaryRecordDeleted(t *testing.T) {
	primary := new(MockBackend)
	store, _, clock := newTestStore(primary)
	stale := Record{ID: "old-id", Assets: testAssets, CreatedAt: clock.now().Add(-TTL - time.Hour)}
	primary.On("Get", mock.Anything, "old-id").Return(stale, nil)
	primary.On("Delete", mock.Anything, "old-id").Return(nil)

	_, err := store.Get(context.Background(), "old-id")

	assert.ErrorIs(t, err, ErrNotFound)
	primary.AssertExpectations(t)
}

func TestStore_TotalFailureSurfaces(t *testing.T) {
	primary := new(MockBackend)
	primary.On("Put", mock.Anything, mock.Anything).Return(errors.New("kv unavailable"))

	store, _, _ := newTestStore(primary)
	store.secondary = &failingBackend{}

	_, err := store.Put(context.Background(), testAssets)

	assert.Error(t, err)
}

type failingBackend struct{}

func (f *failingBackend) Put(ctx context.Context, rec Record) error {
	return errors.New("memory full")
}

func (f *failingBackend) Get(ctx context.Context, id string) (Record, error) {
	return Record{}, errors.New("memory full")
}

func (f *failingBackend) Delete(ctx context.Context, id string) error {
	return errors.New("memory full")
}

func TestMemoryBackend_SweepsExpiredOnPut(t *testing.T) {
	clock := &fakeClock{current: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	mem := NewMemoryBackend()
	mem.now = clock.now
	ctx := context.Background()

	_ = mem.Put(ctx, Record{ID: "old", Assets: testAssets, CreatedAt: clock.now()})
	clock.advance(TTL + time.Minute)
	_ = mem.Put(ctx, Record{ID: "new", Assets: testAssets, CreatedAt: clock.now()})

	assert.Equal(t, 1, mem.Len())
	_, err := mem.Get(ctx, "old")
	assert.ErrorIs(t, err, ErrNotFound)
}
