package cart

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/canteen-backend/internal/domain/catalog"
	"github.com/your-org/canteen-backend/internal/infrastructure/storage"
	"github.com/your-org/canteen-backend/internal/pkg/latency"
	"github.com/your-org/canteen-backend/internal/pkg/logger"
)

var errDiskFull = errors.New("disk full")

// readOnlyStore reads normally but fails every write
type readOnlyStore struct {
	*storage.MemoryStore
}

func (readOnlyStore) Set(context.Context, string, string) error { return errDiskFull }
func (readOnlyStore) Delete(context.Context, string) error      { return errDiskFull }

func product(t *testing.T, id string) catalog.Product {
	t.Helper()
	p, ok := catalog.ByID(id)
	require.True(t, ok, "missing catalog product %s", id)
	return p
}

func newTestStore(t *testing.T, kv storage.Store, opts ...func(*Options)) *Store {
	t.Helper()
	o := Options{Storage: kv, Logger: logger.Discard()}
	for _, apply := range opts {
		apply(&o)
	}
	s, err := NewStore(context.Background(), o)
	require.NoError(t, err)
	return s
}

func TestAddItem_MergesSameProduct(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, storage.NewMemoryStore())
	croissant := product(t, "pastry-croissant")

	for _, q := range []int{1, 3, 2} {
		s.AddItem(ctx, croissant, q)
	}

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "pastry-croissant", items[0].Product.ID)
	assert.Equal(t, 6, items[0].Quantity)
}

func TestAddItem_KeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, storage.NewMemoryStore())

	s.AddItem(ctx, product(t, "drink-water"), 1)
	s.AddItem(ctx, product(t, "sandwich-tuna"), 1)
	s.AddItem(ctx, product(t, "drink-water"), 1)

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "drink-water", items[0].Product.ID)
	assert.Equal(t, "sandwich-tuna", items[1].Product.ID)
}

func TestAddItem_NonPositiveQuantityAddsOne(t *testing.T) {
	s := newTestStore(t, storage.NewMemoryStore())

	s.AddItem(context.Background(), product(t, "drink-water"), 0)
	assert.Equal(t, 1, s.TotalItems())
}

func TestAddItem_Notifies(t *testing.T) {
	var got []Notification
	s := newTestStore(t, storage.NewMemoryStore(), func(o *Options) {
		o.Notifier = NotifierFunc(func(n Notification) { got = append(got, n) })
	})

	s.AddItem(context.Background(), product(t, "pastry-croissant"), 1)

	require.Len(t, got, 1)
	assert.Equal(t, NotificationSuccess, got[0].Kind)
	assert.Equal(t, "Butter Croissant added to cart", got[0].Message)
}

func TestAddItemByID(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, storage.NewMemoryStore())

	state, err := s.AddItemByID(ctx, "snack-crisps", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, state.TotalItems())

	_, err = s.AddItemByID(ctx, "nope", 1)
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
	assert.Equal(t, 2, s.TotalItems())
}

func TestRemoveItem(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, storage.NewMemoryStore())
	s.AddItem(ctx, product(t, "drink-water"), 2)
	s.AddItem(ctx, product(t, "snack-crisps"), 1)

	s.RemoveItem(ctx, "drink-water")
	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "snack-crisps", items[0].Product.ID)

	// absent id is a no-op
	s.RemoveItem(ctx, "drink-water")
	assert.Len(t, s.Items(), 1)
}

func TestUpdateQuantity(t *testing.T) {
	tests := []struct {
		name      string
		quantity  int
		wantLines int
		wantTotal int
	}{
		{name: "absolute set", quantity: 5, wantLines: 1, wantTotal: 5},
		{name: "zero removes", quantity: 0, wantLines: 0, wantTotal: 0},
		{name: "negative removes", quantity: -5, wantLines: 0, wantTotal: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			s := newTestStore(t, storage.NewMemoryStore())
			s.AddItem(ctx, product(t, "drink-water"), 3)

			s.UpdateQuantity(ctx, "drink-water", tc.quantity)

			assert.Len(t, s.Items(), tc.wantLines)
			assert.Equal(t, tc.wantTotal, s.TotalItems())
		})
	}
}

func TestUpdateQuantity_UnknownIsNoop(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, storage.NewMemoryStore())
	s.AddItem(ctx, product(t, "drink-water"), 1)

	s.UpdateQuantity(ctx, "sandwich-tuna", 4)

	assert.Len(t, s.Items(), 1)
	assert.Equal(t, 1, s.TotalItems())
}

func TestTotals(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, storage.NewMemoryStore())

	assert.Equal(t, 0, s.TotalItems())
	assert.Equal(t, int64(0), s.TotalPrice())

	water := product(t, "drink-water")
	tuna := product(t, "sandwich-tuna")
	s.AddItem(ctx, water, 2)
	s.AddItem(ctx, tuna, 3)

	assert.Equal(t, 5, s.TotalItems())
	assert.Equal(t, water.Price*2+tuna.Price*3, s.TotalPrice())

	s.UpdateQuantity(ctx, tuna.ID, 1)
	assert.Equal(t, water.Price*2+tuna.Price, s.TotalPrice())

	totals := s.Snapshot().Totals()
	assert.Equal(t, Totals{ItemCount: 2, TotalQuantity: 3, TotalPrice: water.Price*2 + tuna.Price}, totals)
}

func TestClearCart(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, storage.NewMemoryStore())
	s.AddItem(ctx, product(t, "drink-water"), 2)
	s.SetIncludesBag(ctx, true)

	s.ClearCart(ctx)

	assert.Equal(t, 0, s.TotalItems())
	assert.False(t, s.IncludesBag())

	// clearing an empty cart is fine
	s.ClearCart(ctx)
	assert.Equal(t, 0, s.TotalItems())
}

func TestPlaceOrder(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, storage.NewMemoryStore())
	s.AddItem(ctx, product(t, "drink-water"), 2)
	s.SetIncludesBag(ctx, true)

	number := s.PlaceOrder(ctx)

	assert.GreaterOrEqual(t, number, 1)
	assert.LessOrEqual(t, number, MaxOrderNumber)
	assert.Empty(t, s.Items())
	assert.False(t, s.IncludesBag())

	last, ok := s.LastOrderNumber()
	require.True(t, ok)
	assert.Equal(t, number, last)
}

func TestPlaceOrder_RangeOverManyDraws(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, storage.NewMemoryStore())

	for i := 0; i < 200; i++ {
		n := s.PlaceOrder(ctx)
		require.GreaterOrEqual(t, n, 1)
		require.LessOrEqual(t, n, MaxOrderNumber)
	}
}

func TestPlaceOrder_UsesInjectedNumber(t *testing.T) {
	s := newTestStore(t, storage.NewMemoryStore(), func(o *Options) {
		o.OrderNumber = func() int { return 7 }
	})

	assert.Equal(t, 7, s.PlaceOrder(context.Background()))
}

func TestPlaceOrder_WaitsOnce(t *testing.T) {
	var slept []time.Duration
	s := newTestStore(t, storage.NewMemoryStore(), func(o *Options) {
		o.Latency = latency.NewWithSleep(1500*time.Millisecond, func(d time.Duration) { slept = append(slept, d) })
	})
	ctx := context.Background()

	s.AddItem(ctx, product(t, "drink-water"), 1)
	s.SetIncludesBag(ctx, true)
	assert.Empty(t, slept)

	s.PlaceOrder(ctx)
	assert.Equal(t, []time.Duration{1500 * time.Millisecond}, slept)
}

func TestPlaceOrder_NumberSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()

	first := newTestStore(t, kv, func(o *Options) {
		o.OrderNumber = func() int { return 12 }
	})
	first.AddItem(ctx, product(t, "drink-water"), 1)
	first.PlaceOrder(ctx)

	second := newTestStore(t, kv)
	last, ok := second.LastOrderNumber()
	require.True(t, ok)
	assert.Equal(t, 12, last)
	assert.Empty(t, second.Items())
}

func TestStorageWriteFailuresKeepMemoryState(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, readOnlyStore{storage.NewMemoryStore()})

	s.AddItem(ctx, product(t, "drink-water"), 2)
	s.SetIncludesBag(ctx, true)
	assert.Equal(t, 2, s.TotalItems())
	assert.True(t, s.IncludesBag())

	number := s.PlaceOrder(ctx)
	last, ok := s.LastOrderNumber()
	require.True(t, ok)
	assert.Equal(t, number, last)
	assert.Empty(t, s.Items())
}

func TestPersistence_RoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()

	first := newTestStore(t, kv)
	first.AddItem(ctx, product(t, "drink-water"), 2)
	first.AddItem(ctx, product(t, "sandwich-tuna"), 1)
	first.SetIncludesBag(ctx, true)

	second := newTestStore(t, kv)
	assert.Equal(t, first.Items(), second.Items())
	assert.True(t, second.IncludesBag())
}

func TestPersistence_StoresProductSnapshots(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()

	stale := product(t, "drink-water")
	stale.Price = 999
	require.NoError(t, storage.SetJSON(ctx, kv, ItemsKey, []Item{{Product: stale, Quantity: 1}}))

	s := newTestStore(t, kv)
	assert.Equal(t, int64(999), s.TotalPrice())
}

func TestPersistence_RepairsInvalidLines(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	water := product(t, "drink-water")

	require.NoError(t, storage.SetJSON(ctx, kv, ItemsKey, []Item{
		{Product: water, Quantity: 1},
		{Product: water, Quantity: 2},
		{Product: product(t, "snack-crisps"), Quantity: 0},
		{Product: catalog.Product{}, Quantity: 3},
	}))

	s := newTestStore(t, kv)
	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestPersistence_CorruptedEntries(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	require.NoError(t, kv.Set(ctx, ItemsKey, "[{"))
	require.NoError(t, kv.Set(ctx, BagKey, "maybe"))
	require.NoError(t, kv.Set(ctx, LastOrderKey, "twelve"))

	s := newTestStore(t, kv)
	assert.Empty(t, s.Items())
	assert.False(t, s.IncludesBag())
	_, ok := s.LastOrderNumber()
	assert.False(t, ok)
}

func TestSubscribe(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, storage.NewMemoryStore())

	var seen []int
	unsubscribe := s.Subscribe(func(st State) {
		seen = append(seen, st.TotalItems())
	})

	s.AddItem(ctx, product(t, "drink-water"), 2)
	s.UpdateQuantity(ctx, "drink-water", 5)
	unsubscribe()
	s.ClearCart(ctx)

	assert.Equal(t, []int{2, 5}, seen)
}

func TestSubscribe_RegistrationOrder(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, storage.NewMemoryStore())

	var order []string
	for _, name := range []string{"header", "badge", "summary", "footer"} {
		s.Subscribe(func(State) { order = append(order, name) })
	}
	unsubscribe := s.Subscribe(func(State) { order = append(order, "removed") })
	unsubscribe()

	for i := 0; i < 3; i++ {
		order = nil
		s.AddItem(ctx, product(t, "drink-water"), 1)
		assert.Equal(t, []string{"header", "badge", "summary", "footer"}, order)
	}
}

func TestSubscribe_ObserverCanReadStore(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, storage.NewMemoryStore())

	var observed int
	s.Subscribe(func(State) { observed = s.TotalItems() })

	s.AddItem(ctx, product(t, "drink-water"), 4)
	assert.Equal(t, 4, observed)
}

func TestSnapshotIsIsolated(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, storage.NewMemoryStore())
	s.AddItem(ctx, product(t, "drink-water"), 1)

	snap := s.Snapshot()
	snap.Items[0].Quantity = 50

	assert.Equal(t, 1, s.TotalItems())
}

func TestConcurrentAdds(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, storage.NewMemoryStore())
	water := product(t, "drink-water")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.AddItem(ctx, water, 1)
		}()
	}
	wg.Wait()

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 50, items[0].Quantity)
}
