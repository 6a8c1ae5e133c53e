// internal/domain/cart/service.go
package cart

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/your-org/canteen-backend/internal/domain/catalog"
	"github.com/your-org/canteen-backend/internal/infrastructure/storage"
	"github.com/your-org/canteen-backend/internal/pkg/latency"
)

// Storage keys
const (
	ItemsKey     = "cart"
	BagKey       = "includesBag"
	LastOrderKey = "lastOrderNumber"
)

// field selects which parts of the state a mutation persists
type field uint8

const (
	fieldItems field = 1 << iota
	fieldBag
	fieldLastOrder
)

// MaxOrderNumber is the upper bound of the simulated order number
const MaxOrderNumber = 20

// Options configures a Store
type Options struct {
	Storage  storage.Store
	Latency  *latency.Simulator
	Logger   logrus.FieldLogger
	Notifier Notifier
	// OrderNumber overrides the random order number source
	OrderNumber func() int
}

// Store is the single source of truth for one client's cart
type Store struct {
	storage     storage.Store
	latency     *latency.Simulator
	logger      logrus.FieldLogger
	notifier    Notifier
	orderNumber func() int

	mu        sync.Mutex
	state     State
	observers []observer
	nextID    int
}

type observer struct {
	id int
	fn func(State)
}

// NewStore creates the store and restores the persisted cart
func NewStore(ctx context.Context, opts Options) (*Store, error) {
	if opts.Storage == nil {
		return nil, fmt.Errorf("cart store: storage is required")
	}

	s := &Store{
		storage:     opts.Storage,
		latency:     opts.Latency,
		logger:      opts.Logger,
		notifier:    opts.Notifier,
		orderNumber: opts.OrderNumber,
	}
	if s.logger == nil {
		s.logger = logrus.StandardLogger()
	}
	if s.orderNumber == nil {
		s.orderNumber = func() int { return rand.IntN(MaxOrderNumber) + 1 }
	}

	s.state = State{
		Items:           s.restoreItems(ctx),
		IncludesBag:     s.restoreBag(ctx),
		LastOrderNumber: s.restoreLastOrder(ctx),
	}

	return s, nil
}

func (s *Store) restoreItems(ctx context.Context) []Item {
	var persisted []Item
	if _, err := storage.GetJSON(ctx, s.storage, ItemsKey, &persisted); err != nil {
		s.logger.WithError(err).Warn("Discarding unreadable cart")
		return []Item{}
	}

	// Drop invalid lines and fold duplicates so restored state keeps the
	// one-line-per-product rule.
	items := make([]Item, 0, len(persisted))
	for _, item := range persisted {
		if item.Product.ID == "" || item.Quantity < 1 {
			continue
		}
		if i := indexOf(items, item.Product.ID); i >= 0 {
			items[i].Quantity += item.Quantity
			continue
		}
		items = append(items, item)
	}
	return items
}

func (s *Store) restoreBag(ctx context.Context) bool {
	var includesBag bool
	if _, err := storage.GetJSON(ctx, s.storage, BagKey, &includesBag); err != nil {
		s.logger.WithError(err).Warn("Discarding unreadable bag preference")
		return false
	}
	return includesBag
}

func (s *Store) restoreLastOrder(ctx context.Context) *int {
	var number int
	found, err := storage.GetJSON(ctx, s.storage, LastOrderKey, &number)
	if err != nil {
		s.logger.WithError(err).Warn("Discarding unreadable order number")
		return nil
	}
	if !found || number < 1 {
		return nil
	}
	return &number
}

// Snapshot returns a copy of the current state
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Items returns a copy of the cart lines in display order
func (s *Store) Items() []Item {
	return s.Snapshot().Items
}

// IncludesBag reports the bag preference
func (s *Store) IncludesBag() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.IncludesBag
}

// LastOrderNumber returns the number of the last placed order, if any
func (s *Store) LastOrderNumber() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.LastOrderNumber == nil {
		return 0, false
	}
	return *s.state.LastOrderNumber, true
}

// TotalItems returns the sum of quantities across all items
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.TotalItems()
}

// TotalPrice returns the sum of price times quantity, in cents
func (s *Store) TotalPrice() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.TotalPrice()
}

// Subscribe registers fn to be called with every new state. Observers run
// in registration order. The returned function removes the observer.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.observers = append(s.observers, observer{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, o := range s.observers {
			if o.id == id {
				s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

// AddItem adds quantity units of product. An existing line for the same
// product is incremented; otherwise a new line is appended. A quantity
// below 1 adds a single unit.
func (s *Store) AddItem(ctx context.Context, product catalog.Product, quantity int) State {
	if quantity < 1 {
		quantity = 1
	}

	state := s.mutate(ctx, fieldItems, func(st *State) {
		if i := indexOf(st.Items, product.ID); i >= 0 {
			st.Items[i].Quantity += quantity
			return
		}
		st.Items = append(st.Items, Item{Product: product, Quantity: quantity})
	})

	s.notify(Notification{
		Kind:    NotificationSuccess,
		Message: fmt.Sprintf("%s added to cart", product.Name),
	})
	return state
}

// AddItemByID resolves productID through the catalog and adds it
func (s *Store) AddItemByID(ctx context.Context, productID string, quantity int) (State, error) {
	product, err := catalog.Get(productID)
	if err != nil {
		return State{}, fmt.Errorf("failed to add %q: %w", productID, err)
	}
	return s.AddItem(ctx, product, quantity), nil
}

// RemoveItem deletes the line for productID. Missing lines are ignored.
func (s *Store) RemoveItem(ctx context.Context, productID string) State {
	return s.mutate(ctx, fieldItems, func(st *State) {
		if i := indexOf(st.Items, productID); i >= 0 {
			st.Items = append(st.Items[:i], st.Items[i+1:]...)
		}
	})
}

// UpdateQuantity sets the absolute quantity of a line. A quantity of zero
// or less removes the line.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) State {
	if quantity <= 0 {
		return s.RemoveItem(ctx, productID)
	}

	return s.mutate(ctx, fieldItems, func(st *State) {
		if i := indexOf(st.Items, productID); i >= 0 {
			st.Items[i].Quantity = quantity
		}
	})
}

// ClearCart empties the cart and resets the bag preference
func (s *Store) ClearCart(ctx context.Context) State {
	return s.mutate(ctx, fieldItems|fieldBag, func(st *State) {
		st.Items = []Item{}
		st.IncludesBag = false
	})
}

// SetIncludesBag sets the bag preference
func (s *Store) SetIncludesBag(ctx context.Context, includesBag bool) State {
	return s.mutate(ctx, fieldBag, func(st *State) {
		st.IncludesBag = includesBag
	})
}

// PlaceOrder simulates submitting the cart. After the simulated delay it
// draws an order number in [1, MaxOrderNumber], records it and clears the
// cart. Numbers are not unique across clients or calls.
func (s *Store) PlaceOrder(ctx context.Context) int {
	s.latency.Wait()

	number := s.orderNumber()

	s.mutate(ctx, fieldItems|fieldBag|fieldLastOrder, func(st *State) {
		st.LastOrderNumber = &number
		st.Items = []Item{}
		st.IncludesBag = false
	})

	s.logger.WithField("order_number", number).Info("Order placed")
	return number
}

// mutate applies fn to a private copy of the state, publishes the copy,
// persists the requested fields and then notifies observers.
func (s *Store) mutate(ctx context.Context, fields field, fn func(st *State)) State {
	s.mu.Lock()

	next := s.state.clone()
	fn(&next)
	s.state = next

	if fields&fieldItems != 0 {
		if err := storage.SetJSON(ctx, s.storage, ItemsKey, next.Items); err != nil {
			s.logger.WithError(err).Warn("Failed to persist cart")
		}
	}
	if fields&fieldBag != 0 {
		if err := storage.SetJSON(ctx, s.storage, BagKey, next.IncludesBag); err != nil {
			s.logger.WithError(err).Warn("Failed to persist bag preference")
		}
	}
	if fields&fieldLastOrder != 0 && next.LastOrderNumber != nil {
		if err := storage.SetJSON(ctx, s.storage, LastOrderKey, *next.LastOrderNumber); err != nil {
			s.logger.WithError(err).Warn("Failed to persist order number")
		}
	}

	observers := make([]func(State), len(s.observers))
	for i, o := range s.observers {
		observers[i] = o.fn
	}
	published := next.clone()
	s.mu.Unlock()

	for _, notify := range observers {
		notify(published.clone())
	}
	return published
}

func (s *Store) notify(n Notification) {
	if s.notifier != nil {
		s.notifier.Notify(n)
	}
}

func (st State) clone() State {
	items := make([]Item, len(st.Items))
	copy(items, st.Items)
	st.Items = items
	if st.LastOrderNumber != nil {
		n := *st.LastOrderNumber
		st.LastOrderNumber = &n
	}
	return st
}

func indexOf(items []Item, productID string) int {
	for i, item := range items {
		if item.Product.ID == productID {
			return i
		}
	}
	return -1
}
