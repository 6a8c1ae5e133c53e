// internal/domain/storefront/registry.go
package storefront

import (
	"container/list"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/canteen-backend/internal/domain/cart"
	"github.com/your-org/canteen-backend/internal/domain/theme"
	"github.com/your-org/canteen-backend/internal/domain/user"
	"github.com/your-org/canteen-backend/internal/infrastructure/storage"
	"github.com/your-org/canteen-backend/internal/pkg/auth"
	"github.com/your-org/canteen-backend/internal/pkg/latency"
)

// DefaultMaxClients bounds the number of workspaces kept in memory
const DefaultMaxClients = 1000

// Workspace bundles the stores of one client
type Workspace struct {
	ClientID string
	Auth     *user.Store
	Cart     *cart.Store
	Theme    *theme.Store
}

// Dependencies are shared by every workspace
type Dependencies struct {
	Storage      storage.Store
	Directory    *user.Directory
	Passwords    *auth.PasswordManager
	Tokens       *auth.TokenManager
	AuthLatency  *latency.Simulator
	OrderLatency *latency.Simulator
	Logger       *logrus.Logger
	SessionTTL   time.Duration
	// MaxClients bounds the in-memory cache. Evicted workspaces are
	// rebuilt from storage on their next request.
	MaxClients int
}

type entry struct {
	clientID  string
	workspace *Workspace
	// refs counts callers holding the workspace. Held entries are never
	// evicted, so one client never has two live workspaces.
	refs int
}

// Registry hands out one workspace per client id
type Registry struct {
	deps Dependencies

	mu      sync.Mutex
	entries map[string]*list.Element
	order   *list.List
}

// NewRegistry creates a registry
func NewRegistry(deps Dependencies) *Registry {
	if deps.MaxClients <= 0 {
		deps.MaxClients = DefaultMaxClients
	}
	if deps.Logger == nil {
		deps.Logger = logrus.StandardLogger()
	}
	return &Registry{
		deps:    deps,
		entries: make(map[string]*list.Element),
		order:   list.New(),
	}
}

// Namespace returns the storage prefix of a client
func Namespace(clientID string) string {
	return "client:" + clientID
}

// Acquire returns the workspace of clientID, bootstrapping it from storage
// on first use. The caller must call release once done with it.
func (r *Registry) Acquire(ctx context.Context, clientID string) (*Workspace, func(), error) {
	if clientID == "" {
		return nil, nil, fmt.Errorf("client id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	el, ok := r.entries[clientID]
	if ok {
		r.order.MoveToFront(el)
	} else {
		built, err := r.build(ctx, clientID)
		if err != nil {
			return nil, nil, err
		}
		el = r.order.PushFront(&entry{clientID: clientID, workspace: built})
		r.entries[clientID] = el
	}

	e := el.Value.(*entry)
	e.refs++
	r.evictLocked()

	var once sync.Once
	release := func() {
		once.Do(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			e.refs--
			r.evictLocked()
		})
	}
	return e.workspace, release, nil
}

// evictLocked drops idle workspaces, oldest first, until the cache fits.
// Everything a workspace holds, except its anti-forgery token, is
// persisted and comes back on the next Acquire.
func (r *Registry) evictLocked() {
	for el := r.order.Back(); el != nil && r.order.Len() > r.deps.MaxClients; {
		prev := el.Prev()
		if e := el.Value.(*entry); e.refs == 0 {
			r.order.Remove(el)
			delete(r.entries, e.clientID)
		}
		el = prev
	}
}

// Len returns the number of cached workspaces
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.order.Len()
}

func (r *Registry) build(ctx context.Context, clientID string) (*Workspace, error) {
	kv := storage.WithPrefix(r.deps.Storage, Namespace(clientID))
	log := r.deps.Logger.WithField("client_id", clientID)

	authStore, err := user.NewStore(ctx, user.Options{
		Storage:    kv,
		Directory:  r.deps.Directory,
		Passwords:  r.deps.Passwords,
		Tokens:     r.deps.Tokens,
		Latency:    r.deps.AuthLatency,
		Logger:     log,
		Subject:    clientID,
		SessionTTL: r.deps.SessionTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create auth store: %w", err)
	}

	cartStore, err := cart.NewStore(ctx, cart.Options{
		Storage: kv,
		Latency: r.deps.OrderLatency,
		Logger:  log,
		Notifier: cart.NotifierFunc(func(n cart.Notification) {
			log.WithField("kind", n.Kind).Debug(n.Message)
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create cart store: %w", err)
	}

	themeStore := theme.NewStore(ctx, kv, log, nil)

	return &Workspace{
		ClientID: clientID,
		Auth:     authStore,
		Cart:     cartStore,
		Theme:    themeStore,
	}, nil
}
