package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	pkgerrors "github.com/oakzazasd/Clothes-Inventory/pkg/errors"
	redislib "github.com/redis/go-redis/v9"
)

type cartBackend interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type cartKeyer interface {
	CartKey(sessionID string) string
}

// Store persists carts in Redis keyed by the session access ID. Carts expire
// together with the session.
type Store struct {
	backend cartBackend
	keyer   cartKeyer
	ttl     time.Duration
}

// NewStore builds a cart store. ttl should match the session lifetime.
func NewStore(backend cartBackend, keyer cartKeyer, ttl time.Duration) (*Store, error) {
	if backend == nil {
		return nil, fmt.Errorf("cart backend required")
	}
	if keyer == nil {
		return nil, fmt.Errorf("cart keyer required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("cart ttl must be positive")
	}
	return &Store{backend: backend, keyer: keyer, ttl: ttl}, nil
}

// Load fetches the cart for the session; a missing key is an empty cart.
func (s *Store) Load(ctx context.Context, sessionID string) (*Cart, error) {
	raw, err := s.backend.Get(ctx, s.keyer.CartKey(sessionID))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return &Cart{}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis: load cart")
	}
	cart, err := Decode(raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode cart")
	}
	return cart, nil
}

// Save writes the cart back; an empty cart deletes the key instead.
func (s *Store) Save(ctx context.Context, sessionID string, cart *Cart) error {
	key := s.keyer.CartKey(sessionID)
	if cart == nil || cart.IsEmpty() {
		if err := s.backend.Del(ctx, key); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis: clear cart")
		}
		return nil
	}
	raw, err := cart.Encode()
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart")
	}
	if err := s.backend.Set(ctx, key, raw, s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis: save cart")
	}
	return nil
}

// Clear removes the cart for the session.
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	if err := s.backend.Del(ctx, s.keyer.CartKey(sessionID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis: clear cart")
	}
	return nil
}
