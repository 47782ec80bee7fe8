// Package store loads purchase order documents by order number.
//
// Implementations:
//   - [MongoStore]: the procurement database, one record per order
//   - [MemoryStore]: in-memory documents for development and tests
//   - [Cached]: wraps another store with a [cache.Cache]
//
// The HTTP server resolves GET requests through a store:
//
//	s, err := store.ConnectMongo(ctx, store.MongoOptions{URI: uri})
//	if err != nil {
//	    return err
//	}
//	defer s.Close(ctx)
//	doc, err := s.FindDocument(ctx, "PO-2025-0042")
package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/podoc/pkg/cache"
	"github.com/matzehuels/podoc/pkg/document"
	perrors "github.com/matzehuels/podoc/pkg/errors"
	"github.com/matzehuels/podoc/pkg/observability"
)

// ErrNotFound is returned when no order has the requested number.
var ErrNotFound = errors.New("order not found")

// OrderStore finds the printable document of an order.
type OrderStore interface {
	// FindDocument returns the document for number. A missing order is
	// reported with an error matching both [ErrNotFound] and
	// errors.ErrCodeOrderNotFound.
	FindDocument(ctx context.Context, number string) (document.Document, error)
}

func notFound(number string) error {
	return perrors.Wrap(perrors.ErrCodeOrderNotFound, ErrNotFound, "order %s", number)
}

// MemoryStore keeps documents in a map keyed by order number.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]document.Document
}

// NewMemoryStore returns a store holding docs.
func NewMemoryStore(docs ...document.Document) *MemoryStore {
	s := &MemoryStore{docs: make(map[string]document.Document, len(docs))}
	for _, d := range docs {
		s.Put(d)
	}
	return s
}

// Put adds or replaces the document for d.Order.Number.
func (s *MemoryStore) Put(d document.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[d.Order.Number] = d
}

// FindDocument implements [OrderStore].
func (s *MemoryStore) FindDocument(ctx context.Context, number string) (document.Document, error) {
	if err := perrors.ValidateOrderNumber(number); err != nil {
		return document.Document{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.docs[number]
	if !ok {
		return document.Document{}, notFound(number)
	}
	return d, nil
}

// CachedStore serves repeated lookups from a cache.
type CachedStore struct {
	inner  OrderStore
	cache  cache.Cache
	keyer  cache.Keyer
	logger *log.Logger
}

// Cached wraps inner so that found documents are cached for
// [cache.TTLOrder]. Misses are not cached. A nil keyer selects the
// default keyer.
func Cached(inner OrderStore, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *CachedStore {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &CachedStore{inner: inner, cache: c, keyer: keyer, logger: logger}
}

// FindDocument implements [OrderStore].
func (s *CachedStore) FindDocument(ctx context.Context, number string) (document.Document, error) {
	key := s.keyer.OrderKey(number)
	hooks := observability.Cache()

	var doc document.Document
	if err := cache.GetJSON(ctx, s.cache, key, &doc); err == nil {
		hooks.OnCacheHit(ctx, "order")
		return doc, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("order cache read failed", "order", number, "err", err)
	}
	hooks.OnCacheMiss(ctx, "order")

	doc, err := s.inner.FindDocument(ctx, number)
	if err != nil {
		return doc, err
	}
	data, err := json.Marshal(doc)
	if err == nil {
		err = s.cache.Set(ctx, key, data, cache.TTLOrder)
	}
	if err != nil {
		s.logger.Warn("order cache write failed", "order", number, "err", err)
	} else {
		hooks.OnCacheSet(ctx, "order", len(data))
	}
	return doc, nil
}

var (
	_ OrderStore = (*MemoryStore)(nil)
	_ OrderStore = (*CachedStore)(nil)
)
