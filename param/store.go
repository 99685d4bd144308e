package param

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/raultapia/rush/errors"
	"github.com/raultapia/rush/metric"
)

// DefaultSettleDelay is the fixed pause before querying the source on each
// load. Eventually consistent sources may not have indexed freshly set
// values yet; the delay gives them a moment to catch up.
const DefaultSettleDelay = time.Millisecond

// Store aggregates parameter keys and values across one or more namespaces
// pulled from a Source. Keys are stored with their namespace prefix
// stripped; enumeration order is insertion order.
//
// A Store serializes its own operations with an internal mutex, but it is
// designed for a single logical caller: interleaving Load and Get from
// multiple goroutines gives no ordering guarantees beyond freedom from data
// races.
type Store struct {
	mu     sync.Mutex
	source Source

	entries map[string]Value
	order   []string // key insertion order, drives Keys()

	namespaces []string // normalized, first-registration order, drives Reload()
	registered map[string]struct{}

	name        string
	settleDelay time.Duration
	logger      *slog.Logger
	metrics     *metric.Metrics
}

// Option configures a Store
type Option func(*Store)

// WithLogger sets a custom structured logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithName sets the store name used in logs and metric labels
func WithName(name string) Option {
	return func(s *Store) {
		if name != "" {
			s.name = name
		}
	}
}

// WithSettleDelay overrides the settling delay before each source query.
// Zero disables the delay; tests use this to stay fast.
func WithSettleDelay(d time.Duration) Option {
	return func(s *Store) {
		s.settleDelay = d
	}
}

// WithMetrics enables Prometheus instrumentation of loads, reloads, key
// counts, and lookup misses
func WithMetrics(m *metric.Metrics) Option {
	return func(s *Store) {
		s.metrics = m
	}
}

// New creates an empty Store pulling from the given source
func New(source Source, opts ...Option) *Store {
	s := &Store{
		source:      source,
		entries:     make(map[string]Value),
		registered:  make(map[string]struct{}),
		name:        "default",
		settleDelay: DefaultSettleDelay,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewFromNamespace creates a Store and immediately loads one namespace.
// The returned store holds whatever Load merged before any error; see Load
// for partial-load semantics.
func NewFromNamespace(ctx context.Context, source Source, namespace string, opts ...Option) (*Store, error) {
	s := New(source, opts...)
	if err := s.Load(ctx, namespace); err != nil {
		return s, err
	}
	return s, nil
}

// Load pulls every parameter under the namespace into the store. The
// namespace is normalized (trailing separator appended, relative paths
// resolved against the source's base path) and registered for Reload.
// Loading the same namespace again is safe and simply re-pulls it.
//
// Load is additive: keys already present are overwritten when the source
// reports them, but keys that disappeared from the source since a prior
// Load are NOT removed. Use Reload for a full rebuild.
//
// On a source failure partway through, Load returns an error wrapping
// errors.ErrSourceUnavailable and keeps the keys merged before the failure;
// there is no rollback.
func (s *Store) Load(ctx context.Context, namespace string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ns, err := s.normalize(namespace)
	if err != nil {
		return errors.WrapInvalid(err, "Store", "Load", "normalize namespace")
	}

	if _, ok := s.registered[ns]; !ok {
		s.registered[ns] = struct{}{}
		s.namespaces = append(s.namespaces, ns)
	}

	return s.loadNamespace(ctx, ns)
}

// Reload clears the store and re-pulls every namespace ever registered, in
// first-registration order. Namespaces registered later win key collisions.
func (s *Store) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]Value)
	s.order = nil

	for _, ns := range s.namespaces {
		if err := s.loadNamespace(ctx, ns); err != nil {
			if s.metrics != nil {
				s.metrics.RecordReload("error")
			}
			return err
		}
	}

	if s.metrics != nil {
		s.metrics.RecordReload("ok")
	}
	s.logger.Debug("store reloaded",
		"store", s.name,
		"namespaces", len(s.namespaces),
		"keys", len(s.order))
	return nil
}

// Get returns the value for a namespace-stripped key. Absent keys return an
// error wrapping errors.ErrKeyNotFound; there is no default fallback.
func (s *Store) Get(key string) (Value, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.entries[key]
	if !ok {
		if s.metrics != nil {
			s.metrics.RecordLookupMiss(s.name)
		}
		return Value{}, fmt.Errorf("key %q: %w", key, errors.ErrKeyNotFound)
	}
	return v, nil
}

// Has reports whether the store currently holds the key
func (s *Store) Has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.entries[key]
	return ok
}

// Keys returns all currently known keys in insertion order. The slice is a
// copy; mutating it does not affect the store.
func (s *Store) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, len(s.order))
	copy(keys, s.order)
	return keys
}

// Len returns the number of keys currently held
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}

// Namespaces returns the registered namespaces in first-registration order
func (s *Store) Namespaces() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.namespaces))
	copy(out, s.namespaces)
	return out
}

// loadNamespace pulls one already-normalized namespace. Caller holds s.mu.
func (s *Store) loadNamespace(ctx context.Context, ns string) error {
	start := time.Now()

	// Settling delay for eventually consistent sources.
	if s.settleDelay > 0 {
		timer := time.NewTimer(s.settleDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return errors.WrapTransient(ctx.Err(), "Store", "Load", "settle before query")
		case <-timer.C:
		}
	}

	names, err := s.source.ListNames(ctx)
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordSourceError("list")
			s.metrics.RecordLoad(ns, "error", time.Since(start))
		}
		return errors.WrapTransient(sourceErr(err), "Store", "Load", "list parameter names")
	}

	merged := 0
	for _, name := range names {
		if !strings.HasPrefix(name, ns) {
			continue
		}

		v, err := s.source.GetValue(ctx, name)
		if err != nil {
			// Abort the rest of this load; keys merged so far stay.
			if s.metrics != nil {
				s.metrics.RecordSourceError("get")
				s.metrics.RecordLoad(ns, "error", time.Since(start))
			}
			s.logger.Warn("load aborted, partial merge kept",
				"store", s.name,
				"namespace", ns,
				"failed_name", name,
				"merged", merged,
				"error", err)
			return errors.WrapTransient(sourceErr(err), "Store", "Load",
				fmt.Sprintf("fetch value for %s", name))
		}

		key := name[len(ns):]
		if _, ok := s.entries[key]; !ok {
			s.order = append(s.order, key)
		}
		s.entries[key] = v
		merged++
	}

	if s.metrics != nil {
		s.metrics.RecordLoad(ns, "ok", time.Since(start))
		s.metrics.RecordKeys(s.name, len(s.entries))
	}
	s.logger.Debug("namespace loaded",
		"store", s.name,
		"namespace", ns,
		"merged", merged,
		"keys", len(s.entries))
	return nil
}

// normalize ensures a trailing separator and resolves relative namespaces
// against the source's base path. Caller holds s.mu.
func (s *Store) normalize(ns string) (string, error) {
	if strings.ContainsAny(ns, " \t\n") {
		return "", fmt.Errorf("namespace %q contains whitespace: %w", ns, errors.ErrInvalidNamespace)
	}

	if ns == "" || ns[len(ns)-1] != '/' {
		ns += "/"
	}
	if ns[0] != '/' {
		base := s.source.BasePath()
		if base == "" {
			base = "/"
		}
		if base[len(base)-1] != '/' {
			base += "/"
		}
		ns = base + ns
	}
	return ns, nil
}

// sourceErr guarantees the returned error matches errors.ErrSourceUnavailable
func sourceErr(err error) error {
	if stderrors.Is(err, errors.ErrSourceUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", errors.ErrSourceUnavailable, err)
}
