// Package memsource provides an in-memory parameter source for tests and
// local development. It is deterministic: ListNames reports names in the
// order they were first set.
package memsource

import (
	"context"
	"fmt"
	"sync"

	"github.com/raultapia/rush/errors"
	"github.com/raultapia/rush/param"
)

// Source is an in-memory implementation of param.Source. The zero value is
// not usable; construct with New. All methods are safe for concurrent use.
type Source struct {
	mu       sync.RWMutex
	basePath string
	names    []string // first-set order
	values   map[string]param.Value

	// Failure injection for tests
	listErr error
	getErrs map[string]error
}

// Option configures a Source
type Option func(*Source)

// WithBasePath sets the base path returned by BasePath (default "/")
func WithBasePath(base string) Option {
	return func(s *Source) {
		if base != "" {
			s.basePath = base
		}
	}
}

// New creates an empty in-memory source
func New(opts ...Option) *Source {
	s := &Source{
		basePath: "/",
		values:   make(map[string]param.Value),
		getErrs:  make(map[string]error),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Set stores a raw value under a fully qualified name. The raw value must
// be one of the shapes param.NewValue accepts.
func (s *Source) Set(name string, raw any) error {
	v, err := param.NewValue(raw)
	if err != nil {
		return fmt.Errorf("set %s: %w", name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.values[name]; !ok {
		s.names = append(s.names, name)
	}
	s.values[name] = v
	return nil
}

// MustSet is Set but panics on unsupported values. Test convenience.
func (s *Source) MustSet(name string, raw any) {
	if err := s.Set(name, raw); err != nil {
		panic(err)
	}
}

// Delete removes a name from the source
func (s *Source) Delete(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.values[name]; !ok {
		return
	}
	delete(s.values, name)
	for i, n := range s.names {
		if n == name {
			s.names = append(s.names[:i], s.names[i+1:]...)
			break
		}
	}
}

// FailList makes subsequent ListNames calls return err (nil clears)
func (s *Source) FailList(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listErr = err
}

// FailGet makes subsequent GetValue calls for name return err (nil clears)
func (s *Source) FailGet(name string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.getErrs, name)
		return
	}
	s.getErrs[name] = err
}

// ListNames implements param.Source
func (s *Source) ListNames(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.listErr != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrSourceUnavailable, s.listErr)
	}

	out := make([]string, len(s.names))
	copy(out, s.names)
	return out, nil
}

// GetValue implements param.Source
func (s *Source) GetValue(_ context.Context, name string) (param.Value, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err, ok := s.getErrs[name]; ok {
		return param.Value{}, fmt.Errorf("%w: %w", errors.ErrSourceUnavailable, err)
	}

	v, ok := s.values[name]
	if !ok {
		return param.Value{}, fmt.Errorf("%w: name %q not found", errors.ErrSourceUnavailable, name)
	}
	return v, nil
}

// BasePath implements param.Source
func (s *Source) BasePath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.basePath
}
