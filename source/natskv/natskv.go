// Package natskv exposes a NATS JetStream KV bucket as a parameter source.
//
// Parameter names map to KV keys by swapping separators: the name
// "/robot/arm/gain" lives under the KV key "robot.arm.gain" (NATS keys
// cannot contain slashes). Values are stored as JSON documents; scalars and
// arrays of scalars are supported, matching what param.NewValue accepts.
//
// The bucket is the shared "parameter server": multiple processes load
// from it, and operators update it with plain NATS tooling:
//
//	nats kv put robot_params robot.gain 2.5
package natskv

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/raultapia/rush/errors"
	"github.com/raultapia/rush/natsclient"
	"github.com/raultapia/rush/param"
)

// Source is a KV-bucket-backed implementation of param.Source
type Source struct {
	bucket   jetstream.KeyValue
	basePath string
	timeout  time.Duration
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

// WithTimeout bounds each KV operation (default 5s)
func WithTimeout(d time.Duration) Option {
	return func(s *Source) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// New wraps an existing KV bucket
func New(bucket jetstream.KeyValue, opts ...Option) *Source {
	s := &Source{
		bucket:   bucket,
		basePath: "/",
		timeout:  5 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open creates or opens the named bucket through a connected client and
// wraps it as a Source
func Open(ctx context.Context, client *natsclient.Client, bucket string, opts ...Option) (*Source, error) {
	kv, err := client.CreateKeyValueBucket(ctx, jetstream.KeyValueConfig{
		Bucket:      bucket,
		Description: "rush parameter storage",
		History:     5, // Keep last 5 versions
	})
	if err != nil {
		return nil, errors.Wrap(err, "Source", "Open", fmt.Sprintf("open bucket %s", bucket))
	}
	return New(kv, opts...), nil
}

// ListNames implements param.Source
func (s *Source) ListNames(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	keys, err := s.bucket.Keys(ctx)
	if err != nil {
		// An empty bucket is an empty parameter server, not a failure
		if stderrors.Is(err, jetstream.ErrNoKeysFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: list keys: %w", errors.ErrSourceUnavailable, err)
	}

	names := make([]string, 0, len(keys))
	for _, key := range keys {
		names = append(names, KeyToName(key))
	}
	return names, nil
}

// GetValue implements param.Source
func (s *Source) GetValue(ctx context.Context, name string) (param.Value, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	entry, err := s.bucket.Get(ctx, NameToKey(name))
	if err != nil {
		if stderrors.Is(err, jetstream.ErrKeyNotFound) {
			return param.Value{}, fmt.Errorf("%w: name %q not found", errors.ErrSourceUnavailable, name)
		}
		return param.Value{}, fmt.Errorf("%w: get %s: %w", errors.ErrSourceUnavailable, name, err)
	}

	v, err := decodeValue(entry.Value())
	if err != nil {
		return param.Value{}, errors.WrapInvalid(err, "Source", "GetValue",
			fmt.Sprintf("decode value for %s", name))
	}
	return v, nil
}

// BasePath implements param.Source
func (s *Source) BasePath() string {
	return s.basePath
}

// Put stores a raw value under a fully qualified name, JSON-encoded.
// Convenience for tests and tooling; operators normally write the bucket
// directly.
func (s *Source) Put(ctx context.Context, name string, raw any) error {
	if _, err := param.NewValue(raw); err != nil {
		return errors.WrapInvalid(err, "Source", "Put", fmt.Sprintf("validate value for %s", name))
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return errors.WrapInvalid(err, "Source", "Put", fmt.Sprintf("marshal value for %s", name))
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := s.bucket.Put(ctx, NameToKey(name), data); err != nil {
		return fmt.Errorf("%w: put %s: %w", errors.ErrSourceUnavailable, name, err)
	}
	return nil
}

// NameToKey converts a slash-separated parameter name to a KV key
func NameToKey(name string) string {
	return strings.ReplaceAll(strings.Trim(name, "/"), "/", ".")
}

// KeyToName converts a KV key back to a fully qualified parameter name
func KeyToName(key string) string {
	return "/" + strings.ReplaceAll(key, ".", "/")
}

// decodeValue parses a JSON document into a param.Value. Numbers decode
// through json.Number so integers stay integers instead of collapsing to
// float64.
func decodeValue(data []byte) (param.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return param.Value{}, fmt.Errorf("parse JSON: %w", err)
	}

	converted, err := convertNumbers(raw)
	if err != nil {
		return param.Value{}, err
	}
	return param.NewValue(converted)
}

func convertNumbers(raw any) (any, error) {
	switch v := raw.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i, nil
		}
		f, err := v.Float64()
		if err != nil {
			return nil, fmt.Errorf("number %q: %w", v.String(), err)
		}
		return f, nil
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			c, err := convertNumbers(elem)
			if err != nil {
				return nil, err
			}
			out[i] = c
		}
		return out, nil
	default:
		return raw, nil
	}
}
