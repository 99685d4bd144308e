package param

import "context"

// Source supplies raw parameter names and values. Implementations own all
// transport and persistence concerns; the store only aggregates.
//
// Implementations in this module: source/natskv (NATS JetStream KV),
// source/yamlfile (YAML parameter files), source/memsource (in-memory fake).
type Source interface {
	// ListNames returns all currently known parameter names, fully
	// qualified (e.g. "/robot/arm/gain").
	ListNames(ctx context.Context) ([]string, error)

	// GetValue fetches the current value for a fully qualified name.
	// Returns an error wrapping errors.ErrSourceUnavailable if the name
	// does not exist or the source cannot be reached.
	GetValue(ctx context.Context, name string) (Value, error)

	// BasePath returns the caller's default namespace prefix, used to
	// resolve relative namespace arguments to Load. Always absolute.
	BasePath() string
}
