// Package param provides the dynamic parameter store: a typed value
// wrapper and a namespace-aware mapping that aggregates, merges, and
// reloads external key/value configuration data.
//
// # Values
//
// Value is a tagged variant over bool, int64, float64, string, and ordered
// lists of Value. Conversions are explicit and checked:
//
//	gain, err := store.Get("gain")
//	g, err := gain.AsFloat()      // int widens to float, nothing else does
//	ports, err := param.AsListOf[int64](v)
//
// A failed conversion returns an error wrapping errors.ErrTypeMismatch at
// the call site; nothing coerces silently.
//
// # The Store
//
// A Store pulls names and values from an injected Source, strips the
// namespace prefix, and merges the result:
//
//	store := param.New(src)
//	err := store.Load(ctx, "/robot/")   // absolute namespace
//	err = store.Load(ctx, "arm")        // relative, resolved via src.BasePath()
//	err = store.Reload(ctx)             // full rebuild, registration order
//
// Merge semantics:
//
//   - Load is additive: it inserts and overwrites, never removes. A key the
//     source stopped reporting survives until the next Reload.
//   - Reload clears everything and replays every registered namespace in
//     first-registration order, so on key collisions the namespace
//     registered last wins.
//   - A source failure mid-load aborts the rest of that load but keeps the
//     keys merged before the failure. There is no rollback.
//
// # Lookup
//
// Get is strict: absent keys return errors.ErrKeyNotFound, never a
// default-constructed value. Keys() enumerates in insertion order and is
// deterministic across calls.
package param
