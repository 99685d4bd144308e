// Package rush provides parameter management building blocks for robotics
// and streaming deployments: a typed dynamic value, a namespace-aggregating
// parameter store, and pluggable parameter sources.
//
// # Philosophy: Sources Supply, the Store Aggregates
//
// Rush separates WHERE parameters live from HOW they are consumed:
//
// Sources (transport specific):
//   - NATS JetStream KV buckets (source/natskv)
//   - YAML parameter files (source/yamlfile)
//   - In-memory fakes for tests (source/memsource)
//
// The store (transport agnostic):
//   - Aggregates keys across one or more namespaces
//   - Strips namespace prefixes so consumers use local names
//   - Reloads every registered namespace on demand
//   - Fails loudly on missing keys and bad conversions
//
// Rush MUST NOT contain:
//   - Terminal rendering, colors, or progress display
//   - Image format conversion or bridging
//   - Any wire protocol of its own (sources own transport)
//
// # Architecture
//
//	┌─────────────────────────────────────┐
//	│           param.Store               │  Load, Reload, Get, Keys
//	│  (namespace merge, strict lookup)   │
//	└─────────────────────────────────────┘
//	           ↓ pulls from
//	┌─────────────────────────────────────┐
//	│          param.Source               │  ListNames, GetValue, BasePath
//	│   (natskv | yamlfile | memsource)   │
//	└─────────────────────────────────────┘
//
// # Usage
//
// Load a namespace from a source and read typed values:
//
//	store := param.New(src)
//	if err := store.Load(ctx, "/robot/"); err != nil {
//	    log.Fatal(err)
//	}
//	gain, err := store.Get("gain")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	g, err := gain.AsFloat()
//
// Values convert explicitly; requesting an incompatible type returns a
// TypeMismatch error rather than coercing silently.
//
// # Concurrency
//
// A Store serializes its own operations with an internal mutex, but it is
// designed for a single logical caller. Load blocks for a short settling
// delay before querying the source to tolerate eventually consistent
// backends.
package rush
