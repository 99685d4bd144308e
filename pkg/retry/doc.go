// Package retry provides simple exponential backoff retry logic for transient failures.
//
// # Overview
//
// This package offers a minimal retry mechanism with exponential backoff,
// designed for the transient failures rush sources hit in practice: a NATS
// server still starting, a KV bucket not yet created, a flaky network hop.
//
// # Core Functions
//
//   - Do: Execute function with retry and exponential backoff
//   - DoWithResult: Execute function with retry, returns both result and error
//
// # Configuration Presets
//
//   - DefaultConfig(): 3 attempts, 100ms-5s delay (normal operations)
//   - Quick(): 10 attempts, 50ms-1s delay (source startup)
//   - Persistent(): 30 attempts, 200ms-10s delay (critical sources)
//
// # Usage Examples
//
// Basic retry with defaults:
//
//	err := retry.Do(ctx, retry.DefaultConfig(), func() error {
//	    return client.Connect(ctx)
//	})
//
// Retry with result:
//
//	bucket, err := retry.DoWithResult(ctx, retry.Quick(), func() (jetstream.KeyValue, error) {
//	    return js.KeyValue(ctx, bucketName)
//	})
//
// Mark an error so it fails fast instead of retrying:
//
//	return retry.NonRetryable(fmt.Errorf("malformed parameter name %q", name))
//
// # Design Philosophy
//
// This package is intentionally minimal: no circuit breakers, no metrics
// collection, no error classification. The errors package decides WHAT to
// retry; this package only decides WHEN to give up.
//
// Note the parameter store itself never retries — recovery decisions belong
// to the caller. Retry is used inside sources for connection establishment
// and bucket acquisition only.
//
// # Context Cancellation
//
// All retry operations respect context cancellation and stop immediately,
// whether cancellation arrives during the operation or during backoff.
//
// # Thread Safety
//
// All functions are safe for concurrent use.
package retry
