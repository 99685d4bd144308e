// Package natsclient provides NATS connection management for KV-backed
// parameter sources.
//
// # Overview
//
// The client wraps a single NATS connection plus a JetStream handle, adding
// the pieces parameter sources need in practice:
//
//   - Connection establishment with exponential-backoff retry, so a source
//     can come up before (or alongside) its NATS server
//   - Reconnect handling with status tracking and optional Prometheus
//     gauges via metric.Metrics
//   - A failure-count circuit breaker that short-circuits KV operations
//     after repeated errors instead of hammering a dead server
//   - KV bucket access (open existing, create-or-open)
//
// # Basic Usage
//
//	client, err := natsclient.NewClient("nats://localhost:4222",
//	    natsclient.WithClientName("paramdump"),
//	)
//	if err != nil {
//	    return err
//	}
//	if err := client.Connect(ctx); err != nil {
//	    return err
//	}
//	defer client.Close(ctx)
//
//	bucket, err := client.KeyValueBucket(ctx, "robot_params")
//
// The bucket handle feeds source/natskv, which exposes it as a
// param.Source.
//
// # Error Classification
//
// All errors are classified via the errors package: connection and bucket
// failures are transient, option misuse is invalid, and an open circuit
// surfaces errors.ErrCircuitOpen. Callers decide whether to retry.
package natsclient
