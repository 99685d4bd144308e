// Package metric provides Prometheus-based metrics collection and an HTTP
// endpoint for rush parameter management observability.
//
// The package offers a centralized registry managing core metrics (namespace
// loads, store key counts, source errors, connection health) plus extensible
// registration for caller-specific collectors, and an HTTP server exposing
// everything in Prometheus format.
//
// # Basic Usage
//
// Setting up metrics collection and the HTTP server:
//
//	registry := metric.NewMetricsRegistry()
//	server := metric.NewServer(9090, "/metrics", registry)
//
//	go func() {
//	    if err := server.Start(); err != nil && err != http.ErrServerClosed {
//	        log.Printf("metrics server error: %v", err)
//	    }
//	}()
//
//	core := registry.CoreMetrics()
//	core.RecordLoad("/robot/", "ok", elapsed)
//	core.RecordKeys("main", store.Len())
//
// The parameter store records load, reload, key-count, and lookup-miss
// metrics automatically when constructed with param.WithMetrics.
package metric
