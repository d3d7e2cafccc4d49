/*
Package monitoring provides Prometheus metrics for the server.

# Overview

Metrics are registered on a prometheus.Registerer passed to NewMetrics, so
tests can use a fresh registry. The collected families:

  - HTTP: requests by method, route and status; durations and sizes
  - Store: project operations by op and status, project count
  - Archive: rewrites by op and status, bytes written, rewrite duration
  - Catalog: reloads by status
  - Uptime

Metrics implements the recorder interfaces of the archive and project
packages, so both layers report without importing Prometheus.

# Usage

	reg := prometheus.NewRegistry()
	metrics := monitoring.NewMetrics(reg)
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
*/
package monitoring
