// Package main is the entry point for the PackStudio HTTP server.
//
// The server manages project archives in one directory and exposes them
// under /api/v1. See internal/infrastructure/server for the routes.
//
// Configuration:
//   - Environment variables (PORT, PROJECTS_DIR, LOG_LEVEL, ...)
//   - CLI flags (override env vars)
//
// Usage:
//
//	./server -port 8000 -projects ./projects
//
//	# Development mode (colored logs, debug level)
//	./server -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
//   - SIGHUP: Reload the catalog override files
package main
