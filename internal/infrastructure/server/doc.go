// Package server assembles the HTTP server: catalog, project store,
// middleware chain and routes, built from a config.Config.
package server
