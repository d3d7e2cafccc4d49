// Package catalog holds the static lookup tables the project layer consumes:
// the release to pack format table and the file extension to type label
// table.
//
// Both tables ship embedded in the binary. Deployments can point the
// catalog at override files in JSON, YAML or TOML; the format is chosen by
// file extension. A Catalog is built once at startup and passed to the
// archive and project layers. Reload re-reads the override files and swaps
// the tables in one step, keeping the previous tables when the new files
// fail to load.
package catalog
