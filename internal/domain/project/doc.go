// Package project is the entry point for everything a client does with
// projects: creating and listing them, reading metadata, browsing and
// editing their structure, exporting and deleting them.
//
// A Store validates names and input before any archive is touched and
// translates lower level failures into this package's error kinds, so
// callers only need errors.Is against the sentinels declared here plus
// the structure and catalog errors that pass through unchanged.
package project
