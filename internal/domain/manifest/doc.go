// Package manifest defines a project's metadata document, the info.json
// entry stored at the root of every project archive, and the pack.mcmeta
// marker written next to it.
//
// A Document carries the user-facing description of a project together
// with its logical structure tree. New documents are built from a Spec:
//
//	doc, err := manifest.Build(spec, formats)
//
// Build validates the spec, strips markup from user supplied text and
// seeds the standard namespace layout.
package manifest
