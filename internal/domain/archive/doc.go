// Package archive keeps a project's structure tree and its zip entries in
// step.
//
// Every project is one zip file in the managed directory. The info.json
// entry holds the manifest, including the logical structure tree. Every
// other entry mirrors a node of that tree by path: folders are zero-length
// entries ending in "/", files hold their content.
//
// Zip files cannot be edited in place, so every structural change writes a
// complete new archive. Untouched entries are copied raw, without
// recompression, into a hidden temp file next to the original. The temp
// file is synced and renamed over the original, so readers see either the
// old archive or the new one. The cost of a mutation is proportional to the
// size of the whole archive.
//
// Writers to one archive are serialized by a per-name lock; readers of the
// same archive share the lock. Different archives never block each other.
//
// Reads join the tree with the entries and fail with ErrInconsistentArchive
// when a node has no entry. Nothing is repaired silently.
package archive
