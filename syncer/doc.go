// Package syncer renames a note file on disk to match its candidate
// filename (the sync filename template expanded over the note's
// current header), allocating a copy-counter on collision.
//
// Computing the candidate name (tmpl's job) and honoring a header's
// `filename_sync: false` opt-out (the caller's job, since that is a
// header-content decision, not a filesystem one) both happen before
// [Sync] is called; Sync itself is pure rename mechanics.
package syncer
