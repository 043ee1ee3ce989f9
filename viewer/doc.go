// Package viewer implements the note viewer's HTTP server (spec.md
// §4.J): a gin.Engine bound to 127.0.0.1 serving exactly three request
// categories (the rendered document, a server-sent-events change
// stream, and allow-listed static resources), backed by an
// fsnotify-driven file watcher and a per-session ViewerState.
//
// Broadcaster is generalized from the teacher's log.Publisher/Subscription
// fan-out design (package log): same ring-buffer-drops-oldest,
// mutex-guarded, Close-idempotent shape, parameterized over the payload
// type instead of fixed to []byte. FileWatcher is adapted from
// jinterlante1206-AleutianLocal's services/trace/graph/file_watcher.go,
// narrowed from "watch a whole project tree" to "watch one note file and
// its containing directory."
package viewer
