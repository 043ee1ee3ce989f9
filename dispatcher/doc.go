// Package dispatcher classifies an invocation target (a directory or
// an existing file) into an operation mode, runs that mode's
// content/filename templates over the right variable context, writes
// the result, synchronizes its filename, and maps the outcome to an
// exit code.
//
// Run is the single entry point the CLI layer calls; it is
// synchronous and single-threaded. Package config already owns the
// full CLI flag surface (--batch, --edit, --view, ...), so dispatcher
// takes a *config.Config rather than declaring its own Flags struct —
// a second RegisterFlags call over the same names would panic on the
// shared pflag.FlagSet.
package dispatcher
