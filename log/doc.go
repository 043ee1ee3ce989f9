// Package log provides structured logging handler construction for use with
// [log/slog], matched to tpnote's `--debug` flag vocabulary
// (trace|debug|info|warn|error|off) rather than slog's own four levels.
//
// Use [NewHandler] to create a handler directly, or use [Config] with CLI
// flag integration via [github.com/spf13/pflag] and shell completion support
// via [github.com/spf13/cobra]:
//
//	cfg := log.NewConfig()
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//	cfg.RegisterCompletions(rootCmd)
//
//	handler, err := cfg.NewHandler(os.Stderr)
//	slog.SetDefault(slog.New(handler))
//
// A [Publisher] fans out log output to multiple subscribers. tpnote uses
// this to feed the `--popup` alert-dialog sink without coupling the logger
// to a specific UI: the popup presenter is just another [Subscription].
//
//	pub := log.NewPublisher()
//	w := io.MultiWriter(os.Stderr, pub)
//	handler := log.NewHandler(w, log.LevelInfo, log.FormatLogfmt)
//	slog.SetDefault(slog.New(handler))
//
//	sub := pub.Subscribe()
//	go func() {
//	    for entry := range sub.C() {
//	        presentPopup(entry)
//	    }
//	}()
package log
