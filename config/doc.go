// Package config loads tpnote's configuration: CLI flags (spec.md
// §6.1) via the teacher's Flags/Config/RegisterFlags/RegisterCompletions
// convention, environment variables (spec.md §6.3), and the fixed
// chain of TOML configuration sources (spec.md §6.4), deep-merged with
// one exception — top-level arrays (the `scheme` array) merge
// item-wise by their `name` field, every other array is replaced.
//
// Callers build a Config in priority order, lowest first: [NewConfig]
// (applies [Defaults]), [Config.ApplyEnv], [Config.Load], then
// [Config.RegisterFlags] on a [pflag.FlagSet] followed by the set's
// own Parse and [Config.CaptureChanged]. Each stage's output becomes
// the next stage's starting point, so a value left untouched by a
// higher-priority source simply keeps what the previous stage set.
package config
