package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// sources returns the fixed chain of TOML configuration paths, lowest
// to highest priority (spec.md §6.4): the system-wide file, the file
// named by TPNOTE_CONFIG (via c.ConfigFile, already populated by
// [Config.ApplyEnv]), the per-user standard path, the nearest
// .tpnote.toml marker walking up from noteDir, and finally the
// --config flag path, flagPath.
func (c *Config) sources(noteDir, flagPath string) []string {
	var paths []string

	paths = append(paths, "/etc/tpnote/tpnote.toml")

	if c.ConfigFile != "" && c.ConfigFile != flagPath {
		paths = append(paths, c.ConfigFile)
	}

	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "tpnote", "tpnote.toml"))
	}

	if noteDir != "" {
		if marker := findMarker(noteDir); marker != "" {
			paths = append(paths, marker)
		}
	}

	if flagPath != "" {
		paths = append(paths, flagPath)
	}

	return paths
}

// findMarker walks upward from dir looking for .tpnote.toml, returning
// its full path, or "" if none is found before reaching "/".
func findMarker(dir string) string {
	cur := dir
	for {
		candidate := filepath.Join(cur, ".tpnote.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return ""
		}
		cur = parent
	}
}

// LoadError reports a configuration-chain failure Load could not
// recover from by itself (spec.md §7's ConfigError category) —
// distinct from an individual source failing to parse, which Load
// backs up and skips rather than treating as fatal.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string { return fmt.Sprintf("config: %s: %v", e.Path, e.Err) }
func (e *LoadError) Unwrap() error { return e.Err }

// Load merges the fixed chain of TOML configuration sources onto c's
// existing defaults/environment values, then applies noteDir's nearest
// .tpnote.toml and flagPath (the --config value) last. A source that
// fails to parse is backed up with a ".invalid" suffix and skipped
// with a logged diagnostic rather than aborting the whole load.
func (c *Config) Load(noteDir, flagPath string, warn func(path string, err error)) error {
	merged := map[string]any{}

	for _, path := range c.sources(noteDir, flagPath) {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return &LoadError{Path: path, Err: err}
		}

		var doc map[string]any
		if _, err := toml.Decode(string(data), &doc); err != nil {
			if warn != nil {
				warn(path, err)
			}
			backupInvalid(path)
			continue
		}

		merged = mergeTOML(merged, doc)
	}

	if err := c.decodeMerged(merged); err != nil {
		return &LoadError{Path: "<merged>", Err: err}
	}

	return nil
}

// backupInvalid renames a file that failed to parse to path+".invalid-<timestamp>",
// so the next run doesn't choke on it again while preserving its content for
// inspection. The timestamp is the current UTC time at second resolution,
// so the backup name's uniqueness is best-effort: a collision simply
// overwrites the previous backup.
func backupInvalid(path string) {
	_ = os.Rename(path, path+".invalid-"+time.Now().UTC().Format("20060102T150405Z"))
}

// mergeTOML deep-merges src onto dst and returns dst. Nested tables
// merge key by key; the top-level "scheme" array merges item-wise by
// each element's "name" field; every other array (nested or
// top-level) is replaced outright by src's value.
func mergeTOML(dst, src map[string]any) map[string]any {
	for k, v := range src {
		if k == "scheme" {
			if arr, ok := v.([]map[string]any); ok {
				dst[k] = mergeSchemeArray(asMapSlice(dst[k]), arr)
				continue
			}
			if arr, ok := v.([]any); ok {
				dst[k] = mergeSchemeArray(asMapSlice(dst[k]), toMapSlice(arr))
				continue
			}
		}

		existing, existingOK := dst[k]
		incoming, incomingIsMap := v.(map[string]any)
		existingMap, existingIsMap := existing.(map[string]any)
		if existingOK && incomingIsMap && existingIsMap {
			dst[k] = mergeTOML(existingMap, incoming)
			continue
		}

		dst[k] = v
	}

	return dst
}

func asMapSlice(v any) []map[string]any {
	switch t := v.(type) {
	case []map[string]any:
		return t
	case []any:
		return toMapSlice(t)
	default:
		return nil
	}
}

func toMapSlice(in []any) []map[string]any {
	out := make([]map[string]any, 0, len(in))
	for _, e := range in {
		if m, ok := e.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// mergeSchemeArray merges src onto dst, matching entries by their
// "name" field; unmatched src entries are appended.
func mergeSchemeArray(dst, src []map[string]any) []map[string]any {
	index := map[string]int{}
	for i, e := range dst {
		if name, ok := e["name"].(string); ok {
			index[name] = i
		}
	}

	for _, e := range src {
		name, ok := e["name"].(string)
		if !ok {
			dst = append(dst, e)
			continue
		}
		if i, found := index[name]; found {
			dst[i] = mergeTOML(dst[i], e)
			continue
		}
		index[name] = len(dst)
		dst = append(dst, e)
	}

	return dst
}

// decodeMerged round-trips merged through TOML text and decodes it
// onto c: BurntSushi/toml has no direct map[string]any-to-struct path,
// so re-encoding the merged generic document and decoding it again is
// the straightforward way to land it on the typed Config fields.
func (c *Config) decodeMerged(merged map[string]any) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(merged); err != nil {
		return fmt.Errorf("config: re-encoding merged configuration: %w", err)
	}

	if _, err := toml.Decode(buf.String(), c); err != nil {
		return fmt.Errorf("config: decoding merged configuration: %w", err)
	}

	return nil
}

// DumpDefaults renders Defaults() as TOML text, for --config-defaults.
func DumpDefaults() (string, error) {
	c := NewConfig()

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return "", fmt.Errorf("config: encoding defaults: %w", err)
	}

	return buf.String(), nil
}
