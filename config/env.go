package config

import (
	"net/url"
	"os"
	"strings"
)

// ApplyEnv overlays environment-variable values onto c wherever the
// corresponding variable is set (spec.md §6.3). It runs after
// [Defaults] and before the TOML merge chain, so TOML values still
// take priority over the environment (and CLI flags, applied last,
// take priority over both).
func (c *Config) ApplyEnv() {
	if v, ok := os.LookupEnv("TPNOTE_LANG"); ok {
		c.Lang = v
	}
	if v, ok := os.LookupEnv("TPNOTE_LANG_DETECTION"); ok {
		c.LangDetection = v
	}
	if v, ok := os.LookupEnv("TPNOTE_SCHEME"); ok {
		c.Scheme = v
	}
	if v, ok := os.LookupEnv("TPNOTE_EXTENSION_DEFAULT"); ok {
		c.ExtensionDefault = v
	}
	if v, ok := os.LookupEnv("TPNOTE_USER"); ok && v != "" {
		c.User = v
	} else {
		c.User = fallbackUser()
	}

	if v, ok := os.LookupEnv("TPNOTE_BROWSER"); ok {
		c.Browser = v
	}
	if v, ok := os.LookupEnv("TPNOTE_EDITOR"); ok {
		c.Editor = v
	}
	if v, ok := os.LookupEnv("TPNOTE_EDITOR_CONSOLE"); ok {
		c.EditorConsole = v
	}

	if v, ok := os.LookupEnv("TPNOTE_CONFIG"); ok {
		c.ConfigFile = v
	}

	if c.Lang == "" {
		c.Lang = localeLang()
	}
}

// fallbackUser reproduces the login-name lookup tpnote falls back to
// when TPNOTE_USER is unset or empty: LOGNAME, then USER, then USERNAME
// (Windows).
func fallbackUser() string {
	for _, name := range []string{"LOGNAME", "USER", "USERNAME"} {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// localeLang derives a language tag from the POSIX locale environment
// (LANG, e.g. "de_DE.UTF-8") when TPNOTE_LANG is unset and no header
// or TOML value has supplied one yet.
func localeLang() string {
	v := os.Getenv("LANG")
	if v == "" {
		return ""
	}
	v, _, _ = strings.Cut(v, ".")
	v, _, _ = strings.Cut(v, "@")
	return strings.ReplaceAll(v, "_", "-")
}

// ParseCommand splits a percent-encoded, whitespace-separated command
// string — the format TPNOTE_BROWSER, TPNOTE_EDITOR and
// TPNOTE_EDITOR_CONSOLE use to name a binary plus its arguments, so
// that an argument containing a space can be encoded as "%20". An
// empty string disables the command (spec.md §6.3).
func ParseCommand(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}

	fields := strings.Fields(raw)
	args := make([]string, 0, len(fields))
	for _, f := range fields {
		decoded, err := url.QueryUnescape(f)
		if err != nil {
			return nil, err
		}
		args = append(args, decoded)
	}

	return args, nil
}
