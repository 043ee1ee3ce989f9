package scheme

// markupNames maps a raw scheme TOML entry's markup name to a [Markup].
var markupNames = map[string]Markup{
	"markdown":  Markdown,
	"rst":       RST,
	"plaintext": PlainText,
}

// MergeRaw applies each raw `[[scheme]]` TOML table (spec.md §6.4, already
// merged item-wise by name via config's own deep-merge) onto r: an entry
// whose name matches a shipped scheme overrides that scheme's templates
// and extensions in place; an entry with a new name starts from Default
// and is added to the registry. Only the fields a TOML table can express
// as plain strings/maps are overridable this way — Grammar, Preconditions,
// and LangDetect stay at whatever the base scheme (Default, if the name is
// new) already carries.
func (r Registry) MergeRaw(raw []map[string]any) {
	for _, entry := range raw {
		name, _ := entry["name"].(string)
		if name == "" {
			continue
		}

		sch, ok := r[name]
		if !ok {
			cloned := *Default()
			cloned.Name = name
			sch = &cloned
			r[name] = sch
		}

		applyRawScheme(sch, entry)
	}
}

func applyRawScheme(sch *Scheme, entry map[string]any) {
	if v, ok := entry["extension-default"].(string); ok {
		sch.ExtensionDefault = v
	}

	if v, ok := entry["compulsory-field"].(string); ok {
		sch.CompulsoryField = v
	}

	if raw, ok := entry["extensions"].(map[string]any); ok {
		exts := make(map[string]Markup, len(raw))
		for ext, v := range raw {
			name, _ := v.(string)
			if markup, ok := markupNames[name]; ok {
				exts[ext] = markup
			}
		}
		if len(exts) > 0 {
			sch.Extensions = exts
		}
	}

	mergeStringMap(entry, "content-templates", &sch.ContentTemplates)
	mergeStringMap(entry, "filename-templates", &sch.FilenameTemplates)
	mergeStringMap(entry, "html-templates", &sch.HTMLTemplates)
}

func mergeStringMap(entry map[string]any, key string, dst *map[string]string) {
	raw, ok := entry[key].(map[string]any)
	if !ok {
		return
	}

	if *dst == nil {
		*dst = make(map[string]string, len(raw))
	}

	for k, v := range raw {
		if s, ok := v.(string); ok {
			(*dst)[k] = s
		}
	}
}
