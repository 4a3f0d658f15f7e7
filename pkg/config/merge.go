package config

// Merge returns s with every setting that override sets applied on top.
// Multiline is a plain bool, so an override can switch it on but not off.
// Map entries merge key by key.
func (s TableSettings) Merge(override TableSettings) TableSettings {
	out := s
	setPtr := func(src *string, dst **string) {
		if src != nil {
			*dst = src
		}
	}
	setStr := func(src string, dst *string) {
		if src != "" {
			*dst = src
		}
	}
	setPtr(override.Pad, &out.Pad)
	setPtr(override.Marker, &out.Marker)
	setPtr(override.Terminator, &out.Terminator)
	setStr(override.Border, &out.Border)
	setStr(override.HeaderColor, &out.HeaderColor)
	setStr(override.NormalColor, &out.NormalColor)
	setStr(override.Join, &out.Join)
	setStr(override.Glyphs, &out.Glyphs)
	if override.Threshold != nil {
		out.Threshold = override.Threshold
	}
	out.Multiline = s.Multiline || override.Multiline
	out.GlyphOverrides = mergeMap(s.GlyphOverrides, override.GlyphOverrides)
	out.Colors = mergeMap(s.Colors, override.Colors)
	return out
}

func mergeMap(base, override map[string]string) map[string]string {
	if len(base) == 0 && len(override) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(override))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range override {
		out[k] = v
	}
	return out
}
