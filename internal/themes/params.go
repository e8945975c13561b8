// SPDX-License-Identifier: MIT
package themes

// Radii are the radius values offered by the customizer and pre-built for
// the registry endpoints
var Radii = []float64{0, 0.3, 0.5, 0.75, 1}

// StaticParam is one pre-built (theme, radius) combination
type StaticParam struct {
	Theme  string
	Radius string
}

// StaticParams enumerates every color theme crossed with every radius
func StaticParams() []StaticParam {
	var params []StaticParam
	for _, t := range ColorThemes() {
		for _, r := range Radii {
			params = append(params, StaticParam{Theme: t.Name, Radius: FormatRadius(r)})
		}
	}
	return params
}

// IsStaticParam reports whether a theme and serialized radius belong to the
// pre-built set. Radius must match exactly: "1" is valid, "1.0" is not.
func IsStaticParam(theme, radius string) bool {
	if IsNeutral(theme) || GetTheme(theme) == nil {
		return false
	}
	for _, r := range Radii {
		if FormatRadius(r) == radius {
			return true
		}
	}
	return false
}

// ParseStaticRadius maps a serialized radius back to its value
func ParseStaticRadius(radius string) (float64, bool) {
	for _, r := range Radii {
		if FormatRadius(r) == radius {
			return r, true
		}
	}
	return 0, false
}
