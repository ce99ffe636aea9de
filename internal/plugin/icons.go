package plugin

import "slices"

const (
	// FallbackIconTheme is installed when neither the application nor the
	// desktop provides an icon theme.
	FallbackIconTheme = "ocean-internal"

	// builtinIconPath holds the icons compiled into the application.
	builtinIconPath = ":/icons"
)

// IconTheme is the icon lookup configuration of an application.
type IconTheme struct {
	Name                string
	SearchPaths         []string
	FallbackSearchPaths []string
}

// SetupIconTheme returns theme adjusted for the plugin's icons. Without a
// theme and outside a desktop session the bundled theme is installed;
// otherwise the bundled icons are only added as a fallback.
func SetupIconTheme(theme IconTheme, selector *StyleSelector, lookupEnv func(string) (string, bool)) IconTheme {
	if selector == nil {
		selector = &StyleSelector{}
	}
	out := IconTheme{
		Name:                theme.Name,
		SearchPaths:         slices.Clone(theme.SearchPaths),
		FallbackSearchPaths: slices.Clone(theme.FallbackSearchPaths),
	}

	_, desktop := lookupEnv("XDG_CURRENT_DESKTOP")
	if theme.Name == "" && !desktop {
		out.SearchPaths = []string{selector.ComponentURL("."), builtinIconPath}
		out.Name = FallbackIconTheme
		return out
	}
	out.FallbackSearchPaths = append(out.FallbackSearchPaths, selector.ComponentURL("icons"))
	return out
}
