package colors

// Default returns the default color scheme (purple theme)
func Default() *ColorScheme {
	return &ColorScheme{
		Preset: "default",

		Accent: "#874BFD",
		Border: "#585858",

		Title:  "#D75FD7",
		Subtle: "#585858",
		Normal: "#D0D0D0",

		ErrorFg: "#FF0000",
	}
}
