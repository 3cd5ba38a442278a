package colors

// ColorScheme defines all configurable color values
type ColorScheme struct {
	// Preset name (e.g., "default", "monochrome")
	Preset string `yaml:"preset"`

	// Primary accent color (used for the cursor, title and focused filter)
	Accent string `yaml:"accent"`

	// Border of the filter box and chip row
	Border string `yaml:"border"`

	// Text colors
	Title  string `yaml:"title"`
	Subtle string `yaml:"subtle"` // Muted/placeholder text
	Normal string `yaml:"normal"`

	// Status line color for catalog errors
	ErrorFg string `yaml:"error_fg"`
}

// GetPreset returns a preset color scheme by name
func GetPreset(name string) *ColorScheme {
	switch name {
	case "monochrome":
		return Monochrome()
	default:
		return Default()
	}
}

// MergeFrom copies every non-empty value from other
func (c *ColorScheme) MergeFrom(other ColorScheme) {
	if other.Preset != "" {
		c.Preset = other.Preset
	}
	if other.Accent != "" {
		c.Accent = other.Accent
	}
	if other.Border != "" {
		c.Border = other.Border
	}
	if other.Title != "" {
		c.Title = other.Title
	}
	if other.Subtle != "" {
		c.Subtle = other.Subtle
	}
	if other.Normal != "" {
		c.Normal = other.Normal
	}
	if other.ErrorFg != "" {
		c.ErrorFg = other.ErrorFg
	}
}

// ApplyDefaults fills in missing color values using the preset as base
func (c *ColorScheme) ApplyDefaults() {
	merged := *GetPreset(c.Preset)
	merged.MergeFrom(*c)
	*c = merged
}
