package config

// KeyMappings defines all configurable key bindings
type KeyMappings struct {
	// Navigation
	Up   string `yaml:"up"`
	Down string `yaml:"down"`

	// Selection
	Toggle     string `yaml:"toggle"`
	RemoveLast string `yaml:"remove_last"`
	Clear      string `yaml:"clear"`

	// Other
	Quit string `yaml:"quit"`
}

// DefaultKeyMappings returns the default key mappings.
// Printable keys would collide with the filter input, so defaults use
// arrows and control chords.
func DefaultKeyMappings() KeyMappings {
	return KeyMappings{
		Up:         "up",
		Down:       "down",
		Toggle:     "enter",
		RemoveLast: "backspace",
		Clear:      "ctrl+x",
		Quit:       "esc",
	}
}

// applyDefaults fills in missing key mappings with defaults
func (k *KeyMappings) applyDefaults() {
	defaults := DefaultKeyMappings()
	if k.Up == "" {
		k.Up = defaults.Up
	}
	if k.Down == "" {
		k.Down = defaults.Down
	}
	if k.Toggle == "" {
		k.Toggle = defaults.Toggle
	}
	if k.RemoveLast == "" {
		k.RemoveLast = defaults.RemoveLast
	}
	if k.Clear == "" {
		k.Clear = defaults.Clear
	}
	if k.Quit == "" {
		k.Quit = defaults.Quit
	}
}
