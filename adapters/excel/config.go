package excel

// LoaderConfig holds options for reading data files
type LoaderConfig struct {
	Comma      rune `json:"comma"`       // CSV field delimiter, ',' when zero
	TrimSpaces bool `json:"trim_spaces"` // Trim whitespace around cells
}

// DefaultLoaderConfig returns comma separated, trimmed reading
func DefaultLoaderConfig() LoaderConfig {
	return LoaderConfig{
		Comma:      ',',
		TrimSpaces: true,
	}
}
