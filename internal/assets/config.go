package assets

type Config struct {
	// Base directory for entry points and output directories
	WorkDir string
	// Name of the metafile written into each target's output directory
	MetafileName string
	// Whether to enable source maps
	SourceMap bool
}

// DefaultConfig returns a sensible default configuration
func DefaultConfig() Config {
	return Config{
		WorkDir:      ".",
		MetafileName: "meta.json",
		SourceMap:    false,
	}
}
