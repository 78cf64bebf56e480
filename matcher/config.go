package matcher

// Config controls buffering of the matchers.
//
// Example:
//
//	config := matcher.DefaultConfig()
//	config.MaxBufferSize = 1 << 20 // refuse lines longer than 1MB
//	m, err := matcher.NewLineMatcherWithConfig(os.Stdin, "N", config)
type Config struct {
	// BufferSize is the initial buffer size and the unit of each read from
	// the input.
	// Default: 64KB
	BufferSize int

	// MaxBufferSize caps buffer growth. Pending text (a line, or all input
	// for whole-input matching) larger than this stops matching with
	// ErrBufferFull. Zero means unlimited.
	// Default: 0
	MaxBufferSize int
}

// DefaultConfig returns a configuration with a 64KB initial buffer and no
// growth limit.
func DefaultConfig() Config {
	return Config{
		BufferSize:    64 * 1024,
		MaxBufferSize: 0,
	}
}

// Validate checks if the configuration is valid.
//
// Valid ranges:
//   - BufferSize: 16 to 1GB
//   - MaxBufferSize: 0, or at least BufferSize
func (c Config) Validate() error {
	if c.BufferSize < 16 || c.BufferSize > 1<<30 {
		return &ConfigError{
			Field:   "BufferSize",
			Message: "must be between 16 and 1GB",
		}
	}
	if c.MaxBufferSize != 0 && c.MaxBufferSize < c.BufferSize {
		return &ConfigError{
			Field:   "MaxBufferSize",
			Message: "must be 0 or at least BufferSize",
		}
	}
	return nil
}
