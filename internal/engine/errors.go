package engine

// ConfigError marks a fatal configuration problem detected before any
// hashing work begins: bad piece length, output colliding with an input,
// inputs without a common root, input outside an explicit root, or an
// empty result set.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string { return e.Err.Error() }
func (e *ConfigError) Unwrap() error { return e.Err }

// FSError marks a fatal filesystem condition encountered mid-run: an
// unreadable path, a path changing type between scan and open, or a path
// that is neither a file nor a directory.
type FSError struct {
	Err error
}

func (e *FSError) Error() string { return e.Err.Error() }
func (e *FSError) Unwrap() error { return e.Err }
