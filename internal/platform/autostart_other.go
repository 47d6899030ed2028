//go:build !linux

package platform

// Enable is not implemented outside Linux.
func (autostart *Autostart) Enable(string) error {
	return ErrAutostartUnsupported
}

// Disable is not implemented outside Linux.
func (autostart *Autostart) Disable() error {
	return ErrAutostartUnsupported
}

// Enabled always reports false outside Linux.
func (autostart *Autostart) Enabled() bool {
	return false
}
