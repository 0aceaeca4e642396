//go:build !ebiten

package app

// Run reports that the window front end was not compiled in.
func Run(*Config) error {
	return ErrNoGUI
}
