//go:build !cgo

package hal

import "fmt"

// WindowConfig controls the desktop window runner.
type WindowConfig struct {
	Width  int
	Height int
	Zoom   int
	Title  string
}

// RunWindow is unavailable without cgo; use the headless or web host.
func RunWindow(_ func(HAL) func() error, _ WindowConfig) error {
	return fmt.Errorf("%w: window mode requires cgo (CGO_ENABLED=1)", ErrNotImplemented)
}
