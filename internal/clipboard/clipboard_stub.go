//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package clipboard

import (
	"errors"
	"image"
)

var errUnsupported = errors.New("clipboard is not supported on this platform")

// WriteImage is not supported on this platform.
func WriteImage(image.Image) error { return errUnsupported }

// WriteText is not supported on this platform.
func WriteText(string) error { return errUnsupported }
