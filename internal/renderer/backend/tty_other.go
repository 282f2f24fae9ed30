//go:build !(aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris || zos)

package backend

// TTY is unavailable on this platform.
type TTY struct{ NullBackend }

// NewTTY reports that no terminal device is available.
func NewTTY(string, bool) (*TTY, error) {
	return nil, ErrNoTTY
}
